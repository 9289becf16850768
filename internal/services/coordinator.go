package services

import "sync"

// Coordinator serializes every read-modify-write of the task list, the
// rollover included. All services built by NewServiceContainer share one.
type Coordinator struct {
	mu sync.Mutex
}

// NewCoordinator creates an unlocked coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Do runs fn while holding the lock.
func (c *Coordinator) Do(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}
