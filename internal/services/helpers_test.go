package services

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// testClock can be moved between days.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) SetDate(t *testing.T, date string) {
	day, err := time.ParseInLocation(domain.DateLayout, date, time.Local)
	require.NoError(t, err)
	c.mu.Lock()
	c.now = day.Add(9 * time.Hour)
	c.mu.Unlock()
}

var errDiskIO = stderrors.New("disk I/O error")

// flakyRepo fails a number of upcoming writes and selected reads.
type flakyRepo struct {
	sqlite.Repository
	mu          sync.Mutex
	putFailures int
	putCalls    int
	getErrs     map[string]error
}

func (f *flakyRepo) PutEntries(ctx context.Context, entries []*sqlite.Entry) error {
	f.mu.Lock()
	f.putCalls++
	if f.putFailures > 0 {
		f.putFailures--
		f.mu.Unlock()
		return errDiskIO
	}
	f.mu.Unlock()
	return f.Repository.PutEntries(ctx, entries)
}

func (f *flakyRepo) GetEntry(ctx context.Context, key string) (*sqlite.Entry, error) {
	f.mu.Lock()
	err := f.getErrs[key]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Repository.GetEntry(ctx, key)
}

func (f *flakyRepo) failNextPuts(n int) {
	f.mu.Lock()
	f.putFailures = n
	f.mu.Unlock()
}

type testEnv struct {
	ctx      context.Context
	base     *sqlite.SQLiteRepository
	repo     *flakyRepo
	clock    *testClock
	store    *Gateway
	services *ServiceContainer
}

func newTestEnv(t *testing.T, date string) *testEnv {
	return newTestEnvWithConfig(t, date, func(*config.Config) {})
}

func newTestEnvWithConfig(t *testing.T, date string, mutate func(*config.Config)) *testEnv {
	base, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { base.Close() })

	cfg := config.NewConfig()
	cfg.Rollover.RetryBackoff = 0
	mutate(cfg)

	clock := &testClock{}
	clock.SetDate(t, date)
	repo := &flakyRepo{Repository: base, getErrs: map[string]error{}}

	return &testEnv{
		ctx:      context.Background(),
		base:     base,
		repo:     repo,
		clock:    clock,
		store:    NewGateway(base, 0, 0),
		services: NewServiceContainer(repo, cfg, clock),
	}
}

func (e *testEnv) putTasks(t *testing.T, tasks []domain.Task) {
	require.NoError(t, e.store.SaveTasks(e.ctx, tasks))
}

func (e *testEnv) putRaw(t *testing.T, key, value string) {
	require.NoError(t, e.base.PutEntry(e.ctx, &sqlite.Entry{Key: key, Value: value}))
}

func (e *testEnv) tasks(t *testing.T) []domain.Task {
	tasks, err := e.store.Tasks(e.ctx)
	require.NoError(t, err)
	return tasks
}

func (e *testEnv) archive(t *testing.T) []domain.ArchivedTask {
	archive, err := e.store.Archive(e.ctx)
	require.NoError(t, err)
	return archive
}

func (e *testEnv) history(t *testing.T) []domain.DailyHistory {
	history, err := e.store.History(e.ctx)
	require.NoError(t, err)
	return history
}

func (e *testEnv) marker(t *testing.T) domain.CalendarDate {
	date, err := e.store.LastArchiveDate(e.ctx)
	require.NoError(t, err)
	return date
}

// snapshot returns every stored value by key, timestamps excluded.
func (e *testEnv) snapshot(t *testing.T) map[string]string {
	entries, err := e.base.ListEntries(e.ctx)
	require.NoError(t, err)
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		out[entry.Key] = entry.Value
	}
	return out
}
