package main

import (
	"fmt"
	"io"
	"os"

	"daily-tracker/internal/api"
	"daily-tracker/internal/config"
	"daily-tracker/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository(cfg)
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// createDevelopmentRepository keeps the database next to the working directory
func (rf *RepositoryFactory) createDevelopmentRepository(cfg *config.Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions("dt.db", cfg.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// OpenAPI opens the store for cfg and builds the business API over it.
// The returned closer releases the store.
func (rf *RepositoryFactory) OpenAPI(cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
	repo, err := rf.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	return api.New(repo, cfg, nil), repo, nil
}

// getEnvironment reads DT_ENV, defaulting to production
func getEnvironment() Environment {
	switch os.Getenv("DT_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		return Production
	}
}
