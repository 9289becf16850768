package sqlite

import (
	"context"
	"database/sql"
	"time"

	"daily-tracker/internal/errors"
	"daily-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for the key-value blob store
type Repository interface {
	// Read operations
	GetEntry(ctx context.Context, key string) (*Entry, error)
	ListEntries(ctx context.Context) ([]*Entry, error)

	// Write operations
	PutEntry(ctx context.Context, entry *Entry) error
	// PutEntries writes every entry in one transaction; either all land or none do.
	PutEntries(ctx context.Context, entries []*Entry) error
	DeleteEntry(ctx context.Context, key string) error

	// Utility
	Close() error
}

// Options tunes a repository. Zero timeouts disable the per-call deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db      *sql.DB
	options Options
	now     func() time.Time
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a repository with explicit timeouts
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("ping database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, options: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.options.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.options.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.options.WriteTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.options.WriteTimeout)
}

// GetEntry retrieves the blob stored under key
func (r *SQLiteRepository) GetEntry(ctx context.Context, key string) (*Entry, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanEntry, "entry", key, key)
}

// ListEntries retrieves all blobs ordered by key
func (r *SQLiteRepository) ListEntries(ctx context.Context) ([]*Entry, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanEntries, "entries")
}

const upsertEntryQuery = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// PutEntry creates or replaces a single blob
func (r *SQLiteRepository) PutEntry(ctx context.Context, entry *Entry) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	entry.UpdatedAt = r.now()
	return ExecuteWithRowsAffected(ctx, r.db, upsertEntryQuery, "entry", entry.Key, entry.Key, entry.Value, FormatTimeForDB(entry.UpdatedAt))
}

// PutEntries creates or replaces several blobs atomically
func (r *SQLiteRepository) PutEntries(ctx context.Context, entries []*Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	now := r.now()
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, entry := range entries {
			entry.UpdatedAt = now
			if err := ExecuteWithRowsAffected(ctx, tx, upsertEntryQuery, "entry", entry.Key, entry.Key, entry.Value, FormatTimeForDB(now)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteEntry removes the blob stored under key
func (r *SQLiteRepository) DeleteEntry(ctx context.Context, key string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM kv_store WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "entry", key, key)
}
