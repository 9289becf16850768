package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

func init() {
	RegisterGoMigration(2, Up_000002_normalize_legacy_keys, Down_000002_normalize_legacy_keys)
}

// legacyKeyPrefix marks keys exported from the mobile key-value store ("@tasks", "@history", ...).
const legacyKeyPrefix = "@"

// Up_000002_normalize_legacy_keys renames "@"-prefixed keys to their plain form.
// When both forms exist the plain key is newer and wins; the legacy row is dropped.
func Up_000002_normalize_legacy_keys(tx *sql.Tx) error {
	type row struct {
		key   string
		value string
	}
	var legacy []row

	rows, err := tx.Query("SELECT key, value FROM kv_store WHERE key LIKE '@%'")
	if err != nil {
		return fmt.Errorf("failed to query legacy keys: %w", err)
	}
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.key, &r.value); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan legacy key: %w", err)
		}
		legacy = append(legacy, r)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating legacy keys: %w", err)
	}
	rows.Close()

	now := time.Now().Format(time.RFC3339)
	for _, r := range legacy {
		plain := strings.TrimPrefix(r.key, legacyKeyPrefix)
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)",
			plain, r.value, now,
		); err != nil {
			return fmt.Errorf("failed to copy %s: %w", r.key, err)
		}
		if _, err := tx.Exec("DELETE FROM kv_store WHERE key = ?", r.key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", r.key, err)
		}
	}

	return nil
}

// Down_000002_normalize_legacy_keys is a no-op: the legacy names carry no extra data.
func Down_000002_normalize_legacy_keys(tx *sql.Tx) error {
	return nil
}
