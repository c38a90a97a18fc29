package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Entry is a stored key-value pair.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Get returns the value stored under key.
// found is false when the key has never been written.
func (db *DB) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var s string
	err = db.conn.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(s), true, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (db *DB) Delete(ctx context.Context, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Entries lists every stored pair ordered by key.
func (db *DB) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := db.Query("SELECT key, value, updated_at FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var e Entry
		var value, updatedAt string
		if err := rows.Scan(&e.Key, &value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Value = []byte(value)
		e.UpdatedAt, _ = parseTime(updatedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
