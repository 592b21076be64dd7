package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/quanta/internal/storage"
)

// Entry is one stored value with its bookkeeping columns.
type Entry struct {
	Key      string
	Value    []byte
	Revision int64
	RunID    string
}

// Get returns the entry stored under key.
// The bool is false when the key has never been written or was deleted.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	var e Entry
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT key, value, revision, run_id
		FROM kv
		WHERE key = ?
	`, key).Scan(&e.Key, &value, &e.Revision, &e.RunID)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get %q: %w", key, err)
	}
	e.Value = []byte(value)
	return e, true, nil
}

// Put replaces the value under key and returns its new revision.
// The write is committed before Put returns.
func (s *Store) Put(ctx context.Context, key string, value []byte, runID string) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO kv (key, value, revision, run_id)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			revision = kv.revision + 1,
			run_id = excluded.run_id
		RETURNING revision
	`, key, string(value), runID).Scan(&rev)
	if err != nil {
		return 0, fmt.Errorf("put %q: %w", key, err)
	}
	return rev, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Revision returns the current revision of key, or 0 if it is absent.
func (s *Store) Revision(ctx context.Context, key string) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, `SELECT revision FROM kv WHERE key = ?`, key).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	return rev, nil
}

// Keys returns all stored keys in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}

// Backend adapts the store to storage.Backend. Every Save is stamped with runID.
func (s *Store) Backend(runID string) storage.Backend {
	return &backend{store: s, runID: runID}
}

type backend struct {
	store *Store
	runID string
}

func (b *backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok, err := b.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	return e.Value, true, nil
}

func (b *backend) Save(ctx context.Context, key string, value []byte) error {
	_, err := b.store.Put(ctx, key, value, b.runID)
	return err
}
