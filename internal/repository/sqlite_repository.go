package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository stores snapshots in the sessions table created by the
// database migrations.
func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := "SELECT value FROM sessions WHERE key = ?"
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read session %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put upserts the snapshot so that a failed write leaves the previous row intact.
func (r *sqliteRepository) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO sessions (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("could not write session %q: %w", key, err)
	}
	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, key string) error {
	query := "DELETE FROM sessions WHERE key = ?"
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("could not delete session %q: %w", key, err)
	}
	return nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
