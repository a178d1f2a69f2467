package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SecretStore implements secret.SecretStore on the secrets table. The
// database file should live in a directory only the user can read.
type SecretStore struct {
	db *DB
}

func NewSecretStore(db *DB) *SecretStore {
	return &SecretStore{db: db}
}

func (s *SecretStore) Set(key string, value []byte) error {
	now := time.Now().UTC()
	_, err := s.db.conn.Exec(
		`INSERT INTO secrets (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now, now,
	)
	if err != nil {
		return fmt.Errorf("set secret: %w", err)
	}
	return nil
}

// Get returns nil, nil when key does not exist.
func (s *SecretStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.conn.QueryRow(`SELECT value FROM secrets WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get secret: %w", err)
	}
	return value, nil
}

func (s *SecretStore) Delete(key string) error {
	if _, err := s.db.conn.Exec(`DELETE FROM secrets WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	return nil
}

// UpdatedAt reports when key was last written; zero if it does not exist.
func (s *SecretStore) UpdatedAt(key string) (time.Time, error) {
	var t time.Time
	err := s.db.conn.QueryRow(`SELECT updated_at FROM secrets WHERE key = ?`, key).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get secret timestamp: %w", err)
	}
	return t, nil
}
