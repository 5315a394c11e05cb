// package repositories provides persistence layer implementations for the token store.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/jukebox/internal/shared"
)

// AccessTokenKey is the row key the bearer token is stored under.
const AccessTokenKey = "access_token"

// TokenRepository is a SQLite-backed [auth.TokenStore].
type TokenRepository struct {
	db  *sql.DB
	key string
}

// NewTokenRepository creates a new [TokenRepository] with the given database connection.
//
// Migrations must already have been applied.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db, key: AccessTokenKey}
}

// Save upserts the token, replacing any previous value.
func (r *TokenRepository) Save(token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidArgument)
	}

	query := `
		INSERT INTO tokens (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	now := time.Now().UTC()
	if _, err := r.db.Exec(query, r.key, token, now, now); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Load returns the stored token or [shared.ErrNotAuthenticated].
func (r *TokenRepository) Load() (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM tokens WHERE key = ?", r.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", shared.ErrNotAuthenticated
	}
	if err != nil {
		return "", fmt.Errorf("failed to query token: %w", err)
	}
	return value, nil
}

// UpdatedAt returns when the token was last written.
func (r *TokenRepository) UpdatedAt() (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow("SELECT updated_at FROM tokens WHERE key = ?", r.key).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, shared.ErrNotAuthenticated
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query token: %w", err)
	}
	return updatedAt, nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (r *TokenRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM tokens WHERE key = ?", r.key); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
