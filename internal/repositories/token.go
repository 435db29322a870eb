package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
)

// sessionKey is the fixed key the access token is stored under.
const sessionKey = "spotify_session"

// TokenStore persists the current access token for the login session.
//
// Single writer: the auth flow writes once per successful login, replacing
// any previous value. Readers treat a missing or unreadable token the same
// as "never logged in" - storage failures never escalate past a warning.
type TokenStore struct {
	db     *sql.DB
	logger *log.Logger
}

// NewTokenStore creates a TokenStore backed by the given database connection.
func NewTokenStore(db *sql.DB, logger *log.Logger) *TokenStore {
	return &TokenStore{db: db, logger: logger}
}

// Set persists the token for the remainder of the session, overwriting any
// previous value in full. Every write starts a new session, so the row gets
// a fresh generated id.
func (s *TokenStore) Set(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store empty token")
	}

	query := `
		INSERT INTO sessions (key, id, access_token, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET id = excluded.id, access_token = excluded.access_token, updated_at = excluded.updated_at
	`

	id := shared.GenerateID()
	if _, err := s.db.Exec(query, sessionKey, id, token, time.Now()); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("session stored", "session", id)
	}

	return nil
}

// Get returns the stored token, or absent if none exists.
//
// Fails open: if storage is unavailable the result is indistinguishable
// from never having logged in.
func (s *TokenStore) Get() (string, bool) {
	var token string
	err := s.db.QueryRow("SELECT access_token FROM sessions WHERE key = ?", sessionKey).Scan(&token)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Warnf("session storage unavailable, treating as logged out: %v", err)
		}
		return "", false
	}
	if token == "" {
		return "", false
	}

	return token, true
}

// Clear removes the stored token. Used by explicit logout only.
func (s *TokenStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE key = ?", sessionKey); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
