// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/samber/oops"
)

// Session token configuration.
const (
	SessionTokenBytes  = 32             // 32 bytes = 64 hex chars
	SessionTokenExpiry = 24 * time.Hour // sessions live one day
)

// Session represents a bearer-token session for a user.
// The token is an opaque random string; a session is valid while the
// current time is before ExpiresAt.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewSession creates a validated Session instance. The ID and CreatedAt
// fields are filled in by the repository on insert.
func NewSession(userID int64, token string, expiresAt time.Time) (*Session, error) {
	if userID <= 0 {
		return nil, oops.Code("SESSION_INVALID_USER").Errorf("user ID must be positive")
	}
	if token == "" {
		return nil, oops.Code("SESSION_INVALID_TOKEN").Errorf("token cannot be empty")
	}
	if expiresAt.IsZero() {
		return nil, oops.Code("SESSION_INVALID_EXPIRY").Errorf("expiry time cannot be zero")
	}
	return &Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s.IsExpiredAt(time.Now())
}

// IsExpiredAt returns true if the session would be expired at the given time.
// Useful for testing with deterministic time values.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// GenerateSessionToken creates a cryptographically secure random token,
// rendered as a 64-character hex string. Tokens are computationally
// infeasible to guess or enumerate.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}
	return hex.EncodeToString(buf), nil
}

// TokensEqual compares two session tokens in constant time.
func TokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// SessionRepository manages session persistence.
type SessionRepository interface {
	// Create stores a new session and fills in the generated ID and CreatedAt.
	Create(ctx context.Context, session *Session) error

	// GetByToken retrieves a session by its token.
	GetByToken(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by ID. Returns an error wrapping ErrNotFound
	// when no row matched.
	Delete(ctx context.Context, id int64) error

	// DeleteByToken removes the session matching token. Returns an error
	// wrapping ErrNotFound when no row matched.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired removes all sessions whose expiry has passed and returns
	// the count of deleted records.
	DeleteExpired(ctx context.Context) (int64, error)
}
