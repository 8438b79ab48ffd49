// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/auth"
)

func TestNewSession(t *testing.T) {
	expiry := time.Now().Add(auth.SessionTokenExpiry)

	t.Run("valid session", func(t *testing.T) {
		session, err := auth.NewSession(42, "sometoken", expiry)
		require.NoError(t, err)
		assert.Equal(t, int64(42), session.UserID)
		assert.Equal(t, "sometoken", session.Token)
		assert.Equal(t, expiry, session.ExpiresAt)
	})

	t.Run("rejects non-positive user ID", func(t *testing.T) {
		_, err := auth.NewSession(0, "sometoken", expiry)
		require.Error(t, err)
		_, err = auth.NewSession(-1, "sometoken", expiry)
		require.Error(t, err)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		_, err := auth.NewSession(42, "", expiry)
		require.Error(t, err)
	})

	t.Run("rejects zero expiry", func(t *testing.T) {
		_, err := auth.NewSession(42, "sometoken", time.Time{})
		require.Error(t, err)
	})
}

func TestSession_IsExpiredAt(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	session := &auth.Session{UserID: 42, Token: "sometoken", ExpiresAt: expiry}

	assert.False(t, session.IsExpiredAt(expiry.Add(-time.Second)))
	// Expiry is exclusive: a session is dead at exactly ExpiresAt.
	assert.True(t, session.IsExpiredAt(expiry))
	assert.True(t, session.IsExpiredAt(expiry.Add(time.Second)))
}

func TestGenerateSessionToken(t *testing.T) {
	token, err := auth.GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, token, auth.SessionTokenBytes*2) // hex doubles the length
	assert.Regexp(t, "^[0-9a-f]+$", token)

	other, err := auth.GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestTokensEqual(t *testing.T) {
	assert.True(t, auth.TokensEqual("abc", "abc"))
	assert.False(t, auth.TokensEqual("abc", "abd"))
	assert.False(t, auth.TokensEqual("abc", "abcd"))
}
