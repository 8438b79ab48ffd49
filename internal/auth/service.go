// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/taskboard/taskboard/pkg/errutil"
)

// Service provides authentication and user administration operations.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	hasher   PasswordHasher
	policy   PasswordPolicy
	logger   *slog.Logger
}

// NewService creates a new Service with the default password policy.
func NewService(users UserRepository, sessions SessionRepository, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(users, sessions, hasher, slog.Default())
}

// NewServiceWithLogger creates a new Service with an explicit logger.
func NewServiceWithLogger(users UserRepository, sessions SessionRepository, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("sessions repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		policy:   DefaultPasswordPolicy(),
		logger:   logger,
	}, nil
}

// SetPasswordPolicy replaces the password policy. Call before serving
// requests; the Service does not synchronize policy swaps.
func (s *Service) SetPasswordPolicy(p PasswordPolicy) {
	s.policy = p
}

// dummyPasswordHash is verified when a user doesn't exist so that login takes
// the same time whether or not the username is known. It is a fake hash that
// can never match any password.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// LoginResult carries the outcome of a successful login or registration.
type LoginResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// Login authenticates a user and creates a new session. Each successful call
// creates one session row; existing sessions for the same user stay valid.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, lookupErr := s.users.GetByUsername(ctx, username)

	// Verify against a dummy hash when the user is absent to keep response
	// time independent of username existence.
	targetHash := dummyPasswordHash
	userExists := false

	switch {
	case lookupErr == nil:
		targetHash = user.PasswordHash
		userExists = true
	case errors.Is(lookupErr, ErrNotFound):
		// fall through with the dummy hash
	default:
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by username").
			Wrap(lookupErr)
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !userExists {
			return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid username or password")
		}
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}
	if !userExists || !valid {
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid username or password")
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "generate session token").
			Wrap(err)
	}

	session, err := NewSession(user.ID, token, time.Now().Add(SessionTokenExpiry))
	if err != nil {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "create session").
			Wrap(err)
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, oops.Code("AUTH_SESSION_CREATE_FAILED").
			With("operation", "persist session").
			With("user_id", user.ID).
			Wrap(err)
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Register creates a new user account and immediately logs it in.
func (s *Service) Register(ctx context.Context, username, email, password string, role Role) (*LoginResult, error) {
	user, err := s.createAccount(ctx, username, email, password, role)
	if err != nil {
		return nil, err
	}

	result, err := s.Login(ctx, username, password)
	if err != nil {
		// The account exists but the follow-up login failed; surface the
		// login error so the caller can retry.
		errutil.LogError(s.logger, "post-registration login failed", err)
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return result, nil
}

// ValidateSession resolves a session token to its owning user. Expired
// sessions are deleted as a side effect and treated as absent. This is the
// trust boundary every protected endpoint goes through.
func (s *Service) ValidateSession(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, oops.Code("SESSION_TOKEN_EMPTY").Errorf("session token cannot be empty")
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("SESSION_INVALID").Errorf("invalid session token")
		}
		return nil, oops.Code("SESSION_VALIDATE_FAILED").
			With("operation", "get session by token").
			Wrap(err)
	}

	// The store may match tokens loosely (case-insensitive collations,
	// trailing-space padding); only an exact token grants the session.
	if !TokensEqual(session.Token, token) {
		return nil, oops.Code("SESSION_INVALID").Errorf("invalid session token")
	}

	if session.IsExpired() {
		// Purge opportunistically; validation fails either way.
		if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil && !errors.Is(delErr, ErrNotFound) {
			errutil.LogError(s.logger, "failed to delete expired session", delErr)
		}
		return nil, oops.Code("SESSION_EXPIRED").Errorf("session has expired")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Session points at a deleted user; treat as invalid.
			return nil, oops.Code("SESSION_INVALID").Errorf("invalid session token")
		}
		return nil, oops.Code("SESSION_VALIDATE_FAILED").
			With("operation", "get session owner").
			With("user_id", session.UserID).
			Wrap(err)
	}
	return user, nil
}

// Logout deletes the session matching token.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("SESSION_NOT_FOUND").Wrap(err)
		}
		return oops.Code("AUTH_LOGOUT_FAILED").
			With("operation", "delete session by token").
			Wrap(err)
	}
	return nil
}

// CleanExpiredSessions bulk-deletes all sessions whose expiry has passed and
// returns the count removed. Intended for the periodic sweeper, not the
// request path.
func (s *Service) CleanExpiredSessions(ctx context.Context) (int64, error) {
	count, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, oops.Code("SESSION_SWEEP_FAILED").
			With("operation", "delete expired sessions").
			Wrap(err)
	}
	if count > 0 {
		s.logger.Info("expired sessions removed", "count", count)
	}
	return count, nil
}

// CreateUser creates a user account without logging it in. Authorization is
// the caller's responsibility; the service trusts that the role check
// already happened.
func (s *Service) CreateUser(ctx context.Context, username, email, password string, role Role) (*User, error) {
	return s.createAccount(ctx, username, email, password, role)
}

// DeleteUser removes a user account. Deleting any admin account is refused,
// regardless of who is asking.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("USER_NOT_FOUND").With("user_id", id).Wrap(err)
		}
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "get user by id").
			With("user_id", id).
			Wrap(err)
	}
	if user.IsAdmin() {
		return oops.Code("AUTH_ADMIN_PROTECTED").
			With("user_id", id).
			Errorf("admin accounts cannot be deleted")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("USER_NOT_FOUND").With("user_id", id).Wrap(err)
		}
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "delete user").
			With("user_id", id).
			Wrap(err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// ListUsers retrieves all user accounts.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "list users").
			Wrap(err)
	}
	return users, nil
}

// createAccount validates and persists a new user. Shared by Register and
// CreateUser.
func (s *Service) createAccount(ctx context.Context, username, email, password string, role Role) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, oops.Code("AUTH_INVALID_ROLE").
			With("role", string(role)).
			Errorf("role must be %q or %q", RoleAdmin, RoleUser)
	}

	// Check-then-insert is racy on its own; the unique constraints on
	// username and email are authoritative, and Create reports collisions
	// as ErrDuplicate.
	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	if err := s.policy.Check(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, oops.Code("AUTH_USER_EXISTS").
				With("username", username).
				Errorf("username or email already exists")
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			Wrap(err)
	}
	return user, nil
}

func (s *Service) checkAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return oops.Code("AUTH_USER_EXISTS").
			With("username", username).
			Errorf("username or email already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "check username availability").
			Wrap(err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return oops.Code("AUTH_USER_EXISTS").
			With("email", email).
			Errorf("username or email already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "check email availability").
			Wrap(err)
	}
	return nil
}
