// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package auth provides identity and session management for Taskboard.
//
// The Service type is the single source of truth for the user and session
// lifecycle: registration, login, logout, session validation, and user
// administration. Persistence is abstracted behind UserRepository and
// SessionRepository; PostgreSQL implementations live in the postgres
// subpackage.
//
// Expected business-rule failures (bad credentials, duplicate users, weak
// passwords) are reported as coded errors so the HTTP boundary can map them
// mechanically to status codes. Store faults are wrapped and propagate as-is.
package auth
