// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package store

import "embed"

//go:embed migrations/*.sql
var migrationsFS embed.FS
