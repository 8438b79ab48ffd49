// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/taskboard/taskboard/internal/auth"
	authpg "github.com/taskboard/taskboard/internal/auth/postgres"
	"github.com/taskboard/taskboard/internal/store"
)

// NewSweepCmd creates the sweep subcommand.
func NewSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired sessions once and exit",
		Long: `Delete all expired sessions in a single pass. The serve command runs
this periodically; sweep exists for cron jobs and manual cleanup.`,
		RunE: runSweep,
	}
}

func runSweep(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc, err := auth.NewService(authpg.NewUserRepository(pool), authpg.NewSessionRepository(pool), auth.NewArgon2idHasher())
	if err != nil {
		return err
	}

	count, err := svc.CleanExpiredSessions(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Removed %d expired session(s)\n", count)
	return nil
}
