// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskboard/taskboard/internal/auth"
	authpg "github.com/taskboard/taskboard/internal/auth/postgres"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/logging"
	"github.com/taskboard/taskboard/internal/observability"
	"github.com/taskboard/taskboard/internal/project"
	projectpg "github.com/taskboard/taskboard/internal/project/postgres"
	"github.com/taskboard/taskboard/internal/store"
	"github.com/taskboard/taskboard/internal/sweep"
	"github.com/taskboard/taskboard/internal/task"
	taskpg "github.com/taskboard/taskboard/internal/task/postgres"
	"github.com/taskboard/taskboard/internal/web"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Taskboard HTTP server",
		Long: `Start the Taskboard HTTP server, the observability endpoint, and the
background session sweeper.`,
		RunE: runServe,
	}

	cmd.Flags().String("http-addr", config.DefaultHTTPAddr, "HTTP listen address")
	cmd.Flags().String("metrics-addr", config.DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log-format", config.DefaultLogFormat, "log format (json or text)")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().Duration("sweep-interval", config.DefaultSweepInterval, "expired session sweep interval")
	cmd.Flags().StringSlice("allowed-origins", nil, "CORS allowed origin patterns")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault("taskboard", version, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	slog.Info("connected to database")

	hasher := auth.NewArgon2idHasher()
	authSvc, err := auth.NewService(authpg.NewUserRepository(pool), authpg.NewSessionRepository(pool), hasher)
	if err != nil {
		return err
	}
	projectSvc, err := project.NewService(projectpg.NewRepository(pool))
	if err != nil {
		return err
	}
	taskSvc, err := task.NewService(taskpg.NewRepository(pool))
	if err != nil {
		return err
	}

	// Observability server is optional; readiness follows database health.
	var obsServer *observability.Server
	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.MetricsAddr, func() bool {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer pingCancel()
			return pool.Ping(pingCtx) == nil
		})
		metrics = obsServer.Metrics()

		obsErrCh, startErr := obsServer.Start()
		if startErr != nil {
			return startErr
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	sweepOpts := []sweep.Option{sweep.WithInterval(cfg.SweepInterval)}
	if metrics != nil {
		sweepOpts = append(sweepOpts, sweep.WithSweptCounter(metrics.SessionsSweptTotal))
	}
	sweeper := sweep.New(authSvc, sweepOpts...)
	sweeper.Start()
	defer sweeper.Stop()

	engine, err := web.NewRouter(web.Config{
		Auth:           authSvc,
		Projects:       projectSvc,
		Tasks:          taskSvc,
		Logger:         slog.Default(),
		Metrics:        metrics,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			errCh <- serveErr
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cmd.Println("Taskboard server started")
	slog.Info("server ready", "http_addr", cfg.HTTPAddr)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case serveErr := <-errCh:
		slog.Error("http server error", "error", serveErr)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("error stopping http server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

// monitorServerErrors cancels the context when a background server fails. It
// exits when an error arrives, the channel closes, or the context ends.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
