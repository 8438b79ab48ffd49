// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package sweep provides a background worker that removes expired sessions.
package sweep

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultInterval is how often the sweeper runs when no interval is configured.
const DefaultInterval = time.Hour

// runTimeout bounds a single sweep pass.
const runTimeout = 5 * time.Minute

// Cleaner removes expired sessions and reports how many were deleted.
type Cleaner interface {
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

// Stats holds cumulative sweeper counters.
type Stats struct {
	LastRun        time.Time
	SessionsSwept  int64
	FailedAttempts int64
}

// Sweeper periodically deletes expired sessions via a Cleaner.
type Sweeper struct {
	cleaner  Cleaner
	interval time.Duration
	logger   *slog.Logger
	swept    prometheus.Counter
	done     chan struct{}
	wg       sync.WaitGroup

	mu             sync.RWMutex
	lastRun        time.Time
	sessionsSwept  int64
	failedAttempts int64
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithInterval sets the sweep interval. Non-positive values keep the default.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithLogger sets the logger used for sweep events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSweptCounter sets a Prometheus counter incremented per deleted session.
func WithSweptCounter(counter prometheus.Counter) Option {
	return func(s *Sweeper) {
		s.swept = counter
	}
}

// New creates a sweeper for the given cleaner.
func New(cleaner Cleaner, opts ...Option) *Sweeper {
	s := &Sweeper{
		cleaner:  cleaner,
		interval: DefaultInterval,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background sweep loop. The first pass runs immediately.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop terminates the sweep loop and waits for an in-flight pass to finish.
func (s *Sweeper) Stop() {
	close(s.done)
	s.wg.Wait()
}

// RunNow triggers a single sweep pass synchronously.
func (s *Sweeper) RunNow() {
	s.sweep()
}

// Stats returns the cumulative sweep counters.
func (s *Sweeper) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		LastRun:        s.lastRun,
		SessionsSwept:  s.sessionsSwept,
		FailedAttempts: s.failedAttempts,
	}
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	count, err := s.cleaner.CleanExpiredSessions(ctx)

	s.mu.Lock()
	s.lastRun = time.Now()
	if err != nil {
		s.failedAttempts++
	} else {
		s.sessionsSwept += count
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("session sweep failed", "error", err)
		return
	}

	if count > 0 {
		if s.swept != nil {
			s.swept.Add(float64(count))
		}
		s.logger.Info("expired sessions removed", "count", count)
	}
}
