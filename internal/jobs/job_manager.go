package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds schedules in six-field cron syntax (seconds first).
type Config struct {
	SweepSchedule   string
	IdleTimeout     time.Duration
	ExpirySchedule  string
	PendingOrderTTL time.Duration
	ExpiryBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	connectionSweepJob    *ConnectionSweepJob
	pendingOrderExpiryJob *PendingOrderExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// A zero PendingOrderTTL disables order expiry.
func NewJobManager(
	cfg Config,
	registry staleConnections,
	expirer pendingOrderExpirer,
	reg prometheus.Registerer,
	logger *slog.Logger,
) *JobManager {
	metrics := NewCronJobMetrics(reg)

	jm := &JobManager{
		connectionSweepJob: NewConnectionSweepJob(registry, cfg.SweepSchedule, cfg.IdleTimeout, metrics, logger),
	}
	if cfg.PendingOrderTTL > 0 {
		jm.pendingOrderExpiryJob = NewPendingOrderExpiryJob(
			expirer, cfg.ExpirySchedule, cfg.PendingOrderTTL, cfg.ExpiryBatchSize, metrics, logger,
		)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.connectionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start connection sweep job: %w", err)
	}

	if jm.pendingOrderExpiryJob != nil {
		if err := jm.pendingOrderExpiryJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.connectionSweepJob.Stop()
			return fmt.Errorf("failed to start pending order expiry job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	if jm.pendingOrderExpiryJob != nil {
		jm.pendingOrderExpiryJob.Stop()
	}
	jm.connectionSweepJob.Stop()
}
