package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const connectionSweepJobName = "connection_sweep"

type staleConnections interface {
	Stale(cutoff time.Time) []string
	Deregister(connectionID string) bool
}

// ConnectionSweepJob deregisters connections whose peer stopped answering
// pings. The socket session notices its closed queue and hangs up.
type ConnectionSweepJob struct {
	registry    staleConnections
	schedule    string
	idleTimeout time.Duration
	cron        *cron.Cron
	metrics     *CronJobMetrics
	logger      *slog.Logger
}

func NewConnectionSweepJob(
	registry staleConnections,
	schedule string,
	idleTimeout time.Duration,
	metrics *CronJobMetrics,
	logger *slog.Logger,
) *ConnectionSweepJob {
	logger = logger.With("component", "connection_sweep_job")
	return &ConnectionSweepJob{
		registry:    registry,
		schedule:    schedule,
		idleTimeout: idleTimeout,
		cron:        newCron(logger),
		metrics:     metrics,
		logger:      logger,
	}
}

func (j *ConnectionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), time.Now())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Connection sweep job started", "schedule", j.schedule, "idle_timeout", j.idleTimeout)
	return nil
}

// Run drops every connection idle since before now - idleTimeout and
// returns how many were removed.
func (j *ConnectionSweepJob) Run(ctx context.Context, now time.Time) int {
	started := time.Now()

	removed := 0
	for _, id := range j.registry.Stale(now.Add(-j.idleTimeout)) {
		if j.registry.Deregister(id) {
			removed++
		}
	}

	j.metrics.observe(connectionSweepJobName, started, nil)
	if removed > 0 {
		j.logger.InfoContext(ctx, "Swept idle connections", "removed", removed)
	}
	return removed
}

func (j *ConnectionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Connection sweep job stopped")
}
