package jobs

import (
	"context"
	"log/slog"
	"time"

	"fueldelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const orderExpiryJobName = "pending_order_expiry"

type pendingOrderExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (commands.ExpirePendingOrdersResult, error)
}

// PendingOrderExpiryJob cancels orders that nobody picked up within ttl.
type PendingOrderExpiryJob struct {
	handler   pendingOrderExpirer
	schedule  string
	ttl       time.Duration
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	metrics   *CronJobMetrics
	logger    *slog.Logger
}

func NewPendingOrderExpiryJob(
	handler pendingOrderExpirer,
	schedule string,
	ttl time.Duration,
	batchSize int,
	metrics *CronJobMetrics,
	logger *slog.Logger,
) *PendingOrderExpiryJob {
	logger = logger.With("component", "pending_order_expiry_job")
	return &PendingOrderExpiryJob{
		handler:   handler,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: batchSize,
		timeout:   time.Minute,
		cron:      newCron(logger),
		metrics:   metrics,
		logger:    logger,
	}
}

func (j *PendingOrderExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_ = j.Run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Pending order expiry job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// Run performs one expiry pass.
func (j *PendingOrderExpiryJob) Run(ctx context.Context) error {
	started := time.Now()

	cmd, err := commands.NewExpirePendingOrdersCommand(j.ttl, j.batchSize)
	if err != nil {
		j.metrics.observe(orderExpiryJobName, started, err)
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	j.metrics.observe(orderExpiryJobName, started, err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order expiry failed", "error", err, "cancelled", result.Cancelled)
		return err
	}
	if result.Cancelled > 0 || result.Skipped > 0 {
		j.logger.InfoContext(ctx, "Expired pending orders", "cancelled", result.Cancelled, "skipped", result.Skipped)
	}
	return nil
}

func (j *PendingOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Pending order expiry job stopped")
}
