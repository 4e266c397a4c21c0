// Package jobs provides scheduled background tasks for the delivery system.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds). Each job owns its scheduler, skips a tick while the previous run
// is still going and recovers from panics.
//
// # Available Jobs
//
// 1. ConnectionSweepJob - deregisters realtime connections idle past the timeout
// 2. PendingOrderExpiryJob - cancels PENDING orders older than the configured TTL
//
// # Usage
//
//	jobManager := jobs.NewJobManager(cfg, registry, expireHandler, promRegistry, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Expiry skips orders that moved underneath it (conflict, transition, deleted)
// and retries them on the next tick. Any other failure is logged and counted
// in job_failure_total.
package jobs
