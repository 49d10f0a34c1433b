// Package jobs provides the background work of the shipping service.
//
// # Available Jobs
//
//  1. RunSweeperJob - runs every minute and evicts workflow runs idle for longer
//     than RUN_IDLE_TTL, skipping runs in QUOTING or GENERATING
//  2. WorkflowRunner - runs the quoting and generation loops started over HTTP
//
// # Usage
//
//	runner := jobs.NewWorkflowRunner(ctx, logger)
//	jobManager := jobs.NewJobManager(sweepHandler, idleTTL, runner, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(shutdownCtx)
//
// # Scheduling
//
// The sweeper uses the seconds-enabled cron expression "0 * * * * *".
package jobs
