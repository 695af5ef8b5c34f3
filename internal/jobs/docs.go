// Package jobs provides scheduled background tasks for the package
// tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations that are not driven by API calls.
//
// # Available Jobs
//
// 1. OverdueParcelsJob - Runs every minute to find packages that missed
// their estimated delivery date and are still in a non-terminal status,
// logging each one and exporting the count as a Prometheus gauge.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(overdueHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The overdue scan is observational only: it never mutates packages, and a
// failed run is logged and retried on the next tick.
package jobs
