package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueParcelsJob *OverdueParcelsJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the overdue query handler as a dependency to wire up job execution.
func NewJobManager(overdueHandler OverdueParcelsQueryHandler, logger *slog.Logger) *JobManager {
	return &JobManager{
		overdueParcelsJob: NewOverdueParcelsJob(overdueHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueParcelsJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue parcels job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueParcelsJob.Stop()
}
