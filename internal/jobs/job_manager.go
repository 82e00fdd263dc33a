package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions (with seconds) of every job. Empty means default.
type Schedules struct {
	AutoComplete     string
	ArchiveReconcile string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoCompleteJob     *AutoCompleteJob
	archiveReconcileJob *ArchiveReconcileJob
}

func NewJobManager(
	autoCompleteHandler autoCompleter,
	reconcileHandler archiveReconciler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoCompleteJob:     NewAutoCompleteJob(autoCompleteHandler, schedules.AutoComplete, logger),
		archiveReconcileJob: NewArchiveReconcileJob(reconcileHandler, schedules.ArchiveReconcile, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.archiveReconcileJob.Start(); err != nil {
		return fmt.Errorf("failed to start archive reconcile job: %w", err)
	}

	if err := jm.autoCompleteJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.archiveReconcileJob.Stop()
		return fmt.Errorf("failed to start auto-complete job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoCompleteJob.Stop()
	jm.archiveReconcileJob.Stop()
}
