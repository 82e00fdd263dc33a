// Package jobs provides the scheduled background tasks of the order engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and managed by
// JobManager:
//
//	jobManager := jobs.NewJobManager(autoCompleteHandler, reconcileHandler, schedules, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// 1. AutoCompleteJob - completes scheduled orders whose construction date has passed, on
// behalf of the system actor.
// 2. ArchiveReconcileJob - writes the missing snapshot of every paid order whose archive
// write failed.
//
// A run never overlaps the previous run of the same job.
package jobs
