package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"ordertrack/internal/core/application/usecases/commands"
)

// DefaultArchiveReconcileSchedule runs the job every ten minutes.
const DefaultArchiveReconcileSchedule = "0 */10 * * * *"

type archiveReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileArchivesCommand) (int, error)
}

// ArchiveReconcileJob repairs paid orders left without an archive snapshot.
type ArchiveReconcileJob struct {
	handler  archiveReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewArchiveReconcileJob(handler archiveReconciler, schedule string, logger *slog.Logger) *ArchiveReconcileJob {
	if schedule == "" {
		schedule = DefaultArchiveReconcileSchedule
	}
	return &ArchiveReconcileJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "archive_reconcile_job"),
	}
}

func (j *ArchiveReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Archive reconcile job started", "schedule", j.schedule)
	return nil
}

func (j *ArchiveReconcileJob) Run(ctx context.Context) {
	written, err := j.handler.Handle(ctx, commands.NewReconcileArchivesCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Archive reconcile job failed", "written", written, "error", err)
		return
	}
	if written > 0 {
		j.logger.WarnContext(ctx, "Missing archives written", "count", written)
	}
}

func (j *ArchiveReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Archive reconcile job stopped")
}
