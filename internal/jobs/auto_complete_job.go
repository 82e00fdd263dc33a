package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"ordertrack/internal/core/application/usecases/commands"
)

// DefaultAutoCompleteSchedule runs the job five minutes past every hour.
const DefaultAutoCompleteSchedule = "0 5 * * * *"

type autoCompleter interface {
	Handle(ctx context.Context, cmd commands.AutoCompleteOrdersCommand) (int, error)
}

// AutoCompleteJob advances overdue scheduled orders to completed.
type AutoCompleteJob struct {
	handler  autoCompleter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewAutoCompleteJob(handler autoCompleter, schedule string, logger *slog.Logger) *AutoCompleteJob {
	if schedule == "" {
		schedule = DefaultAutoCompleteSchedule
	}
	logger = logger.With("component", "auto_complete_job")
	return &AutoCompleteJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger,
	}
}

func (j *AutoCompleteJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-complete job started", "schedule", j.schedule)
	return nil
}

// Run executes one pass. Per-order failures are logged; the pass goes on with the rest.
func (j *AutoCompleteJob) Run(ctx context.Context) {
	completed, err := j.handler.Handle(ctx, commands.NewAutoCompleteOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-complete job failed", "completed", completed, "error", err)
		return
	}
	if completed > 0 {
		j.logger.InfoContext(ctx, "Orders completed", "count", completed)
	}
}

// Stop waits for a running pass to finish.
func (j *AutoCompleteJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto-complete job stopped")
}
