package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/guard"
)

var ErrReconcileArchivesCommandIsNotConstructed = errors.New(
	"ReconcileArchivesCommand must be created via NewReconcileArchivesCommand constructor",
)

// ReconcileArchivesCommand writes the missing snapshot of every paid order whose archive
// write failed after the paid status had been committed.
type ReconcileArchivesCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileArchivesCommand() ReconcileArchivesCommand {
	return ReconcileArchivesCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileArchivesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileArchivesCommandIsNotConstructed)
}

// ReconcileArchivesCommandHandler never writes a second snapshot for an order.
type ReconcileArchivesCommandHandler struct {
	sessions OrderSessionFactory
	clock    kernel.Clock
	logger   *slog.Logger
}

func NewReconcileArchivesCommandHandler(
	sessions OrderSessionFactory, clock kernel.Clock, logger *slog.Logger,
) ReconcileArchivesCommandHandler {
	return ReconcileArchivesCommandHandler{
		sessions: sessions,
		clock:    clock,
		logger:   logger.With("component", "ReconcileArchivesCommandHandler"),
	}
}

// Handle returns how many snapshots were written.
func (h ReconcileArchivesCommandHandler) Handle(ctx context.Context, cmd ReconcileArchivesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	session, err := h.sessions.Open(ctx)
	if err != nil {
		return 0, err
	}

	paid, err := session.OrderRepository().ListByStatus(ctx, order.Paid)
	if err != nil {
		return 0, err
	}

	written := 0
	var failures []error
	for _, o := range paid {
		archived, archiveErr := archiveOrder(ctx, session, o, h.clock.Now())
		if archiveErr != nil {
			failures = append(failures, archiveErr)
			continue
		}
		if archived != nil {
			written++
			h.logger.InfoContext(ctx, "missing archive written", "order_id", o.ID())
		}
	}

	return written, errors.Join(failures...)
}
