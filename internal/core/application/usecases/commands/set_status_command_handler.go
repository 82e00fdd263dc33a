package commands

import (
	"context"
	"log/slog"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

// SetStatusCommandHandler moves an order along the lifecycle. The new status is persisted
// first; on paid the snapshot is then written, and finally status_changed is dispatched.
//
// Example:
//
//	cmd, _ := NewSetStatusCommand("ORD001", order.Paid, admin)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrArchiveIsPending) {
//	    // o is paid; the reconciliation job will write the snapshot
//	}
type SetStatusCommandHandler struct {
	sessions   OrderSessionFactory
	dispatcher ports.EventDispatcher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewSetStatusCommandHandler(
	sessions OrderSessionFactory,
	dispatcher ports.EventDispatcher,
	clock kernel.Clock,
	logger *slog.Logger,
) SetStatusCommandHandler {
	return SetStatusCommandHandler{
		sessions:   sessions,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "SetStatusCommandHandler"),
	}
}

func (h SetStatusCommandHandler) Handle(ctx context.Context, cmd SetStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := h.sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	orders := session.OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if err = o.ApplyStatus(cmd.Status(), cmd.Actor(), now); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	var archiveErr error
	if o.Status() == order.Paid {
		var archived *order.ArchivedOrder
		archived, archiveErr = archiveOrder(ctx, session, o, now)
		switch {
		case archiveErr != nil:
			h.logger.ErrorContext(ctx, "archive failed", "order_id", o.ID(), "error", archiveErr)
		case archived != nil:
			h.logger.InfoContext(ctx, "order archived", "order_id", o.ID(), "total", archived.TotalAmount().String())
		}
	}

	publishEvents(ctx, h.dispatcher, o)
	return o, archiveErr
}
