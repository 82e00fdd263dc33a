package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/guard"
)

var ErrAutoCompleteOrdersCommandIsNotConstructed = errors.New(
	"AutoCompleteOrdersCommand must be created via NewAutoCompleteOrdersCommand constructor",
)

// AutoCompleteOrdersCommand lets the system complete scheduled orders whose construction
// day is over.
type AutoCompleteOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoCompleteOrdersCommand() AutoCompleteOrdersCommand {
	return AutoCompleteOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c AutoCompleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoCompleteOrdersCommandIsNotConstructed)
}

// AutoCompleteOrdersCommandHandler completes, as the system actor, every scheduled order
// whose construction date is before today. Each order is written independently; a
// failure is logged and the remaining orders are still processed.
type AutoCompleteOrdersCommandHandler struct {
	sessions   OrderSessionFactory
	dispatcher ports.EventDispatcher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewAutoCompleteOrdersCommandHandler(
	sessions OrderSessionFactory,
	dispatcher ports.EventDispatcher,
	clock kernel.Clock,
	logger *slog.Logger,
) AutoCompleteOrdersCommandHandler {
	return AutoCompleteOrdersCommandHandler{
		sessions:   sessions,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "AutoCompleteOrdersCommandHandler"),
	}
}

// Handle returns how many orders were completed and the joined per-order errors.
func (h AutoCompleteOrdersCommandHandler) Handle(ctx context.Context, cmd AutoCompleteOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	session, err := h.sessions.Open(ctx)
	if err != nil {
		return 0, err
	}
	orders := session.OrderRepository()

	scheduled, err := orders.ListByStatus(ctx, order.Scheduled)
	if err != nil {
		return 0, err
	}

	now := h.clock.Now()
	today := truncateDate(now)
	completed := 0
	var failures []error
	for _, o := range scheduled {
		if !isPast(o.ConstructionDate(), today) {
			continue
		}

		if err = o.ApplyStatus(order.Completed, order.SystemActor(), now); err != nil {
			failures = append(failures, err)
			continue
		}
		if err = orders.Update(ctx, o); err != nil {
			h.logger.ErrorContext(ctx, "auto-complete failed", "order_id", o.ID(), "error", err)
			failures = append(failures, err)
			continue
		}

		completed++
		publishEvents(ctx, h.dispatcher, o)
	}

	return completed, errors.Join(failures...)
}

func isPast(date *time.Time, today time.Time) bool {
	return date != nil && truncateDate(*date).Before(today)
}
