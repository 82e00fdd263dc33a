package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies a partial edit. Every change of the patch is validated
// in memory before the first write: field edits, the priced line batch and the status
// transition. A status equal to the current one is treated as unchanged.
type UpdateOrderCommandHandler struct {
	sessions   OrderSessionFactory
	items      OrderItemsManager
	dispatcher ports.EventDispatcher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewUpdateOrderCommandHandler(
	sessions OrderSessionFactory,
	items OrderItemsManager,
	dispatcher ports.EventDispatcher,
	clock kernel.Clock,
	logger *slog.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		sessions:   sessions,
		items:      items,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "UpdateOrderCommandHandler"),
	}
}

// Handle returns the updated order. When the edit moved the order to paid and the snapshot
// could not be written, the committed order is returned together with an error wrapping
// ErrArchiveIsPending.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	actor, patch, now := cmd.Actor(), cmd.Patch(), h.clock.Now()
	if actor.Role() == order.RoleRequester && !o.IsOwnedBy(actor.UserID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("order is invalid",
			fmt.Errorf("%w: %s", order.ErrActorIsNotOwner, o.ID()))
	}

	batch, err := h.applyInMemory(ctx, o, actor, patch, now)
	if err != nil {
		return nil, err
	}

	if batch != nil {
		if _, err = h.items.Apply(ctx, session.ItemRepository(), *batch); err != nil {
			return nil, err
		}
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	var archiveErr error
	if patch.Status != nil && o.Status() == order.Paid {
		_, archiveErr = archiveOrder(ctx, session, o, now)
		if archiveErr != nil {
			h.logger.ErrorContext(ctx, "archive failed", "order_id", o.ID(), "error", archiveErr)
		}
	}

	publishEvents(ctx, h.dispatcher, o)
	return o, archiveErr
}

func (h UpdateOrderCommandHandler) applyInMemory(
	ctx context.Context, o *order.Order, actor order.Actor, patch OrderPatch, now time.Time,
) (*PricedBatch, error) {
	if patch.Details != nil {
		if err := o.UpdateDetails(*patch.Details, now); err != nil {
			return nil, err
		}
	}

	if patch.RoomArea != nil || patch.ClearRoomArea {
		if err := o.UpdateRoomArea(patch.RoomArea, now); err != nil {
			return nil, err
		}
	}

	if patch.ConstructionDate != nil || patch.ClearConstructionDate {
		if err := o.Reschedule(patch.ConstructionDate, now); err != nil {
			return nil, err
		}
	}

	var batch *PricedBatch
	if patch.Items != nil {
		if err := o.EnsureEditable(); err != nil {
			return nil, err
		}
		// priced after the room area change so that derived tiers follow the new area
		b, err := h.items.Prepare(ctx, o, patch.Items)
		if err != nil {
			return nil, err
		}
		batch = &b
	}

	if patch.Status != nil && *patch.Status != o.Status() {
		if err := o.ApplyStatus(*patch.Status, actor, now); err != nil {
			return nil, err
		}
	}

	return batch, nil
}
