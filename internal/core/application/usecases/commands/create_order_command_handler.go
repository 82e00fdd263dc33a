package commands

import (
	"context"
	"log/slog"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

// CreateOrderCommandHandler allocates an id, prices the lines, persists the order with its
// lines and dispatches order_created.
type CreateOrderCommandHandler struct {
	sessions   OrderSessionFactory
	allocator  IdentifierAllocator
	items      OrderItemsManager
	dispatcher ports.EventDispatcher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	sessions OrderSessionFactory,
	allocator IdentifierAllocator,
	items OrderItemsManager,
	dispatcher ports.EventDispatcher,
	clock kernel.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		sessions:   sessions,
		allocator:  allocator,
		items:      items,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle validates every line before the first write. The order row is written before its
// lines; when a line write fails the order stays created, order_created is still
// dispatched and the order is returned together with the error so the caller learns its id.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := h.sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	orders := session.OrderRepository()

	now := h.clock.Now()
	o, err := order.NewOrder(h.allocator.NextID(ctx, orders), cmd.Intake(), now)
	if err != nil {
		return nil, err
	}

	batch, err := h.items.Prepare(ctx, o, cmd.Items())
	if err != nil {
		return nil, err
	}

	if err = orders.Add(ctx, o); err != nil {
		return nil, err
	}

	_, itemsErr := h.items.Apply(ctx, session.ItemRepository(), batch)
	publishEvents(ctx, h.dispatcher, o)
	if itemsErr != nil {
		h.logger.ErrorContext(ctx, "order created without its lines", "order_id", o.ID(), "error", itemsErr)
		return o, itemsErr
	}

	h.logger.InfoContext(ctx, "order created", "order_id", o.ID(), "owner_id", o.OwnerID(), "items", batch.Len())
	return o, nil
}
