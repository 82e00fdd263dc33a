package queries

import (
	"context"
	"errors"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/guard"
)

var ErrListActiveOrdersQueryIsNotConstructed = errors.New(
	"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
)

// ListActiveOrdersQuery lists every order not yet in a terminal status. Paid orders are
// read from the archive instead.
//
// Example:
//
//	orders, err := handler.Handle(ctx, NewListActiveOrdersQuery())
type ListActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListActiveOrdersQuery() ListActiveOrdersQuery {
	return ListActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

type ListActiveOrdersQueryHandler struct {
	orders ActiveOrderReader
}

func NewListActiveOrdersQueryHandler(orders ActiveOrderReader) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{orders: orders}
}

// Handle drops terminal orders even if the reader returned some.
func (h ListActiveOrdersQueryHandler) Handle(ctx context.Context, query ListActiveOrdersQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]order.Snapshot, 0, len(orders))
	for _, o := range orders {
		if o.Status().IsTerminal() {
			continue
		}
		result = append(result, o.Snapshot())
	}
	return result, nil
}
