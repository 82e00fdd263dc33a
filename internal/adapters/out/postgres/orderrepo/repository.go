package orderrepo

import (
	"context"

	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

var _ ports.OrderRepository = (*Repository)(nil)

// Repository implements ports.OrderRepository over one store handle.
type Repository struct {
	handle *store.Handle
	orders store.Table[OrderDTO]
}

func NewRepository(handle *store.Handle) *Repository {
	return &Repository{
		handle: handle,
		orders: store.NewTable[OrderDTO]("id"),
	}
}

// Add saves a new order.
func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.orders.Append(ctx, r.handle, &dto)
}

// Update saves the mutable state of an existing order.
func (r *Repository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.orders.Update(ctx, r.handle, dto.ID, updateFields(dto))
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (*order.Order, error) {
	dto, err := r.orders.Get(ctx, r.handle, id)
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	return r.orders.IDs(ctx, r.handle)
}

func (r *Repository) ListActive(ctx context.Context) ([]*order.Order, error) {
	dtos, err := r.orders.Rows(ctx, r.handle, nil, "created_at, id")
	if err != nil {
		return nil, err
	}

	active := make([]OrderDTO, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.ParseStatus(dto.Status)
		if err == nil && status.IsTerminal() {
			continue
		}
		active = append(active, dto)
	}
	return toDomainAll(active)
}

func (r *Repository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	dtos, err := r.orders.Rows(ctx, r.handle, store.Where{"status": status.String()}, "created_at, id")
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
