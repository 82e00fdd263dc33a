package orderrepo

import (
	"context"

	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

var _ ports.ItemRepository = (*ItemRepository)(nil)

// ItemRepository implements ports.ItemRepository. Replaced lines are soft-deleted.
type ItemRepository struct {
	handle *store.Handle
	items  store.Table[ItemDTO]
	clock  kernel.Clock
}

func NewItemRepository(handle *store.Handle, clock kernel.Clock) *ItemRepository {
	return &ItemRepository{
		handle: handle,
		items:  store.NewTable[ItemDTO]("id"),
		clock:  clock,
	}
}

func (r *ItemRepository) ListByOrder(ctx context.Context, orderID string) ([]*order.Item, error) {
	dtos, err := r.items.Rows(ctx, r.handle, store.Where{"order_id": orderID}, "ordinal")
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ItemRepository) MaxOrdinal(ctx context.Context, orderID string) (int, error) {
	return r.items.MaxInt(ctx, r.handle, "ordinal", store.Where{"order_id": orderID})
}

func (r *ItemRepository) Add(ctx context.Context, item *order.Item) error {
	dto := itemFromDomain(item, r.clock.Now())
	return r.items.Append(ctx, r.handle, &dto)
}

func (r *ItemRepository) SoftDelete(ctx context.Context, itemID string) error {
	return r.items.SoftDelete(ctx, r.handle, itemID)
}
