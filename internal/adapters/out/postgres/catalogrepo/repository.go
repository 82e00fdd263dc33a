package catalogrepo

import (
	"context"

	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/ports"
)

var _ ports.CatalogReader = (*Reader)(nil)

// Reader implements ports.CatalogReader. Each call connects through the record store so
// that the metadata handle is refreshed when stale.
type Reader struct {
	store *store.RecordStore
	items store.Table[CatalogItemDTO]
}

func NewReader(recordStore *store.RecordStore) *Reader {
	return &Reader{
		store: recordStore,
		items: store.NewTable[CatalogItemDTO]("id"),
	}
}

// GetCatalogItems returns every item, inactive ones included, in display order.
func (r *Reader) GetCatalogItems(ctx context.Context) ([]*catalog.Item, error) {
	h, err := r.store.Connect(ctx)
	if err != nil {
		return nil, err
	}

	dtos, err := r.items.Rows(ctx, h, nil, "sort_order, id")
	if err != nil {
		return nil, err
	}

	items := make([]*catalog.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Seed appends items in the given order. Used by the migrate command and tests.
func (r *Reader) Seed(ctx context.Context, items ...*catalog.Item) error {
	h, err := r.store.Connect(ctx)
	if err != nil {
		return err
	}

	for i, item := range items {
		dto := fromDomain(item, i)
		if err := r.items.Append(ctx, h, &dto); err != nil {
			return err
		}
	}
	return nil
}
