package archiverepo

import (
	"context"

	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

var _ ports.ArchiveRepository = (*Repository)(nil)

type Repository struct {
	handle   *store.Handle
	archives store.Table[ArchivedOrderDTO]
}

func NewRepository(handle *store.Handle) *Repository {
	return &Repository{
		handle:   handle,
		archives: store.NewTable[ArchivedOrderDTO]("id"),
	}
}

// Add writes a snapshot. A second snapshot of the same order fails on the unique order_id.
func (r *Repository) Add(ctx context.Context, archived *order.ArchivedOrder) error {
	dto := fromDomain(archived)
	return r.archives.Append(ctx, r.handle, &dto)
}

func (r *Repository) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	return r.archives.Exists(ctx, r.handle, store.Where{"order_id": orderID})
}

func (r *Repository) List(ctx context.Context) ([]*order.ArchivedOrder, error) {
	dtos, err := r.archives.Rows(ctx, r.handle, nil, "archived_at DESC")
	if err != nil {
		return nil, err
	}

	result := make([]*order.ArchivedOrder, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}
