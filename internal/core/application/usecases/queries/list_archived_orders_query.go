package queries

import (
	"context"
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/guard"
)

var ErrListArchivedOrdersQueryIsNotConstructed = errors.New(
	"ListArchivedOrdersQuery must be created via NewListArchivedOrdersQuery constructor",
)

type ListArchivedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListArchivedOrdersQuery() ListArchivedOrdersQuery {
	return ListArchivedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListArchivedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListArchivedOrdersQueryIsNotConstructed)
}

// ListArchivedOrdersQueryResponse is one paid-order snapshot.
type ListArchivedOrdersQueryResponse struct {
	ID          kernel.UUID
	Order       order.Snapshot
	Items       []order.ArchivedItem
	ArchivedAt  time.Time
	TotalAmount kernel.Money
}

type ListArchivedOrdersQueryHandler struct {
	archives ArchiveReader
}

func NewListArchivedOrdersQueryHandler(archives ArchiveReader) ListArchivedOrdersQueryHandler {
	return ListArchivedOrdersQueryHandler{archives: archives}
}

func (h ListArchivedOrdersQueryHandler) Handle(
	ctx context.Context, query ListArchivedOrdersQuery,
) ([]ListArchivedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	archived, err := h.archives.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ListArchivedOrdersQueryResponse, 0, len(archived))
	for _, a := range archived {
		result = append(result, ListArchivedOrdersQueryResponse{
			ID:          a.ID(),
			Order:       a.Order(),
			Items:       a.Items(),
			ArchivedAt:  a.ArchivedAt(),
			TotalAmount: a.TotalAmount(),
		})
	}
	return result, nil
}
