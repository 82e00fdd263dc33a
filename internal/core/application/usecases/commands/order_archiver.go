package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

// ErrArchiveIsPending is returned when an order reached paid but its snapshot could not be
// written. The status change itself is committed; the archive reconciliation job retries.
var ErrArchiveIsPending = errors.New("order is paid but its archive snapshot is pending")

// archiveOrder writes the snapshot of a paid order unless one already exists.
func archiveOrder(ctx context.Context, session OrderSession, o *order.Order, now time.Time) (*order.ArchivedOrder, error) {
	archives := session.ArchiveRepository()

	exists, err := archives.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveIsPending, err)
	}
	if exists {
		return nil, nil
	}

	items, err := session.ItemRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveIsPending, err)
	}

	archived, err := order.NewArchivedOrder(o, items, now)
	if err != nil {
		return nil, err
	}

	if err = archives.Add(ctx, archived); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveIsPending, err)
	}
	return archived, nil
}

// publishEvents hands the events recorded by o to the dispatcher. It must only be called
// once the order has been persisted.
func publishEvents(ctx context.Context, dispatcher ports.EventDispatcher, o *order.Order) {
	for _, ev := range o.PullEvents() {
		dispatcher.Dispatch(ctx, ev)
	}
}
