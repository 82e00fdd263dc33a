// Package ports defines the contracts between the order engine and its collaborators:
// the record store, the user directory, the catalog and the outbound email channel.
//
// None of the store contracts offer a transaction. Every call is an independent remote
// write, and a failure in a later call never undoes an earlier one.
package ports

import (
	"context"

	"ordertrack/internal/core/domain/model/order"
)

// IDLister scans every identifier ever written to a table, including soft-deleted rows.
type IDLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	IDLister

	// Add persists a new order. Fails with a store error when the id is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the full state of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an ObjectNotFoundError.
	Get(ctx context.Context, id string) (*order.Order, error)

	// ListActive returns every order whose status is not terminal, oldest first.
	ListActive(ctx context.Context) ([]*order.Order, error)

	// ListByStatus returns every order currently in status, oldest first.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}

// ItemRepository stores order lines. Lines are never updated: an edit soft-deletes the
// old batch and appends a new one.
type ItemRepository interface {
	// ListByOrder returns the live lines of an order ordered by ordinal.
	ListByOrder(ctx context.Context, orderID string) ([]*order.Item, error)

	// MaxOrdinal is the highest ordinal ever written for the order, soft-deleted lines
	// included, or 0 when there is none.
	MaxOrdinal(ctx context.Context, orderID string) (int, error)

	Add(ctx context.Context, item *order.Item) error

	SoftDelete(ctx context.Context, itemID string) error
}

// ArchiveRepository stores paid-order snapshots. A snapshot is written once and never updated.
type ArchiveRepository interface {
	// Add fails with a store error when the order already has a snapshot.
	Add(ctx context.Context, archived *order.ArchivedOrder) error

	ExistsForOrder(ctx context.Context, orderID string) (bool, error)

	// List returns every snapshot, most recently archived first.
	List(ctx context.Context) ([]*order.ArchivedOrder, error)
}
