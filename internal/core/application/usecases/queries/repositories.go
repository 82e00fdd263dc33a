// Package queries contains the read paths of the order engine. Queries never write.
package queries

import (
	"context"

	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/core/domain/model/order"
)

// Readers are the narrow store views the query handlers need.
type (
	ActiveOrderReader interface {
		ListActive(ctx context.Context) ([]*order.Order, error)
	}

	ArchiveReader interface {
		List(ctx context.Context) ([]*order.ArchivedOrder, error)
	}

	NotificationReader interface {
		ListBroadcast(ctx context.Context) ([]*notification.Notification, error)
		ListForUser(ctx context.Context, userID string) ([]*notification.Notification, error)
	}
)
