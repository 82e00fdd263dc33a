package ports

import (
	"context"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications. Notifications
// are never deleted.
type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	// Update persists the read flag; no other field ever changes.
	Update(ctx context.Context, n *notification.Notification) error

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// ListBroadcast returns the administrators' feed, newest first.
	ListBroadcast(ctx context.Context) ([]*notification.Notification, error)

	// ListForUser returns the notifications targeted at userID, newest first.
	ListForUser(ctx context.Context, userID string) ([]*notification.Notification, error)
}
