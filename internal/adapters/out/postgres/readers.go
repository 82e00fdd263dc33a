package postgres

import (
	"context"

	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/core/domain/model/order"
)

// Readers serves the query handlers. Each call opens its own session so that a long-lived
// reader never holds a stale metadata handle.
type Readers struct {
	sessions *SessionFactory
}

func NewReaders(sessions *SessionFactory) Readers {
	return Readers{sessions: sessions}
}

func (r Readers) ListActive(ctx context.Context) ([]*order.Order, error) {
	s, err := r.sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	return s.OrderRepository().ListActive(ctx)
}

// List returns the archived orders.
func (r Readers) List(ctx context.Context) ([]*order.ArchivedOrder, error) {
	s, err := r.sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	return s.ArchiveRepository().List(ctx)
}

func (r Readers) ListBroadcast(ctx context.Context) ([]*notification.Notification, error) {
	s, err := r.sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	return s.NotificationRepository().ListBroadcast(ctx)
}

func (r Readers) ListForUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	s, err := r.sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	return s.NotificationRepository().ListForUser(ctx, userID)
}
