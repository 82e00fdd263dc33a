package notificationrepo

import (
	"context"

	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/core/ports"
)

var _ ports.NotificationRepository = (*Repository)(nil)

type Repository struct {
	handle        *store.Handle
	notifications store.Table[NotificationDTO]
}

func NewRepository(handle *store.Handle) *Repository {
	return &Repository{
		handle:        handle,
		notifications: store.NewTable[NotificationDTO]("id"),
	}
}

func (r *Repository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	return r.notifications.Append(ctx, r.handle, &dto)
}

// Update writes the read flag, the only mutable field.
func (r *Repository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	return r.notifications.Update(ctx, r.handle, n.ID().String(), map[string]any{"read": n.IsRead()})
}

func (r *Repository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	dto, err := r.notifications.Get(ctx, r.handle, id.String())
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

func (r *Repository) ListBroadcast(ctx context.Context) ([]*notification.Notification, error) {
	return r.list(ctx, store.Where{"target_user_id": nil})
}

func (r *Repository) ListForUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	return r.list(ctx, store.Where{"target_user_id": userID})
}

func (r *Repository) list(ctx context.Context, where store.Where) ([]*notification.Notification, error) {
	dtos, err := r.notifications.Rows(ctx, r.handle, where, "created_at DESC")
	if err != nil {
		return nil, err
	}

	result := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}
