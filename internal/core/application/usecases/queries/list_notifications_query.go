package queries

import (
	"context"
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads one feed. Without a user it is the administrators'
// broadcast feed; with a user it is that user's own notifications.
type ListNotificationsQuery struct {
	userID string

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery builds the query; an empty userID selects the broadcast feed.
func NewListNotificationsQuery(userID string) ListNotificationsQuery {
	return ListNotificationsQuery{userID: userID, guard: guard.NewConstructorGuard()}
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) UserID() string { return q.userID }

type ListNotificationsQueryResponse struct {
	ID           kernel.UUID
	TargetUserID string
	Type         string
	Title        string
	Message      string
	Read         bool
	CreatedAt    time.Time
}

type ListNotificationsQueryHandler struct {
	notifications NotificationReader
}

func NewListNotificationsQueryHandler(notifications NotificationReader) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{notifications: notifications}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context, query ListNotificationsQuery,
) ([]ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		list []*notification.Notification
		err  error
	)
	if query.UserID() == "" {
		list, err = h.notifications.ListBroadcast(ctx)
	} else {
		list, err = h.notifications.ListForUser(ctx, query.UserID())
	}
	if err != nil {
		return nil, err
	}

	result := make([]ListNotificationsQueryResponse, 0, len(list))
	for _, n := range list {
		result = append(result, ListNotificationsQueryResponse{
			ID:           n.ID(),
			TargetUserID: n.TargetUserID(),
			Type:         n.Kind().String(),
			Title:        n.Title(),
			Message:      n.Message(),
			Read:         n.IsRead(),
			CreatedAt:    n.CreatedAt(),
		})
	}
	return result, nil
}
