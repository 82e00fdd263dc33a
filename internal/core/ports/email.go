package ports

import (
	"context"

	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/notification"
)

// Mail is one outbound email.
type Mail struct {
	To      []string
	Subject string
	Body    string
}

// EmailGateway delivers one email. Delivery is best effort: callers log the error and move on.
type EmailGateway interface {
	Send(ctx context.Context, mail Mail) error
}

// MailQueue accepts mail for asynchronous delivery. Enqueue never blocks and reports false
// when the mail was dropped.
type MailQueue interface {
	Enqueue(mail Mail) bool
}

// EventDispatcher turns a persisted lifecycle event into a notification and, depending on
// the event, an email. It never fails the caller.
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev event.Event) *notification.Notification
}
