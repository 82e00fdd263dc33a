// Package notify turns lifecycle events into stored notifications and outbound email.
package notify

import (
	"context"
	"log/slog"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/core/domain/services"
	"ordertrack/internal/core/ports"
)

var _ ports.EventDispatcher = (*Dispatcher)(nil)

// Dispatcher persists one notification per event and queues the email the delivery table
// asks for. A failure at any step is logged and never reaches the caller: the change that
// raised the event is already committed.
type Dispatcher struct {
	router    services.NotificationRouter
	templates *Templates
	sessions  commands.NotificationSessionFactory
	users     ports.UserDirectory
	mail      ports.MailQueue
	clock     kernel.Clock
	logger    *slog.Logger
}

func NewDispatcher(
	sessions commands.NotificationSessionFactory,
	users ports.UserDirectory,
	mail ports.MailQueue,
	templates *Templates,
	clock kernel.Clock,
	logger *slog.Logger,
) *Dispatcher {
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &Dispatcher{
		router:    services.NewNotificationRouter(),
		templates: templates,
		sessions:  sessions,
		users:     users,
		mail:      mail,
		clock:     clock,
		logger:    logger.With("component", "notification_dispatcher"),
	}
}

// Dispatch returns the stored notification, or nil when nothing could be stored.
// The email is queued even when storing failed.
func (d *Dispatcher) Dispatch(ctx context.Context, ev event.Event) *notification.Notification {
	log := d.logger.With("event", ev.Kind.String(), "order_id", ev.OrderID)

	route, err := d.router.Route(ev)
	if err != nil {
		log.WarnContext(ctx, "event dropped", "error", err)
		return nil
	}

	title, message, err := d.templates.Render(ev)
	if err != nil {
		log.WarnContext(ctx, "event dropped", "error", err)
		return nil
	}

	n := d.store(ctx, log, route, ev.Kind, title, message)
	d.email(ctx, log, route, ev, title, message)
	return n
}

func (d *Dispatcher) store(
	ctx context.Context, log *slog.Logger, route services.Route, kind event.Kind, title, message string,
) *notification.Notification {
	n, err := notification.New(route.TargetUserID, kind, title, message, d.clock.Now())
	if err != nil {
		log.ErrorContext(ctx, "build notification", "error", err)
		return nil
	}

	session, err := d.sessions.Open(ctx)
	if err != nil {
		log.ErrorContext(ctx, "store notification", "error", err)
		return nil
	}
	if err := session.NotificationRepository().Add(ctx, n); err != nil {
		log.ErrorContext(ctx, "store notification", "error", err)
		return nil
	}
	return n
}

func (d *Dispatcher) email(
	ctx context.Context, log *slog.Logger, route services.Route, ev event.Event, subject, body string,
) {
	var (
		to  []string
		err error
	)

	switch route.Email {
	case services.EmailNone:
		return
	case services.EmailAllAdmins:
		to, err = d.users.ActiveAdminEmails(ctx)
	case services.EmailOwner:
		var addr string
		addr, err = d.users.EmailOf(ctx, ev.OwnerID)
		to = []string{addr}
	}
	if err != nil {
		log.WarnContext(ctx, "resolve email recipients", "audience", route.Email.String(), "error", err)
		return
	}
	if len(to) == 0 {
		log.DebugContext(ctx, "no email recipients", "audience", route.Email.String())
		return
	}

	if !d.mail.Enqueue(ports.Mail{To: to, Subject: subject, Body: body}) {
		log.WarnContext(ctx, "email dropped: queue is full or closed", "recipients", len(to))
	}
}
