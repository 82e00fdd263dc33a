package commands

import (
	"context"
	"errors"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/guard"
)

var ErrToggleNotificationReadCommandIsNotConstructed = errors.New(
	"ToggleNotificationReadCommand must be created via NewToggleNotificationReadCommand constructor",
)

type ToggleNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewToggleNotificationReadCommand(notificationID kernel.UUID) (ToggleNotificationReadCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return ToggleNotificationReadCommand{}, err
	}
	return ToggleNotificationReadCommand{notificationID: notificationID, guard: guard.NewConstructorGuard()}, nil
}

func (c ToggleNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrToggleNotificationReadCommandIsNotConstructed)
}

func (c ToggleNotificationReadCommand) NotificationID() kernel.UUID { return c.notificationID }

// ToggleNotificationReadCommandHandler flips the read flag of a notification and returns
// the new value.
type ToggleNotificationReadCommandHandler struct {
	sessions NotificationSessionFactory
}

func NewToggleNotificationReadCommandHandler(sessions NotificationSessionFactory) ToggleNotificationReadCommandHandler {
	return ToggleNotificationReadCommandHandler{sessions: sessions}
}

func (h ToggleNotificationReadCommandHandler) Handle(ctx context.Context, cmd ToggleNotificationReadCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	session, err := h.sessions.Open(ctx)
	if err != nil {
		return false, err
	}
	repo := session.NotificationRepository()

	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return false, err
	}

	read := n.ToggleRead()
	if err = repo.Update(ctx, n); err != nil {
		return false, err
	}
	return read, nil
}
