package commands

import (
	"context"
	"errors"

	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrRegisterUserNotificationCommandIsNotConstructed = errors.New(
	"RegisterUserNotificationCommand must be created via NewRegisterUserNotificationCommand constructor",
)

// RegisterUserNotificationCommand reports a user account created by the account layer, so
// that administrators are told about it.
type RegisterUserNotificationCommand struct { //nolint:recvcheck //using for validation
	userID string

	guard guard.ConstructorGuard
}

func NewRegisterUserNotificationCommand(userID string) (RegisterUserNotificationCommand, error) {
	if userID == "" {
		return RegisterUserNotificationCommand{}, errs.NewValueIsRequiredError("user id")
	}
	return RegisterUserNotificationCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterUserNotificationCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserNotificationCommandIsNotConstructed)
}

func (c RegisterUserNotificationCommand) UserID() string { return c.userID }

// RegisterUserNotificationCommandHandler dispatches user_registered.
type RegisterUserNotificationCommandHandler struct {
	dispatcher ports.EventDispatcher
	clock      kernel.Clock
}

func NewRegisterUserNotificationCommandHandler(
	dispatcher ports.EventDispatcher, clock kernel.Clock,
) RegisterUserNotificationCommandHandler {
	return RegisterUserNotificationCommandHandler{dispatcher: dispatcher, clock: clock}
}

func (h RegisterUserNotificationCommandHandler) Handle(ctx context.Context, cmd RegisterUserNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, event.Event{
		Kind:       event.UserRegistered,
		UserID:     cmd.UserID(),
		OccurredAt: h.clock.Now(),
	})
	return nil
}
