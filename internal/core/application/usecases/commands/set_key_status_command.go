package commands

import (
	"errors"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrSetKeyStatusCommandIsNotConstructed = errors.New(
	"SetKeyStatusCommand must be created via NewSetKeyStatusCommand constructor",
)

// SetKeyStatusCommand moves the key-handoff sub-state. confirmed must be true only after the
// user explicitly confirmed the change.
type SetKeyStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   string
	keyStatus order.KeyStatus
	confirmed bool
	actor     order.Actor

	guard guard.ConstructorGuard
}

func NewSetKeyStatusCommand(
	orderID string, keyStatus order.KeyStatus, confirmed bool, actor order.Actor,
) (SetKeyStatusCommand, error) {
	cmd := SetKeyStatusCommand{confirmed: confirmed, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setKeyStatus(keyStatus),
		cmd.setActor(actor),
	); err != nil {
		return SetKeyStatusCommand{}, err
	}

	return cmd, nil
}

func (c SetKeyStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetKeyStatusCommandIsNotConstructed)
}

func (c SetKeyStatusCommand) OrderID() string { return c.orderID }

func (c SetKeyStatusCommand) KeyStatus() order.KeyStatus { return c.keyStatus }

func (c SetKeyStatusCommand) Confirmed() bool { return c.confirmed }

func (c SetKeyStatusCommand) Actor() order.Actor { return c.actor }

func (c *SetKeyStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *SetKeyStatusCommand) setKeyStatus(keyStatus order.KeyStatus) error {
	if err := keyStatus.Validate(); err != nil {
		return err
	}
	c.keyStatus = keyStatus
	return nil
}

func (c *SetKeyStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Role().Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
