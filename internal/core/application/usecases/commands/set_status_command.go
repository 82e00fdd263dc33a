package commands

import (
	"errors"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrSetStatusCommandIsNotConstructed = errors.New(
	"SetStatusCommand must be created via NewSetStatusCommand constructor",
)

// SetStatusCommand is a pure status transition, also used by bulk operations.
type SetStatusCommand struct { //nolint:recvcheck //using for validation
	orderID string
	status  order.Status
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewSetStatusCommand(orderID string, status order.Status, actor order.Actor) (SetStatusCommand, error) {
	cmd := SetStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActor(actor),
	); err != nil {
		return SetStatusCommand{}, err
	}

	return cmd, nil
}

func (c SetStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetStatusCommandIsNotConstructed)
}

func (c SetStatusCommand) OrderID() string { return c.orderID }

func (c SetStatusCommand) Status() order.Status { return c.status }

func (c SetStatusCommand) Actor() order.Actor { return c.actor }

func (c *SetStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *SetStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *SetStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Role().Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
