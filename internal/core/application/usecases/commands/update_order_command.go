package commands

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
	ErrOrderPatchIsEmpty = errors.New("order patch changes nothing")
)

// OrderPatch lists the changes of an order edit. Nil fields are left untouched.
type OrderPatch struct {
	Details *order.Details

	// RoomArea replaces the room area; ClearRoomArea removes it.
	RoomArea      *kernel.RoomArea
	ClearRoomArea bool

	// ConstructionDate reschedules the work; ClearConstructionDate removes the date.
	ConstructionDate      *time.Time
	ClearConstructionDate bool

	// Status routes through the lifecycle rules, never a raw field write.
	Status *order.Status

	// Items replaces every line of the order when non-nil; an empty slice removes them all.
	Items []RequestedItem
}

func (p OrderPatch) isEmpty() bool {
	return p.Details == nil && p.RoomArea == nil && !p.ClearRoomArea &&
		p.ConstructionDate == nil && !p.ClearConstructionDate && p.Status == nil && p.Items == nil
}

func (p OrderPatch) editsFields() bool {
	return p.Details != nil || p.RoomArea != nil || p.ClearRoomArea ||
		p.ConstructionDate != nil || p.ClearConstructionDate || p.Items != nil
}

// UpdateOrderCommand is a partial edit of an order by an actor.
//
// Example:
//
//	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
//	cmd, err := NewUpdateOrderCommand("ORD001", admin, OrderPatch{ConstructionDate: &date})
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string
	actor   order.Actor
	patch   OrderPatch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID string, actor order.Actor, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() string { return c.orderID }

func (c UpdateOrderCommand) Actor() order.Actor { return c.actor }

func (c UpdateOrderCommand) Patch() OrderPatch { return c.patch }

func (c *UpdateOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Role().Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *UpdateOrderCommand) setPatch(patch OrderPatch) error {
	if patch.isEmpty() {
		return errs.NewValueIsInvalidErrorWithCause("patch", ErrOrderPatchIsEmpty)
	}
	if patch.RoomArea != nil && patch.ClearRoomArea {
		return errs.NewValueIsInvalidError("room area is both set and cleared")
	}
	if patch.ConstructionDate != nil && patch.ClearConstructionDate {
		return errs.NewValueIsInvalidError("construction date is both set and cleared")
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return err
		}
	}
	if err := validateRequestedItems(patch.Items); err != nil {
		return err
	}

	if patch.ConstructionDate != nil {
		d := truncateDate(*patch.ConstructionDate)
		patch.ConstructionDate = &d
	}
	c.patch = patch
	return nil
}
