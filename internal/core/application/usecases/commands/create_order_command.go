package commands

import (
	"errors"
	"fmt"
	"time"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a requester placing a new order with its lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(order.Intake{
//	    OwnerID:   "U1",
//	    OrderDate: time.Now(),
//	    Details:   order.Details{ContactPerson: "Sato", Property: "Hills 3"},
//	}, []RequestedItem{{CatalogItemID: "CAT-FLOOR", Quantity: 1}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	intake order.Intake
	items  []RequestedItem

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(intake order.Intake, items []RequestedItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setIntake(intake),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Intake() order.Intake { return c.intake }

func (c CreateOrderCommand) Items() []RequestedItem { return c.items }

func (c *CreateOrderCommand) setIntake(intake order.Intake) error {
	var missing []error
	if intake.OwnerID == "" {
		missing = append(missing, errs.NewValueIsRequiredError("owner id"))
	}
	if intake.OrderDate.IsZero() {
		missing = append(missing, errs.NewValueIsRequiredError("order date"))
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	intake.OrderDate = truncateDate(intake.OrderDate)
	if intake.ConstructionDate != nil {
		d := truncateDate(*intake.ConstructionDate)
		intake.ConstructionDate = &d
	}
	c.intake = intake
	return nil
}

func (c *CreateOrderCommand) setItems(items []RequestedItem) error {
	if err := validateRequestedItems(items); err != nil {
		return err
	}
	c.items = items
	return nil
}

func validateRequestedItems(items []RequestedItem) error {
	var lineErrs []error
	for i, item := range items {
		if item.CatalogItemID == "" {
			lineErrs = append(lineErrs, errs.NewValueIsRequiredError(fmt.Sprintf("item %d catalog item id", i+1)))
		}
		if item.Quantity <= 0 {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("item %d quantity", i+1), fmt.Errorf("%d is not greater than 0", item.Quantity)))
		}
	}
	return errors.Join(lineErrs...)
}

// truncateDate keeps the calendar date of t in UTC.
func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
