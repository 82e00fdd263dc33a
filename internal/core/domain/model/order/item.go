package order

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

// Item is one priced line of an order. Its unit price is stamped when the line is written
// and never recomputed from the catalog, so later price changes leave old orders intact.
// Items are never edited in place: the whole set is replaced on every edit.
type Item struct {
	id            string
	orderID       string
	catalogItemID string
	ordinal       int
	quantity      int
	unitPrice     kernel.Money
	areaLabel     string
}

// ItemID derives the composite identifier of a line.
func ItemID(orderID, catalogItemID string, ordinal int) string {
	return fmt.Sprintf("%s-%s-%d", orderID, catalogItemID, ordinal)
}

// NewItem builds a line. ordinal must be unique among all lines ever written for the order.
func NewItem(
	orderID, catalogItemID string, ordinal, quantity int, unitPrice kernel.Money, areaLabel string,
) (*Item, error) {
	item := &Item{unitPrice: unitPrice, areaLabel: areaLabel}

	if err := errors.Join(
		item.setOrderID(orderID),
		item.setCatalogItemID(catalogItemID),
		item.setOrdinal(ordinal),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	item.id = ItemID(orderID, catalogItemID, ordinal)
	return item, nil
}

func (i *Item) ID() string { return i.id }

func (i *Item) OrderID() string { return i.orderID }

func (i *Item) CatalogItemID() string { return i.catalogItemID }

func (i *Item) Ordinal() int { return i.ordinal }

func (i *Item) Quantity() int { return i.quantity }

func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// AreaLabel is the area tier the price was taken from, empty for untiered items.
func (i *Item) AreaLabel() string { return i.areaLabel }

// Amount is unit price times quantity.
func (i *Item) Amount() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

// TotalOf sums the amounts of items.
func TotalOf(items []*Item) kernel.Money {
	var total kernel.Money
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total
}

func (i *Item) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setCatalogItemID(catalogItemID string) error {
	if catalogItemID == "" {
		return errs.NewValueIsRequiredError("catalog item id")
	}
	i.catalogItemID = catalogItemID
	return nil
}

func (i *Item) setOrdinal(ordinal int) error {
	if ordinal <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("ordinal is invalid", fmt.Errorf("%d is not greater than 0", ordinal))
	}
	i.ordinal = ordinal
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
