package order

import (
	"errors"
	"fmt"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

var ErrOrderIsNotPaid = errors.New("only paid orders can be archived")

// ArchivedItem is the frozen form of an Item inside an archive snapshot.
type ArchivedItem struct {
	CatalogItemID string
	Quantity      int
	UnitPrice     kernel.Money
	AreaLabel     string
}

// ArchivedOrder is the immutable snapshot of a paid order and its lines. It is created
// exactly once per order and never changed afterwards.
type ArchivedOrder struct {
	id          kernel.UUID
	order       Snapshot
	items       []ArchivedItem
	archivedAt  time.Time
	totalAmount kernel.Money
}

// NewArchivedOrder snapshots a paid order with its resolved lines. The total is the sum of
// unit price times quantity over the captured lines.
func NewArchivedOrder(o *Order, items []*Item, now time.Time) (*ArchivedOrder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != Paid {
		return nil, errs.NewValueIsInvalidErrorWithCause("order is invalid",
			fmt.Errorf("%w: %s is %s", ErrOrderIsNotPaid, o.ID(), o.Status()))
	}

	archived := make([]ArchivedItem, 0, len(items))
	for _, item := range items {
		if item.OrderID() != o.ID() {
			return nil, errs.NewValueIsInvalidErrorWithCause("item is invalid",
				fmt.Errorf("item %s does not belong to order %s", item.ID(), o.ID()))
		}
		archived = append(archived, ArchivedItem{
			CatalogItemID: item.CatalogItemID(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice(),
			AreaLabel:     item.AreaLabel(),
		})
	}

	return &ArchivedOrder{
		id:          kernel.NewUUID(),
		order:       o.Snapshot(),
		items:       archived,
		archivedAt:  now,
		totalAmount: TotalOf(items),
	}, nil
}

// RestoreArchivedOrder rebuilds a snapshot from storage, keeping the stored total.
func RestoreArchivedOrder(
	id kernel.UUID, order Snapshot, items []ArchivedItem, archivedAt time.Time, total kernel.Money,
) (*ArchivedOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, errs.NewValueIsRequiredError("order id")
	}
	return &ArchivedOrder{id: id, order: order, items: items, archivedAt: archivedAt, totalAmount: total}, nil
}

func (a *ArchivedOrder) ID() kernel.UUID { return a.id }

func (a *ArchivedOrder) OrderID() string { return a.order.ID }

func (a *ArchivedOrder) Order() Snapshot { return a.order }

// Items returns a copy of the captured lines.
func (a *ArchivedOrder) Items() []ArchivedItem {
	return append([]ArchivedItem(nil), a.items...)
}

func (a *ArchivedOrder) ArchivedAt() time.Time { return a.archivedAt }

func (a *ArchivedOrder) TotalAmount() kernel.Money { return a.totalAmount }
