package commands

import (
	"context"
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/domain/services"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"
)

var (
	ErrCatalogItemIsUnknown  = errors.New("catalog item does not exist")
	ErrCatalogItemIsInactive = errors.New("catalog item is not active")
)

// RequestedItem is one line as submitted by the caller, before pricing.
type RequestedItem struct {
	CatalogItemID string
	Quantity      int
	AreaLabel     string
}

// PricedBatch is a fully validated set of lines, ready to replace the lines of an order.
type PricedBatch struct {
	orderID   string
	requested []RequestedItem
	quotes    []services.Quote
}

// Total is the sum of unit price times quantity over the batch.
func (b PricedBatch) Total() kernel.Money {
	var total kernel.Money
	for _, q := range b.quotes {
		total = total.Add(q.Amount)
	}
	return total
}

func (b PricedBatch) Len() int { return len(b.quotes) }

// OrderItemsManager replaces the whole set of lines of an order on every write.
//
// A replace is split in two steps so that handlers can validate every line before any
// other write of the operation:
//
//	batch, err := manager.Prepare(ctx, o, requested) // reads the catalog only
//	...
//	items, err := manager.Apply(ctx, itemRepo, batch)
type OrderItemsManager struct {
	catalog  ports.CatalogReader
	resolver services.PricingResolver
}

func NewOrderItemsManager(catalog ports.CatalogReader, resolver services.PricingResolver) OrderItemsManager {
	return OrderItemsManager{catalog: catalog, resolver: resolver}
}

// Prepare prices every requested line of o against the current catalog. An unknown or
// inactive catalog item, or an invalid quantity, fails the whole batch.
func (m OrderItemsManager) Prepare(ctx context.Context, o *order.Order, requested []RequestedItem) (PricedBatch, error) {
	if err := o.Validate(); err != nil {
		return PricedBatch{}, err
	}

	batch := PricedBatch{orderID: o.ID(), requested: requested}
	if len(requested) == 0 {
		return batch, nil
	}

	items, err := m.catalog.GetCatalogItems(ctx)
	if err != nil {
		return PricedBatch{}, err
	}
	byID := make(map[string]*catalog.Item, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}

	var lineErrs []error
	for i, req := range requested {
		param := fmt.Sprintf("item %d", i+1)
		item, ok := byID[req.CatalogItemID]
		if !ok {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(param,
				fmt.Errorf("%w: %q", ErrCatalogItemIsUnknown, req.CatalogItemID)))
			continue
		}
		if !item.IsActive() {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(param,
				fmt.Errorf("%w: %q", ErrCatalogItemIsInactive, req.CatalogItemID)))
			continue
		}

		quote, qErr := m.resolver.Resolve(item, req.Quantity, req.AreaLabel, o.RoomArea())
		if qErr != nil {
			lineErrs = append(lineErrs, qErr)
			continue
		}
		batch.quotes = append(batch.quotes, quote)
	}

	if len(lineErrs) > 0 {
		return PricedBatch{}, errors.Join(lineErrs...)
	}
	return batch, nil
}

// Apply soft-deletes every live line of the order and appends the lines of batch. Ordinals
// continue after the highest one ever written for the order, so every new line gets a
// fresh id. Apply emits no event.
func (m OrderItemsManager) Apply(ctx context.Context, repo ports.ItemRepository, batch PricedBatch) ([]*order.Item, error) {
	if batch.orderID == "" {
		return nil, errs.NewValueIsRequiredError("priced batch")
	}

	ordinal, err := repo.MaxOrdinal(ctx, batch.orderID)
	if err != nil {
		return nil, err
	}

	fresh := make([]*order.Item, 0, len(batch.quotes))
	for i, quote := range batch.quotes {
		ordinal++
		item, itemErr := order.NewItem(
			batch.orderID, batch.requested[i].CatalogItemID, ordinal, quote.Quantity, quote.UnitPrice, quote.AreaLabel,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		fresh = append(fresh, item)
	}

	live, err := repo.ListByOrder(ctx, batch.orderID)
	if err != nil {
		return nil, err
	}
	for _, item := range live {
		if err = repo.SoftDelete(ctx, item.ID()); err != nil {
			return nil, err
		}
	}

	for _, item := range fresh {
		if err = repo.Add(ctx, item); err != nil {
			return nil, err
		}
	}

	return fresh, nil
}

// Replace is Prepare followed by Apply.
func (m OrderItemsManager) Replace(
	ctx context.Context, repo ports.ItemRepository, o *order.Order, requested []RequestedItem,
) ([]*order.Item, error) {
	batch, err := m.Prepare(ctx, o, requested)
	if err != nil {
		return nil, err
	}
	return m.Apply(ctx, repo, batch)
}
