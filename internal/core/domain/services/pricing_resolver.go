package services

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

// AreaBreakpoints are the room-area bounds, in square meters, between consecutive tiers of
// an area-tier table: below 30 is the first tier, 30 up to 50 the second, 50 and above the
// third.
var AreaBreakpoints = []float64{30, 50}

var ErrCatalogItemIsRequired = errors.New("catalog item is required")

// Quote is the price of one order line as it will be stamped onto the line.
type Quote struct {
	UnitPrice kernel.Money
	Quantity  int
	Amount    kernel.Money

	// AreaLabel is the tier the price was taken from; empty when the base price was used.
	AreaLabel string
}

// PricingResolver resolves the price of a catalog item for an order line.
//
// Business rules:
//   - Without an area-tier table the unit price is the base price
//   - With a table, an explicit tier label wins; otherwise the tier is derived from the
//     room area using AreaBreakpoints and the table order
//   - When no tier matches, the base price is used
//   - Items that are not quantity-selectable are always priced for a quantity of 1
//
// Example usage:
//
//	resolver := services.NewPricingResolver()
//	area, _ := kernel.NewRoomArea(45)
//	quote, err := resolver.Resolve(item, 1, "", &area)
//	if err != nil {
//	    return err
//	}
//	// quote.UnitPrice is the price of the second tier
type PricingResolver struct{}

func NewPricingResolver() PricingResolver {
	return PricingResolver{}
}

// Resolve computes the quote of item.
//
// Parameters:
//   - item: the catalog item (required)
//   - quantity: requested quantity, must be greater than 0
//   - areaLabel: tier label explicitly chosen by the requester, may be empty
//   - roomArea: room area of the order, may be nil
//
// Returns:
//   - Quote: unit price, effective quantity and amount
//   - error: a validation error for a missing item or a non-positive quantity
func (PricingResolver) Resolve(
	item *catalog.Item, quantity int, areaLabel string, roomArea *kernel.RoomArea,
) (Quote, error) {
	if item == nil {
		return Quote{}, errs.NewValueIsRequiredErrorWithCause("catalog item", ErrCatalogItemIsRequired)
	}
	if quantity <= 0 {
		return Quote{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if !item.IsQuantitySelectable() {
		quantity = 1
	}

	unit, label := item.BasePrice(), ""
	if tier, ok := selectTier(item, areaLabel, roomArea); ok {
		unit, label = tier.Price, tier.Label
	}

	return Quote{
		UnitPrice: unit,
		Quantity:  quantity,
		Amount:    unit.Times(quantity),
		AreaLabel: label,
	}, nil
}

func selectTier(item *catalog.Item, areaLabel string, roomArea *kernel.RoomArea) (catalog.AreaTier, bool) {
	if !item.HasTiers() {
		return catalog.AreaTier{}, false
	}
	if areaLabel != "" {
		return item.TierByLabel(areaLabel)
	}
	if roomArea == nil || roomArea.Validate() != nil {
		return catalog.AreaTier{}, false
	}
	return item.TierAt(tierIndex(roomArea.SquareMeters()))
}

func tierIndex(squareMeters float64) int {
	idx := 0
	for _, bound := range AreaBreakpoints {
		if squareMeters < bound {
			break
		}
		idx++
	}
	return idx
}
