package catalog

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

// AreaTier is one row of an area-tier price table.
type AreaTier struct {
	Label string
	Price kernel.Money
}

var ErrTierLabelIsDuplicated = errors.New("area tier label is duplicated")

// Item is a catalog entry. Items are immutable while an order is being written.
type Item struct {
	id                 string
	name               string
	basePrice          kernel.Money
	active             bool
	quantitySelectable bool
	tiers              []AreaTier
}

// Params collects the fields of a catalog item, in storage order.
type Params struct {
	ID                 string
	Name               string
	BasePrice          kernel.Money
	Active             bool
	QuantitySelectable bool
	Tiers              []AreaTier
}

func NewItem(p Params) (*Item, error) {
	item := &Item{
		name:               p.Name,
		basePrice:          p.BasePrice,
		active:             p.Active,
		quantitySelectable: p.QuantitySelectable,
	}

	if err := errors.Join(
		item.setID(p.ID),
		item.setTiers(p.Tiers),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) ID() string { return i.id }

func (i *Item) Name() string { return i.name }

func (i *Item) BasePrice() kernel.Money { return i.basePrice }

func (i *Item) IsActive() bool { return i.active }

func (i *Item) IsQuantitySelectable() bool { return i.quantitySelectable }

// Tiers returns a copy of the area-tier table in its stored order.
func (i *Item) Tiers() []AreaTier {
	return append([]AreaTier(nil), i.tiers...)
}

func (i *Item) HasTiers() bool { return len(i.tiers) > 0 }

// TierByLabel finds a tier by its exact label.
func (i *Item) TierByLabel(label string) (AreaTier, bool) {
	for _, t := range i.tiers {
		if t.Label == label {
			return t, true
		}
	}
	return AreaTier{}, false
}

// TierAt returns the tier at position idx of the table.
func (i *Item) TierAt(idx int) (AreaTier, bool) {
	if idx < 0 || idx >= len(i.tiers) {
		return AreaTier{}, false
	}
	return i.tiers[idx], true
}

func (i *Item) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("catalog item id")
	}
	i.id = id
	return nil
}

func (i *Item) setTiers(tiers []AreaTier) error {
	seen := make(map[string]struct{}, len(tiers))
	for _, t := range tiers {
		if t.Label == "" {
			return errs.NewValueIsRequiredError("area tier label")
		}
		if _, ok := seen[t.Label]; ok {
			return errs.NewValueIsInvalidErrorWithCause("area tiers are invalid",
				fmt.Errorf("%w: %s", ErrTierLabelIsDuplicated, t.Label))
		}
		seen[t.Label] = struct{}{}
	}
	i.tiers = append([]AreaTier(nil), tiers...)
	return nil
}
