// Package catalogrepo reads catalog items. The catalog is maintained outside the order
// engine; this package never writes it except through Seed.
package catalogrepo

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/domain/model/kernel"
)

// CatalogItemDTO is one row of catalog_items. The area-tier table is a JSON array ordered
// from the smallest area to the largest.
type CatalogItemDTO struct {
	ID                 string                       `gorm:"primaryKey;size:64"`
	Name               string                       `gorm:"not null"`
	BasePrice          decimal.Decimal              `gorm:"type:numeric(12,2);not null"`
	Active             bool                         `gorm:"not null"`
	QuantitySelectable bool                         `gorm:"not null;default:false"`
	Tiers              datatypes.JSONSlice[TierDTO] `gorm:"type:jsonb"`
	SortOrder          int                          `gorm:"not null;default:0"`
}

func (CatalogItemDTO) TableName() string {
	return "catalog_items"
}

type TierDTO struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

func fromDomain(item *catalog.Item, sortOrder int) CatalogItemDTO {
	tiers := make([]TierDTO, 0, len(item.Tiers()))
	for _, t := range item.Tiers() {
		tiers = append(tiers, TierDTO{Label: t.Label, Price: t.Price.Decimal()})
	}

	return CatalogItemDTO{
		ID:                 item.ID(),
		Name:               item.Name(),
		BasePrice:          item.BasePrice().Decimal(),
		Active:             item.IsActive(),
		QuantitySelectable: item.IsQuantitySelectable(),
		Tiers:              tiers,
		SortOrder:          sortOrder,
	}
}

func toDomain(dto CatalogItemDTO) (*catalog.Item, error) {
	base, err := kernel.NewMoney(dto.BasePrice)
	if err != nil {
		return nil, err
	}

	tiers := make([]catalog.AreaTier, 0, len(dto.Tiers))
	for _, t := range dto.Tiers {
		price, err := kernel.NewMoney(t.Price)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, catalog.AreaTier{Label: t.Label, Price: price})
	}

	return catalog.NewItem(catalog.Params{
		ID:                 dto.ID,
		Name:               dto.Name,
		BasePrice:          base,
		Active:             dto.Active,
		QuantitySelectable: dto.QuantitySelectable,
		Tiers:              tiers,
	})
}
