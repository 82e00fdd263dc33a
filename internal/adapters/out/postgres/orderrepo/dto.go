// Package orderrepo maps orders and their lines to the orders and order_items tables.
package orderrepo

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
)

// OrderDTO is one row of the orders table. Timestamps are written by the domain clock,
// never by GORM.
type OrderDTO struct {
	ID               string     `gorm:"primaryKey;size:32"`
	OwnerID          string     `gorm:"size:64;index;not null"`
	OrderDate        time.Time  `gorm:"type:date;not null"`
	ConstructionDate *time.Time `gorm:"type:date;index"`
	RoomArea         *float64   `gorm:"type:numeric(9,2)"`
	KeyStatus        string     `gorm:"size:16;not null"`
	Status           string     `gorm:"size:32;index;not null"`
	Details          DetailsDTO `gorm:"embedded;embeddedPrefix:detail_"`
	CreatedAt        time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type DetailsDTO struct {
	ContactPerson string
	Property      string
	Room          string
	KeyLocation   string
	KeyReturn     string
	Notes         string
}

// ItemDTO is one row of the order_items table. Rows are never updated; a replaced line
// keeps its row with deleted_at set.
type ItemDTO struct {
	ID            string          `gorm:"primaryKey;size:128"`
	OrderID       string          `gorm:"size:32;index;not null"`
	CatalogItemID string          `gorm:"size:64;not null"`
	Ordinal       int             `gorm:"not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AreaLabel     string          `gorm:"size:16"`
	CreatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var area *float64
	if a := o.RoomArea(); a != nil {
		sq := a.SquareMeters()
		area = &sq
	}

	d := o.Details()
	return OrderDTO{
		ID:               o.ID(),
		OwnerID:          o.OwnerID(),
		OrderDate:        o.OrderDate(),
		ConstructionDate: o.ConstructionDate(),
		RoomArea:         area,
		KeyStatus:        o.KeyStatus().String(),
		Status:           o.Status().String(),
		Details: DetailsDTO{
			ContactPerson: d.ContactPerson,
			Property:      d.Property,
			Room:          d.Room,
			KeyLocation:   d.KeyLocation,
			KeyReturn:     d.KeyReturn,
			Notes:         d.Notes,
		},
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

// updateFields lists every mutable column of an order.
func updateFields(dto OrderDTO) map[string]any {
	return map[string]any{
		"construction_date":     dto.ConstructionDate,
		"room_area":             dto.RoomArea,
		"key_status":            dto.KeyStatus,
		"status":                dto.Status,
		"detail_contact_person": dto.Details.ContactPerson,
		"detail_property":       dto.Details.Property,
		"detail_room":           dto.Details.Room,
		"detail_key_location":   dto.Details.KeyLocation,
		"detail_key_return":     dto.Details.KeyReturn,
		"detail_notes":          dto.Details.Notes,
		"updated_at":            dto.UpdatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, statusErr := order.ParseStatus(dto.Status)
	keyStatus, keyErr := order.ParseKeyStatus(dto.KeyStatus)
	if err := errors.Join(statusErr, keyErr); err != nil {
		return nil, err
	}

	var area *kernel.RoomArea
	if dto.RoomArea != nil {
		a, err := kernel.NewRoomArea(*dto.RoomArea)
		if err != nil {
			return nil, err
		}
		area = &a
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               dto.ID,
		OwnerID:          dto.OwnerID,
		OrderDate:        dto.OrderDate.UTC(),
		ConstructionDate: utcDate(dto.ConstructionDate),
		RoomArea:         area,
		KeyStatus:        keyStatus,
		Status:           status,
		Details: order.Details{
			ContactPerson: dto.Details.ContactPerson,
			Property:      dto.Details.Property,
			Room:          dto.Details.Room,
			KeyLocation:   dto.Details.KeyLocation,
			KeyReturn:     dto.Details.KeyReturn,
			Notes:         dto.Details.Notes,
		},
		CreatedAt: dto.CreatedAt.UTC(),
		UpdatedAt: dto.UpdatedAt.UTC(),
	})
}

func itemFromDomain(item *order.Item, now time.Time) ItemDTO {
	return ItemDTO{
		ID:            item.ID(),
		OrderID:       item.OrderID(),
		CatalogItemID: item.CatalogItemID(),
		Ordinal:       item.Ordinal(),
		Quantity:      item.Quantity(),
		UnitPrice:     item.UnitPrice().Decimal(),
		AreaLabel:     item.AreaLabel(),
		CreatedAt:     now,
	}
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return order.NewItem(dto.OrderID, dto.CatalogItemID, dto.Ordinal, dto.Quantity, price, dto.AreaLabel)
}

func utcDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	u := d.UTC()
	return &u
}
