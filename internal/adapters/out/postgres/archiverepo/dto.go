// Package archiverepo stores the snapshots of paid orders. The order and its lines are
// kept as JSON documents so that later schema changes of the live tables never alter them.
package archiverepo

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
)

// ArchivedOrderDTO is one row of archived_orders. order_id is unique: an order is archived
// at most once.
type ArchivedOrderDTO struct {
	ID          string                          `gorm:"type:uuid;primaryKey"`
	OrderID     string                          `gorm:"size:32;uniqueIndex;not null"`
	Order       datatypes.JSONType[SnapshotDTO] `gorm:"type:jsonb;not null"`
	Items       datatypes.JSONSlice[ItemDTO]    `gorm:"type:jsonb;not null"`
	TotalAmount decimal.Decimal                 `gorm:"type:numeric(12,2);not null"`
	ArchivedAt  time.Time                       `gorm:"index;autoCreateTime:false"`
}

func (ArchivedOrderDTO) TableName() string {
	return "archived_orders"
}

type SnapshotDTO struct {
	ID               string        `json:"id"`
	OwnerID          string        `json:"owner_id"`
	OrderDate        string        `json:"order_date"`
	ConstructionDate string        `json:"construction_date,omitempty"`
	RoomArea         *float64      `json:"room_area,omitempty"`
	KeyStatus        string        `json:"key_status"`
	Status           string        `json:"status"`
	Details          order.Details `json:"details"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type ItemDTO struct {
	CatalogItemID string          `json:"catalog_item_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	AreaLabel     string          `json:"area_label,omitempty"`
}

func fromDomain(a *order.ArchivedOrder) ArchivedOrderDTO {
	s := a.Order()

	snapshot := SnapshotDTO{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		OrderDate: s.OrderDate.Format(order.DateLayout),
		KeyStatus: s.KeyStatus.String(),
		Status:    s.Status.String(),
		Details:   s.Details,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.ConstructionDate != nil {
		snapshot.ConstructionDate = s.ConstructionDate.Format(order.DateLayout)
	}
	if s.RoomArea != nil {
		sq := s.RoomArea.SquareMeters()
		snapshot.RoomArea = &sq
	}

	items := make([]ItemDTO, 0, len(a.Items()))
	for _, item := range a.Items() {
		items = append(items, ItemDTO{
			CatalogItemID: item.CatalogItemID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.Decimal(),
			AreaLabel:     item.AreaLabel,
		})
	}

	return ArchivedOrderDTO{
		ID:          a.ID().String(),
		OrderID:     s.ID,
		Order:       datatypes.NewJSONType(snapshot),
		Items:       items,
		TotalAmount: a.TotalAmount().Decimal(),
		ArchivedAt:  a.ArchivedAt(),
	}
}

func toDomain(dto ArchivedOrderDTO) (*order.ArchivedOrder, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	snapshot, err := snapshotToDomain(dto.Order.Data())
	if err != nil {
		return nil, err
	}

	items := make([]order.ArchivedItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		price, err := kernel.NewMoney(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, order.ArchivedItem{
			CatalogItemID: item.CatalogItemID,
			Quantity:      item.Quantity,
			UnitPrice:     price,
			AreaLabel:     item.AreaLabel,
		})
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreArchivedOrder(id, snapshot, items, dto.ArchivedAt.UTC(), total)
}

func snapshotToDomain(s SnapshotDTO) (order.Snapshot, error) {
	status, err := order.ParseStatus(s.Status)
	if err != nil {
		return order.Snapshot{}, err
	}
	keyStatus, err := order.ParseKeyStatus(s.KeyStatus)
	if err != nil {
		return order.Snapshot{}, err
	}
	orderDate, err := time.Parse(order.DateLayout, s.OrderDate)
	if err != nil {
		return order.Snapshot{}, err
	}

	snapshot := order.Snapshot{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		OrderDate: orderDate,
		KeyStatus: keyStatus,
		Status:    status,
		Details:   s.Details,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.ConstructionDate != "" {
		d, err := time.Parse(order.DateLayout, s.ConstructionDate)
		if err != nil {
			return order.Snapshot{}, err
		}
		snapshot.ConstructionDate = &d
	}
	if s.RoomArea != nil {
		a, err := kernel.NewRoomArea(*s.RoomArea)
		if err != nil {
			return order.Snapshot{}, err
		}
		snapshot.RoomArea = &a
	}
	return snapshot, nil
}
