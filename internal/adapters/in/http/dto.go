package http

import (
	"time"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Details struct {
	ContactPerson string `json:"contact_person"`
	Property      string `json:"property"`
	Room          string `json:"room"`
	KeyLocation   string `json:"key_location"`
	KeyReturn     string `json:"key_return"`
	Notes         string `json:"notes"`
}

type Item struct {
	CatalogItemID string `json:"catalog_item_id"`
	Quantity      int    `json:"quantity"`
	AreaLabel     string `json:"area_label,omitempty"`
}

type NewOrder struct {
	OrderDate        string   `json:"order_date"`
	ConstructionDate *string  `json:"construction_date"`
	RoomArea         *float64 `json:"room_area"`
	KeyStatus        string   `json:"key_status"`
	Details          Details  `json:"details"`
	Items            []Item   `json:"items"`
}

type OrderPatch struct {
	Details               *Details `json:"details"`
	RoomArea              *float64 `json:"room_area"`
	ClearRoomArea         bool     `json:"clear_room_area"`
	ConstructionDate      *string  `json:"construction_date"`
	ClearConstructionDate bool     `json:"clear_construction_date"`
	Status                *string  `json:"status"`
	Items                 *[]Item  `json:"items"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type KeyStatusChange struct {
	KeyStatus string `json:"key_status"`
	Confirmed bool   `json:"confirmed"`
}

type Order struct {
	ID               string   `json:"id"`
	OwnerID          string   `json:"owner_id"`
	OrderDate        string   `json:"order_date"`
	ConstructionDate *string  `json:"construction_date,omitempty"`
	RoomArea         *float64 `json:"room_area,omitempty"`
	KeyStatus        string   `json:"key_status"`
	Status           string   `json:"status"`
	Details          Details  `json:"details"`
	UpdatedAt        string   `json:"updated_at"`
	ArchivePending   bool     `json:"archive_pending,omitempty"`
}

type ArchivedItem struct {
	CatalogItemID string `json:"catalog_item_id"`
	Quantity      int    `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	AreaLabel     string `json:"area_label,omitempty"`
}

type ArchivedOrder struct {
	ID          string         `json:"id"`
	Order       Order          `json:"order"`
	Items       []ArchivedItem `json:"items"`
	TotalAmount string         `json:"total_amount"`
	ArchivedAt  string         `json:"archived_at"`
}

type Notification struct {
	ID           string `json:"id"`
	TargetUserID string `json:"target_user_id,omitempty"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	Read         bool   `json:"read"`
	CreatedAt    string `json:"created_at"`
}

type CatalogTier struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

type CatalogItem struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	BasePrice          string        `json:"base_price"`
	QuantitySelectable bool          `json:"quantity_selectable"`
	Tiers              []CatalogTier `json:"tiers,omitempty"`
}

func parseDate(param, s string) (time.Time, error) {
	d, err := time.Parse(order.DateLayout, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return d, nil
}

func parseRoomArea(v *float64) (*kernel.RoomArea, error) {
	if v == nil {
		return nil, nil
	}
	a, err := kernel.NewRoomArea(*v)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (d Details) toDomain() order.Details {
	return order.Details{
		ContactPerson: d.ContactPerson,
		Property:      d.Property,
		Room:          d.Room,
		KeyLocation:   d.KeyLocation,
		KeyReturn:     d.KeyReturn,
		Notes:         d.Notes,
	}
}

func toRequestedItems(items []Item) []commands.RequestedItem {
	requested := make([]commands.RequestedItem, 0, len(items))
	for _, item := range items {
		requested = append(requested, commands.RequestedItem{
			CatalogItemID: item.CatalogItemID,
			Quantity:      item.Quantity,
			AreaLabel:     item.AreaLabel,
		})
	}
	return requested
}

func (b NewOrder) toIntake(ownerID string) (order.Intake, error) {
	orderDate, err := parseDate("order date", b.OrderDate)
	if err != nil {
		return order.Intake{}, err
	}

	intake := order.Intake{OwnerID: ownerID, OrderDate: orderDate, Details: b.Details.toDomain()}
	if b.ConstructionDate != nil {
		d, err := parseDate("construction date", *b.ConstructionDate)
		if err != nil {
			return order.Intake{}, err
		}
		intake.ConstructionDate = &d
	}
	if intake.RoomArea, err = parseRoomArea(b.RoomArea); err != nil {
		return order.Intake{}, err
	}
	if b.KeyStatus != "" {
		if intake.KeyStatus, err = order.ParseKeyStatus(b.KeyStatus); err != nil {
			return order.Intake{}, err
		}
	}
	return intake, nil
}

func (p OrderPatch) toDomain() (commands.OrderPatch, error) {
	var (
		patch commands.OrderPatch
		err   error
	)

	if p.Details != nil {
		d := p.Details.toDomain()
		patch.Details = &d
	}
	if patch.RoomArea, err = parseRoomArea(p.RoomArea); err != nil {
		return patch, err
	}
	patch.ClearRoomArea = p.ClearRoomArea
	if p.ConstructionDate != nil {
		d, err := parseDate("construction date", *p.ConstructionDate)
		if err != nil {
			return patch, err
		}
		patch.ConstructionDate = &d
	}
	patch.ClearConstructionDate = p.ClearConstructionDate
	if p.Status != nil {
		s, err := order.ParseStatus(*p.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &s
	}
	if p.Items != nil {
		patch.Items = toRequestedItems(*p.Items)
	}
	return patch, nil
}

func fromSnapshot(s order.Snapshot) Order {
	resp := Order{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		OrderDate: s.OrderDate.Format(order.DateLayout),
		KeyStatus: s.KeyStatus.String(),
		Status:    s.Status.String(),
		Details: Details{
			ContactPerson: s.Details.ContactPerson,
			Property:      s.Details.Property,
			Room:          s.Details.Room,
			KeyLocation:   s.Details.KeyLocation,
			KeyReturn:     s.Details.KeyReturn,
			Notes:         s.Details.Notes,
		},
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	if s.ConstructionDate != nil {
		d := s.ConstructionDate.Format(order.DateLayout)
		resp.ConstructionDate = &d
	}
	if s.RoomArea != nil {
		sq := s.RoomArea.SquareMeters()
		resp.RoomArea = &sq
	}
	return resp
}

func fromArchived(a queries.ListArchivedOrdersQueryResponse) ArchivedOrder {
	items := make([]ArchivedItem, 0, len(a.Items))
	for _, item := range a.Items {
		items = append(items, ArchivedItem{
			CatalogItemID: item.CatalogItemID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.String(),
			AreaLabel:     item.AreaLabel,
		})
	}
	return ArchivedOrder{
		ID:          a.ID.String(),
		Order:       fromSnapshot(a.Order),
		Items:       items,
		TotalAmount: a.TotalAmount.String(),
		ArchivedAt:  a.ArchivedAt.Format(time.RFC3339),
	}
}

func fromNotification(n queries.ListNotificationsQueryResponse) Notification {
	return Notification{
		ID:           n.ID.String(),
		TargetUserID: n.TargetUserID,
		Type:         n.Type,
		Title:        n.Title,
		Message:      n.Message,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	}
}

func fromCatalogItem(item *catalog.Item) CatalogItem {
	resp := CatalogItem{
		ID:                 item.ID(),
		Name:               item.Name(),
		BasePrice:          item.BasePrice().String(),
		QuantitySelectable: item.IsQuantitySelectable(),
	}
	for _, t := range item.Tiers() {
		resp.Tiers = append(resp.Tiers, CatalogTier{Label: t.Label, Price: t.Price.String()})
	}
	return resp
}
