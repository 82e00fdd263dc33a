package order

import (
	"errors"
	"fmt"
	"time"

	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

// DateLayout is the persisted and event form of order and construction dates.
const DateLayout = "2006-01-02"

var (
	// ErrOrderIsNotConstructed is returned for an Order that did not come from NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	ErrOrderIsClosed = errors.New("order is in a terminal status and can no longer be edited")
)

// Details holds the free-text descriptors of an order. None of them take part in the
// lifecycle rules.
type Details struct {
	ContactPerson string
	Property      string
	Room          string
	KeyLocation   string
	KeyReturn     string
	Notes         string
}

// Intake is the data a requester submits when placing an order.
type Intake struct {
	OwnerID          string
	OrderDate        time.Time
	ConstructionDate *time.Time
	RoomArea         *kernel.RoomArea
	KeyStatus        KeyStatus // KeyUnknown defaults to KeyHanded
	Details          Details
}

// Snapshot is the full state of an order, used to restore it from storage and to
// archive it.
type Snapshot struct {
	ID               string
	OwnerID          string
	OrderDate        time.Time
	ConstructionDate *time.Time
	RoomArea         *kernel.RoomArea
	KeyStatus        KeyStatus
	Status           Status
	Details          Details
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Order is a construction work request tracked from intake through payment.
//
// Order follows these invariants:
//   - id and owner are set and never change
//   - status only changes through ApplyStatus, following the transition table
//   - key status only moves from handed to pending
//   - once the status is terminal, no field can be edited
type Order struct {
	id               string
	ownerID          string
	orderDate        time.Time
	constructionDate *time.Time
	roomArea         *kernel.RoomArea
	keyStatus        KeyStatus
	status           Status
	details          Details
	createdAt        time.Time
	updatedAt        time.Time

	// events raised since the last PullEvents
	events []event.Event

	isConstructed bool
}

// NewOrder registers a new order in AwaitingSchedule and records an order_created event.
//
// Example:
//
//	o, err := order.NewOrder("ORD001", order.Intake{
//	    OwnerID:   "U1",
//	    OrderDate: now,
//	    Details:   order.Details{ContactPerson: "Sato"},
//	}, now)
func NewOrder(id string, intake Intake, now time.Time) (*Order, error) {
	keyStatus := intake.KeyStatus
	if keyStatus == KeyUnknown {
		keyStatus = KeyHanded
	}

	o, err := RestoreOrder(Snapshot{
		ID:               id,
		OwnerID:          intake.OwnerID,
		OrderDate:        intake.OrderDate,
		ConstructionDate: intake.ConstructionDate,
		RoomArea:         intake.RoomArea,
		KeyStatus:        keyStatus,
		Status:           AwaitingSchedule,
		Details:          intake.Details,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, err
	}

	o.record(event.OrderCreated, "", "", now)
	return o, nil
}

// RestoreOrder rebuilds an order from storage. No event is recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		constructionDate: s.ConstructionDate,
		details:          s.Details,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOwnerID(s.OwnerID),
		o.setOrderDate(s.OrderDate),
		o.setRoomArea(s.RoomArea),
		o.setKeyStatus(s.KeyStatus),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by one of the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() string { return o.id }

func (o *Order) OwnerID() string { return o.ownerID }

func (o *Order) OrderDate() time.Time { return o.orderDate }

// ConstructionDate returns nil until the work has been scheduled for a date.
func (o *Order) ConstructionDate() *time.Time { return o.constructionDate }

func (o *Order) RoomArea() *kernel.RoomArea { return o.roomArea }

func (o *Order) KeyStatus() KeyStatus { return o.keyStatus }

func (o *Order) Status() Status { return o.status }

func (o *Order) Details() Details { return o.details }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID string) bool {
	return userID != "" && o.ownerID == userID
}

// Snapshot returns a copy of the full state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:               o.id,
		OwnerID:          o.ownerID,
		OrderDate:        o.orderDate,
		ConstructionDate: o.constructionDate,
		RoomArea:         o.roomArea,
		KeyStatus:        o.keyStatus,
		Status:           o.status,
		Details:          o.details,
		CreatedAt:        o.createdAt,
		UpdatedAt:        o.updatedAt,
	}
}

// ValidateStatusChange checks that actor may move the order to status, without changing it.
func (o *Order) ValidateStatusChange(to Status, actor Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if actor.Role() == RoleRequester && !o.IsOwnedBy(actor.UserID()) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%w: %s", ErrActorIsNotOwner, o.id))
	}

	return o.status.ValidateTransition(to, actor.Role())
}

// ApplyStatus moves the order to status on behalf of actor and records a status_changed
// event carrying the old and new status.
//
// Example:
//
//	if err := o.ApplyStatus(order.Scheduled, admin, now); err != nil {
//	    return err // nothing changed
//	}
func (o *Order) ApplyStatus(to Status, actor Actor, now time.Time) error {
	if err := o.ValidateStatusChange(to, actor); err != nil {
		return err
	}

	from := o.status
	o.status = to
	o.updatedAt = now
	o.record(event.StatusChanged, from.String(), to.String(), now)
	return nil
}

// SetKeyStatus moves the key-handoff sub-state. Only Handed -> Pending is accepted, and
// only with confirmed set by the caller after asking the user to confirm. A terminal order
// keeps its key status.
func (o *Order) SetKeyStatus(to KeyStatus, confirmed bool, now time.Time) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	if err := o.keyStatus.ValidateTransition(to, confirmed); err != nil {
		return err
	}

	from := o.keyStatus
	o.keyStatus = to
	o.updatedAt = now
	o.record(event.KeyStatusChanged, from.String(), to.String(), now)
	return nil
}

// Reschedule changes the construction date and records a schedule_changed event when the
// date actually differs. A nil date clears the schedule.
func (o *Order) Reschedule(date *time.Time, now time.Time) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	old, next := formatDate(o.constructionDate), formatDate(date)
	if old == next {
		return nil
	}

	o.constructionDate = date
	o.updatedAt = now
	o.record(event.ScheduleChanged, old, next, now)
	return nil
}

// UpdateDetails replaces the free-text descriptors.
func (o *Order) UpdateDetails(details Details, now time.Time) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	o.details = details
	o.updatedAt = now
	return nil
}

// UpdateRoomArea replaces the room area; nil clears it.
func (o *Order) UpdateRoomArea(area *kernel.RoomArea, now time.Time) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	if err := o.setRoomArea(area); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

// EnsureEditable rejects edits of an order in a terminal status.
func (o *Order) EnsureEditable() error {
	return o.ensureEditable()
}

// PullEvents returns the events recorded since the previous call and forgets them.
// Callers publish them only after the order has been persisted.
func (o *Order) PullEvents() []event.Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) ensureEditable() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("order is invalid",
			fmt.Errorf("%w: %s is %s", ErrOrderIsClosed, o.id, o.status))
	}
	return nil
}

func (o *Order) record(kind event.Kind, old, next string, now time.Time) {
	o.events = append(o.events, event.Event{
		Kind:       kind,
		OrderID:    o.id,
		OwnerID:    o.ownerID,
		Old:        old,
		New:        next,
		OccurredAt: now,
	})
}

func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID string) error {
	if ownerID == "" {
		return errs.NewValueIsRequiredError("owner id")
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setOrderDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = date
	return nil
}

func (o *Order) setRoomArea(area *kernel.RoomArea) error {
	if area != nil {
		if err := area.Validate(); err != nil {
			return err
		}
	}
	o.roomArea = area
	return nil
}

func (o *Order) setKeyStatus(k KeyStatus) error {
	if err := k.Validate(); err != nil {
		return err
	}
	o.keyStatus = k
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}
