package services

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
)

// EmailAudience says who receives an email for an event.
type EmailAudience int

const (
	EmailNone EmailAudience = iota
	EmailAllAdmins
	EmailOwner
)

func (a EmailAudience) String() string {
	switch a {
	case EmailAllAdmins:
		return "all_admins"
	case EmailOwner:
		return "owner"
	default:
		return "none"
	}
}

// Route is the delivery decision for one event.
type Route struct {
	// TargetUserID is empty for a broadcast to administrators.
	TargetUserID string
	Email        EmailAudience
}

func (r Route) IsBroadcast() bool { return r.TargetUserID == "" }

var ErrEventIsNotRoutable = errors.New("event cannot be routed")

// NotificationRouter applies the fixed delivery table:
//
//	order_created, user_registered        broadcast   email all admins
//	status_changed -> scheduled/cancelled broadcast   email all admins
//	status_changed -> paid                owner       no email
//	status_changed -> other               owner       email owner
//	key_status_changed, schedule_changed  broadcast   email all admins
type NotificationRouter struct{}

func NewNotificationRouter() NotificationRouter {
	return NotificationRouter{}
}

func (NotificationRouter) Route(ev event.Event) (Route, error) {
	broadcast := Route{Email: EmailAllAdmins}

	switch ev.Kind {
	case event.OrderCreated, event.UserRegistered, event.KeyStatusChanged, event.ScheduleChanged:
		return broadcast, nil
	case event.StatusChanged:
		to, err := order.ParseStatus(ev.New)
		if err != nil {
			return Route{}, err
		}
		if ev.OwnerID == "" {
			return Route{}, errs.NewValueIsRequiredErrorWithCause("owner id",
				fmt.Errorf("%w: %s for %s", ErrEventIsNotRoutable, ev.Kind, ev.OrderID))
		}

		switch {
		case to == order.Scheduled || to.IsCancellation():
			return broadcast, nil
		case to == order.Paid:
			return Route{TargetUserID: ev.OwnerID, Email: EmailNone}, nil
		default:
			return Route{TargetUserID: ev.OwnerID, Email: EmailOwner}, nil
		}
	}

	return Route{}, errs.NewValueIsInvalidErrorWithCause("event kind",
		fmt.Errorf("%w: %s", ErrEventIsNotRoutable, ev.Kind))
}
