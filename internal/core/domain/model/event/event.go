// Package event defines the lifecycle events raised by the order engine and consumed by
// the notification dispatcher.
package event

import "time"

// Kind is the type tag of a lifecycle event. Its string form is also the type tag stored
// on the notification the event produces.
type Kind int

const (
	Unknown Kind = iota
	OrderCreated
	UserRegistered
	StatusChanged
	KeyStatusChanged
	ScheduleChanged
)

var kindNames = map[Kind]string{
	Unknown:          "unknown",
	OrderCreated:     "order_created",
	UserRegistered:   "user_registered",
	StatusChanged:    "status_changed",
	KeyStatusChanged: "key_status_changed",
	ScheduleChanged:  "schedule_changed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[Unknown]
}

// ParseKind is the inverse of String. Unknown names yield Unknown.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return Unknown
}

// Event is a fact about an order or a user that already happened and was persisted.
// Old and New carry the changed value in its persisted string form (status, key status or
// construction date); they are empty for creation events.
type Event struct {
	Kind       Kind
	OrderID    string
	OwnerID    string
	UserID     string
	Old        string
	New        string
	OccurredAt time.Time
}
