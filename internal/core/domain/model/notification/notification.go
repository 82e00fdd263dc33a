// Package notification holds the in-app notification record produced for lifecycle events.
package notification

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via New or Restore constructor")

// Notification is created once per dispatched event and afterwards only toggled between
// read and unread. A notification without a target user is a broadcast to administrators.
type Notification struct {
	id           kernel.UUID
	targetUserID string
	kind         event.Kind
	title        string
	message      string
	read         bool
	createdAt    time.Time

	isConstructed bool
}

// New builds an unread notification. An empty targetUserID makes it a broadcast.
func New(targetUserID string, kind event.Kind, title, message string, now time.Time) (*Notification, error) {
	return Restore(kernel.NewUUID(), targetUserID, kind, title, message, false, now)
}

func Restore(
	id kernel.UUID, targetUserID string, kind event.Kind, title, message string, read bool, createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		targetUserID:  targetUserID,
		message:       message,
		read:          read,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setKind(kind),
		n.setTitle(title),
	); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID { return n.id }

// TargetUserID is empty for broadcasts.
func (n *Notification) TargetUserID() string { return n.targetUserID }

func (n *Notification) IsBroadcast() bool { return n.targetUserID == "" }

func (n *Notification) Kind() event.Kind { return n.kind }

func (n *Notification) Title() string { return n.title }

func (n *Notification) Message() string { return n.message }

func (n *Notification) IsRead() bool { return n.read }

func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// ToggleRead flips the read flag and returns the new value.
func (n *Notification) ToggleRead() bool {
	n.read = !n.read
	return n.read
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setKind(kind event.Kind) error {
	if kind == event.Unknown {
		return errs.NewValueIsRequiredError("notification kind")
	}
	n.kind = kind
	return nil
}

func (n *Notification) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("notification title")
	}
	n.title = title
	return nil
}
