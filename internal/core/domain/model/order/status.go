package order

import (
	"errors"
	"fmt"

	"ordertrack/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	AwaitingSchedule ──> Scheduled ──> Completed ──> Invoiced ──> Paid
//	        │                │             │            │
//	        └────────────────┴─────────────┴────────────┴──> CancelledByAdmin
//	        └────────────────┴──> CancelledByRequester
//
// Administrators may also move a non-terminal order backwards to correct mistakes.
// Paid and both cancellations are terminal.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota
	AwaitingSchedule
	Scheduled
	Completed
	Invoiced
	Paid
	CancelledByAdmin
	CancelledByRequester
)

var statusNames = map[Status]string{
	Unknown:              "unknown",
	AwaitingSchedule:     "awaiting_schedule",
	Scheduled:            "scheduled",
	Completed:            "completed",
	Invoiced:             "invoiced",
	Paid:                 "paid",
	CancelledByAdmin:     "cancelled_by_admin",
	CancelledByRequester: "cancelled_by_requester",
}

var (
	ErrStatusIsTerminal       = errors.New("order status is terminal")
	ErrStatusIsUnchanged      = errors.New("order already has the requested status")
	ErrTransitionIsNotAllowed = errors.New("status transition is not allowed for this role")
	ErrActorIsNotOwner        = errors.New("only the owning user may change this order")
)

type statusSet map[Status]struct{}

func setOf(statuses ...Status) statusSet {
	s := make(statusSet, len(statuses))
	for _, st := range statuses {
		s[st] = struct{}{}
	}
	return s
}

// transitionTable lists, per role and current status, every status the role may request.
// A current status missing for a role means the role may not change it at all.
var transitionTable = map[Role]map[Status]statusSet{
	RoleRequester: {
		AwaitingSchedule: setOf(Scheduled, CancelledByRequester),
		Scheduled:        setOf(AwaitingSchedule, CancelledByRequester),
	},
	RoleAdmin: {
		AwaitingSchedule: setOf(Scheduled, Completed, Invoiced, Paid, CancelledByAdmin),
		Scheduled:        setOf(AwaitingSchedule, Completed, Invoiced, Paid, CancelledByAdmin),
		Completed:        setOf(AwaitingSchedule, Scheduled, Invoiced, Paid, CancelledByAdmin),
		Invoiced:         setOf(AwaitingSchedule, Scheduled, Completed, Paid, CancelledByAdmin),
	},
	RoleSystem: {
		Scheduled: setOf(Completed),
	},
}

// ParseStatus reads the persisted form of a status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if st != Unknown && name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is accepted from s.
func (s Status) IsTerminal() bool {
	return s == Paid || s == CancelledByAdmin || s == CancelledByRequester
}

// IsCancellation reports whether s is one of the cancellation states.
func (s Status) IsCancellation() bool {
	return s == CancelledByAdmin || s == CancelledByRequester
}

// ActiveStatuses returns every non-terminal status, in lifecycle order.
func ActiveStatuses() []Status {
	return []Status{AwaitingSchedule, Scheduled, Completed, Invoiced}
}

// ValidateTransition checks s -> to for role against the transition table, without
// performing it. Ownership is checked by the Order.
func (s Status) ValidateTransition(to Status, role Role) error {
	if err := errors.Join(s.Validate(), to.Validate(), role.Validate()); err != nil {
		return err
	}

	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%w: %s", ErrStatusIsTerminal, s),
		)
	}

	if s == to {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%w: %s", ErrStatusIsUnchanged, s),
		)
	}

	if _, ok := transitionTable[role][s][to]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%w: %s cannot move %s -> %s", ErrTransitionIsNotAllowed, role, s, to),
		)
	}

	return nil
}
