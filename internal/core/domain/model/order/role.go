package order

import (
	"errors"
	"fmt"

	"ordertrack/internal/pkg/errs"
)

// Role is the capacity in which an actor changes an order.
type Role int

const (
	RoleUnknown Role = iota

	// RoleAdmin is an administrator; may correct statuses in any direction.
	RoleAdmin

	// RoleRequester is the customer who placed the order.
	RoleRequester

	// RoleSystem is the scheduler advancing orders on its own.
	RoleSystem
)

var roleNames = map[Role]string{
	RoleUnknown:   "unknown",
	RoleAdmin:     "admin",
	RoleRequester: "requester",
	RoleSystem:    "system",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return roleNames[RoleUnknown]
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole reads the persisted or transported form of a role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if r != RoleUnknown && name == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

var ErrActorUserIsRequired = errors.New("actor user id is required")

// Actor is who requests a change: a user in a role, or the system.
type Actor struct {
	userID string
	role   Role
}

// NewActor builds an actor for a signed-in user.
func NewActor(userID string, role Role) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if userID == "" && role != RoleSystem {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("actor", ErrActorUserIsRequired)
	}
	return Actor{userID: userID, role: role}, nil
}

// SystemActor is the actor used by scheduled jobs.
func SystemActor() Actor {
	return Actor{role: RoleSystem}
}

func (a Actor) UserID() string { return a.userID }

func (a Actor) Role() Role { return a.role }
