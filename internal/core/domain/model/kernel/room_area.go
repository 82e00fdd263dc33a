package kernel

import (
	"math"

	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

const (
	// RoomAreaMin and RoomAreaMax bound the floor area accepted on an order, in square meters.
	RoomAreaMin = 0.0
	RoomAreaMax = 10000.0
)

// ErrRoomAreaIsNotConstructed is returned for a RoomArea that did not come from NewRoomArea.
var ErrRoomAreaIsNotConstructed = errs.NewValueIsRequiredError("room area must be created via NewRoomArea")

// RoomArea is the floor area of the room an order is about.
type RoomArea struct { //nolint:recvcheck //using for validation
	squareMeters float64
	guard        guard.ConstructorGuard
}

// NewRoomArea validates that the area lies in [RoomAreaMin, RoomAreaMax].
//
// Example:
//
//	area, err := kernel.NewRoomArea(45)
//	if err != nil {
//	    return err
//	}
func NewRoomArea(squareMeters float64) (RoomArea, error) {
	if math.IsNaN(squareMeters) || squareMeters < RoomAreaMin || squareMeters > RoomAreaMax {
		return RoomArea{}, errs.NewValueIsOutOfRangeError("room area", squareMeters, RoomAreaMin, RoomAreaMax)
	}
	return RoomArea{squareMeters: squareMeters, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the area was built by NewRoomArea.
func (a RoomArea) Validate() error {
	return a.guard.Validate(ErrRoomAreaIsNotConstructed)
}

// SquareMeters returns the area value.
func (a RoomArea) SquareMeters() float64 {
	return a.squareMeters
}
