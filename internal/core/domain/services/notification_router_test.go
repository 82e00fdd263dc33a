package services_test

import (
	"testing"

	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRouter_Route(t *testing.T) {
	router := services.NewNotificationRouter()

	tests := []struct {
		name   string
		event  event.Event
		target string
		email  services.EmailAudience
	}{
		{"order created", event.Event{Kind: event.OrderCreated, OwnerID: "U1"}, "", services.EmailAllAdmins},
		{"user registered", event.Event{Kind: event.UserRegistered, UserID: "U9"}, "", services.EmailAllAdmins},
		{"scheduled", event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "scheduled"}, "", services.EmailAllAdmins},
		{"cancelled by admin", event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "cancelled_by_admin"}, "", services.EmailAllAdmins},
		{"cancelled by requester", event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "cancelled_by_requester"}, "", services.EmailAllAdmins},
		{"completed", event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "completed"}, "U1", services.EmailOwner},
		{"invoiced", event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "invoiced"}, "U1", services.EmailOwner},
		{"back to awaiting", event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "awaiting_schedule"}, "U1", services.EmailOwner},
		{"paid", event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "paid"}, "U1", services.EmailNone},
		{"key status", event.Event{Kind: event.KeyStatusChanged, OwnerID: "U1"}, "", services.EmailAllAdmins},
		{"schedule", event.Event{Kind: event.ScheduleChanged, OwnerID: "U1"}, "", services.EmailAllAdmins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := router.Route(tt.event)

			require.NoError(t, err)
			assert.Equal(t, tt.target, route.TargetUserID)
			assert.Equal(t, tt.email, route.Email)
		})
	}
}

func TestNotificationRouter_Route_Rejects(t *testing.T) {
	router := services.NewNotificationRouter()

	_, err := router.Route(event.Event{Kind: event.Unknown})
	assert.ErrorIs(t, err, services.ErrEventIsNotRoutable)

	_, err = router.Route(event.Event{Kind: event.StatusChanged, New: "completed"})
	assert.ErrorIs(t, err, services.ErrEventIsNotRoutable)

	_, err = router.Route(event.Event{Kind: event.StatusChanged, OwnerID: "U1", New: "shipped"})
	assert.Error(t, err)
}
