package event_test

import (
	"testing"

	"ordertrack/internal/core/domain/model/event"

	"github.com/stretchr/testify/assert"
)

func TestKind_StringRoundTrip(t *testing.T) {
	for _, k := range []event.Kind{
		event.OrderCreated,
		event.UserRegistered,
		event.StatusChanged,
		event.KeyStatusChanged,
		event.ScheduleChanged,
	} {
		assert.Equal(t, k, event.ParseKind(k.String()))
	}

	assert.Equal(t, "unknown", event.Kind(42).String())
	assert.Equal(t, event.Unknown, event.ParseKind("order_deleted"))
}
