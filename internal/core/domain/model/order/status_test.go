package order_test

import (
	"testing"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.AwaitingSchedule, "awaiting_schedule"},
		{order.Scheduled, "scheduled"},
		{order.Completed, "completed"},
		{order.Invoiced, "invoiced"},
		{order.Paid, "paid"},
		{order.CancelledByAdmin, "cancelled_by_admin"},
		{order.CancelledByRequester, "cancelled_by_requester"},
		{order.Status(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("invoiced")
	require.NoError(t, err)
	assert.Equal(t, order.Invoiced, s)

	_, err = order.ParseStatus("unknown")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = order.ParseStatus("shipped")
	require.Error(t, err)
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range order.ActiveStatuses() {
		assert.False(t, s.IsTerminal(), s.String())
	}
	assert.True(t, order.Paid.IsTerminal())
	assert.True(t, order.CancelledByAdmin.IsTerminal())
	assert.True(t, order.CancelledByRequester.IsTerminal())
}

func TestStatus_ValidateTransition(t *testing.T) {
	allowed := []struct {
		from, to order.Status
		role     order.Role
	}{
		{order.AwaitingSchedule, order.Scheduled, order.RoleRequester},
		{order.AwaitingSchedule, order.CancelledByRequester, order.RoleRequester},
		{order.Scheduled, order.AwaitingSchedule, order.RoleRequester},
		{order.Scheduled, order.CancelledByRequester, order.RoleRequester},
		{order.AwaitingSchedule, order.Scheduled, order.RoleAdmin},
		{order.Scheduled, order.Completed, order.RoleAdmin},
		{order.Completed, order.Invoiced, order.RoleAdmin},
		{order.Invoiced, order.Paid, order.RoleAdmin},
		{order.Invoiced, order.Scheduled, order.RoleAdmin},
		{order.Completed, order.CancelledByAdmin, order.RoleAdmin},
		{order.Scheduled, order.Completed, order.RoleSystem},
	}
	for _, tt := range allowed {
		t.Run("allows "+tt.role.String()+" "+tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.NoError(t, tt.from.ValidateTransition(tt.to, tt.role))
		})
	}

	rejected := []struct {
		from, to order.Status
		role     order.Role
	}{
		{order.Scheduled, order.Completed, order.RoleRequester},
		{order.Completed, order.CancelledByRequester, order.RoleRequester},
		{order.AwaitingSchedule, order.CancelledByAdmin, order.RoleRequester},
		{order.AwaitingSchedule, order.CancelledByRequester, order.RoleAdmin},
		{order.AwaitingSchedule, order.Completed, order.RoleSystem},
		{order.Completed, order.Invoiced, order.RoleSystem},
	}
	for _, tt := range rejected {
		t.Run("rejects "+tt.role.String()+" "+tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			err := tt.from.ValidateTransition(tt.to, tt.role)
			require.Error(t, err)
			assert.ErrorIs(t, err, order.ErrTransitionIsNotAllowed)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestStatus_ValidateTransition_FromTerminal(t *testing.T) {
	for _, from := range []order.Status{order.Paid, order.CancelledByAdmin, order.CancelledByRequester} {
		for _, to := range order.ActiveStatuses() {
			for _, role := range []order.Role{order.RoleAdmin, order.RoleRequester, order.RoleSystem} {
				err := from.ValidateTransition(to, role)
				require.Error(t, err)
				assert.ErrorIs(t, err, order.ErrStatusIsTerminal)
			}
		}
	}
}

func TestStatus_ValidateTransition_Unchanged(t *testing.T) {
	err := order.Scheduled.ValidateTransition(order.Scheduled, order.RoleAdmin)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrStatusIsUnchanged)
}

func TestStatus_ValidateTransition_InvalidInput(t *testing.T) {
	assert.Error(t, order.Unknown.ValidateTransition(order.Scheduled, order.RoleAdmin))
	assert.Error(t, order.Scheduled.ValidateTransition(order.Status(99), order.RoleAdmin))
	assert.Error(t, order.Scheduled.ValidateTransition(order.Completed, order.RoleUnknown))
}
