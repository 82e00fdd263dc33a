package order_test

import (
	"testing"

	"ordertrack/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStatus_ValidateTransition(t *testing.T) {
	t.Run("handed to pending with confirmation", func(t *testing.T) {
		assert.NoError(t, order.KeyHanded.ValidateTransition(order.KeyPending, true))
	})

	t.Run("handed to pending without confirmation", func(t *testing.T) {
		err := order.KeyHanded.ValidateTransition(order.KeyPending, false)
		assert.ErrorIs(t, err, order.ErrKeyStatusResetIsNotConfirmed)
	})

	t.Run("pending back to handed is always rejected", func(t *testing.T) {
		for _, confirmed := range []bool{true, false} {
			err := order.KeyPending.ValidateTransition(order.KeyHanded, confirmed)
			assert.ErrorIs(t, err, order.ErrKeyStatusCannotReturnToHanded)
		}
	})

	t.Run("unchanged", func(t *testing.T) {
		err := order.KeyPending.ValidateTransition(order.KeyPending, true)
		assert.ErrorIs(t, err, order.ErrKeyStatusIsUnchanged)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, order.KeyUnknown.ValidateTransition(order.KeyPending, true))
	})
}

func TestParseKeyStatus(t *testing.T) {
	k, err := order.ParseKeyStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, order.KeyPending, k)
	assert.Equal(t, "pending", k.String())

	_, err = order.ParseKeyStatus("lost")
	assert.Error(t, err)
}
