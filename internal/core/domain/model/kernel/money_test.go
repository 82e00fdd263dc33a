package kernel_test

import (
	"testing"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts zero and positive amounts", func(t *testing.T) {
		for _, v := range []string{"0", "8800", "12.50"} {
			m, err := kernel.NewMoney(decimal.RequireFromString(v))

			require.NoError(t, err)
			assert.True(t, m.Decimal().Equal(decimal.RequireFromString(v)))
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	price := kernel.MustMoney(11000)

	assert.True(t, price.Times(3).IsEqual(kernel.MustMoney(33000)))
	assert.True(t, price.Add(kernel.MustMoney(4400)).IsEqual(kernel.MustMoney(15400)))
	assert.True(t, kernel.Money{}.IsZero())
	assert.Equal(t, "11000.00", price.String())
}
