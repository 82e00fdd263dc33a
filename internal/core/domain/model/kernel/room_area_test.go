package kernel_test

import (
	"math"
	"testing"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomArea(t *testing.T) {
	t.Run("valid area", func(t *testing.T) {
		area, err := kernel.NewRoomArea(45)

		require.NoError(t, err)
		require.NoError(t, area.Validate())
		assert.InDelta(t, 45.0, area.SquareMeters(), 0)
	})

	t.Run("out of range", func(t *testing.T) {
		for _, v := range []float64{-1, kernel.RoomAreaMax + 1, math.NaN(), math.Inf(1)} {
			_, err := kernel.NewRoomArea(v)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var area kernel.RoomArea

		require.ErrorIs(t, area.Validate(), kernel.ErrRoomAreaIsNotConstructed)
	})
}
