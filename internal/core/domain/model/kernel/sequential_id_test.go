package kernel_test

import (
	"fmt"
	"testing"
	"time"

	"ordertrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestParseSequence(t *testing.T) {
	testCases := []struct {
		id     string
		number int
		width  int
		ok     bool
	}{
		{id: "ORD001", number: 1, width: 3, ok: true},
		{id: "ORD1000", number: 1000, width: 4, ok: true},
		{id: "ORD", ok: false},
		{id: "ORDX01", ok: false},
		{id: "NTF001", ok: false},
		{id: "ORD-12", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			n, w, ok := kernel.ParseSequence("ORD", tc.id)

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.number, n)
				assert.Equal(t, tc.width, w)
			}
		})
	}
}

func TestNextSequentialID(t *testing.T) {
	t.Run("first identifier", func(t *testing.T) {
		assert.Equal(t, "ORD001", kernel.NextSequentialID("ORD", nil))
	})

	t.Run("increments the maximum, not the last", func(t *testing.T) {
		assert.Equal(t, "ORD008", kernel.NextSequentialID("ORD", []string{"ORD007", "ORD002", "ORD005"}))
	})

	t.Run("ignores foreign identifiers", func(t *testing.T) {
		assert.Equal(t, "ORD003", kernel.NextSequentialID("ORD", []string{"ORD002", "CAT900", "legacy-77"}))
	})

	t.Run("grows padding instead of wrapping", func(t *testing.T) {
		existing := make([]string, 0, 999)
		for i := 1; i <= 999; i++ {
			existing = append(existing, fmt.Sprintf("ORD%03d", i))
		}

		assert.Equal(t, "ORD1000", kernel.NextSequentialID("ORD", existing))
	})

	t.Run("keeps the widest padding seen", func(t *testing.T) {
		assert.Equal(t, "ORD00043", kernel.NextSequentialID("ORD", []string{"ORD00042"}))
	})
}

func TestFallbackID(t *testing.T) {
	now := time.UnixMilli(1_700_000_123_456)

	assert.Equal(t, "ORD123456", kernel.FallbackID("ORD", now))
	assert.Equal(t, "ORD000007", kernel.FallbackID("ORD", time.UnixMilli(7)))
}
