package kernel

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultSequenceWidth is the zero padding of the first identifier of a prefix (ORD001).
	DefaultSequenceWidth = 3

	// fallbackDigits is how many trailing digits of the Unix millisecond clock a fallback id keeps.
	fallbackDigits = 6
)

// ParseSequence splits an identifier such as "ORD042" into its number and digit width.
// ok is false when id does not start with prefix or the suffix is not a decimal number.
func ParseSequence(prefix, id string) (number int, width int, ok bool) {
	suffix, found := strings.CutPrefix(id, prefix)
	if !found || suffix == "" {
		return 0, 0, false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, 0, false
	}
	return n, len(suffix), true
}

// NextSequentialID returns the identifier following the highest one in existing.
// Identifiers not matching prefix are ignored. The padding keeps the widest width seen and
// grows once the number needs more digits, so ORD999 is followed by ORD1000.
//
// Example:
//
//	kernel.NextSequentialID("ORD", []string{"ORD001", "ORD007"}) // "ORD008"
//	kernel.NextSequentialID("ORD", nil)                          // "ORD001"
func NextSequentialID(prefix string, existing []string) string {
	maxNumber, width := 0, DefaultSequenceWidth
	for _, id := range existing {
		n, w, ok := ParseSequence(prefix, id)
		if !ok {
			continue
		}
		if n > maxNumber {
			maxNumber = n
		}
		if w > width {
			width = w
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, maxNumber+1)
}

// FallbackID derives an identifier from the last digits of the current time. It is used
// when existing identifiers cannot be read, trading ordering for progress.
func FallbackID(prefix string, now time.Time) string {
	millis := now.UnixMilli()
	mod := int64(1)
	for range fallbackDigits {
		mod *= 10
	}
	return fmt.Sprintf("%s%0*d", prefix, fallbackDigits, millis%mod)
}
