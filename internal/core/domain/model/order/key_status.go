package order

import (
	"errors"
	"fmt"

	"ordertrack/internal/pkg/errs"
)

// KeyStatus tracks the physical access key of the property. Handed means the key has left
// central custody; Pending means it is held centrally again. The only accepted change is
// Handed -> Pending.
type KeyStatus int

const (
	KeyUnknown KeyStatus = iota
	KeyPending
	KeyHanded
)

var keyStatusNames = map[KeyStatus]string{
	KeyUnknown: "unknown",
	KeyPending: "pending",
	KeyHanded:  "handed",
}

var (
	ErrKeyStatusCannotReturnToHanded = errors.New("key status cannot move from pending back to handed")
	ErrKeyStatusResetIsNotConfirmed  = errors.New("moving the key back to pending requires confirmation")
	ErrKeyStatusIsUnchanged          = errors.New("key already has the requested status")
)

func ParseKeyStatus(s string) (KeyStatus, error) {
	for k, name := range keyStatusNames {
		if k != KeyUnknown && name == s {
			return k, nil
		}
	}
	return KeyUnknown, errs.NewValueIsInvalidErrorWithCause(
		"key status is invalid", fmt.Errorf("%q is not a valid key status", s))
}

func (k KeyStatus) Validate() error {
	if _, ok := keyStatusNames[k]; !ok || k == KeyUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"key status is invalid", fmt.Errorf("%d is not a valid key status", k))
	}
	return nil
}

func (k KeyStatus) String() string {
	if name, ok := keyStatusNames[k]; ok {
		return name
	}
	return keyStatusNames[KeyUnknown]
}

// ValidateTransition checks k -> to. confirmed is the caller's explicit re-confirmation.
func (k KeyStatus) ValidateTransition(to KeyStatus, confirmed bool) error {
	if err := errors.Join(k.Validate(), to.Validate()); err != nil {
		return err
	}

	switch {
	case k == to:
		return errs.NewValueIsInvalidErrorWithCause("key status is invalid", ErrKeyStatusIsUnchanged)
	case to == KeyHanded:
		return errs.NewValueIsInvalidErrorWithCause("key status is invalid", ErrKeyStatusCannotReturnToHanded)
	case !confirmed:
		return errs.NewValueIsInvalidErrorWithCause("key status is invalid", ErrKeyStatusResetIsNotConfirmed)
	}

	return nil
}
