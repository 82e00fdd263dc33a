package errs

import (
	"errors"
	"fmt"
	"strings"
)

// sentinel is a comparable error value that can belong to a wider error class.
type sentinel struct {
	msg    string
	parent error
}

func (s *sentinel) Error() string { return s.msg }

func (s *sentinel) Unwrap() error { return s.parent }

var (
	// ErrValidation is the class of every error raised before a write because input or a
	// requested state change violates a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrStore is the class of every error coming from the record store.
	ErrStore = errors.New("store error")

	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = error(&sentinel{msg: "value is invalid", parent: ErrValidation})
	ErrValueIsOutOfRange = error(&sentinel{msg: "value is out of range", parent: ErrValidation})
	ErrValueIsRequired   = error(&sentinel{msg: "value is required", parent: ErrValidation})
)

// unwrapWithCause keeps the sentinel first so errors.Is matches both the class and the cause.
func unwrapWithCause(sentinelErr, cause error) []error {
	if cause == nil {
		return []error{sentinelErr}
	}
	return []error{sentinelErr, cause}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError is returned when a record with the given id does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() []error {
	return unwrapWithCause(ErrObjectNotFound, e.Cause)
}

// ValueIsInvalidError reports a value that breaks a rule of the domain.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() []error {
	return unwrapWithCause(ErrValueIsInvalid, e.Cause)
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() []error {
	return unwrapWithCause(ErrValueIsOutOfRange, e.Cause)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() []error {
	return unwrapWithCause(ErrValueIsRequired, e.Cause)
}

// StoreError wraps a failure of the remote record store. It is never retried by the
// store adapter; Transient only tells the caller whether a retry could succeed.
type StoreError struct {
	Op        string
	Table     string
	Transient bool
	Cause     error
}

func NewStoreError(op, table string, cause error) *StoreError {
	return &StoreError{Op: op, Table: table, Cause: cause}
}

func NewTransientStoreError(op, table string, cause error) *StoreError {
	return &StoreError{Op: op, Table: table, Transient: true, Cause: cause}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrStore, e.Op, e.Table, e.Cause)
}

func (e *StoreError) Unwrap() []error {
	return unwrapWithCause(ErrStore, e.Cause)
}

// IsValidation reports whether err was raised by input or transition validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err denotes an unknown record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
