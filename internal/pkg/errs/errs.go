package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrVersionConflict     = errors.New("version conflict")
	ErrTransitionIsInvalid = errors.New("status transition is invalid")
	ErrAccessIsDenied      = errors.New("access is denied")
)

// ObjectNotFoundError reports that an object referenced by ID does not exist.
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
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that fails a business rule.
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
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min..Max].
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
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitizeAny(e.Value), e.ParamName, sanitizeAny(e.Min), sanitizeAny(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
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
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports a malformed version supplied by a caller.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// VersionConflictError reports that a stored object moved past the version
// the caller read. Callers are expected to re-read and retry.
type VersionConflictError struct {
	ParamName string
	ID        any
	Expected  int64
	Cause     error
}

func NewVersionConflictError(paramName string, id any, expected int64) *VersionConflictError {
	return &VersionConflictError{ParamName: paramName, ID: id, Expected: expected}
}

func NewVersionConflictErrorWithCause(paramName string, id any, expected int64, cause error) *VersionConflictError {
	return &VersionConflictError{ParamName: paramName, ID: id, Expected: expected, Cause: cause}
}

func (e *VersionConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s is no longer at version %d",
		ErrVersionConflict, e.ParamName, sanitize(e.ID), e.Expected)
	return withCause(msg, e.Cause)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// TransitionIsInvalidError reports a status change the lifecycle does not allow.
type TransitionIsInvalidError struct {
	From  string
	To    string
	Cause error
}

func NewTransitionIsInvalidError(from, to fmt.Stringer) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{From: from.String(), To: to.String()}
}

func NewTransitionIsInvalidErrorWithCause(from, to fmt.Stringer, cause error) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{From: from.String(), To: to.String(), Cause: cause}
}

func (e *TransitionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrTransitionIsInvalid, e.From, e.To), e.Cause)
}

func (e *TransitionIsInvalidError) Unwrap() error {
	return ErrTransitionIsInvalid
}

// AccessIsDeniedError reports that an identity may not act on or observe a resource.
type AccessIsDeniedError struct {
	Subject  any
	Resource string
	Cause    error
}

func NewAccessIsDeniedError(subject any, resource string) *AccessIsDeniedError {
	return &AccessIsDeniedError{Subject: subject, Resource: resource}
}

func NewAccessIsDeniedErrorWithCause(subject any, resource string, cause error) *AccessIsDeniedError {
	return &AccessIsDeniedError{Subject: subject, Resource: resource, Cause: cause}
}

func (e *AccessIsDeniedError) Error() string {
	msg := fmt.Sprintf("%s: %s may not access %s", ErrAccessIsDenied, sanitize(e.Subject), sanitize(e.Resource))
	return withCause(msg, e.Cause)
}

func (e *AccessIsDeniedError) Unwrap() error {
	return ErrAccessIsDenied
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " ")
}

func sanitizeAny(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
