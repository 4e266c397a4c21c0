package order

import (
	"fmt"
	"strings"

	"fueldelivery/internal/pkg/errs"
)

// Status is the lifecycle state of a fuel order.
//
//	PENDING ──> IN_PROGRESS ──> COMPLETED
//	   │             │
//	   └──────┬──────┘
//	          v
//	      CANCELLED
//
// COMPLETED and CANCELLED are terminal: no transition leaves them, not even
// one back to the same status.
type Status int

const (
	// Unknown catches uninitialized values; it is never stored.
	Unknown Status = iota
	Pending
	InProgress
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:    "UNKNOWN",
	Pending:    "PENDING",
	InProgress: "IN_PROGRESS",
	Completed:  "COMPLETED",
	Cancelled:  "CANCELLED",
}

// allowedTransitions lists every edge of the lifecycle graph.
var allowedTransitions = map[Status][]Status{
	Pending:    {InProgress, Cancelled},
	InProgress: {Completed, Cancelled},
}

// ParseStatus converts the wire form ("PENDING", "in_progress", ...) into a Status.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether the order accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Transition validates moving from current to requested and returns the resulting status.
//
// Requesting the current status of a non-terminal order is an idempotent no-op
// and returns current. Any request against a terminal status fails, so a second
// cancel surfaces as an error instead of silently succeeding.
//
// Errors:
//   - ValueIsInvalidError when either status is not a lifecycle value
//   - TransitionIsInvalidError when the edge is not part of the lifecycle
func Transition(current, requested Status) (Status, error) {
	if err := current.Validate(); err != nil {
		return Unknown, err
	}
	if err := requested.Validate(); err != nil {
		return Unknown, err
	}

	if current.IsTerminal() {
		return Unknown, errs.NewTransitionIsInvalidErrorWithCause(
			current, requested, fmt.Errorf("%s is a terminal status", current),
		)
	}
	if current == requested {
		return current, nil
	}
	for _, next := range allowedTransitions[current] {
		if next == requested {
			return requested, nil
		}
	}
	return Unknown, errs.NewTransitionIsInvalidError(current, requested)
}

// CanTransition reports whether Transition(s, requested) would succeed.
func (s Status) CanTransition(requested Status) bool {
	_, err := Transition(s, requested)
	return err == nil
}

// ValidateCanAssignDriver allows driver (re)assignment only while the order is active.
func (s Status) ValidateCanAssignDriver() error {
	if s != Pending && s != InProgress {
		return errs.NewTransitionIsInvalidErrorWithCause(
			s, s, fmt.Errorf("%s is not a valid status to assign a driver", s),
		)
	}
	return nil
}
