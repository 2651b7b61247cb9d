package domain

import (
	"errors"
	"fmt"
)

// DomainError keeps backward compatibility for generic codes.
type DomainError struct {
	Code string
	Err  error
}

func (e DomainError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	if e.Code == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e DomainError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// InvalidTransitionError reports an alert status change that is not legal
// from the current status. It indicates stale caller state, not bad input.
type InvalidTransitionError struct {
	From string
	To   string
	Err  error
}

func (e InvalidTransitionError) Error() string {
	if e.From == "" && e.To == "" {
		return "invalid transition"
	}
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

func (e InvalidTransitionError) Unwrap() error { return e.Err }

// ConcurrentModificationError reports a lost update: the stored status no
// longer matched the expected prior status when the transition was applied.
type ConcurrentModificationError struct {
	Resource string
	Err      error
}

func (e ConcurrentModificationError) Error() string {
	if e.Resource == "" {
		return "concurrent modification"
	}
	return fmt.Sprintf("%s was modified concurrently", e.Resource)
}

func (e ConcurrentModificationError) Unwrap() error { return e.Err }

// InvariantViolationError marks states that upstream clamping should have
// made impossible (e.g. a negative quantity reaching the aggregator).
type InvariantViolationError struct {
	Msg string
	Err error
}

func (e InvariantViolationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "computation invariant violated"
}

func (e InvariantViolationError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsConcurrentModification(err error) bool {
	var target ConcurrentModificationError
	return errors.As(err, &target)
}

func IsInvariantViolation(err error) bool {
	var target InvariantViolationError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
