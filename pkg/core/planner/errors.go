package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolicy matches every *InvalidPolicyError
	ErrInvalidPolicy = errors.New("invalid planning policy")

	// ErrEmptyCatalog matches every *EmptyCatalogError
	ErrEmptyCatalog = errors.New("empty catalog")
)

// InvalidPolicyError is returned before any allocation when the policy is unusable
type InvalidPolicyError struct {
	Size          SizeClass
	Shifts        int
	HoursPerShift int
	Reason        string
}

func (e *InvalidPolicyError) Error() string {
	if e.Size == "" {
		return fmt.Sprintf("invalid planning policy: %s", e.Reason)
	}
	return fmt.Sprintf("invalid planning policy for %s (%d shifts of %dh): %s",
		e.Size, e.Shifts, e.HoursPerShift, e.Reason)
}

func (e *InvalidPolicyError) Is(target error) bool {
	return target == ErrInvalidPolicy
}

// EmptyCatalogError is returned when no item is left after size filtering
type EmptyCatalogError struct {
	SizeFilter SizeFilter
}

func (e *EmptyCatalogError) Error() string {
	return fmt.Sprintf("no small or large items to plan for size filter %q", e.SizeFilter)
}

func (e *EmptyCatalogError) Is(target error) bool {
	return target == ErrEmptyCatalog
}
