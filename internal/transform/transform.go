package transform

import (
	"fmt"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
)

// ProfileTransform defines the interface for all profile transformations.
// Transforms are composable what-if operations: a raise, losing the NPWP, switching regime.
type ProfileTransform interface {
	// Apply returns a modified copy of base. Profiles are values, base is never changed.
	Apply(base compare.Profile) (compare.Profile, error)

	// Name returns a short identifier for this transform (e.g., "adjust_income").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base compare.Profile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base compare.Profile, transforms []ProfileTransform) (compare.Profile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Rename returns a copy of p under a new name
func Rename(p compare.Profile, name string) compare.Profile {
	switch v := p.(type) {
	case compare.EmployeeProfile:
		v.Name = name
		return v
	case compare.FreelancerProfile:
		v.Name = name
		return v
	case compare.SmallBusinessProfile:
		v.Name = name
		return v
	default:
		return p
	}
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
