package measure

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// Arithmetic and conversion errors
	ErrIncompatibleUnit = errors.New("measure: incompatible unit categories")

	// Parsing errors
	ErrUnknownUnit       = errors.New("measure: unknown unit")
	ErrMalformedQuantity = errors.New("measure: malformed quantity")
	ErrAmbiguousUnit     = errors.New("measure: unit name matches several categories")

	// Encoding errors
	ErrNonFinite = errors.New("measure: non-finite magnitude")

	// Configuration errors
	ErrInvalidFactor     = errors.New("measure: invalid conversion factor")
	ErrDuplicateUnit     = errors.New("measure: duplicate unit name")
	ErrInvalidUnitName   = errors.New("measure: invalid unit name")
	ErrDuplicateCategory = errors.New("measure: duplicate category")
	ErrUnknownCategory   = errors.New("measure: unknown category")
	ErrUnregisteredUnit  = errors.New("measure: unit not registered")
	ErrNilUnit           = errors.New("measure: nil unit")
)

// IncompatibleUnitError reports an operation attempted across two unit
// categories.
type IncompatibleUnitError struct {
	From string
	To   string
}

func (e *IncompatibleUnitError) Error() string {
	return fmt.Sprintf("measure: cannot combine %s with %s", e.From, e.To)
}

// Unwrap returns ErrIncompatibleUnit.
func (e *IncompatibleUnitError) Unwrap() error { return ErrIncompatibleUnit }

// UnknownUnitError reports a unit name that does not resolve in a category.
// An empty Name means the input carried no unit and the category has no
// default unit for bare numbers.
type UnknownUnitError struct {
	Category string
	Name     string
}

func (e *UnknownUnitError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("measure: missing %s unit and no default unit is defined", e.Category)
	}
	return fmt.Sprintf("measure: unknown %s unit %q", e.Category, e.Name)
}

// Unwrap returns ErrUnknownUnit.
func (e *UnknownUnitError) Unwrap() error { return ErrUnknownUnit }

// MalformedQuantityError reports input that has no usable numeric token.
type MalformedQuantityError struct {
	Input  string
	Reason string
}

func (e *MalformedQuantityError) Error() string {
	return fmt.Sprintf("measure: malformed quantity %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrMalformedQuantity.
func (e *MalformedQuantityError) Unwrap() error { return ErrMalformedQuantity }

// DuplicateUnitError reports a name already bound to another unit of the same
// category.
type DuplicateUnitError struct {
	Category string
	Name     string
	Existing string
	Incoming string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("measure: %s name %q already maps to %s, cannot register %s",
		e.Category, e.Name, e.Existing, e.Incoming)
}

// Unwrap returns ErrDuplicateUnit.
func (e *DuplicateUnitError) Unwrap() error { return ErrDuplicateUnit }

// IsIncompatible returns true if the error is a cross-category operation.
func IsIncompatible(err error) bool {
	return errors.Is(err, ErrIncompatibleUnit)
}

// IsParseError returns true if the error came from parsing a quantity or a
// unit name.
func IsParseError(err error) bool {
	return errors.Is(err, ErrUnknownUnit) ||
		errors.Is(err, ErrMalformedQuantity) ||
		errors.Is(err, ErrAmbiguousUnit) ||
		errors.Is(err, ErrUnknownCategory)
}

// IsConfigError returns true if the error is a unit or category definition
// problem. These are detected while registries are built and are not
// recoverable at query time.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidFactor) ||
		errors.Is(err, ErrDuplicateUnit) ||
		errors.Is(err, ErrInvalidUnitName) ||
		errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrNilUnit)
}
