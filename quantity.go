package measure

import (
	"cmp"
	"math"
)

// Tolerance is the relative difference under which two magnitudes are
// considered equal by Equal and Compare. Conversions go through float64
// factors, so a round trip through another unit may be off by a few ULPs.
const Tolerance = 1e-9

// Quantity is a magnitude in a unit of category C.
//
// The category is part of the type: a Quantity[length.Length] cannot be added
// to a Quantity[storage.Storage]. Quantities are immutable values; every
// operation returns a new one.
//
// Examples:
//   - New(10, length.Kilometer).ConvertTo(length.Meter) = 10000 meters
//   - New(10, timeunit.Minute).Add(New(1, timeunit.Hour)) = 70 minutes
type Quantity[C Category] struct {
	magnitude float64
	unit      *Unit[C]
}

// New creates a quantity. It panics if u is nil (programming error).
func New[C Category, N Number](magnitude N, u *Unit[C]) Quantity[C] {
	if u == nil {
		panic(ErrNilUnit)
	}
	return Quantity[C]{magnitude: float64(magnitude), unit: u}
}

// Magnitude returns the numeric part of the quantity.
func (q Quantity[C]) Magnitude() float64 { return q.magnitude }

// Unit returns the unit of the quantity.
func (q Quantity[C]) Unit() *Unit[C] { return q.unit }

// Conversion

// ConvertTo returns the same amount expressed in target. Converting to the
// quantity's own unit returns an identical value.
func (q Quantity[C]) ConvertTo(target *Unit[C]) Quantity[C] {
	q.mustUnit()
	if target == nil {
		panic(ErrNilUnit)
	}
	return Quantity[C]{magnitude: convert(q.magnitude, q.unit, target), unit: target}
}

// In returns the magnitude of the quantity expressed in target.
func (q Quantity[C]) In(target *Unit[C]) float64 {
	return q.ConvertTo(target).magnitude
}

// Arithmetic operations

// Add converts other into q's unit and adds the magnitudes. The result is
// always in q's unit.
func (q Quantity[C]) Add(other Quantity[C]) Quantity[C] {
	return Quantity[C]{magnitude: q.magnitude + other.In(q.mustUnit()), unit: q.unit}
}

// Subtract converts other into q's unit and subtracts it. The result is in
// q's unit and may be negative.
func (q Quantity[C]) Subtract(other Quantity[C]) Quantity[C] {
	return Quantity[C]{magnitude: q.magnitude - other.In(q.mustUnit()), unit: q.unit}
}

// Scale multiplies the magnitude by k, keeping the unit.
func (q Quantity[C]) Scale(k float64) Quantity[C] {
	return Quantity[C]{magnitude: q.magnitude * k, unit: q.mustUnit()}
}

// Negate returns the quantity with the opposite sign.
func (q Quantity[C]) Negate() Quantity[C] {
	return Quantity[C]{magnitude: -q.magnitude, unit: q.mustUnit()}
}

// Abs returns the absolute value.
func (q Quantity[C]) Abs() Quantity[C] {
	return Quantity[C]{magnitude: math.Abs(q.magnitude), unit: q.mustUnit()}
}

// Comparison methods

// Compare converts other into q's unit and returns -1, 0 or +1. Magnitudes
// within Tolerance of each other compare as equal.
func (q Quantity[C]) Compare(other Quantity[C]) int {
	return compareMagnitudes(q.magnitude, other.In(q.mustUnit()))
}

// Equal reports whether both quantities describe the same amount, whatever
// their units: 1 kilometer equals 1000 meters.
func (q Quantity[C]) Equal(other Quantity[C]) bool {
	return q.Compare(other) == 0
}

// EqualWithin reports whether other, converted into q's unit, is within the
// relative tolerance tol of q.
func (q Quantity[C]) EqualWithin(other Quantity[C], tol float64) bool {
	return nearlyEqual(q.magnitude, other.In(q.mustUnit()), tol)
}

// LessThan returns true if q is smaller than other.
func (q Quantity[C]) LessThan(other Quantity[C]) bool { return q.Compare(other) < 0 }

// GreaterThan returns true if q is larger than other.
func (q Quantity[C]) GreaterThan(other Quantity[C]) bool { return q.Compare(other) > 0 }

// Min returns the smaller of two quantities, each in its own unit.
func (q Quantity[C]) Min(other Quantity[C]) Quantity[C] {
	if other.LessThan(q) {
		return other
	}
	return q
}

// Max returns the larger of two quantities, each in its own unit.
func (q Quantity[C]) Max(other Quantity[C]) Quantity[C] {
	if other.GreaterThan(q) {
		return other
	}
	return q
}

// IsZero returns true if the magnitude is zero.
func (q Quantity[C]) IsZero() bool { return q.magnitude == 0 }

// IsPositive returns true if the magnitude is greater than zero.
func (q Quantity[C]) IsPositive() bool { return q.magnitude > 0 }

// IsNegative returns true if the magnitude is less than zero.
func (q Quantity[C]) IsNegative() bool { return q.magnitude < 0 }

// Formatting methods

// String renders the quantity with its unit's formatter, e.g. "3 weeks".
// The zero Quantity renders as "".
func (q Quantity[C]) String() string {
	if q.unit == nil {
		return ""
	}
	return q.unit.Format(q.magnitude)
}

// Value erases the category, for callers working with category names.
func (q Quantity[C]) Value() Value {
	return Value{magnitude: q.magnitude, unit: q.mustUnit()}
}

// Sum adds quantities left to right. The result is in first's unit.
func Sum[C Category](first Quantity[C], rest ...Quantity[C]) Quantity[C] {
	result := first
	for _, q := range rest {
		result = result.Add(q)
	}
	return result
}

// Helper functions

// mustUnit panics on the zero Quantity, which has no unit.
func (q Quantity[C]) mustUnit() *Unit[C] {
	if q.unit == nil {
		panic(ErrNilUnit)
	}
	return q.unit
}

// convert applies magnitude * (from.factor / to.factor). The same unit on both
// sides returns the magnitude untouched so identity conversion is exact.
func convert(magnitude float64, from, to AnyUnit) float64 {
	if from == to {
		return magnitude
	}
	return magnitude * (from.Factor() / to.Factor())
}

func compareMagnitudes(a, b float64) int {
	if nearlyEqual(a, b, Tolerance) {
		return 0
	}
	return cmp.Compare(a, b)
}

func nearlyEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}
