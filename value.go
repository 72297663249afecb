package measure

import (
	"encoding/json"
	"fmt"
)

// Value is a quantity whose category is only known at runtime, as produced by
// ParseValue and Detect. Operations check the category tag of both operands
// and fail with an *IncompatibleUnitError on a mismatch.
//
// Use As to get a typed Quantity back before doing further arithmetic.
type Value struct {
	magnitude float64
	unit      AnyUnit
}

// NewValue creates a Value. It panics if u is nil (programming error).
func NewValue(magnitude float64, u AnyUnit) Value {
	if u == nil {
		panic(ErrNilUnit)
	}
	return Value{magnitude: magnitude, unit: u}
}

// Magnitude returns the numeric part.
func (v Value) Magnitude() float64 { return v.magnitude }

// Unit returns the unit.
func (v Value) Unit() AnyUnit { return v.unit }

// Category returns the runtime tag of the unit's category, or "" for the zero
// Value.
func (v Value) Category() string {
	if v.unit == nil {
		return ""
	}
	return v.unit.Category()
}

// ConvertTo expresses v in target.
func (v Value) ConvertTo(target AnyUnit) (Value, error) {
	if err := v.checkCategory(target); err != nil {
		return Value{}, err
	}
	return Value{magnitude: convert(v.magnitude, v.unit, target), unit: target}, nil
}

// Add converts other into v's unit and adds it. The result is in v's unit.
func (v Value) Add(other Value) (Value, error) {
	m, err := other.in(v)
	if err != nil {
		return Value{}, err
	}
	return Value{magnitude: v.magnitude + m, unit: v.unit}, nil
}

// Subtract converts other into v's unit and subtracts it. The result is in
// v's unit.
func (v Value) Subtract(other Value) (Value, error) {
	m, err := other.in(v)
	if err != nil {
		return Value{}, err
	}
	return Value{magnitude: v.magnitude - m, unit: v.unit}, nil
}

// Compare converts other into v's unit and returns -1, 0 or +1.
func (v Value) Compare(other Value) (int, error) {
	m, err := other.in(v)
	if err != nil {
		return 0, err
	}
	return compareMagnitudes(v.magnitude, m), nil
}

// Equal reports whether both values describe the same amount. Values of
// different categories are never equal.
func (v Value) Equal(other Value) bool {
	c, err := v.Compare(other)
	return err == nil && c == 0
}

// String renders the value with its unit's formatter.
func (v Value) String() string {
	if v.unit == nil {
		return ""
	}
	return v.unit.Format(v.magnitude)
}

// MarshalJSON implements json.Marshaler. Infinite and NaN magnitudes fail
// with ErrNonFinite.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.unit == nil {
		return []byte("null"), nil
	}
	if err := checkFinite(v.magnitude, v.unit); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Magnitude float64 `json:"magnitude"`
		Unit      string  `json:"unit"`
		Category  string  `json:"category"`
		Display   string  `json:"display"`
	}{
		Magnitude: v.magnitude,
		Unit:      v.unit.Name(),
		Category:  v.unit.Category(),
		Display:   v.String(),
	})
}

// As returns v as a Quantity of category C. It fails with an
// *IncompatibleUnitError when v belongs to another category.
func As[C Category](v Value) (Quantity[C], error) {
	want := categoryName[C]()
	if v.unit == nil {
		return Quantity[C]{}, fmt.Errorf("%w: zero value for %s", ErrNilUnit, want)
	}
	if got := v.unit.Category(); got != want {
		return Quantity[C]{}, &IncompatibleUnitError{From: got, To: want}
	}
	u, ok := v.unit.(*Unit[C])
	if !ok {
		// Same tag, different Go type: two categories share a name.
		return Quantity[C]{}, &IncompatibleUnitError{From: fmt.Sprintf("%T", v.unit), To: want}
	}
	return Quantity[C]{magnitude: v.magnitude, unit: u}, nil
}

// in returns v's magnitude expressed in target's unit.
func (v Value) in(target Value) (float64, error) {
	if target.unit == nil || v.unit == nil {
		return 0, ErrNilUnit
	}
	if err := target.checkCategory(v.unit); err != nil {
		return 0, err
	}
	return convert(v.magnitude, v.unit, target.unit), nil
}

func (v Value) checkCategory(other AnyUnit) error {
	if v.unit == nil || other == nil {
		return ErrNilUnit
	}
	if v.unit.Category() != other.Category() {
		return &IncompatibleUnitError{From: v.unit.Category(), To: other.Category()}
	}
	return nil
}
