package measure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Text, JSON and YAML encodings of Quantity.
//
// The text form is the plural form "10 kilometers", independent of the unit's
// display formatter, so it always parses back. Decoding resolves the unit
// through the registry of C, which must be registered in the catalog.
// Infinite and NaN magnitudes do not encode and fail with ErrNonFinite.

// MarshalText implements encoding.TextMarshaler.
func (q Quantity[C]) MarshalText() ([]byte, error) {
	if q.unit == nil {
		return nil, fmt.Errorf("%w: marshal zero %s quantity", ErrNilUnit, categoryName[C]())
	}
	if err := checkFinite(q.magnitude, q.unit); err != nil {
		return nil, err
	}
	return []byte(PluralFormatter.Format(q.magnitude, q.unit)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quantity[C]) UnmarshalText(text []byte) error {
	parsed, err := Parse[C](string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

type quantityJSON struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
	Display   string  `json:"display,omitempty"`
}

// MarshalJSON implements json.Marshaler. The result is an object such as
// {"magnitude":10,"unit":"kilometer","display":"10 kilometers"}.
func (q Quantity[C]) MarshalJSON() ([]byte, error) {
	if q.unit == nil {
		return []byte("null"), nil
	}
	if err := checkFinite(q.magnitude, q.unit); err != nil {
		return nil, err
	}
	return json.Marshal(quantityJSON{
		Magnitude: q.magnitude,
		Unit:      q.unit.Name(),
		Display:   q.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the object written by
// MarshalJSON or a string in text form, "10 km". null leaves q unchanged.
func (q *Quantity[C]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return q.UnmarshalText([]byte(s))
	}

	var raw quantityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return &MalformedQuantityError{Input: string(data), Reason: err.Error()}
	}

	r, err := Lookup[C]()
	if err != nil {
		return err
	}
	u, err := r.Resolve(raw.Unit)
	if err != nil {
		return err
	}
	*q = Quantity[C]{magnitude: raw.Magnitude, unit: u}
	return nil
}

// MarshalYAML implements yaml.Marshaler. Quantities are written as a text
// scalar.
func (q Quantity[C]) MarshalYAML() (any, error) {
	text, err := q.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. It accepts a scalar in text form.
func (q *Quantity[C]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &MalformedQuantityError{
			Input:  node.Value,
			Reason: fmt.Sprintf("line %d: want a scalar such as \"10 km\"", node.Line),
		}
	}
	return q.UnmarshalText([]byte(node.Value))
}

// checkFinite rejects magnitudes that have no JSON or parseable text form.
func checkFinite(magnitude float64, u AnyUnit) error {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return fmt.Errorf("%w: %v %s", ErrNonFinite, magnitude, u.Plural())
	}
	return nil
}
