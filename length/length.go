// Package length defines the length category with metric and imperial units.
package length

import "github.com/xraph/measure"

// Length is the category of length units.
type Length struct{}

// CategoryName implements measure.Category.
func (Length) CategoryName() string { return "length" }

// Length units. Factors are in meters.
var (
	Millimeter   = measure.NewUnit[Length]("millimeter", 0.001, measure.WithSymbol("mm"), measure.WithAliases("millimetre", "millimetres"))
	Centimeter   = measure.NewUnit[Length]("centimeter", 0.01, measure.WithSymbol("cm"), measure.WithAliases("centimetre", "centimetres"))
	Meter        = measure.NewUnit[Length]("meter", 1, measure.WithSymbol("m"), measure.WithAliases("metre", "metres"))
	Kilometer    = measure.NewUnit[Length]("kilometer", 1000, measure.WithSymbol("km"), measure.WithAliases("kilometre", "kilometres"))
	Inch         = measure.NewUnit[Length]("inch", 0.0254, measure.WithPlural("inches"), measure.WithSymbol("in"))
	Foot         = measure.NewUnit[Length]("foot", 0.3048, measure.WithPlural("feet"), measure.WithSymbol("ft"))
	Yard         = measure.NewUnit[Length]("yard", 0.9144, measure.WithSymbol("yd"))
	Mile         = measure.NewUnit[Length]("mile", 1609.344, measure.WithSymbol("mi"))
	NauticalMile = measure.NewUnit[Length]("nautical mile", 1852, measure.WithSymbol("nmi"))
)

func init() {
	measure.RegisterCategory(newRegistry)
}

func newRegistry() *measure.Registry[Length] {
	r := measure.NewRegistry[Length]()
	for _, u := range []*measure.Unit[Length]{
		Millimeter, Centimeter, Meter, Kilometer,
		Inch, Foot, Yard, Mile, NauticalMile,
	} {
		r.MustRegister(u)
	}
	return r
}

// Registry returns the length registry.
func Registry() *measure.Registry[Length] {
	r, err := measure.Lookup[Length]()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads a length such as "10 km" or "3 feet". A unit is required.
func Parse(text string) (measure.Quantity[Length], error) {
	return Registry().Parse(text)
}

// MustParse is like Parse but panics on error.
func MustParse(text string) measure.Quantity[Length] {
	return Registry().MustParse(text)
}

// Of creates a length.
func Of[N measure.Number](magnitude N, u *measure.Unit[Length]) measure.Quantity[Length] {
	return measure.New(magnitude, u)
}
