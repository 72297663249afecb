// Package measure provides typed units of measure for Go applications.
//
// Quantities carry their unit category in their type. A length cannot be added
// to a storage size: the mistake is rejected by the compiler, not at runtime.
// It provides:
//
//   - Unit categories as distinct Go types (length, storage, time)
//   - Exact identity conversion and factor based conversion between units
//   - Arithmetic and comparison that normalize to the left operand's unit
//   - Case insensitive parsing of "10 km", "10kb" or "1.5 hours"
//   - Pluggable display formatting, including locale aware output
//   - Text, JSON and YAML codecs
//
// # Quick Start
//
//	import (
//	    "github.com/xraph/measure"
//	    "github.com/xraph/measure/timeunit"
//	)
//
//	total := measure.New(10, timeunit.Minute).Add(measure.New(1, timeunit.Hour))
//	fmt.Println(total) // 70 minutes
//
// # Core Concepts
//
// A Category is a Go type, normally an empty struct, naming a family of
// mutually convertible units:
//
//	type Length struct{}
//
//	func (Length) CategoryName() string { return "length" }
//
// Units are package level singletons built with NewUnit. The factor expresses
// one unit in the category's base unit:
//
//	var Kilometer = measure.NewUnit[Length]("kilometer", 1000, measure.WithSymbol("km"))
//
// A Registry maps the names of a category's units to the units and parses
// text. Category packages register their registry with the catalog from init,
// which lets callers reach any category by type or by name:
//
//	q, err := measure.Parse[length.Length]("10 km")
//	v, err := measure.ParseValue("storage", "10 mb")
//
// # Arithmetic
//
// Add, Subtract and Compare convert the right operand into the left operand's
// unit. The result is always in the left operand's unit:
//
//	two := measure.New(2, timeunit.Week)
//	two.Add(measure.New(1, timeunit.Week))     // 3 weeks
//	two.Subtract(measure.New(3, timeunit.Day)) // 1.5714285714285714 weeks
//
// Magnitudes are float64. Equal and Compare treat magnitudes within a relative
// Tolerance of 1e-9 as equal, so a round trip through another unit compares
// equal to the original.
//
// # Dynamic Values
//
// Code that only knows the category at runtime works with Value. Its
// operations check categories and return an *IncompatibleUnitError on a
// mismatch. As turns a Value back into a typed Quantity.
package measure
