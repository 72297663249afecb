// Package storage defines the data storage category, from bits to petabytes.
//
// Multiples are binary: a kilobyte is 1024 bytes. The decimal and binary
// spellings (kb, kib) name the same unit. A number without a unit is read as
// bits.
package storage

import "github.com/xraph/measure"

// Storage is the category of data storage units.
type Storage struct{}

// CategoryName implements measure.Category.
func (Storage) CategoryName() string { return "storage" }

// Storage units. Factors are in bytes.
//
// Names fold case, so "B" and "b" both name the byte and Bit has no one
// letter symbol.
var (
	Bit      = measure.NewUnit[Storage]("bit", 0.125)
	Byte     = measure.NewUnit[Storage]("byte", 1, measure.WithSymbol("B"))
	Kilobyte = measure.NewUnit[Storage]("kilobyte", 1<<10, measure.WithSymbol("KB"), measure.WithAliases("kib", "kibibyte", "kibibytes"))
	Megabyte = measure.NewUnit[Storage]("megabyte", 1<<20, measure.WithSymbol("MB"), measure.WithAliases("mib", "mebibyte", "mebibytes"))
	Gigabyte = measure.NewUnit[Storage]("gigabyte", 1<<30, measure.WithSymbol("GB"), measure.WithAliases("gib", "gibibyte", "gibibytes"))
	Terabyte = measure.NewUnit[Storage]("terabyte", 1<<40, measure.WithSymbol("TB"), measure.WithAliases("tib", "tebibyte", "tebibytes"))
	Petabyte = measure.NewUnit[Storage]("petabyte", 1<<50, measure.WithSymbol("PB"), measure.WithAliases("pib", "pebibyte", "pebibytes"))
)

func init() {
	measure.RegisterCategory(newRegistry)
}

func newRegistry() *measure.Registry[Storage] {
	r := measure.NewRegistry[Storage]()
	for _, u := range []*measure.Unit[Storage]{Bit, Byte, Kilobyte, Megabyte, Gigabyte, Terabyte, Petabyte} {
		r.MustRegister(u)
	}
	if err := r.SetDefault(Bit); err != nil {
		panic(err)
	}
	return r
}

// Registry returns the storage registry.
func Registry() *measure.Registry[Storage] {
	r, err := measure.Lookup[Storage]()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads a storage size such as "10 mb", "1.5GiB" or "512". A bare
// number is in bits.
func Parse(text string) (measure.Quantity[Storage], error) {
	return Registry().Parse(text)
}

// MustParse is like Parse but panics on error.
func MustParse(text string) measure.Quantity[Storage] {
	return Registry().MustParse(text)
}

// Of creates a storage size.
func Of[N measure.Number](magnitude N, u *measure.Unit[Storage]) measure.Quantity[Storage] {
	return measure.New(magnitude, u)
}
