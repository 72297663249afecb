// Package timeunit defines the time category, from nanoseconds to weeks.
//
// The nanosecond is the base unit, so every factor is exact and quantities
// convert to and from time.Duration without rounding for whole nanoseconds.
package timeunit

import (
	"math"
	"time"

	"github.com/xraph/measure"
)

// Time is the category of time units.
type Time struct{}

// CategoryName implements measure.Category.
func (Time) CategoryName() string { return "time" }

// Time units. Factors are in nanoseconds.
var (
	Nanosecond  = measure.NewUnit[Time]("nanosecond", 1, measure.WithSymbol("ns"))
	Microsecond = measure.NewUnit[Time]("microsecond", 1e3, measure.WithSymbol("µs"), measure.WithAliases("us", "μs"))
	Millisecond = measure.NewUnit[Time]("millisecond", 1e6, measure.WithSymbol("ms"))
	Second      = measure.NewUnit[Time]("second", 1e9, measure.WithSymbol("s"), measure.WithAliases("sec", "secs"))
	Minute      = measure.NewUnit[Time]("minute", 60e9, measure.WithSymbol("min"), measure.WithAliases("mins"))
	Hour        = measure.NewUnit[Time]("hour", 3600e9, measure.WithSymbol("h"), measure.WithAliases("hr", "hrs"))
	Day         = measure.NewUnit[Time]("day", 86400e9, measure.WithSymbol("d"))
	Week        = measure.NewUnit[Time]("week", 604800e9, measure.WithSymbol("wk"), measure.WithAliases("wks"))
)

func init() {
	measure.RegisterCategory(newRegistry)
}

func newRegistry() *measure.Registry[Time] {
	r := measure.NewRegistry[Time]()
	for _, u := range []*measure.Unit[Time]{Nanosecond, Microsecond, Millisecond, Second, Minute, Hour, Day, Week} {
		r.MustRegister(u)
	}
	return r
}

// Registry returns the time registry.
func Registry() *measure.Registry[Time] {
	r, err := measure.Lookup[Time]()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads a time quantity such as "10 minutes" or "1.5h". A unit is
// required.
func Parse(text string) (measure.Quantity[Time], error) {
	return Registry().Parse(text)
}

// MustParse is like Parse but panics on error.
func MustParse(text string) measure.Quantity[Time] {
	return Registry().MustParse(text)
}

// Of creates a time quantity.
func Of[N measure.Number](magnitude N, u *measure.Unit[Time]) measure.Quantity[Time] {
	return measure.New(magnitude, u)
}

// Duration converts q to a time.Duration, truncating below a nanosecond.
// Values outside the range of time.Duration saturate.
func Duration(q measure.Quantity[Time]) time.Duration {
	ns := q.In(Nanosecond)
	switch {
	case ns >= float64(math.MaxInt64):
		return time.Duration(math.MaxInt64)
	case ns <= float64(math.MinInt64):
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}

// FromDuration converts d to a quantity in the largest unit that expresses it
// as a whole number, so time.Minute becomes "1 minute" and 90*time.Second
// becomes "90 seconds". Zero is "0 seconds".
func FromDuration(d time.Duration) measure.Quantity[Time] {
	if d == 0 {
		return measure.New(0, Second)
	}
	for _, u := range []*measure.Unit[Time]{Week, Day, Hour, Minute, Second, Millisecond, Microsecond} {
		f := int64(u.Factor())
		if d%time.Duration(f) == 0 {
			return measure.New(int64(d)/f, u)
		}
	}
	return measure.New(int64(d), Nanosecond)
}
