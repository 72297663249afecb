package timeunit

import (
	"math"
	"testing"
	"time"

	"github.com/xraph/measure"
)

func TestUnitNames(t *testing.T) {
	tests := []struct {
		name string
		want *measure.Unit[Time]
	}{
		{"ns", Nanosecond},
		{"µs", Microsecond},
		{"μs", Microsecond},
		{"us", Microsecond},
		{"ms", Millisecond},
		{"sec", Second},
		{"min", Minute},
		{"Hours", Hour},
		{"d", Day},
		{"wk", Week},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Registry().Resolve(tt.name)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q): got %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	if Registry().Base() != Nanosecond {
		t.Errorf("Base: got %s", Registry().Base())
	}
	if _, ok := Registry().Default(); ok {
		t.Error("time must not accept bare numbers")
	}
	if _, err := Parse("10"); err == nil {
		t.Error("Parse(10): want error")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		q    measure.Quantity[Time]
		want time.Duration
	}{
		{"minutes", Of(10, Minute), 10 * time.Minute},
		{"fractional hours", Of(1.5, Hour), 90 * time.Minute},
		{"weeks", Of(2, Week), 14 * 24 * time.Hour},
		{"microseconds", MustParse("250 µs"), 250 * time.Microsecond},
		{"negative", Of(-3, Second), -3 * time.Second},
		{"saturates", Of(1e9, Week), time.Duration(math.MaxInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.q); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0 seconds"},
		{time.Minute, "1 minute"},
		{90 * time.Second, "90 seconds"},
		{48 * time.Hour, "2 days"},
		{1500 * time.Microsecond, "1500 microseconds"},
		{7 * time.Nanosecond, "7 nanoseconds"},
		{-2 * time.Hour, "-2 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			q := FromDuration(tt.in)
			if q.String() != tt.want {
				t.Errorf("got %q, want %q", q.String(), tt.want)
			}
			if Duration(q) != tt.in {
				t.Errorf("Duration round trip: got %v, want %v", Duration(q), tt.in)
			}
		})
	}
}
