package measure_test

import (
	"errors"
	"testing"

	"github.com/xraph/measure"
	"github.com/xraph/measure/length"
	"github.com/xraph/measure/storage"
	"github.com/xraph/measure/timeunit"
)

func TestQuantityScenarios(t *testing.T) {
	t.Run("2 weeks plus 1 week", func(t *testing.T) {
		got := measure.New(2, timeunit.Week).Add(measure.New(1, timeunit.Week))
		if got.String() != "3 weeks" {
			t.Errorf("got %q, want %q", got.String(), "3 weeks")
		}
	})

	t.Run("3 weeks minus 3 days", func(t *testing.T) {
		got := measure.New(3, timeunit.Week).Subtract(measure.New(3, timeunit.Day))
		if got.Unit() != timeunit.Week {
			t.Errorf("unit: got %s, want week", got.Unit())
		}
		if !got.Equal(measure.New(18, timeunit.Day)) {
			t.Errorf("got %s (%v days), want 18 days", got, got.In(timeunit.Day))
		}
	})

	t.Run("10 minutes in milliseconds", func(t *testing.T) {
		got := measure.New(10, timeunit.Minute).ConvertTo(timeunit.Millisecond)
		if got.Magnitude() != 600000 {
			t.Errorf("got %v, want 600000", got.Magnitude())
		}
	})

	t.Run("10 minutes plus 1 hour", func(t *testing.T) {
		got := measure.New(10, timeunit.Minute).Add(measure.New(1, timeunit.Hour))
		if got.String() != "70 minutes" {
			t.Errorf("got %q, want %q", got.String(), "70 minutes")
		}
	})

	t.Run("storage names", func(t *testing.T) {
		u, err := storage.Registry().Resolve("mb")
		if err != nil {
			t.Fatalf("Resolve(mb): %v", err)
		}
		if u != storage.Megabyte {
			t.Errorf("Resolve(mb): got %s, want megabyte", u)
		}

		_, err = storage.Registry().Resolve("parsec")
		var unknown *measure.UnknownUnitError
		if !errors.As(err, &unknown) {
			t.Fatalf("Resolve(parsec): got %v, want UnknownUnitError", err)
		}
		if unknown.Name != "parsec" || unknown.Category != "storage" {
			t.Errorf("got %+v", unknown)
		}
	})

	t.Run("1 km in meters", func(t *testing.T) {
		got := measure.New(1, length.Kilometer).ConvertTo(length.Meter)
		if got.String() != "1000 meters" {
			t.Errorf("got %q, want %q", got.String(), "1000 meters")
		}
	})
}

func TestQuantityConversion(t *testing.T) {
	tests := []struct {
		name string
		q    measure.Quantity[length.Length]
		to   *measure.Unit[length.Length]
		want float64
	}{
		{"km to m", length.Of(10, length.Kilometer), length.Meter, 10000},
		{"m to km", length.Of(250, length.Meter), length.Kilometer, 0.25},
		{"mile to yards", length.Of(1, length.Mile), length.Yard, 1760},
		{"foot to inches", length.Of(1, length.Foot), length.Inch, 12},
		{"nautical mile to m", length.Of(2, length.NauticalMile), length.Meter, 3704},
		{"cm to mm", length.Of(3.5, length.Centimeter), length.Millimeter, 35},
		{"negative", length.Of(-2, length.Kilometer), length.Meter, -2000},
		{"zero", length.Of(0, length.Mile), length.Inch, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.ConvertTo(tt.to)
			if got.Unit() != tt.to {
				t.Errorf("unit: got %s, want %s", got.Unit(), tt.to)
			}
			if !got.Equal(measure.New(tt.want, tt.to)) {
				t.Errorf("got %v, want %v", got.Magnitude(), tt.want)
			}
		})
	}
}

func TestQuantityIdentityConversionIsExact(t *testing.T) {
	for _, m := range []float64{0, 1, 0.1, 1.0 / 3, -7.25, 1e-300, 1e300} {
		q := measure.New(m, timeunit.Day)
		if got := q.ConvertTo(timeunit.Day).Magnitude(); got != m {
			t.Errorf("ConvertTo(same unit) of %v: got %v", m, got)
		}
	}
}

func TestQuantityArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() measure.Quantity[storage.Storage]
		expected measure.Quantity[storage.Storage]
	}{
		{"Add same unit", func() measure.Quantity[storage.Storage] {
			return storage.Of(1, storage.Kilobyte).Add(storage.Of(1, storage.Kilobyte))
		}, storage.Of(2, storage.Kilobyte)},
		{"Add smaller unit", func() measure.Quantity[storage.Storage] {
			return storage.Of(1, storage.Kilobyte).Add(storage.Of(512, storage.Byte))
		}, storage.Of(1.5, storage.Kilobyte)},
		{"Subtract to negative", func() measure.Quantity[storage.Storage] {
			return storage.Of(1, storage.Byte).Subtract(storage.Of(16, storage.Bit))
		}, storage.Of(-1, storage.Byte)},
		{"Scale", func() measure.Quantity[storage.Storage] {
			return storage.Of(3, storage.Megabyte).Scale(2)
		}, storage.Of(6, storage.Megabyte)},
		{"Negate", func() measure.Quantity[storage.Storage] {
			return storage.Of(3, storage.Gigabyte).Negate()
		}, storage.Of(-3, storage.Gigabyte)},
		{"Abs", func() measure.Quantity[storage.Storage] {
			return storage.Of(-3, storage.Gigabyte).Abs()
		}, storage.Of(3, storage.Gigabyte)},
		{"Sum", func() measure.Quantity[storage.Storage] {
			return measure.Sum(storage.Of(1, storage.Megabyte),
				storage.Of(512, storage.Kilobyte),
				storage.Of(512, storage.Kilobyte))
		}, storage.Of(2, storage.Megabyte)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
			if result.Unit() != tt.expected.Unit() {
				t.Errorf("Unit: got %s, want %s", result.Unit(), tt.expected.Unit())
			}
		})
	}
}

func TestQuantityResultKeepsLeftUnit(t *testing.T) {
	left := measure.New(1, timeunit.Hour)
	right := measure.New(30, timeunit.Minute)

	if got := left.Add(right); got.Unit() != timeunit.Hour || !got.Equal(measure.New(1.5, timeunit.Hour)) {
		t.Errorf("Add: got %s", got)
	}
	if got := right.Add(left); got.Unit() != timeunit.Minute || got.Magnitude() != 90 {
		t.Errorf("Add reversed: got %s", got)
	}
}

func TestQuantityComparison(t *testing.T) {
	km := length.Of(1, length.Kilometer)
	m := length.Of(1000, length.Meter)
	mile := length.Of(1, length.Mile)

	if !km.Equal(m) {
		t.Error("1 km should equal 1000 m")
	}
	if km.Compare(m) != 0 {
		t.Errorf("Compare: got %d, want 0", km.Compare(m))
	}
	if !km.LessThan(mile) {
		t.Error("1 km should be less than 1 mile")
	}
	if !mile.GreaterThan(km) {
		t.Error("1 mile should be greater than 1 km")
	}
	if km.Min(mile) != km {
		t.Errorf("Min: got %s", km.Min(mile))
	}
	if km.Max(mile) != mile {
		t.Errorf("Max: got %s", km.Max(mile))
	}
	if !km.EqualWithin(length.Of(1001, length.Meter), 1e-2) {
		t.Error("EqualWithin 1%: 1 km should match 1001 m")
	}
	if km.EqualWithin(length.Of(1001, length.Meter), 1e-6) {
		t.Error("EqualWithin 1e-6: 1 km should not match 1001 m")
	}
}

func TestQuantityPredicates(t *testing.T) {
	tests := []struct {
		name     string
		q        measure.Quantity[timeunit.Time]
		zero     bool
		positive bool
		negative bool
	}{
		{"zero", timeunit.Of(0, timeunit.Second), true, false, false},
		{"positive", timeunit.Of(5, timeunit.Second), false, true, false},
		{"negative", timeunit.Of(-5, timeunit.Second), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.q.IsZero() != tt.zero {
				t.Errorf("IsZero: got %v, want %v", tt.q.IsZero(), tt.zero)
			}
			if tt.q.IsPositive() != tt.positive {
				t.Errorf("IsPositive: got %v, want %v", tt.q.IsPositive(), tt.positive)
			}
			if tt.q.IsNegative() != tt.negative {
				t.Errorf("IsNegative: got %v, want %v", tt.q.IsNegative(), tt.negative)
			}
		})
	}
}

func TestQuantityNilUnitPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic for nil unit")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, measure.ErrNilUnit) {
			t.Errorf("got panic %v, want ErrNilUnit", r)
		}
	}()

	_ = measure.New[length.Length](1, nil)
}

func TestQuantityZeroValue(t *testing.T) {
	var q measure.Quantity[length.Length]
	if q.String() != "" {
		t.Errorf("String: got %q, want empty", q.String())
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for arithmetic on the zero Quantity")
		}
	}()
	_ = q.Add(length.Of(1, length.Meter))
}

func TestQuantityIntegerMagnitudes(t *testing.T) {
	var n int64 = 3
	var u uint8 = 2
	got := measure.New(n, timeunit.Day).Add(measure.New(u, timeunit.Day))
	if got.Magnitude() != 5 {
		t.Errorf("got %v, want 5", got.Magnitude())
	}
}
