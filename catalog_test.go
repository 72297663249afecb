package measure_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/xraph/measure"
	"github.com/xraph/measure/length"
	"github.com/xraph/measure/storage"
	"github.com/xraph/measure/timeunit"
)

// Two test categories sharing the unit name "glorp" to exercise Detect.
type alphaTest struct{}

func (alphaTest) CategoryName() string { return "alpha-test" }

type betaTest struct{}

func (betaTest) CategoryName() string { return "beta-test" }

func init() {
	measure.RegisterCategory(func() *measure.Registry[alphaTest] {
		return measure.NewRegistry[alphaTest]().
			MustRegister(measure.NewUnit[alphaTest]("glorp", 1)).
			MustRegister(measure.NewUnit[alphaTest]("zorch", 10))
	})
	measure.RegisterCategory(func() *measure.Registry[betaTest] {
		return measure.NewRegistry[betaTest]().
			MustRegister(measure.NewUnit[betaTest]("glorp", 1))
	})
}

func TestCategories(t *testing.T) {
	got := measure.Categories()
	for _, want := range []string{"length", "storage", "time"} {
		if !slices.Contains(got, want) {
			t.Errorf("Categories() = %v, missing %q", got, want)
		}
	}
	if !slices.IsSorted(got) {
		t.Errorf("Categories() = %v, want sorted", got)
	}
}

func TestLookup(t *testing.T) {
	r, err := measure.Lookup[length.Length]()
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if r != length.Registry() {
		t.Error("Lookup must return the same registry every time")
	}
	if r.Base() != length.Meter {
		t.Errorf("Base: got %s, want meter", r.Base())
	}
}

func TestCatalogParse(t *testing.T) {
	q, err := measure.Parse[timeunit.Time]("1.5 hours")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if q.Unit() != timeunit.Hour || q.Magnitude() != 1.5 {
		t.Errorf("got %s", q)
	}
}

func TestResolveUnitName(t *testing.T) {
	tests := []struct {
		category string
		name     string
		want     measure.AnyUnit
		wantErr  error
	}{
		{"storage", "mb", storage.Megabyte, nil},
		{"storage", "MiB", storage.Megabyte, nil},
		{"length", "feet", length.Foot, nil},
		{"time", "µs", timeunit.Microsecond, nil},
		{"time", "us", timeunit.Microsecond, nil},
		{"storage", "parsec", nil, measure.ErrUnknownUnit},
		{"storage", "", nil, measure.ErrUnknownUnit},
		{"storage", "   ", nil, measure.ErrUnknownUnit},
		{"length", "", nil, measure.ErrUnknownUnit},
		{"volume", "liter", nil, measure.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.name, func(t *testing.T) {
			got, err := measure.ResolveUnitName(tt.category, tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveUnitName: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got.Name(), tt.want.Name())
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	v, err := measure.ParseValue("storage", "10kb")
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if v.Category() != "storage" || v.Magnitude() != 10 || v.Unit() != storage.Kilobyte {
		t.Errorf("got %s in %s", v, v.Category())
	}

	v, err = measure.ParseValue("storage", "512")
	if err != nil {
		t.Fatalf("ParseValue bare number: %v", err)
	}
	if v.Unit() != storage.Bit {
		t.Errorf("bare number: got unit %s, want bit", v.Unit().Name())
	}

	if _, err := measure.ParseValue("length", "512"); !errors.Is(err, measure.ErrUnknownUnit) {
		t.Errorf("bare number in length: got %v, want ErrUnknownUnit", err)
	}
}

func TestUnitsOf(t *testing.T) {
	units, err := measure.UnitsOf("time")
	if err != nil {
		t.Fatalf("UnitsOf: %v", err)
	}
	if len(units) != 8 || units[0] != timeunit.Nanosecond || units[7] != timeunit.Week {
		t.Errorf("got %d units", len(units))
	}

	if _, err := measure.UnitsOf("volume"); !errors.Is(err, measure.ErrUnknownCategory) {
		t.Errorf("got %v, want ErrUnknownCategory", err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		input    string
		category string
		unit     measure.AnyUnit
	}{
		{"10 km", "length", length.Kilometer},
		{"3 weeks", "time", timeunit.Week},
		{"1.5GB", "storage", storage.Gigabyte},
		{"512", "storage", storage.Bit},
		{"2 zorch", "alpha-test", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := measure.Detect(tt.input)
			if err != nil {
				t.Fatalf("Detect(%q): %v", tt.input, err)
			}
			if v.Category() != tt.category {
				t.Errorf("category: got %s, want %s", v.Category(), tt.category)
			}
			if tt.unit != nil && v.Unit() != tt.unit {
				t.Errorf("unit: got %s, want %s", v.Unit().Name(), tt.unit.Name())
			}
		})
	}
}

func TestDetectErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"3 glorp", measure.ErrAmbiguousUnit},
		{"3 parsecs", measure.ErrUnknownUnit},
		{"many km", measure.ErrMalformedQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := measure.Detect(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Detect(%q): got %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestRegisterCategoryTwicePanics(t *testing.T) {
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, measure.ErrDuplicateCategory) {
			t.Errorf("got panic %v, want ErrDuplicateCategory", rec)
		}
	}()

	measure.RegisterCategory(func() *measure.Registry[length.Length] {
		return measure.NewRegistry[length.Length]()
	})
}

func TestLookupUnknownCategory(t *testing.T) {
	if _, err := measure.Lookup[gammaTest](); !errors.Is(err, measure.ErrUnknownCategory) {
		t.Errorf("got %v, want ErrUnknownCategory", err)
	}
	if _, err := measure.Parse[gammaTest]("1 thing"); !errors.Is(err, measure.ErrUnknownCategory) {
		t.Errorf("Parse: got %v, want ErrUnknownCategory", err)
	}
}

type gammaTest struct{}

func (gammaTest) CategoryName() string { return "gamma-test" }
