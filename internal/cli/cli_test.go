package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/xraph/measure"
)

func run(t *testing.T, cfg Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), cfg, &out, nil)
	return out.String(), err
}

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("MEASURE_CATEGORY", "")
	t.Setenv("MEASURE_LOCALE", "")
	t.Setenv("MEASURE_SYMBOLS", "false")

	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"parse", "10 km"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Category != "" || cfg.Locale != "" || cfg.Symbols || cfg.Verbose {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Args) != 2 || cfg.Args[0] != "parse" || cfg.Args[1] != "10 km" {
		t.Fatalf("expected positional args, got %v", cfg.Args)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("MEASURE_CATEGORY", "storage")
	t.Setenv("MEASURE_LOCALE", "de")
	t.Setenv("MEASURE_SYMBOLS", "true")

	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-category", "time", "-v", "units"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Category != "time" {
		t.Errorf("flag should override env, got category %q", cfg.Category)
	}
	if cfg.Locale != "de" || !cfg.Symbols || !cfg.Verbose {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseConfigBadEnv(t *testing.T) {
	t.Setenv("MEASURE_SYMBOLS", "maybe")

	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for invalid MEASURE_SYMBOLS")
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"parse", Config{Args: []string{"parse", "1 km"}}, "1 kilometer (length)\n= 1000 meters\n"},
		{"parse base", Config{Args: []string{"parse", "5 meters"}}, "5 meters (length)\n"},
		{"parse storage", Config{Args: []string{"parse", "2 mb"}}, "2 megabytes (storage)\n= 2097152 bytes\n"},
		{"convert", Config{Args: []string{"convert", "10 min", "ms"}}, "600000 milliseconds\n"},
		{"add", Config{Args: []string{"add", "10 min", "1 h"}}, "70 minutes\n"},
		{"add weeks", Config{Args: []string{"add", "2 wk", "1 wk"}}, "3 weeks\n"},
		{"sub", Config{Args: []string{"sub", "2 h", "60 min"}}, "1 hour\n"},
		{"compare less", Config{Args: []string{"compare", "59 min", "1 h"}}, "<\n"},
		{"compare equal", Config{Args: []string{"compare", "60 min", "1 h"}}, "=\n"},
		{"compare greater", Config{Args: []string{"compare", "1 GB", "1000 MB"}}, ">\n"},
		{"symbols", Config{Symbols: true, Args: []string{"convert", "1 km", "m"}}, "1000 m\n"},
		{"locale", Config{Locale: "de", Args: []string{"convert", "1.5 km", "m"}}, "1.500 meters\n"},
		{"category flag", Config{Category: "storage", Args: []string{"parse", "16"}}, "16 bits (storage)\n= 2 bytes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnitsCommand(t *testing.T) {
	got, err := run(t, Config{Args: []string{"units", "time"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "time:\n") {
		t.Errorf("expected category header, got %q", got)
	}
	for _, want := range []string{"week (wk)", "minute (min)", "nanoseconds"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}

	all, err := run(t, Config{Args: []string{"units"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, category := range []string{"length:", "storage:", "time:"} {
		if !strings.Contains(all, category) {
			t.Errorf("output does not list %s", category)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"no command", Config{}, ErrUsage},
		{"unknown command", Config{Args: []string{"frobnicate"}}, ErrUsage},
		{"parse arity", Config{Args: []string{"parse"}}, ErrUsage},
		{"convert arity", Config{Args: []string{"convert", "1 km"}}, ErrUsage},
		{"units arity", Config{Args: []string{"units", "time", "length"}}, ErrUsage},
		{"unknown unit", Config{Args: []string{"parse", "3 parsecs"}}, measure.ErrUnknownUnit},
		{"unknown unit in category", Config{Category: "storage", Args: []string{"parse", "3 parsecs"}}, measure.ErrUnknownUnit},
		{"malformed", Config{Args: []string{"parse", "km"}}, measure.ErrMalformedQuantity},
		{"incompatible", Config{Args: []string{"add", "1 km", "1 mb"}}, measure.ErrIncompatibleUnit},
		{"convert across", Config{Args: []string{"convert", "1 km", "ms"}}, measure.ErrUnknownUnit},
		{"unknown category", Config{Args: []string{"units", "mass"}}, measure.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvalidLocale(t *testing.T) {
	if _, err := run(t, Config{Locale: "!!", Args: []string{"units"}}); err == nil {
		t.Fatal("expected error for invalid locale")
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, Config{Args: []string{"units"}}, nil, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestVerboseLogging(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := Config{Verbose: true, Args: []string{"parse", "3 ft"}}
	if err := Run(context.Background(), cfg, &out, &errOut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut.String(), "parsed quantity") || !strings.Contains(errOut.String(), "unit=foot") {
		t.Errorf("expected debug log, got %q", errOut.String())
	}
}
