// Package cli implements the measure command: parse, convert, add, subtract,
// compare and list quantities from the command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/xraph/measure"

	_ "github.com/xraph/measure/length"
	_ "github.com/xraph/measure/storage"
	_ "github.com/xraph/measure/timeunit"
)

// ErrUsage is returned for a missing or unknown command or a wrong number of
// arguments.
var ErrUsage = errors.New("usage")

const usage = `usage: measure [flags] <command> [args]

commands:
  parse <quantity>                 detect the category and print the quantity
  convert <quantity> <unit>        convert to another unit
  add <quantity> <quantity>        sum, in the unit of the first quantity
  sub <quantity> <quantity>        difference, in the unit of the first quantity
  compare <quantity> <quantity>    print <, = or >
  units [category]                 list registered units`

// Config holds measure command configuration.
type Config struct {
	Category string
	Locale   string
	Symbols  bool
	Verbose  bool
	Args     []string
}

type envConfig struct {
	Category string `env:"MEASURE_CATEGORY"`
	Locale   string `env:"MEASURE_LOCALE"`
	Symbols  bool   `env:"MEASURE_SYMBOLS" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		Category: envCfg.Category,
		Locale:   envCfg.Locale,
		Symbols:  envCfg.Symbols,
	}

	fs.StringVar(&cfg.Category, "category", cfg.Category, "parse quantities in this category instead of detecting it (default: MEASURE_CATEGORY)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "BCP 47 tag for localized number output, e.g. de-DE (default: MEASURE_LOCALE)")
	fs.BoolVar(&cfg.Symbols, "symbols", cfg.Symbols, "print unit symbols instead of names (default: MEASURE_SYMBOLS)")
	fs.BoolVar(&cfg.Verbose, "v", false, "log parse details to stderr")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()
	return cfg, nil
}

// Usage returns the command help text.
func Usage() string { return usage }

// Run executes the command named by cfg.Args.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	r := &runner{
		cfg:    cfg,
		out:    out,
		logger: slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})),
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	r.formatter = formatter

	if len(cfg.Args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}
	cmd, args := cfg.Args[0], cfg.Args[1:]

	switch cmd {
	case "parse":
		if len(args) != 1 {
			return fmt.Errorf("%w: parse takes one quantity", ErrUsage)
		}
		return r.parse(args[0])
	case "convert":
		if len(args) != 2 {
			return fmt.Errorf("%w: convert takes a quantity and a unit", ErrUsage)
		}
		return r.convert(args[0], args[1])
	case "add", "sub":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s takes two quantities", ErrUsage, cmd)
		}
		return r.arithmetic(cmd, args[0], args[1])
	case "compare":
		if len(args) != 2 {
			return fmt.Errorf("%w: compare takes two quantities", ErrUsage)
		}
		return r.compare(args[0], args[1])
	case "units":
		if len(args) > 1 {
			return fmt.Errorf("%w: units takes at most one category", ErrUsage)
		}
		return r.units(args)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func newFormatter(cfg Config) (measure.Formatter, error) {
	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
		return measure.LocalizedFormatter(tag), nil
	}
	if cfg.Symbols {
		return measure.SymbolFormatter, nil
	}
	return measure.PluralFormatter, nil
}

type runner struct {
	cfg       Config
	out       io.Writer
	logger    *slog.Logger
	formatter measure.Formatter
}

// read parses text in the configured category, detecting it when none is set.
func (r *runner) read(text string) (measure.Value, error) {
	var (
		v   measure.Value
		err error
	)
	if r.cfg.Category != "" {
		v, err = measure.ParseValue(r.cfg.Category, text)
	} else {
		v, err = measure.Detect(text)
	}
	if err != nil {
		return measure.Value{}, err
	}
	r.logger.Debug("parsed quantity",
		"input", text,
		"category", v.Category(),
		"unit", v.Unit().Name(),
		"magnitude", v.Magnitude(),
	)
	return v, nil
}

// readLike parses text in the category of v so that the second operand of a
// binary command never needs detection.
func (r *runner) readLike(v measure.Value, text string) (measure.Value, error) {
	other, err := measure.ParseValue(v.Category(), text)
	if err != nil {
		if measure.IsParseError(err) {
			if detected, derr := measure.Detect(text); derr == nil {
				return detected, nil
			}
		}
		return measure.Value{}, err
	}
	return other, nil
}

func (r *runner) print(v measure.Value) {
	fmt.Fprintln(r.out, r.formatter.Format(v.Magnitude(), v.Unit()))
}

func (r *runner) parse(text string) error {
	v, err := r.read(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s (%s)\n", r.formatter.Format(v.Magnitude(), v.Unit()), v.Category())

	base, err := baseUnit(v.Category())
	if err != nil {
		return err
	}
	if base != nil && base != v.Unit() {
		inBase, err := v.ConvertTo(base)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "= %s\n", r.formatter.Format(inBase.Magnitude(), inBase.Unit()))
	}
	return nil
}

func (r *runner) convert(text, unitName string) error {
	v, err := r.read(text)
	if err != nil {
		return err
	}
	target, err := measure.ResolveUnitName(v.Category(), unitName)
	if err != nil {
		return err
	}
	converted, err := v.ConvertTo(target)
	if err != nil {
		return err
	}
	r.print(converted)
	return nil
}

func (r *runner) arithmetic(cmd, left, right string) error {
	a, err := r.read(left)
	if err != nil {
		return err
	}
	b, err := r.readLike(a, right)
	if err != nil {
		return err
	}

	var result measure.Value
	if cmd == "add" {
		result, err = a.Add(b)
	} else {
		result, err = a.Subtract(b)
	}
	if err != nil {
		return err
	}
	r.print(result)
	return nil
}

func (r *runner) compare(left, right string) error {
	a, err := r.read(left)
	if err != nil {
		return err
	}
	b, err := r.readLike(a, right)
	if err != nil {
		return err
	}

	cmp, err := a.Compare(b)
	if err != nil {
		return err
	}
	switch {
	case cmp < 0:
		fmt.Fprintln(r.out, "<")
	case cmp > 0:
		fmt.Fprintln(r.out, ">")
	default:
		fmt.Fprintln(r.out, "=")
	}
	return nil
}

func (r *runner) units(args []string) error {
	categories := measure.Categories()
	switch {
	case len(args) == 1:
		categories = []string{args[0]}
	case r.cfg.Category != "":
		categories = []string{r.cfg.Category}
	}

	for i, category := range categories {
		units, err := measure.UnitsOf(category)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintf(r.out, "%s:\n", category)
		for _, u := range units {
			line := "  " + u.Name()
			if u.Symbol() != "" {
				line += " (" + u.Symbol() + ")"
			}
			fmt.Fprintf(r.out, "%-24s = %s %s\n", line, measure.FormatNumber(u.Factor()), baseLabel(units))
		}
	}
	return nil
}

// baseUnit returns the factor-1 unit of category, or nil if it has none.
func baseUnit(category string) (measure.AnyUnit, error) {
	units, err := measure.UnitsOf(category)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if u.Factor() == 1 {
			return u, nil
		}
	}
	return nil, nil
}

func baseLabel(units []measure.AnyUnit) string {
	for _, u := range units {
		if u.Factor() == 1 {
			return u.Plural()
		}
	}
	return "base units"
}
