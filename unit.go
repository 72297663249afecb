package measure

import "slices"

// AnyUnit is the category-erased view of a unit. *Unit[C] implements it for
// every category.
type AnyUnit interface {
	Name() string
	Plural() string
	Symbol() string
	Category() string
	Factor() float64
	Format(magnitude float64) string
}

// Unit is a unit of measure in category C, e.g. the kilometer in length.
//
// Units are created once as package-level singletons and never change. The
// factor expresses one unit in the category's base unit: a kilometer has
// factor 1000 when the meter is the base.
type Unit[C Category] struct {
	name      string
	plural    string
	symbol    string
	aliases   []string
	factor    float64
	formatter Formatter
}

// UnitOption configures a Unit at construction.
type UnitOption func(*unitConfig)

type unitConfig struct {
	plural    string
	symbol    string
	aliases   []string
	formatter Formatter
}

// WithPlural sets the plural name. The default appends "s" to the name.
func WithPlural(plural string) UnitOption {
	return func(c *unitConfig) { c.plural = plural }
}

// WithSymbol sets the short symbol, e.g. "km". The symbol is also accepted
// when parsing.
func WithSymbol(symbol string) UnitOption {
	return func(c *unitConfig) { c.symbol = symbol }
}

// WithAliases adds extra names accepted when parsing.
func WithAliases(aliases ...string) UnitOption {
	return func(c *unitConfig) { c.aliases = append(c.aliases, aliases...) }
}

// WithFormatter replaces the display formatter of the unit.
func WithFormatter(f Formatter) UnitOption {
	return func(c *unitConfig) { c.formatter = f }
}

// NewUnit creates a unit of category C. The factor is validated when the unit
// is registered, not here, so that unit vars can be declared at package level.
func NewUnit[C Category](name string, factor float64, opts ...UnitOption) *Unit[C] {
	cfg := unitConfig{plural: name + "s"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.formatter == nil {
		cfg.formatter = PluralFormatter
	}

	return &Unit[C]{
		name:      name,
		plural:    cfg.plural,
		symbol:    cfg.symbol,
		aliases:   cfg.aliases,
		factor:    factor,
		formatter: cfg.formatter,
	}
}

// Name returns the singular name.
func (u *Unit[C]) Name() string { return u.name }

// Plural returns the plural name.
func (u *Unit[C]) Plural() string { return u.plural }

// Symbol returns the short symbol, or "" if none was set.
func (u *Unit[C]) Symbol() string { return u.symbol }

// Aliases returns a copy of the extra parse names.
func (u *Unit[C]) Aliases() []string { return slices.Clone(u.aliases) }

// Factor returns the multiplicative factor converting one of this unit into
// the category's base unit.
func (u *Unit[C]) Factor() float64 { return u.factor }

// Category returns the runtime tag of the unit's category.
func (u *Unit[C]) Category() string { return categoryName[C]() }

// Names returns every name the unit answers to when parsing: name, plural,
// symbol and aliases, in that order, without empty entries.
func (u *Unit[C]) Names() []string {
	names := make([]string, 0, 3+len(u.aliases))
	for _, n := range append([]string{u.name, u.plural, u.symbol}, u.aliases...) {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Format renders magnitude with this unit's formatter.
func (u *Unit[C]) Format(magnitude float64) string {
	return u.formatter.Format(magnitude, u)
}

// String returns the singular name.
func (u *Unit[C]) String() string { return u.name }
