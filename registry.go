package measure

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
)

// Registry maps unit names of category C to units. Names are matched case
// insensitively (Unicode case folding) and every unit answers to its name,
// plural, symbol and aliases.
//
// A registry is filled once while its category is defined and is read-only
// afterwards. It is safe for concurrent use.
type Registry[C Category] struct {
	mu       sync.RWMutex
	byName   map[string]*Unit[C]
	units    []*Unit[C]
	base     *Unit[C]
	fallback *Unit[C]
	logger   *slog.Logger
}

// NewRegistry creates an empty registry for category C.
func NewRegistry[C Category]() *Registry[C] {
	return &Registry[C]{
		byName: make(map[string]*Unit[C]),
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry[C]) WithLogger(logger *slog.Logger) *Registry[C] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
	return r
}

// Category returns the runtime tag of C.
func (r *Registry[C]) Category() string { return categoryName[C]() }

// Register adds u under all of u.Names() plus extraNames.
//
// Registering the same unit under a name it already owns is a no-op. A name
// owned by a different unit is a configuration error and nothing from this
// call is registered. The first unit with factor 1 becomes the base unit.
func (r *Registry[C]) Register(u *Unit[C], extraNames ...string) error {
	if u == nil {
		return fmt.Errorf("%w: register in %s registry", ErrNilUnit, r.Category())
	}
	if f := u.Factor(); f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s %s has factor %v, want a positive finite value",
			ErrInvalidFactor, r.Category(), u.Name(), f)
	}

	names := append(u.Names(), extraNames...)
	folded := make([]string, 0, len(names))
	for _, n := range names {
		key := foldName(n)
		if key == "" {
			return fmt.Errorf("%w: %s %s has a blank name", ErrInvalidUnitName, r.Category(), u.Name())
		}
		if scanNumber(key) > 0 {
			return fmt.Errorf("%w: %s name %q starts with a number", ErrInvalidUnitName, r.Category(), n)
		}
		folded = append(folded, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, key := range folded {
		if existing, ok := r.byName[key]; ok && existing != u {
			return &DuplicateUnitError{
				Category: r.Category(),
				Name:     names[i],
				Existing: existing.Name(),
				Incoming: u.Name(),
			}
		}
	}

	for _, key := range folded {
		r.byName[key] = u
	}
	if !slices.Contains(r.units, u) {
		r.units = append(r.units, u)
	}
	if r.base == nil && u.Factor() == 1 {
		r.base = u
	}

	r.logger.Debug("unit registered",
		"category", r.Category(),
		"unit", u.Name(),
		"factor", u.Factor(),
		"names", len(folded),
	)

	return nil
}

// MustRegister is like Register but panics on error. Category packages use it
// while building their registry, where a collision is a fatal definition bug.
func (r *Registry[C]) MustRegister(u *Unit[C], extraNames ...string) *Registry[C] {
	if err := r.Register(u, extraNames...); err != nil {
		panic(err)
	}
	return r
}

// SetDefault sets the unit assumed for input that has a number but no unit
// name. Categories without a default reject bare numbers.
func (r *Registry[C]) SetDefault(u *Unit[C]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.units, u) {
		return fmt.Errorf("%w: %s default %v", ErrUnregisteredUnit, r.Category(), u)
	}
	r.fallback = u
	return nil
}

// Resolve looks a unit up by name, case insensitively. An empty or blank name
// is unknown: the default unit applies only to bare numbers in Parse.
func (r *Registry[C]) Resolve(name string) (*Unit[C], error) {
	key := foldName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if key == "" {
		return nil, &UnknownUnitError{Category: r.Category(), Name: name}
	}
	if u, ok := r.byName[key]; ok {
		return u, nil
	}
	return nil, &UnknownUnitError{Category: r.Category(), Name: name}
}

// Base returns the unit with factor 1, or nil if none is registered.
func (r *Registry[C]) Base() *Unit[C] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base
}

// Default returns the unit assumed for bare numbers, if the category has one.
func (r *Registry[C]) Default() (*Unit[C], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback, r.fallback != nil
}

// Units returns the registered units in registration order.
func (r *Registry[C]) Units() []*Unit[C] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.units)
}

// Len returns the number of registered units.
func (r *Registry[C]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

// Parse reads a quantity such as "10 kilometers", "10kb" or "1.5 KiB".
//
// Input without a leading number fails with a *MalformedQuantityError and an
// unknown unit name with an *UnknownUnitError. A bare number uses the default
// unit set by SetDefault, if any.
func (r *Registry[C]) Parse(text string) (Quantity[C], error) {
	magnitude, name, err := splitQuantity(text)
	if err != nil {
		return Quantity[C]{}, err
	}

	if name == "" {
		u, ok := r.Default()
		if !ok {
			return Quantity[C]{}, &UnknownUnitError{Category: r.Category()}
		}
		return Quantity[C]{magnitude: magnitude, unit: u}, nil
	}

	u, err := r.Resolve(name)
	if err != nil {
		return Quantity[C]{}, err
	}

	return Quantity[C]{magnitude: magnitude, unit: u}, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded values.
func (r *Registry[C]) MustParse(text string) Quantity[C] {
	q, err := r.Parse(text)
	if err != nil {
		panic(fmt.Sprintf("measure: must parse %q: %v", text, err))
	}
	return q
}

// Erased views used by the catalog.

func (r *Registry[C]) resolveAny(name string) (AnyUnit, error) {
	u, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Registry[C]) parseValue(text string) (Value, error) {
	q, err := r.Parse(text)
	if err != nil {
		return Value{}, err
	}
	return q.Value(), nil
}

func (r *Registry[C]) anyUnits() []AnyUnit {
	units := r.Units()
	out := make([]AnyUnit, len(units))
	for i, u := range units {
		out[i] = u
	}
	return out
}
