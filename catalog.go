package measure

import (
	"fmt"
	"slices"
	"sync"
)

// categoryEntry is the erased form of a category registry held by the
// catalog. typed holds the func() *Registry[C] for Lookup.
type categoryEntry struct {
	name      string
	resolve   func(name string) (AnyUnit, error)
	parse     func(text string) (Value, error)
	units     func() []AnyUnit
	typed     any
	prototype Category
}

var catalog = struct {
	mu      sync.RWMutex
	entries map[string]*categoryEntry
}{entries: make(map[string]*categoryEntry)}

// RegisterCategory makes category C known to the catalog, so that Parse[C],
// ResolveUnitName and ParseValue can reach its registry.
//
// The provider builds the registry. It runs at most once, on first use, and
// every caller waits for it to finish; a panic in the provider (for example a
// MustRegister name collision) is re-raised to every caller. Category packages
// call RegisterCategory from init. Registering a category name twice panics.
func RegisterCategory[C Category](provider func() *Registry[C]) {
	get := sync.OnceValue(provider)
	name := categoryName[C]()

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	if _, exists := catalog.entries[name]; exists {
		panic(fmt.Errorf("%w: %q", ErrDuplicateCategory, name))
	}

	var c C
	catalog.entries[name] = &categoryEntry{
		name:      name,
		resolve:   func(n string) (AnyUnit, error) { return get().resolveAny(n) },
		parse:     func(text string) (Value, error) { return get().parseValue(text) },
		units:     func() []AnyUnit { return get().anyUnits() },
		typed:     get,
		prototype: c,
	}
}

// Lookup returns the registry of category C.
func Lookup[C Category]() (*Registry[C], error) {
	entry, err := lookupEntry(categoryName[C]())
	if err != nil {
		return nil, err
	}
	get, ok := entry.typed.(func() *Registry[C])
	if !ok {
		// Two distinct Go types share the same category name.
		return nil, fmt.Errorf("%w: %q is registered by %T", ErrDuplicateCategory, entry.name, entry.prototype)
	}
	return get(), nil
}

// Parse reads a quantity of category C through the catalog, e.g.
// Parse[length.Length]("10 km").
func Parse[C Category](text string) (Quantity[C], error) {
	r, err := Lookup[C]()
	if err != nil {
		return Quantity[C]{}, err
	}
	return r.Parse(text)
}

// Categories returns the registered category names, sorted.
func Categories() []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	names := make([]string, 0, len(catalog.entries))
	for name := range catalog.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveUnitName looks a unit up by category name and unit name.
func ResolveUnitName(category, name string) (AnyUnit, error) {
	entry, err := lookupEntry(category)
	if err != nil {
		return nil, err
	}
	return entry.resolve(name)
}

// ParseValue parses text in the named category.
func ParseValue(category, text string) (Value, error) {
	entry, err := lookupEntry(category)
	if err != nil {
		return Value{}, err
	}
	return entry.parse(text)
}

// UnitsOf returns the units of the named category in registration order.
func UnitsOf(category string) ([]AnyUnit, error) {
	entry, err := lookupEntry(category)
	if err != nil {
		return nil, err
	}
	return entry.units(), nil
}

// Detect parses text in whichever registered category knows its unit name.
// If several categories accept it the result is ErrAmbiguousUnit; if none do,
// the error of the first category in name order is returned. A malformed
// number fails the same way in every category and is returned as is.
func Detect(text string) (Value, error) {
	if _, _, err := splitQuantity(text); err != nil {
		return Value{}, err
	}

	var (
		found    []Value
		firstErr error
	)
	for _, name := range Categories() {
		v, err := ParseValue(name, text)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		found = append(found, v)
	}

	switch len(found) {
	case 0:
		if firstErr == nil {
			firstErr = fmt.Errorf("%w: no categories registered", ErrUnknownCategory)
		}
		return Value{}, firstErr
	case 1:
		return found[0], nil
	default:
		cats := make([]string, len(found))
		for i, v := range found {
			cats[i] = v.Category()
		}
		return Value{}, fmt.Errorf("%w: %q could be %v", ErrAmbiguousUnit, text, cats)
	}
}

func lookupEntry(category string) (*categoryEntry, error) {
	catalog.mu.RLock()
	entry, ok := catalog.entries[category]
	catalog.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return entry, nil
}
