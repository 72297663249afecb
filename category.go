package measure

import "golang.org/x/exp/constraints"

// Category identifies a family of mutually convertible units such as length or
// storage. Each category is a distinct Go type, normally an empty struct, so
// that quantities of different categories are different types:
//
//	type Length struct{}
//
//	func (Length) CategoryName() string { return "length" }
//
// CategoryName is the runtime tag used by the catalog and by Value.
type Category interface {
	CategoryName() string
}

// Number is any integer or floating point type accepted as a magnitude.
type Number interface {
	constraints.Integer | constraints.Float
}

// categoryName returns the runtime tag of C.
func categoryName[C Category]() string {
	var c C
	return c.CategoryName()
}
