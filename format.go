package measure

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders a magnitude in a unit for display.
type Formatter interface {
	Format(magnitude float64, u AnyUnit) string
}

// FormatterFunc is an adapter to use a plain function as a Formatter.
type FormatterFunc func(magnitude float64, u AnyUnit) string

// Format implements Formatter.
func (f FormatterFunc) Format(magnitude float64, u AnyUnit) string {
	return f(magnitude, u)
}

// PluralFormatter is the default formatter: "1 week", "0 weeks", "2.5 weeks".
// Its output is accepted by Parse.
var PluralFormatter Formatter = FormatterFunc(func(magnitude float64, u AnyUnit) string {
	return FormatNumber(magnitude) + " " + Label(magnitude, u)
})

// SymbolFormatter renders the unit symbol, "10 km", falling back to the
// singular/plural name for units without a symbol. Its output is accepted by
// Parse.
var SymbolFormatter Formatter = FormatterFunc(func(magnitude float64, u AnyUnit) string {
	if u.Symbol() == "" {
		return PluralFormatter.Format(magnitude, u)
	}
	return FormatNumber(magnitude) + " " + u.Symbol()
})

// LocalizedFormatter renders the number with the digit grouping and decimal
// separator of tag, and looks the unit label up in the x/text/message catalog
// for tag. Labels without a registered translation are printed as is, and a
// "%" in a label is printed literally.
//
// The output is meant for display and is not guaranteed to parse back.
func LocalizedFormatter(tag language.Tag) Formatter {
	return FormatterFunc(func(magnitude float64, u AnyUnit) string {
		p := message.NewPrinter(tag)
		label := Label(magnitude, u)
		return p.Sprint(number.Decimal(magnitude, number.MaxFractionDigits(9))) +
			" " + p.Sprintf(message.Key(label, strings.ReplaceAll(label, "%", "%%")))
	})
}

// Label picks the singular name for a magnitude of exactly 1 and the plural
// name otherwise, which covers zero, fractions and negative values.
func Label(magnitude float64, u AnyUnit) string {
	if magnitude == 1 {
		return u.Name()
	}
	return u.Plural()
}

// FormatNumber renders a magnitude in the shortest form that parses back to
// the same float64. Negative zero prints as "0".
func FormatNumber(magnitude float64) string {
	if magnitude == 0 {
		magnitude = 0
	}
	return strconv.FormatFloat(magnitude, 'f', -1, 64)
}
