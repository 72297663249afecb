package measure

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// splitQuantity separates text into its leading numeric token and the
// trailing unit token, both trimmed. Inner whitespace in the unit token is
// collapsed to single spaces so "nautical   miles" matches "nautical miles".
func splitQuantity(text string) (magnitude float64, unitName string, err error) {
	s := strings.TrimSpace(text)
	end := scanNumber(s)
	if end == 0 {
		return 0, "", &MalformedQuantityError{Input: text, Reason: "no numeric prefix"}
	}

	magnitude, err = strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, "", &MalformedQuantityError{Input: text, Reason: err.Error()}
	}

	return magnitude, strings.Join(strings.Fields(s[end:]), " "), nil
}

// scanNumber returns the length of the decimal number at the start of s:
// an optional sign, digits with an optional fraction, and an optional
// exponent. An "e" that is not followed by digits belongs to the unit, which
// keeps "10eb" (exabytes) and "3e" intact. Returns 0 if s has no digits.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		fraction := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			fraction++
		}
		if digits > 0 || fraction > 0 {
			i = j
			digits += fraction
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// foldName normalizes a unit name for lookup: trimmed, inner whitespace
// collapsed, and case folded.
func foldName(name string) string {
	return cases.Fold().String(strings.Join(strings.FieldsFunc(name, unicode.IsSpace), " "))
}
