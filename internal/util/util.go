// Package util provides small string helpers shared by the exporters and the
// HTTP shell.
package util

import (
	"strconv"
	"strings"
	"unicode"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// CleanAddress trims surrounding whitespace and quotes and collapses inner
// runs of whitespace to a single space.
func CleanAddress(s string) string {
	return strings.Join(strings.Fields(TrimQuotes(strings.TrimSpace(s))), " ")
}

// LispString quotes s as an AutoLISP string literal.
// Backslashes and double quotes are escaped; line breaks become spaces so a
// value can never end a comment line early.
func LispString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n', '\r', '\t':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// SingleLine replaces line breaks with spaces.
func SingleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}

// FormatFloat renders v with the fewest digits that round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed renders v with exactly prec decimals.
func FormatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// FileStem turns free text into a safe file name fragment: letters and
// digits of any script are kept, everything else becomes an underscore and
// runs of underscores are collapsed.
func FileStem(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}
