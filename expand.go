package excel2erp

import "regexp"

var (
	placeholderRe = regexp.MustCompile(`\$\{(\w+)\}`)
	nonDigitRe    = regexp.MustCompile(`\D+`)
)

// Expand replaces every ${identifier} placeholder in template with the
// matching field value, or the empty string when the field is absent.
// Identifiers are word characters only. Expansion is a single pass:
// substituted text is never re-scanned, and text outside placeholders is
// copied verbatim.
func Expand(template string, fields Record) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		return fields[m[2:len(m)-1]]
	})
}

// NormalizeDate strips every non-digit rune from a date string, reducing any
// separator convention to pure digits: "2024-01-15" → "20240115". Callers
// apply it to date-typed user input before handing fields to the engine.
func NormalizeDate(value string) string {
	return nonDigitRe.ReplaceAllString(value, "")
}
