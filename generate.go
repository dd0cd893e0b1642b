package excel2erp

import (
	"strconv"
	"strings"
	"unicode"
)

// GenerateContent renders one output file from its spec: the trimmed prolog
// line when configured, one line per record, and the trimmed epilog line
// when configured. Each line resolves fields in the spec's declared property
// order (never map iteration order): the record's value when present and
// non-empty, else the property's default, else empty. A resolved value
// containing "${" is expanded against the record's fields plus an index
// field holding the record's 0-based position. Fields join with separator,
// lines join with a single newline, and no trailing newline is appended.
func GenerateContent(spec FileSpec, separator string, records []Record) string {
	var lines []string
	if spec.Prolog != "" {
		lines = append(lines, trimTrailing(spec.Prolog))
	}
	for idx, rec := range records {
		values := make([]string, 0, len(spec.Properties))
		var fields Record
		for _, p := range spec.Properties {
			value := rec[p.Name]
			if value == "" {
				value = p.DefaultValue
			}
			if strings.Contains(value, "${") {
				if fields == nil {
					fields = rec.clone()
					fields["index"] = strconv.Itoa(idx)
				}
				value = Expand(value, fields)
			}
			values = append(values, value)
		}
		lines = append(lines, strings.Join(values, separator))
	}
	if spec.Epilog != "" {
		lines = append(lines, trimTrailing(spec.Epilog))
	}
	return strings.Join(lines, "\n")
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
