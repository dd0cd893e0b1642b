package excel2erp

import (
	"fmt"
	"regexp"
	"sync"
)

// patternCache holds compiled replacement patterns, keyed by pattern text.
// Configurations reuse a small set of patterns across many cells and rows,
// so compilation happens once per process.
var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// applyReplacements runs a property's rewrite chain over one raw value.
// Steps apply in declared order, each step's output feeding the next; an
// empty chain passes the value through unchanged.
func applyReplacements(value string, reps Replacements) (string, error) {
	for _, r := range reps {
		re, err := compilePattern(r.Pattern)
		if err != nil {
			return "", &MalformedConfigError{Field: fmt.Sprintf("replacement pattern %q", r.Pattern), Err: err}
		}
		value = re.ReplaceAllString(value, r.Replace)
	}
	return value, nil
}
