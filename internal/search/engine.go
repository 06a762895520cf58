// Package search finds lines in the history file.
package search

import (
	"regexp"
	"strings"
	"unicode"
)

// Query describes a line filter. A pattern with an upper-case letter is
// matched case-sensitively unless CaseSensitive was set explicitly.
type Query struct {
	Pattern       string
	IsRegex       bool
	CaseSensitive bool
}

// Parse turns pane input into a Query. A leading "~" selects a regular
// expression.
func Parse(input string) Query {
	q := Query{Pattern: input}
	if rest, ok := strings.CutPrefix(input, "~"); ok {
		q.Pattern = rest
		q.IsRegex = true
	}
	q.CaseSensitive = strings.IndexFunc(q.Pattern, unicode.IsUpper) >= 0
	return q
}

// Lines returns the 0-based indexes of matching lines. An empty pattern or
// an invalid regular expression matches nothing.
func Lines(lines []string, q Query) []int {
	if q.Pattern == "" {
		return nil
	}
	matcher, err := buildMatcher(q)
	if err != nil {
		return nil
	}
	var idx []int
	for i, line := range lines {
		if matcher(line) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Filter returns the matching lines themselves.
func Filter(lines []string, q Query) []string {
	idx := Lines(lines, q)
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = lines[n]
	}
	return out
}

func buildMatcher(q Query) (func(string) bool, error) {
	if q.IsRegex {
		flags := ""
		if !q.CaseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + q.Pattern)
		if err != nil {
			return nil, err
		}
		return func(line string) bool { return re.MatchString(line) }, nil
	}

	pattern := q.Pattern
	if !q.CaseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return func(line string) bool {
		if !q.CaseSensitive {
			line = strings.ToLower(line)
		}
		return strings.Contains(line, pattern)
	}, nil
}
