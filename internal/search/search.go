// Package search finds matching lines in text such as an exported payload.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

// regexPrefix marks a query as a regular expression.
const regexPrefix = "re:"

type Query struct {
	Pattern       string
	IsRegex       bool
	CaseSensitive bool
}

// ParseQuery reads a query typed by the user. A "re:" prefix makes the rest
// a regular expression. Matching is case-insensitive unless the pattern has
// an upper-case letter.
func ParseQuery(s string) Query {
	q := Query{Pattern: s}
	if rest, ok := strings.CutPrefix(s, regexPrefix); ok {
		q.Pattern = rest
		q.IsRegex = true
	}
	q.CaseSensitive = strings.ToLower(q.Pattern) != q.Pattern
	return q
}

// Match is one matching line. Line is 1-based.
type Match struct {
	Line    int
	Content string
}

// Lines returns every line of content matching q, in order.
func Lines(content string, q Query) ([]Match, error) {
	if q.Pattern == "" || content == "" {
		return nil, nil
	}
	matcher, err := buildMatcher(q)
	if err != nil {
		return nil, err
	}
	var matches []Match
	for i, line := range strings.Split(content, "\n") {
		if matcher(line) {
			matches = append(matches, Match{Line: i + 1, Content: line})
		}
	}
	return matches, nil
}

func buildMatcher(q Query) (func(string) bool, error) {
	if q.IsRegex {
		flags := ""
		if !q.CaseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + q.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
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
