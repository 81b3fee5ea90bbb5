package discovery

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Filter filters test names by pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the names matching pattern. An empty pattern keeps
// everything.
func (f *Filter) FilterByName(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}

	var filtered []string
	for _, name := range names {
		if f.Match(name, pattern) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Match reports whether name matches pattern. Patterns support * and ?
// wildcards ("*UserTest", "*Payment*"); a pattern without wildcards matches
// as a substring. Only the last path element of name is considered.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	base := filepath.Base(filepath.ToSlash(name))

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, base); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Every non-empty part between wildcards must appear in order
		rest := base
		found := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			i := strings.Index(rest, part)
			if i < 0 {
				return false
			}
			rest = rest[i+len(part):]
			found = true
		}
		return found
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(base, pattern)
	}
	return false
}

// RunPattern converts a filter pattern into a `go test -run` expression
// that selects the same top-level tests as Match
func (f *Filter) RunPattern(pattern string) string {
	if pattern == "" {
		return ""
	}
	if !strings.ContainsAny(pattern, "*?") {
		return regexp.QuoteMeta(pattern)
	}
	expr := regexp.QuoteMeta(pattern)
	expr = strings.ReplaceAll(expr, `\*`, ".*")
	expr = strings.ReplaceAll(expr, `\?`, ".")
	return "^" + expr + "$"
}
