package search

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchSpec is the compiled client-side filter: a name pattern plus an
// optional architecture set. It is derived once from the CLI inputs,
// before any network call, so a bad pattern fails fast.
type MatchSpec struct {
	re     *regexp.Regexp
	arches map[string]bool
}

// NewMatchSpec compiles pattern into a MatchSpec.
//
// With isRegex the pattern is a regular expression tested with search
// (partial match) semantics, consistent with the shell-glob behavior
// elsewhere in the tool. Otherwise a pattern containing glob
// metacharacters (* ? [) is translated to an equivalent anchored
// expression, and a plain literal must match the whole name.
// arches constrains the record architectures; empty means all.
func NewMatchSpec(pattern string, isRegex, insensitive bool, arches []string) (*MatchSpec, error) {
	var expr string
	switch {
	case isRegex:
		expr = pattern
	case strings.ContainsAny(pattern, "*?["):
		expr = "^" + globToRegexp(pattern) + "$"
	default:
		expr = "^" + regexp.QuoteMeta(pattern) + "$"
	}

	if insensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	var archSet map[string]bool
	if len(arches) > 0 {
		archSet = make(map[string]bool, len(arches))
		for _, arch := range arches {
			archSet[arch] = true
		}
	}

	return &MatchSpec{re: re, arches: archSet}, nil
}

// Matches reports whether a record passes both the name pattern and
// the architecture filter. Pure, no I/O.
func (m *MatchSpec) Matches(record PackageRecord) bool {
	if m.arches != nil && !m.arches[record.Arch] {
		return false
	}
	return m.re.MatchString(record.Name)
}

// Filter returns the records that match, preserving input order.
func (m *MatchSpec) Filter(records []PackageRecord) []PackageRecord {
	var out []PackageRecord
	for _, record := range records {
		if m.Matches(record) {
			out = append(out, record)
		}
	}
	return out
}

// globToRegexp translates a shell glob into regular expression text.
// Character classes pass through, with [! rewritten to [^.
func globToRegexp(glob string) string {
	var b strings.Builder
	runes := []rune(glob)

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := i + 1
			if end < len(runes) && (runes[end] == '!' || runes[end] == '^') {
				end++
			}
			if end < len(runes) && runes[end] == ']' {
				// first ] in a class is a literal
				end++
			}
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end == len(runes) {
				// unterminated class: treat [ literally
				b.WriteString(regexp.QuoteMeta("["))
				continue
			}
			class := string(runes[i : end+1])
			if strings.HasPrefix(class, "[!") {
				class = "[^" + class[2:]
			}
			b.WriteString(class)
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}

	return b.String()
}
