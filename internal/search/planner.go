package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ricardobranco777/susepkg/internal/catalog"
)

// literalRun matches the literal word runs of a pattern.
var literalRun = regexp.MustCompile(`[0-9A-Za-z_-]+`)

// Plan builds one QuerySpec per product (the APIs take a single product
// per query). The server-side query is only ever a literal hint: the
// longest literal run of the selector. Both APIs require a search term,
// so the hint is the broadest feasible listing; glob and regex
// metacharacters are never sent — the Matcher does the real filtering
// client-side.
func Plan(products []catalog.Product, selector string) ([]QuerySpec, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	hint := ExtractHint(selector)

	specs := make([]QuerySpec, 0, len(products))
	for _, product := range products {
		specs = append(specs, QuerySpec{Product: product, Query: hint})
	}
	return specs, nil
}

// ValidateSelector rejects package selectors carrying no literal text
// to send as a server-side search term. Both APIs require one, so such
// a selector can never return results and must fail before any client
// is built or any request goes out.
func ValidateSelector(selector string) error {
	if ExtractHint(selector) == "" {
		return fmt.Errorf("%w: no searchable term in %q", ErrInvalidPattern, selector)
	}
	return nil
}

// ExtractHint returns the longest literal word run of a pattern, the
// best-effort server-side search term. Returns "" when the pattern
// contains no literal text at all.
func ExtractHint(pattern string) string {
	runs := literalRun.FindAllString(pattern, -1)
	best := ""
	for _, run := range runs {
		if len(run) > len(best) {
			best = run
		}
	}
	return strings.TrimSuffix(best, "-")
}
