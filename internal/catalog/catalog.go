// Package catalog maps product selectors onto the API product
// identifiers a package query runs against.
package catalog

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ricardobranco777/susepkg/pkg/opensuse"
	"github.com/ricardobranco777/susepkg/pkg/scc"
)

// Only these product families are search targets.
var productFamilies = []string{"SLES/", "SLE-Micro/", "SL-Micro/", "SUSE-MicroOS/"}

// Products that reached end of life and are hidden from the catalog.
var eolProducts = map[string]bool{
	"SLES/12":          true,
	"SLES/12.1":        true,
	"SLES/12.2":        true,
	"SLES/12.3":        true,
	"SLES/12.4":        true,
	"SLES/15":          true,
	"SLES/15.1":        true,
	"SLES/15.2":        true,
	"SLES/15.3":        true,
	"SUSE-MicroOS/5.0": true,
	"SUSE-MicroOS/5.1": true,
}

// UnknownProductError is returned when a selector matches nothing in
// the catalog.
type UnknownProductError struct {
	Selector string
}

func (e *UnknownProductError) Error() string {
	return "no matching product for: " + e.Selector
}

// Catalog is the resolved set of searchable products for one
// architecture. It is built once per invocation and immutable after.
type Catalog struct {
	products []Product
}

// New builds a catalog from an explicit product list (used in tests).
func New(products []Product) *Catalog {
	return &Catalog{products: products}
}

// Load fetches the catalog for arch from SCC and the openSUSE
// distribution list: supported SLE family products first, grouped so
// the Micro generations read in order, then the openSUSE releases.
func Load(ctx context.Context, sc *scc.Client, oc *opensuse.Client, arch string) (*Catalog, error) {
	sccProducts, err := sc.Products(ctx)
	if err != nil {
		return nil, err
	}

	var products []Product
	for _, p := range sccProducts {
		if p.Architecture != arch || !hasSupportedFamily(p.Identifier) {
			continue
		}
		name := strings.TrimSuffix(p.Identifier, "/"+arch)
		if eolProducts[name] {
			continue
		}
		products = append(products, Product{Name: name, ID: p.ID, Arch: arch})
	}
	sort.SliceStable(products, func(i, j int) bool {
		return productLess(products[i].Name, products[j].Name)
	})

	dists, err := oc.Distributions(ctx)
	if err != nil {
		return nil, err
	}

	var osProducts []Product
	for _, d := range dists {
		name := d.Name
		// Tumbleweed is rolling; its snapshot number is not a version.
		if name != "openSUSE_Tumbleweed" {
			name += "/" + d.Version
		}
		osProducts = append(osProducts, Product{Name: name, Arch: arch})
	}
	sort.Slice(osProducts, func(i, j int) bool {
		return osProducts[i].Name < osProducts[j].Name
	})

	return &Catalog{products: append(products, osProducts...)}, nil
}

// Products returns every catalog entry in display order.
func (c *Catalog) Products() []Product {
	return c.products
}

// Resolve expands selectors into products: each selector independently,
// union preserving first-seen order, duplicates removed. The selector
// "any" expands to the whole catalog. A selector matches by exact name
// first, then by case-insensitive substring.
func (c *Catalog) Resolve(selectors []string) ([]Product, error) {
	var resolved []Product
	seen := make(map[string]bool)

	add := func(products []Product) {
		for _, p := range products {
			if !seen[p.Name] {
				seen[p.Name] = true
				resolved = append(resolved, p)
			}
		}
	}

	for _, selector := range selectors {
		if selector == Any {
			add(c.products)
			continue
		}

		matched := c.resolveOne(Normalize(selector))
		if len(matched) == 0 {
			return nil, &UnknownProductError{Selector: selector}
		}
		add(matched)
	}

	return resolved, nil
}

func (c *Catalog) resolveOne(selector string) []Product {
	for _, p := range c.products {
		if p.Name == selector {
			return []Product{p}
		}
	}

	var matched []Product
	lower := strings.ToLower(selector)
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			matched = append(matched, p)
		}
	}
	return matched
}

func hasSupportedFamily(identifier string) bool {
	for _, family := range productFamilies {
		if strings.HasPrefix(identifier, family) {
			return true
		}
	}
	return false
}

var microRe = regexp.MustCompile(`^(SUSE-MicroOS|SLE-Micro|SL-Micro)/(\d+)\.(\d+)$`)

// Micro generations sort together, oldest naming first.
var microOrder = map[string]int{"SUSE-MicroOS": 1, "SLE-Micro": 2, "SL-Micro": 3}

// productLess orders SLE products by name, with the Micro family
// grouped after the rest and ordered by generation then version.
func productLess(a, b string) bool {
	am, bm := microRe.FindStringSubmatch(a), microRe.FindStringSubmatch(b)
	switch {
	case am == nil && bm == nil:
		return a < b
	case am == nil:
		return true
	case bm == nil:
		return false
	}

	if microOrder[am[1]] != microOrder[bm[1]] {
		return microOrder[am[1]] < microOrder[bm[1]]
	}
	aMajor, _ := strconv.Atoi(am[2]) //nolint:errcheck
	bMajor, _ := strconv.Atoi(bm[2]) //nolint:errcheck
	if aMajor != bMajor {
		return aMajor < bMajor
	}
	aMinor, _ := strconv.Atoi(am[3]) //nolint:errcheck
	bMinor, _ := strconv.Atoi(bm[3]) //nolint:errcheck
	return aMinor < bMinor
}
