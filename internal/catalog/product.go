package catalog

import (
	"strconv"
	"strings"
)

// Selector values with special meaning: "any" fans out across the full
// catalog, "list" prints the catalog instead of searching packages.
const (
	Any  = "any"
	List = "list"
)

// Product is one searchable product target. Name is "<family>/<version>"
// (no version suffix for rolling releases such as openSUSE_Tumbleweed).
// ID is the SCC product id; it is 0 for openSUSE products, which are
// queried through mirrorcache instead.
type Product struct {
	Name string
	ID   int
	Arch string
}

// IsOpenSUSE reports whether the product is served by the openSUSE
// APIs rather than SCC.
func (p Product) IsOpenSUSE() bool {
	return strings.HasPrefix(p.Name, "openSUSE")
}

// DisplayName is the product name as printed in output rows.
func (p Product) DisplayName() string {
	return strings.TrimPrefix(p.Name, "openSUSE_")
}

// String implements fmt.Stringer.
func (p Product) String() string {
	return p.Name
}

// openSUSE shorthand selectors accepted without the prefix.
var openSUSEShorthands = map[string]bool{
	"Leap":       true,
	"Leap_Micro": true,
	"Tumbleweed": true,
}

// Normalize maps user-facing selector spellings onto catalog names.
// Bare openSUSE names gain their prefix, and the three generations of
// SLE Micro are disambiguated by version: SUSE-MicroOS up to 5.2,
// SLE-Micro for 5.3-5.5, SL-Micro from 6.0 on. Selectors that don't
// parse are returned unchanged and left to catalog resolution.
func Normalize(selector string) string {
	if openSUSEShorthands[selector] {
		return "openSUSE_" + selector
	}
	if !strings.Contains(selector, "Micro") || strings.Contains(selector, "Leap") {
		return selector
	}

	_, version, found := strings.Cut(selector, "/")
	if !found {
		return selector
	}
	majorStr, subStr, found := strings.Cut(version, ".")
	if !found {
		return selector
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return selector
	}
	if major > 5 {
		return "SL-Micro/" + version
	}
	sub, err := strconv.Atoi(subStr)
	if err != nil {
		return selector
	}
	if sub > 2 {
		return "SLE-Micro/" + version
	}
	return "SUSE-MicroOS/" + version
}
