// Package search implements the query planning, fetching, matching and
// reduction pipeline behind a package version lookup.
package search

import (
	"github.com/ricardobranco777/susepkg/internal/catalog"
)

// PackageRecord is one package version found for a product. Records are
// value objects; equality on all five fields is the dedup key.
type PackageRecord struct {
	Name    string
	Version string
	Release string
	Arch    string
	Product string
}

// QuerySpec is one planned API query: a single product plus the
// server-side search term. Page cursors are handled by the pagination
// layer, not carried here.
type QuerySpec struct {
	Product catalog.Product
	Query   string
}

// Page is one fetched page of results. Next is the opaque cursor for
// the following page, empty when the API reports no more pages.
type Page struct {
	Records []PackageRecord
	Next    string
}
