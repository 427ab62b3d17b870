package ui

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ricardobranco777/susepkg/internal/catalog"
	"github.com/ricardobranco777/susepkg/internal/search"
	"github.com/ricardobranco777/susepkg/pkg/rpmver"
)

// PrintRecords prints result rows as aligned columns:
// product, package name, version-release.
func PrintRecords(records []search.PackageRecord) {
	FprintRecords(os.Stdout, records)
}

// FprintRecords writes result rows to w.
func FprintRecords(w io.Writer, records []search.PackageRecord) {
	if len(records) == 0 {
		Muted.Fprintln(os.Stderr, "No packages found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range records {
		version := rpmver.Version{Version: r.Version, Release: r.Release}
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			ProductName.Sprint(r.Product),
			PackageName.Sprint(r.Name),
			PackageVersion.Sprint(version.String()),
		)
	}
	tw.Flush()
}

// PrintProducts prints the product catalog, one product per line.
func PrintProducts(products []catalog.Product) {
	FprintProducts(os.Stdout, products)
}

// FprintProducts writes the product catalog to w.
func FprintProducts(w io.Writer, products []catalog.Product) {
	for _, p := range products {
		fmt.Fprintln(w, p.Name)
	}
}
