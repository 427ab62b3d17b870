package search

import (
	"sort"

	"github.com/ricardobranco777/susepkg/pkg/rpmver"
)

// Reduce deduplicates, orders and optionally thins a result set.
//
// Exact duplicates (overlapping pages, overlapping "any" fan-out) are
// collapsed on the full record tuple. Ordering is name, then version
// under RPM ordering, then release, architecture and product for
// determinism. With keepAllVersions false only the newest version per
// (name, arch, product) group survives; records whose versions compare
// equal but differ in release are all kept — release strings have no
// total order, so a version tie never drops a record.
//
// Reduce is idempotent.
func Reduce(records []PackageRecord, keepAllVersions bool) []PackageRecord {
	seen := make(map[PackageRecord]bool, len(records))
	out := make([]PackageRecord, 0, len(records))
	for _, record := range records {
		if !seen[record] {
			seen[record] = true
			out = append(out, record)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if cmp := rpmver.Compare(a.Version, b.Version); cmp != 0 {
			return cmp < 0
		}
		if a.Release != b.Release {
			return a.Release < b.Release
		}
		if a.Arch != b.Arch {
			return a.Arch < b.Arch
		}
		return a.Product < b.Product
	})

	if keepAllVersions {
		return out
	}
	return keepNewest(out)
}

// groupKey identifies a version group for the newest-only mode.
type groupKey struct {
	Name    string
	Arch    string
	Product string
}

// keepNewest retains the highest-version records of each group,
// assuming records is already version-sorted within groups.
func keepNewest(records []PackageRecord) []PackageRecord {
	newest := make(map[groupKey]string, len(records))
	for _, record := range records {
		key := groupKey{record.Name, record.Arch, record.Product}
		if v, ok := newest[key]; !ok || rpmver.Compare(record.Version, v) > 0 {
			newest[key] = record.Version
		}
	}

	out := make([]PackageRecord, 0, len(newest))
	for _, record := range records {
		key := groupKey{record.Name, record.Arch, record.Product}
		if rpmver.Compare(record.Version, newest[key]) == 0 {
			out = append(out, record)
		}
	}
	return out
}
