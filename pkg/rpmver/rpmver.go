// Package rpmver exposes RPM version ordering for package records.
package rpmver

import (
	"github.com/sassoftware/go-rpmutils"
)

// Compare orders two RPM version strings using rpmvercmp semantics
// (numeric segment comparison, tilde pre-releases, caret suffixes).
// It returns -1 if a < b, 0 if they compare equal, and 1 if a > b.
//
// Release strings are deliberately not part of this comparison: two
// records with equal versions but different releases are not ordered
// by the version rule.
func Compare(a, b string) int {
	return rpmutils.Vercmp(a, b)
}

// Version is a version-release pair as printed in output rows.
type Version struct {
	Version string
	Release string
}

func (v Version) String() string {
	return v.Version + "-" + v.Release
}
