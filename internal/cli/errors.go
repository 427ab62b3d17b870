package cli

import (
	"errors"
)

var (
	// ErrNoPackage is returned when no package argument is given.
	ErrNoPackage = errors.New("no package specified")

	// ErrListCombined is returned when 'list' is mixed with other
	// product selectors.
	ErrListCombined = errors.New("'list' cannot be combined with other products")
)

// InvalidArchError is returned for architectures the SUSE APIs don't
// serve.
type InvalidArchError struct {
	Arch string
}

func (e *InvalidArchError) Error() string {
	return "invalid architecture: " + e.Arch + " (expected one of aarch64, ppc64le, s390x, x86_64)"
}
