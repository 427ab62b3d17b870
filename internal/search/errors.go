package search

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProducts is returned when planning is given an empty
	// product set.
	ErrNoProducts = errors.New("no products to search")

	// ErrInvalidPattern is returned for package patterns that cannot
	// be compiled or yield no usable search term. It is always raised
	// before any network activity.
	ErrInvalidPattern = errors.New("invalid package pattern")

	// ErrMalformedResponse marks API responses violating the expected
	// schema, including pagination cursor loops.
	ErrMalformedResponse = errors.New("malformed response")
)

// TransportError wraps a failure of the HTTP layer. The core never
// retries; retry policy belongs to the transport.
type TransportError struct {
	Product string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Product, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a schema violation or a pagination
// loop for one product's fetch.
type MalformedResponseError struct {
	Product string
	Reason  string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Product, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}
