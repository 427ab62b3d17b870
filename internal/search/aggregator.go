package search

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the product fan-out.
const maxConcurrentFetches = 10

// PageSource fetches one result page for a query. An empty cursor
// requests the first page; the returned Page carries the cursor for
// the next one.
type PageSource interface {
	FetchPage(ctx context.Context, spec QuerySpec, cursor string) (Page, error)
}

// FetchAll drains every page for one QuerySpec. Termination relies on
// the API's own pagination contract (no next cursor, or an empty page);
// a cursor seen twice means the server is looping and is reported as a
// malformed response rather than followed forever.
func FetchAll(ctx context.Context, src PageSource, spec QuerySpec) ([]PackageRecord, error) {
	var records []PackageRecord

	cursor := ""
	seen := map[string]bool{cursor: true}
	for {
		page, err := src.FetchPage(ctx, spec, cursor)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)

		if page.Next == "" || len(page.Records) == 0 {
			return records, nil
		}
		if seen[page.Next] {
			return nil, &MalformedResponseError{
				Product: spec.Product.Name,
				Reason:  "pagination cursor repeated: " + page.Next,
			}
		}
		seen[page.Next] = true
		cursor = page.Next
	}
}

// Gather fetches every QuerySpec concurrently (bounded fan-out) and
// concatenates the results. A failed product is logged and skipped so
// one broken product cannot abort an "any" search; only when every
// fetch fails does Gather return an error. Final ordering is the
// reducer's job, so concatenation order does not matter.
func Gather(ctx context.Context, src PageSource, specs []QuerySpec, logger *log.Logger) ([]PackageRecord, error) {
	// Per-fetch slots: no shared mutable state, merged after Wait.
	results := make([][]PackageRecord, len(specs))
	errs := make([]error, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			logger.Debug("fetching packages", "product", spec.Product.Name, "query", spec.Query)
			results[i], errs[i] = FetchAll(ctx, src, spec)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	var records []PackageRecord
	var lastErr error
	failures := 0
	for i := range specs {
		if errs[i] != nil {
			failures++
			lastErr = errs[i]
			logger.Warn("skipping product", "product", specs[i].Product.Name, "error", errs[i])
			continue
		}
		records = append(records, results[i]...)
	}

	if failures == len(specs) && failures > 0 {
		return nil, lastErr
	}
	return records, nil
}
