package cli

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/ricardobranco777/susepkg/internal/cache"
	"github.com/ricardobranco777/susepkg/internal/catalog"
	"github.com/ricardobranco777/susepkg/internal/config"
	"github.com/ricardobranco777/susepkg/internal/search"
	"github.com/ricardobranco777/susepkg/internal/ui"
	"github.com/ricardobranco777/susepkg/pkg/opensuse"
	"github.com/ricardobranco777/susepkg/pkg/scc"
)

// runQuery is the whole pipeline of one invocation: resolve products,
// plan queries, fetch, match, reduce, print.
func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listOnly := slices.Contains(products, catalog.List)
	if listOnly && len(products) > 1 {
		return ErrListCombined
	}
	if !listOnly && len(args) == 0 {
		_ = cmd.Help() //nolint:errcheck
		return ErrNoPackage
	}

	// A bad pattern must fail before any network activity, so the
	// match spec is compiled and the selector validated first.
	// The architecture filter admits noarch packages alongside the
	// selected architecture.
	var matcher *search.MatchSpec
	if !listOnly {
		var err error
		matcher, err = search.NewMatchSpec(args[0], useRegex, insensitive,
			[]string{cfg.General.Arch, "noarch"})
		if err != nil {
			return err
		}
		if err := search.ValidateSelector(args[0]); err != nil {
			return err
		}
	}

	sccClient, osClient, cleanup, err := newClients()
	if err != nil {
		return err
	}
	defer cleanup()

	var cat *catalog.Catalog
	err = ui.WithSpinner("Fetching product catalog...", func() error {
		var err error
		cat, err = catalog.Load(ctx, sccClient, osClient, cfg.General.Arch)
		return err
	})
	if err != nil {
		return err
	}

	if listOnly {
		ui.PrintProducts(cat.Products())
		return nil
	}

	selectors := make([]string, 0, len(products))
	for _, selector := range products {
		selectors = append(selectors, cfg.ResolveAlias(selector))
	}

	resolved, err := cat.Resolve(selectors)
	if err != nil {
		return err
	}

	specs, err := search.Plan(resolved, args[0])
	if err != nil {
		return err
	}

	src := search.NewSource(sccClient, osClient)

	var records []search.PackageRecord
	err = ui.WithSpinner("Searching packages...", func() error {
		var err error
		records, err = search.Gather(ctx, src, specs, logger)
		return err
	})
	if err != nil {
		return err
	}

	results := search.Reduce(matcher.Filter(records), cfg.General.AllVersions)

	// Zero matches is a valid empty result, not an error.
	ui.PrintRecords(results)
	return nil
}

// newClients builds the API clients, sharing one response cache when
// enabled. The returned cleanup closes the cache.
func newClients() (*scc.Client, *opensuse.Client, func(), error) {
	httpTimeout := cfg.Timeout()

	sccOpts := []scc.Option{scc.WithHTTPClient(newHTTPClient(httpTimeout))}
	osOpts := []opensuse.Option{opensuse.WithHTTPClient(newHTTPClient(httpTimeout))}

	cleanup := func() {}
	if cfg.Cache.Enabled {
		if err := config.EnsureDataDir(); err != nil {
			return nil, nil, nil, err
		}
		store, err := cache.Open(config.CachePath(), cfg.CacheTTL())
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup = func() { _ = store.Close() } //nolint:errcheck
		sccOpts = append(sccOpts, scc.WithCache(store))
		osOpts = append(osOpts, opensuse.WithCache(store))
	}

	return scc.NewClient(sccOpts...), opensuse.NewClient(osOpts...), cleanup, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
