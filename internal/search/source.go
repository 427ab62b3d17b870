package search

import (
	"context"
	"errors"
	"strings"

	"github.com/ricardobranco777/susepkg/pkg/opensuse"
	"github.com/ricardobranco777/susepkg/pkg/scc"
)

// apiSource routes a QuerySpec to the API serving its product: SCC for
// the SLE families, mirrorcache for openSUSE.
type apiSource struct {
	scc      *scc.Client
	opensuse *opensuse.Client
}

// NewSource builds the PageSource backed by the real APIs.
func NewSource(sc *scc.Client, oc *opensuse.Client) PageSource {
	return &apiSource{scc: sc, opensuse: oc}
}

func (s *apiSource) FetchPage(ctx context.Context, spec QuerySpec, cursor string) (Page, error) {
	if spec.Product.IsOpenSUSE() {
		return s.fetchOpenSUSE(ctx, spec)
	}
	return s.fetchSCC(ctx, spec, cursor)
}

func (s *apiSource) fetchSCC(ctx context.Context, spec QuerySpec, cursor string) (Page, error) {
	pkgs, next, err := s.scc.SearchPage(ctx, spec.Product.ID, spec.Query, cursor)
	if err != nil {
		return Page{}, classify(spec, err, scc.ErrMalformed)
	}

	records := make([]PackageRecord, 0, len(pkgs))
	for _, p := range pkgs {
		records = append(records, PackageRecord{
			Name:    p.Name,
			Version: p.Version,
			Release: p.Release,
			Arch:    p.Arch,
			Product: spec.Product.DisplayName(),
		})
	}
	return Page{Records: records, Next: next}, nil
}

// fetchOpenSUSE queries mirrorcache, which answers in a single page.
func (s *apiSource) fetchOpenSUSE(ctx context.Context, spec QuerySpec) (Page, error) {
	osName, osVer := splitOpenSUSE(spec.Product.Name)

	pkgs, err := s.opensuse.PackageLocations(ctx, osName, osVer, spec.Query)
	if err != nil {
		return Page{}, classify(spec, err, opensuse.ErrMalformed)
	}

	records := make([]PackageRecord, 0, len(pkgs))
	for _, p := range pkgs {
		records = append(records, PackageRecord{
			Name:    p.Name,
			Version: p.Version,
			Release: p.Release,
			Arch:    p.Arch,
			Product: spec.Product.DisplayName(),
		})
	}
	return Page{Records: records}, nil
}

// splitOpenSUSE maps a catalog name like "openSUSE_Leap_Micro/6.0" to
// the mirrorcache os ("leap-micro") and os_ver ("6.0") parameters.
func splitOpenSUSE(name string) (osName, osVer string) {
	osName, osVer, _ = strings.Cut(name, "/")
	osName = strings.TrimPrefix(osName, "openSUSE_")
	osName = strings.ToLower(strings.ReplaceAll(osName, "_", "-"))
	return osName, osVer
}

// classify wraps a client error in the core error taxonomy: schema
// violations become MalformedResponseError, everything else is a
// transport failure.
func classify(spec QuerySpec, err, malformed error) error {
	if errors.Is(err, malformed) {
		return &MalformedResponseError{Product: spec.Product.Name, Reason: err.Error()}
	}
	return &TransportError{Product: spec.Product.Name, Err: err}
}
