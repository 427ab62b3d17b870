// Package opensuse provides clients for the openSUSE distribution list
// and the mirrorcache package location search.
package opensuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultDistributionsURL lists the openSUSE distributions.
	DefaultDistributionsURL = "https://get.opensuse.org/api/v0/distributions.json"

	// DefaultMirrorcacheURL is the mirrorcache package search endpoint.
	DefaultMirrorcacheURL = "https://mirrorcache.opensuse.org/rest/search/package_locations"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 180 * time.Second

	userAgent = "susepkg/2.2"
)

// ErrMalformed marks responses that are not valid JSON or are missing
// the expected schema fields.
var ErrMalformed = errors.New("malformed response")

// Cache stores raw response bodies keyed by URL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, body []byte) error
}

// Client queries the openSUSE APIs.
type Client struct {
	distributionsURL string
	mirrorcacheURL   string
	httpClient       *http.Client
	cache            Cache
}

// Option configures a Client.
type Option func(*Client)

// WithDistributionsURL overrides the distribution list endpoint.
func WithDistributionsURL(u string) Option {
	return func(c *Client) { c.distributionsURL = u }
}

// WithMirrorcacheURL overrides the mirrorcache endpoint.
func WithMirrorcacheURL(u string) Option {
	return func(c *Client) { c.mirrorcacheURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables response caching.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates an openSUSE client with default settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		distributionsURL: DefaultDistributionsURL,
		mirrorcacheURL:   DefaultMirrorcacheURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Distribution is one openSUSE release usable as a search target.
type Distribution struct {
	Name    string // e.g. "openSUSE_Leap", spaces replaced
	Version string // empty only for rolling releases
}

// distribution is the raw distributions.json entry.
type distribution struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	State   string `json:"state"`
}

// Distributions returns the stable openSUSE releases plus the current
// Tumbleweed snapshot. Order is unspecified; callers sort.
func (c *Client) Distributions(ctx context.Context) ([]Distribution, error) {
	body, err := c.doRequest(ctx, c.distributionsURL)
	if err != nil {
		return nil, err
	}

	var data map[string][]distribution
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, c.distributionsURL, err)
	}

	var dists []Distribution
	for key, items := range data {
		for i, item := range items {
			// Only stable releases qualify, except Tumbleweed where
			// the first (newest) snapshot is the rolling target.
			if item.State != "Stable" && !(key == "Tumbleweed" && i == 0) {
				continue
			}
			dists = append(dists, Distribution{
				Name:    strings.ReplaceAll(item.Name, " ", "_"),
				Version: item.Version,
			})
		}
	}

	return dists, nil
}

// Package is one package location parsed from a mirrorcache result.
type Package struct {
	Name    string
	Version string
	Release string
	Arch    string
}

// location is the raw mirrorcache result entry.
type location struct {
	File string `json:"file"`
}

// locationsPage is the mirrorcache response envelope.
type locationsPage struct {
	Data *[]location `json:"data"`
}

// PackageLocations searches mirrorcache for packages of an official
// openSUSE distribution. osName is the lower-case distribution name
// without the openSUSE prefix ("leap", "tumbleweed"); osVer may be
// empty for rolling releases.
func (c *Client) PackageLocations(ctx context.Context, osName, osVer, pkg string) ([]Package, error) {
	params := url.Values{}
	params.Set("package", pkg)
	params.Set("os", osName)
	params.Set("official", "1")
	params.Set("ignore_file", "json")
	params.Set("ignore_path", "/repositories/home:")
	if osVer != "" {
		params.Set("os_ver", osVer)
	}

	endpoint := c.mirrorcacheURL + "?" + params.Encode()

	body, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var page locationsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, endpoint, err)
	}
	if page.Data == nil {
		return nil, fmt.Errorf("%w: %s: missing data key", ErrMalformed, endpoint)
	}

	packages := make([]Package, 0, len(*page.Data))
	for _, loc := range *page.Data {
		p, err := ParseRPMFilename(loc.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, endpoint, err)
		}
		packages = append(packages, p)
	}

	return packages, nil
}

// ParseRPMFilename splits an rpm filename of the form
// <name>-<version>-<release>.<arch>.rpm into its components.
func ParseRPMFilename(file string) (Package, error) {
	base, ok := strings.CutSuffix(file, ".rpm")
	if !ok {
		return Package{}, fmt.Errorf("not an rpm filename: %q", file)
	}

	dot := strings.LastIndex(base, ".")
	if dot < 0 {
		return Package{}, fmt.Errorf("no architecture in filename: %q", file)
	}
	arch := base[dot+1:]
	nvr := base[:dot]

	rel := strings.LastIndex(nvr, "-")
	if rel <= 0 {
		return Package{}, fmt.Errorf("no release in filename: %q", file)
	}
	ver := strings.LastIndex(nvr[:rel], "-")
	if ver <= 0 {
		return Package{}, fmt.Errorf("no version in filename: %q", file)
	}

	return Package{
		Name:    nvr[:ver],
		Version: nvr[ver+1 : rel],
		Release: nvr[rel+1:],
		Arch:    arch,
	}, nil
}

// doRequest performs an HTTP GET, consulting the cache first.
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(endpoint); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openSUSE API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Put(endpoint, body) //nolint:errcheck
	}

	return body, nil
}
