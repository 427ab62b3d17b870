// Package scc provides a client for the SUSE Customer Center package
// search API.
package scc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the SCC package search API endpoint.
	DefaultBaseURL = "https://scc.suse.com/api/package_search"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 180 * time.Second

	acceptHeader = "application/vnd.scc.suse.com.v4+json"
	userAgent    = "susepkg/2.2"
)

// ErrMalformed marks responses that are not valid JSON or are missing
// the expected schema fields. Callers distinguish it from transport
// failures with errors.Is.
var ErrMalformed = errors.New("malformed response")

// Cache stores raw response bodies keyed by URL. Implementations decide
// expiry; a miss simply falls through to the network.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, body []byte) error
}

// Client is an SCC package search API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables response caching.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates an SCC client with default settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Product is one entry of the SCC product listing.
type Product struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Identifier   string `json:"identifier"` // e.g. "SLES/15.6/x86_64"
	Architecture string `json:"architecture"`
}

// Package is one entry of an SCC package search result page.
type Package struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Arch    string `json:"arch"`
	Version string `json:"version"`
	Release string `json:"release"`
}

// Products returns every product known to the package search API,
// following pagination until the API stops advertising a next page.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product

	next := c.baseURL + "/products"
	seen := make(map[string]bool)
	for next != "" {
		if seen[next] {
			return nil, fmt.Errorf("%w: pagination loop at %s", ErrMalformed, next)
		}
		seen[next] = true

		var page []Product
		var err error
		page, next, err = getPage[Product](ctx, c, next)
		if err != nil {
			return nil, err
		}
		products = append(products, page...)
	}

	return products, nil
}

// SearchPage fetches one page of package search results for a product.
// An empty cursor requests the first page; the returned cursor is the
// next page URL, or empty when the API reports no further pages.
// Pagination policy (loop detection, termination) belongs to the caller.
func (c *Client) SearchPage(ctx context.Context, productID int, query, cursor string) ([]Package, string, error) {
	endpoint := cursor
	if endpoint == "" {
		params := url.Values{}
		params.Set("product_id", strconv.Itoa(productID))
		params.Set("query", query)
		endpoint = c.baseURL + "/packages?" + params.Encode()
	}

	return getPage[Package](ctx, c, endpoint)
}

// page is the SCC response envelope. Every payload wraps its results
// in a "data" key.
type page[T any] struct {
	Data *[]T `json:"data"`
}

// getPage fetches one page and returns its records plus the next page
// URL from the Link header, if any.
func getPage[T any](ctx context.Context, c *Client, endpoint string) ([]T, string, error) {
	body, next, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, "", err
	}

	var p page[T]
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrMalformed, endpoint, err)
	}
	if p.Data == nil {
		return nil, "", fmt.Errorf("%w: %s: missing data key", ErrMalformed, endpoint)
	}

	return *p.Data, next, nil
}

// doRequest performs an HTTP GET against the API, consulting the cache
// first. It returns the response body and the rel="next" link target.
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, string, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(endpoint); ok {
			return unwrapCached(body)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("SCC API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	next := parseNextLink(resp.Header.Get("Link"))

	if c.cache != nil {
		_ = c.cache.Put(endpoint, wrapCached(body, next)) //nolint:errcheck
	}

	return body, next, nil
}

// cachedResponse carries the pieces of a response the cache must
// preserve: the body and the pagination link.
type cachedResponse struct {
	Next string `json:"next,omitempty"`
	Body []byte `json:"body"`
}

func wrapCached(body []byte, next string) []byte {
	out, _ := json.Marshal(cachedResponse{Next: next, Body: body}) //nolint:errcheck
	return out
}

func unwrapCached(raw []byte) ([]byte, string, error) {
	var cr cachedResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, "", fmt.Errorf("%w: cached entry: %v", ErrMalformed, err)
	}
	return cr.Body, cr.Next, nil
}

// parseNextLink extracts the rel="next" target from an RFC 5988 Link
// header. It returns "" when the header advertises no next page.
func parseNextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		if len(fields) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(fields[0]), "<>")
		for _, field := range fields[1:] {
			if strings.EqualFold(strings.TrimSpace(field), `rel="next"`) {
				return target
			}
		}
	}
	return ""
}
