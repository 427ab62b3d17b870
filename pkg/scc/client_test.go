package scc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchPage(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != acceptHeader {
			t.Errorf("Accept = %q, want %q", got, acceptHeader)
		}

		switch r.URL.Query().Get("page") {
		case "":
			if got := r.URL.Query().Get("product_id"); got != "2795" {
				t.Errorf("product_id = %q, want 2795", got)
			}
			if got := r.URL.Query().Get("query"); got != "podman" {
				t.Errorf("query = %q, want podman", got)
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s/packages?page=2>; rel="next"`, server.URL))
			fmt.Fprint(w, `{"data":[{"id":1,"name":"podman","arch":"x86_64","version":"4.4.4","release":"1.1"}]}`)
		case "2":
			fmt.Fprint(w, `{"data":[{"id":2,"name":"podman","arch":"x86_64","version":"4.9.5","release":"1.2"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	pkgs, next, err := client.SearchPage(context.Background(), 2795, "podman", "")
	if err != nil {
		t.Fatalf("SearchPage() error: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Version != "4.4.4" {
		t.Fatalf("unexpected first page: %+v", pkgs)
	}
	if next == "" {
		t.Fatal("expected a next page cursor")
	}

	pkgs, next, err = client.SearchPage(context.Background(), 2795, "podman", next)
	if err != nil {
		t.Fatalf("SearchPage(cursor) error: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Version != "4.9.5" {
		t.Fatalf("unexpected second page: %+v", pkgs)
	}
	if next != "" {
		t.Errorf("expected no further pages, got %q", next)
	}
}

func TestSearchPageMissingDataKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, _, err := client.SearchPage(context.Background(), 1, "vim", "")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestSearchPageInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, _, err := client.SearchPage(context.Background(), 1, "vim", "")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestSearchPageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, _, err := client.SearchPage(context.Background(), 1, "vim", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrMalformed) {
		t.Errorf("HTTP error should not be ErrMalformed: %v", err)
	}
}

func TestProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":2795,"name":"SUSE Linux Enterprise Server","identifier":"SLES/15.6/x86_64","architecture":"x86_64"},
			{"id":2818,"name":"SUSE Linux Micro","identifier":"SL-Micro/6.0/x86_64","architecture":"x86_64"}
		]}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	products, err := client.Products(context.Background())
	if err != nil {
		t.Fatalf("Products() error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Identifier != "SLES/15.6/x86_64" {
		t.Errorf("Identifier = %q", products[0].Identifier)
	}
}

func TestProductsPaginationLoop(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always advertise the same next page.
		w.Header().Set("Link", fmt.Sprintf(`<%s/products>; rel="next"`, server.URL))
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Products(context.Background())
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed on pagination loop, got %v", err)
	}
}

type mapCache map[string][]byte

func (m mapCache) Get(key string) ([]byte, bool) {
	body, ok := m[key]
	return body, ok
}

func (m mapCache) Put(key string, body []byte) error {
	m[key] = body
	return nil
}

func TestSearchPageCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"data":[{"id":1,"name":"vim","arch":"x86_64","version":"9.1","release":"1.1"}]}`)
	}))
	defer server.Close()

	cache := make(mapCache)
	client := NewClient(WithBaseURL(server.URL), WithCache(cache))

	for i := 0; i < 2; i++ {
		pkgs, _, err := client.SearchPage(context.Background(), 1, "vim", "")
		if err != nil {
			t.Fatalf("SearchPage() error: %v", err)
		}
		if len(pkgs) != 1 || pkgs[0].Name != "vim" {
			t.Fatalf("unexpected packages: %+v", pkgs)
		}
	}

	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}

func TestParseNextLink(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{`<https://scc.suse.com/api/package_search/packages?page=2>; rel="next"`, "https://scc.suse.com/api/package_search/packages?page=2"},
		{`<https://x/p?page=9>; rel="last", <https://x/p?page=2>; rel="next"`, "https://x/p?page=2"},
		{`<https://x/p?page=1>; rel="first"`, ""},
	}

	for _, tt := range tests {
		if got := parseNextLink(tt.header); got != tt.want {
			t.Errorf("parseNextLink(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
