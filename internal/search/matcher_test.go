package search

import (
	"errors"
	"testing"
)

func record(name, arch string) PackageRecord {
	return PackageRecord{Name: name, Version: "1.0", Release: "1.1", Arch: arch, Product: "SLES/15.6"}
}

func TestMatchSpecGlob(t *testing.T) {
	tests := []struct {
		pattern     string
		insensitive bool
		name        string
		want        bool
	}{
		{"*podman*", false, "podman-common", true},
		{"*podman*", false, "libpodman2", true},
		{"*podman*", false, "docker", false},
		{"*PODMAN*", true, "podman-common", true},
		{"*PODMAN*", false, "podman-common", false},
		{"podman", false, "podman", true},
		{"podman", false, "podman-common", false},
		{"podman?", false, "podman2", true},
		{"podman?", false, "podman", false},
		{"podman[0-9]", false, "podman2", true},
		{"podman[0-9]", false, "podmanx", false},
		{"podman[!0-9]", false, "podmanx", true},
		{"podman[!0-9]", false, "podman2", false},
		{"vim.*", false, "vim.data", true},
		{"vim.*", false, "vimXdata", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			spec, err := NewMatchSpec(tt.pattern, false, tt.insensitive, nil)
			if err != nil {
				t.Fatalf("NewMatchSpec(%q) error: %v", tt.pattern, err)
			}
			if got := spec.Matches(record(tt.name, "x86_64")); got != tt.want {
				t.Errorf("Matches(%q) against %q = %v, want %v", tt.name, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchSpecRegex(t *testing.T) {
	tests := []struct {
		pattern     string
		insensitive bool
		name        string
		want        bool
	}{
		// search semantics: partial match, no implicit anchors
		{"podman-.*", false, "podman-common", true},
		{"podman-.*", false, "libpodman2", false},
		{"^lib", false, "libpodman2", true},
		{"^lib", false, "podman", false},
		{"pod", false, "libpodman2", true},
		{"PODMAN", true, "podman-common", true},
		{"PODMAN", false, "podman-common", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			spec, err := NewMatchSpec(tt.pattern, true, tt.insensitive, nil)
			if err != nil {
				t.Fatalf("NewMatchSpec(%q) error: %v", tt.pattern, err)
			}
			if got := spec.Matches(record(tt.name, "x86_64")); got != tt.want {
				t.Errorf("Matches(%q) against %q = %v, want %v", tt.name, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchSpecInvalidRegex(t *testing.T) {
	_, err := NewMatchSpec("pod(man", true, false, nil)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestMatchSpecArchFilter(t *testing.T) {
	spec, err := NewMatchSpec("*", false, false, []string{"x86_64", "noarch"})
	if err != nil {
		t.Fatal(err)
	}

	if !spec.Matches(record("podman", "x86_64")) {
		t.Error("expected x86_64 to match")
	}
	if !spec.Matches(record("podman", "noarch")) {
		t.Error("expected noarch to match")
	}
	if spec.Matches(record("podman", "s390x")) {
		t.Error("expected s390x to be filtered out")
	}
}

func TestMatchSpecNoArchFilterAcceptsAll(t *testing.T) {
	spec, err := NewMatchSpec("*", false, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, arch := range []string{"aarch64", "ppc64le", "s390x", "x86_64", "noarch", "src"} {
		if !spec.Matches(record("podman", arch)) {
			t.Errorf("expected arch %q to match without a filter", arch)
		}
	}
}

func TestFilter(t *testing.T) {
	spec, err := NewMatchSpec("*podman*", false, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	records := []PackageRecord{
		record("podman-common", "x86_64"),
		record("docker", "x86_64"),
		record("libpodman2", "x86_64"),
	}

	got := spec.Filter(records)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2: %v", len(got), got)
	}
	if got[0].Name != "podman-common" || got[1].Name != "libpodman2" {
		t.Errorf("wrong records or order: %v", got)
	}
}

func TestGlobToRegexp(t *testing.T) {
	tests := []struct {
		glob string
		want string
	}{
		{"*podman*", ".*podman.*"},
		{"pod?an", "pod.an"},
		{"vim.*", "vim\\..*"},
		{"a[bc]d", "a[bc]d"},
		{"a[!bc]d", "a[^bc]d"},
		{"a[", "a\\["},
	}

	for _, tt := range tests {
		if got := globToRegexp(tt.glob); got != tt.want {
			t.Errorf("globToRegexp(%q) = %q, want %q", tt.glob, got, tt.want)
		}
	}
}
