package rpmver

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"4.4.4", "4.9.5", -1},
		{"4.9.5", "4.4.4", 1},
		{"4.9.5", "4.9.5", 0},
		{"1.10", "1.9", 1},
		{"1.0~rc1", "1.0", -1},
		{"2.0", "2.0.0", -1},
		{"15.6", "15.6", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	v := Version{Version: "4.9.5", Release: "150500.3.9.1"}
	if got := v.String(); got != "4.9.5-150500.3.9.1" {
		t.Errorf("String() = %q", got)
	}
}
