package coord

import (
	"errors"
	"fmt"
	"testing"

	apperr "sgf_review/internal/errors"
)

func TestToCompact(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"aa", "A1"},
		{"dp", "D16"},
		{"pd", "Q4"},
		{"ia", "J1"}, // 'I' is skipped
		{"ja", "K1"},
		{"ss", "T19"},
		{"yy", "Z25"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ToCompact(tt.raw)
			if err != nil {
				t.Fatalf("ToCompact(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ToCompact(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		raw  string
		size int
		want string
	}{
		{"aa", 19, "A19"},
		{"dp", 19, "D4"},
		{"pd", 19, "Q16"},
		{"ss", 19, "T1"},
		{"aa", 9, "A9"},
		{"yy", 25, "Z1"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.raw, tt.size), func(t *testing.T) {
			got, err := ToDisplay(tt.raw, tt.size)
			if err != nil {
				t.Fatalf("ToDisplay(%q, %d) error: %v", tt.raw, tt.size, err)
			}
			if got != tt.want {
				t.Errorf("ToDisplay(%q, %d) = %q, want %q", tt.raw, tt.size, got, tt.want)
			}
		})
	}
}

func TestCompactRoundTrip(t *testing.T) {
	// fromCompact(toCompact(x)) == x over the whole letter domain.
	for col := byte('a'); col <= 'y'; col++ {
		for row := byte('a'); row <= 'y'; row++ {
			raw := string([]byte{col, row})
			compact, err := ToCompact(raw)
			if err != nil {
				t.Fatalf("ToCompact(%q) error: %v", raw, err)
			}
			back, err := FromCompact(compact)
			if err != nil {
				t.Fatalf("FromCompact(%q) error: %v", compact, err)
			}
			if back != raw {
				t.Fatalf("round trip %q -> %q -> %q", raw, compact, back)
			}
		}
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	for _, size := range []int{9, 13, 19, 25} {
		last := byte('a' + size - 1)
		for col := byte('a'); col <= last; col++ {
			for row := byte('a'); row <= last; row++ {
				raw := string([]byte{col, row})
				display, err := ToDisplay(raw, size)
				if err != nil {
					t.Fatalf("ToDisplay(%q, %d) error: %v", raw, size, err)
				}
				back, err := FromDisplay(display, size)
				if err != nil {
					t.Fatalf("FromDisplay(%q, %d) error: %v", display, size, err)
				}
				if back != raw {
					t.Fatalf("size %d round trip %q -> %q -> %q", size, raw, display, back)
				}
			}
		}
	}
}

func TestRangeErrors(t *testing.T) {
	cases := []struct {
		name string
		call func() (string, error)
	}{
		{"raw z column", func() (string, error) { return ToCompact("za") }},
		{"raw too short", func() (string, error) { return ToCompact("a") }},
		{"reserved I", func() (string, error) { return FromCompact("I5") }},
		{"row zero", func() (string, error) { return FromCompact("A0") }},
		{"row too big", func() (string, error) { return FromCompact("A26") }},
		{"size too big", func() (string, error) { return ToDisplay("aa", 26) }},
		{"point off board", func() (string, error) { return ToDisplay("tt", 19) }},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			var re *apperr.RangeError
			if !errors.As(err, &re) {
				t.Fatalf("expected RangeError, got %v", err)
			}
		})
	}
}
