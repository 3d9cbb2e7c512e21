package ui

import (
	"bytes"
	"testing"
)

func TestResolveColor(t *testing.T) {
	var buf bytes.Buffer
	cases := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", false}, // a buffer is never a terminal
	}
	for _, tc := range cases {
		got, err := ResolveColor(tc.mode, &buf)
		if err != nil {
			t.Fatalf("%s: %v", tc.mode, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.mode, got, tc.want)
		}
	}
	if _, err := ResolveColor("rainbow", &buf); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestWidthOrFallsBackForBuffers(t *testing.T) {
	if got := WidthOr(&bytes.Buffer{}, 42); got != 42 {
		t.Fatalf("width=%d", got)
	}
}
