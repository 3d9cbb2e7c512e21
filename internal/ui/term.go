// File: internal/ui/term.go
// Brief: Terminal width and color mode helpers.

// Package ui holds small terminal helpers shared by tplan renderers.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const DefaultWidth = 80

type fdProvider interface {
	Fd() uintptr
}

// TerminalWidth reports the column count of w when it is a terminal.
func TerminalWidth(w io.Writer) (int, bool) {
	if v, ok := w.(fdProvider); ok {
		if cols, _, err := term.GetSize(int(v.Fd())); err == nil && cols > 0 {
			return cols, true
		}
	}
	return 0, false
}

// WidthOr returns the terminal width of w, or fallback when unknown.
func WidthOr(w io.Writer, fallback int) int {
	if cols, ok := TerminalWidth(w); ok {
		return cols
	}
	return fallback
}

func IsTerminal(w io.Writer) bool {
	if v, ok := w.(fdProvider); ok {
		return term.IsTerminal(int(v.Fd()))
	}
	return false
}

// ResolveColor decides whether output to w should be colorized.
// mode is auto, always or never; auto honors NO_COLOR and tty detection.
func ResolveColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return IsTerminal(w), nil
	case "always", "on":
		return true, nil
	case "never", "off":
		return false, nil
	default:
		return false, fmt.Errorf("unknown color mode %q (expected auto, always, or never)", mode)
	}
}
