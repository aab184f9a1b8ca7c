package tui

import (
	"slices"
	"strings"
)

// compactSingleLine collapses whitespace and cuts text to at most limit runes.
func compactSingleLine(text string, limit int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	switch {
	case limit <= 0:
		return ""
	case len(runes) <= limit:
		return string(runes)
	case limit <= 3:
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// cycleString steps delta places through options from current, wrapping at
// both ends. An unknown current counts as the first option.
func cycleString(options []string, current string, delta int) string {
	n := len(options)
	if n == 0 {
		return current
	}
	idx := max(0, slices.Index(options, current))
	return options[((idx+delta)%n+n)%n]
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
