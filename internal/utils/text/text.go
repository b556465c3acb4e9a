// Package text provides rune-aware helpers for terminal output. Catalog
// titles and themes are German with the occasional umlaut-heavy compound,
// so byte-based truncation would cut multi-byte characters in half.
package text

// CountRunes counts Unicode characters rather than bytes, so
// "Märchenhaftes Ostfriesland" measures the same as its ASCII-length
// equivalent in a fixed-width table.
func CountRunes(s string) int {
	return len([]rune(s))
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// something was cut. A max below 2 returns the bare cut without the
// ellipsis, since the marker would be longer than the budget.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 2 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// Pad right-pads s with spaces to width runes; longer strings pass
// through unchanged.
func Pad(s string, width int) string {
	n := CountRunes(s)
	for n < width {
		s += " "
		n++
	}
	return s
}
