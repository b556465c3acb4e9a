package filmliste

import (
	"strconv"
	"strings"
)

// ResolveURL reconstructs a full media URL from the pipe-delimited form
// the list uses for quality variants: "offset|suffix" keeps the first
// offset characters of the base URL and appends the suffix.
//
// Malformed variants (no pipe, non-numeric or out-of-range offset) are
// kept only when they are already absolute URLs; anything else resolves
// to empty rather than storing garbage.
func ResolveURL(base, rel string) string {
	if rel == "" {
		return ""
	}

	offsetStr, suffix, found := strings.Cut(rel, "|")
	if !found {
		return keepIfAbsolute(rel)
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset <= 0 || offset > len(base) {
		return keepIfAbsolute(rel)
	}
	return base[:offset] + suffix
}

func keepIfAbsolute(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return ""
}
