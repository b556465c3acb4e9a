// Package pathutil normalizes request paths for metric labels. The API is
// query-parameter based, so the label set is the fixed route table; anything
// outside it collapses to a single label instead of leaking scanner noise
// into Prometheus.
package pathutil

import (
	"strings"
)

// UnknownPath is the label recorded for requests outside the route table.
// Crawlers probing random paths would otherwise mint one label per probe.
const UnknownPath = "/other"

// knownPaths is the fixed route table. Every route the server registers is
// listed here; the metrics middleware refuses to label anything else.
var knownPaths = map[string]struct{}{
	"/api/channels":         {},
	"/api/themes":           {},
	"/api/titles":           {},
	"/api/broadcasters":     {},
	"/api/entry":            {},
	"/api/entry/by-theme":   {},
	"/api/entry/by-title":   {},
	"/api/search":           {},
	"/api/entries":          {},
	"/api/entries/recent":   {},
	"/api/entries/count":    {},
	"/api/entries/diff":     {},
	"/api/stats":            {},
	"/api/filmliste/sync":   {},
	"/api/filmliste/diff":   {},
	"/api/filmliste/status": {},
	"/api/filmliste/cancel": {},
	"/api/auth/token":       {},
	"/api/health":           {},
	"/healthz/ready":        {},
	"/healthz/live":         {},
	"/metrics":              {},
}

// prefixTemplates collapses subtree routes that serve arbitrary file paths.
type prefixTemplate struct {
	prefix   string
	template string
}

var prefixTemplates = []prefixTemplate{
	{prefix: "/swagger", template: "/swagger/*"},
}

// NormalizePath maps a request path onto its metric label. Known routes
// pass through unchanged, subtree routes collapse to a template, and
// everything else becomes UnknownPath so label cardinality stays bounded
// by the route table.
//
// Examples:
//
//	NormalizePath("/api/titles")            // "/api/titles"
//	NormalizePath("/api/titles?limit=50")   // "/api/titles"
//	NormalizePath("/api/titles/")           // "/api/titles"
//	NormalizePath("/swagger/index.html")    // "/swagger/*"
//	NormalizePath("/wp-login.php")          // "/other"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}

	for _, p := range prefixTemplates {
		if path == p.prefix || strings.HasPrefix(path, p.prefix+"/") {
			return p.template
		}
	}

	return UnknownPath
}

// GetExpectedCardinality returns the number of unique path labels the
// metrics can carry: the route table, one template per subtree, and the
// unknown bucket.
func GetExpectedCardinality() int {
	return len(knownPaths) + 1 + 1
}
