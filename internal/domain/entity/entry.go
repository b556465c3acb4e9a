// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as MediaEntry
// and Broadcaster, along with their validation rules and domain-specific errors.
package entity

import (
	"strconv"
	"strings"
)

// MediaEntry represents one broadcast item from the Filmliste catalog.
// It is a flat record: channel and theme group entries, the remaining
// fields describe the single broadcast and its media URLs.
type MediaEntry struct {
	ID          int64
	Channel     string
	Theme       string
	Title       string
	Date        string // broadcast date as published, DD.MM.YYYY
	Time        string // broadcast time as published, HH:MM:SS
	Duration    string // HH:MM:SS, may be empty
	SizeMB      int
	Description string
	URL         string
	Website     string
	SubtitleURL string
	URLSmall    string
	URLHD       string
	Timestamp   int64 // unix seconds of broadcast, 0 when unknown
	Geo         string
	IsNew       bool
}

// Validate checks the invariants every stored entry must satisfy.
// Channel and theme are the grouping keys of the catalog and must be present;
// a negative timestamp can only come from a corrupt source document.
func (e *MediaEntry) Validate() error {
	if strings.TrimSpace(e.Channel) == "" {
		return &ValidationError{Field: "channel", Message: "channel is required"}
	}
	if strings.TrimSpace(e.Theme) == "" {
		return &ValidationError{Field: "theme", Message: "theme is required"}
	}
	if e.Timestamp < 0 {
		return &ValidationError{Field: "timestamp", Message: "timestamp must not be negative"}
	}
	return nil
}

// BestQualityURL returns the highest-quality media URL available for the
// entry: HD when present, otherwise the normal URL, otherwise the low
// quality variant. An empty string means the entry has no playable URL.
func (e *MediaEntry) BestQualityURL() string {
	if e.URLHD != "" {
		return e.URLHD
	}
	if e.URL != "" {
		return e.URL
	}
	return e.URLSmall
}

// DurationSeconds parses the HH:MM:SS duration field into seconds.
// Malformed or empty durations yield 0.
func (e *MediaEntry) DurationSeconds() int {
	parts := strings.Split(e.Duration, ":")
	if len(parts) != 3 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil || s < 0 || s > 59 {
		return 0
	}
	return h*3600 + m*60 + s
}

// CatalogStats summarizes the stored catalog for the stats endpoint and
// operational gauges.
type CatalogStats struct {
	TotalEntries    int64
	ChannelCount    int64
	ThemeCount      int64
	LatestTimestamp int64
	NewEntries      int64
}
