// Package entry provides HTTP handlers for catalog entries: listings,
// single-entry lookups, full-text search, incremental diffs, and the
// authenticated bulk mutations.
package entry

import "kuckmal/internal/domain/entity"

// DTO represents the JSON structure of one catalog entry.
type DTO struct {
	ID          int64  `json:"id" example:"1"`
	Channel     string `json:"channel" example:"ARD"`
	Theme       string `json:"theme" example:"Tatort"`
	Title       string `json:"title" example:"Tatort: Das Opfer"`
	Date        string `json:"date" example:"17.08.2025"`
	Time        string `json:"time" example:"20:15:00"`
	Duration    string `json:"duration" example:"01:28:00"`
	SizeMB      int    `json:"sizeMB" example:"920"`
	Description string `json:"description" example:"Kommissarin Lindholm ermittelt..."`
	URL         string `json:"url" example:"https://media.example.de/tatort.mp4"`
	Website     string `json:"website" example:"https://www.daserste.de/tatort"`
	SubtitleURL string `json:"subtitleUrl,omitempty"`
	URLSmall    string `json:"urlSmall,omitempty"`
	URLHD       string `json:"urlHd,omitempty"`
	Timestamp   int64  `json:"timestamp" example:"1755454500"`
	Geo         string `json:"geo,omitempty" example:"DE-AT-CH"`
	IsNew       bool   `json:"isNew" example:"false"`
}

// FromEntity maps a domain entry to its wire representation.
func FromEntity(e *entity.MediaEntry) DTO {
	return DTO{
		ID:          e.ID,
		Channel:     e.Channel,
		Theme:       e.Theme,
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Duration:    e.Duration,
		SizeMB:      e.SizeMB,
		Description: e.Description,
		URL:         e.URL,
		Website:     e.Website,
		SubtitleURL: e.SubtitleURL,
		URLSmall:    e.URLSmall,
		URLHD:       e.URLHD,
		Timestamp:   e.Timestamp,
		Geo:         e.Geo,
		IsNew:       e.IsNew,
	}
}

// toDTOs maps a slice of entries, never returning nil so empty listings
// encode as [] rather than null.
func toDTOs(entries []*entity.MediaEntry) []DTO {
	out := make([]DTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntity(e))
	}
	return out
}

// ListResponse is the envelope for paginated entry listings.
type ListResponse struct {
	Data   []DTO `json:"data"`
	Count  int   `json:"count" example:"100"`
	Total  int64 `json:"total" example:"520000"`
	Offset int   `json:"offset" example:"0"`
	Limit  int   `json:"limit" example:"100"`
}

// RecentResponse is the envelope for the recent-entries listing.
type RecentResponse struct {
	Data         []DTO `json:"data"`
	Count        int   `json:"count" example:"50"`
	MinTimestamp int64 `json:"minTimestamp" example:"1755450000"`
}

// DiffResponse is the envelope for incremental diff pulls.
type DiffResponse struct {
	Data  []DTO `json:"data"`
	Count int   `json:"count" example:"120"`
	Since int64 `json:"since" example:"1755450000"`
}

// CountResponse carries the total number of stored entries.
type CountResponse struct {
	Count int64 `json:"count" example:"520000"`
}

// DetailResponse wraps a single entry lookup.
type DetailResponse struct {
	Data DTO `json:"data"`
}

// SearchResponse is the paginated search envelope; it additionally
// carries the normalized query.
type SearchResponse struct {
	Data   []DTO  `json:"data"`
	Count  int    `json:"count" example:"14"`
	Total  int64  `json:"total" example:"14"`
	Offset int    `json:"offset" example:"0"`
	Limit  int    `json:"limit" example:"100"`
	Query  string `json:"query" example:"tatort münster"`
}

// BatchResponse reports a bulk insert.
type BatchResponse struct {
	Received int   `json:"received" example:"200"`
	Inserted int64 `json:"inserted" example:"180"`
	Skipped  int64 `json:"skipped" example:"20"`
}

// DeleteResponse reports a bulk delete.
type DeleteResponse struct {
	Deleted int64  `json:"deleted" example:"3500"`
	Channel string `json:"channel,omitempty" example:"ARD"`
}
