// Package catalog provides HTTP handlers for the catalog vocabulary
// endpoints: channels, themes, broadcasters, and aggregated statistics.
package catalog

import "kuckmal/internal/domain/entity"

// ChannelsResponse is the envelope for the channel listing.
type ChannelsResponse struct {
	Data  []string `json:"data"`
	Count int      `json:"count" example:"21"`
}

// ThemesResponse is the envelope for paginated theme listings.
type ThemesResponse struct {
	Data   []string `json:"data"`
	Count  int      `json:"count" example:"100"`
	Total  int64    `json:"total" example:"18234"`
	Offset int      `json:"offset" example:"0"`
	Limit  int      `json:"limit" example:"100"`
}

// BroadcastersResponse is the envelope for the static broadcaster table.
type BroadcastersResponse struct {
	Data  []entity.Broadcaster `json:"data"`
	Count int                  `json:"count" example:"21"`
}

// StatsResponse carries the aggregated catalog statistics.
type StatsResponse struct {
	TotalEntries    int64 `json:"totalEntries" example:"520000"`
	ChannelCount    int64 `json:"channelCount" example:"21"`
	ThemeCount      int64 `json:"themeCount" example:"18234"`
	LatestTimestamp int64 `json:"latestTimestamp" example:"1755900000"`
	NewEntriesCount int64 `json:"newEntriesCount" example:"3421"`
}
