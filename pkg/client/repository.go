package client

import "context"

// Source reports where a result was served from. Decorators stamp it as
// results pass through; the plain REST client always reports SourceLive.
type Source int

const (
	// SourceLive is a response fetched from the API for this call.
	SourceLive Source = iota
	// SourceCache is a fresh cached response, no network involved.
	SourceCache
	// SourceStale is an expired cached response served because the
	// network call failed.
	SourceStale
	// SourceOffline is the built-in offline dataset.
	SourceOffline
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceCache:
		return "cache"
	case SourceStale:
		return "stale"
	case SourceOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Origin is embedded in every result type and carries the Source stamp.
// It never serializes; the wire format stays identical to the API's.
type Origin struct {
	Source Source `json:"-"`
}

func (o *Origin) setSource(s Source) { o.Source = s }

// Stale reports whether the result may lag behind the live catalog.
func (o Origin) Stale() bool {
	return o.Source == SourceStale || o.Source == SourceOffline
}

// sourced is implemented by every result pointer type via Origin.
type sourced interface{ setSource(Source) }

// Entry is one catalog entry as served by the API.
type Entry struct {
	ID          int64  `json:"id"`
	Channel     string `json:"channel"`
	Theme       string `json:"theme"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	SizeMB      int    `json:"sizeMB"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Website     string `json:"website"`
	SubtitleURL string `json:"subtitleUrl,omitempty"`
	URLSmall    string `json:"urlSmall,omitempty"`
	URLHD       string `json:"urlHd,omitempty"`
	Timestamp   int64  `json:"timestamp"`
	Geo         string `json:"geo,omitempty"`
	IsNew       bool   `json:"isNew"`
}

// BestQualityURL returns the highest-quality media URL of the entry:
// HD when present, otherwise normal, otherwise the low-quality variant.
func (e *Entry) BestQualityURL() string {
	if e.URLHD != "" {
		return e.URLHD
	}
	if e.URL != "" {
		return e.URL
	}
	return e.URLSmall
}

// ChannelList is the result of Channels.
type ChannelList struct {
	Origin
	Channels []string
}

// ThemeList is one page of theme names.
type ThemeList struct {
	Origin
	Themes []string
	Total  int64
	Offset int
	Limit  int
}

// EntryList is one page of entries, newest first.
type EntryList struct {
	Origin
	Entries []Entry
	Total   int64
	Offset  int
	Limit   int
}

// SearchResult is an EntryList plus the query the server normalized.
type SearchResult struct {
	EntryList
	Query string
}

// EntryResult wraps a single entry lookup.
type EntryResult struct {
	Origin
	Entry Entry
}

// Stats mirrors the catalog statistics endpoint.
type Stats struct {
	Origin
	TotalEntries    int64 `json:"totalEntries"`
	ChannelCount    int64 `json:"channelCount"`
	ThemeCount      int64 `json:"themeCount"`
	LatestTimestamp int64 `json:"latestTimestamp"`
	NewEntriesCount int64 `json:"newEntriesCount"`
}

// ThemesParams narrows and pages the theme listing. Zero values mean no
// filter and server-side defaults.
type ThemesParams struct {
	Channel      string
	MinTimestamp int64
	Limit        int
	Offset       int
}

// TitlesParams narrows and pages the title listing.
type TitlesParams struct {
	Channel      string
	Theme        string
	MinTimestamp int64
	Limit        int
	Offset       int
}

// SearchParams describes a catalog search. Query must be non-empty;
// every word of it must match title, description, or theme.
type SearchParams struct {
	Query   string
	Channel string
	Theme   string
	Limit   int
	Offset  int
}

// Repository is the browse, detail, and search surface of the catalog.
// New returns the REST implementation; WithCache and WithFallback wrap
// any Repository with caching and offline degradation.
type Repository interface {
	Channels(ctx context.Context) (*ChannelList, error)
	Themes(ctx context.Context, p ThemesParams) (*ThemeList, error)
	Titles(ctx context.Context, p TitlesParams) (*EntryList, error)
	Entry(ctx context.Context, channel, theme, title string) (*EntryResult, error)
	EntryByTheme(ctx context.Context, theme, title string) (*EntryResult, error)
	EntryByTitle(ctx context.Context, title string) (*EntryResult, error)
	Search(ctx context.Context, p SearchParams) (*SearchResult, error)
	Recent(ctx context.Context, minTimestamp int64, limit int) (*EntryList, error)
	Stats(ctx context.Context) (*Stats, error)
}
