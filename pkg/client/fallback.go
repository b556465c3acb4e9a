package client

import (
	"context"
	"log/slog"
)

// FallbackRepository is the last link of the degradation chain: when
// the wrapped Repository fails with a network-level error, the request
// is answered from the fallback instead. Wrapped around a
// CachedRepository this yields live -> fresh cache -> stale cache ->
// offline dataset, with ErrOffline only once all four are exhausted.
//
// Non-network errors (a 404, a rejected parameter, a canceled context)
// pass through untouched; the fallback must not mask real answers.
type FallbackRepository struct {
	next     Repository
	fallback Repository
}

var _ Repository = (*FallbackRepository)(nil)

// WithFallback wraps next with a degradation fallback. A nil fallback
// uses the built-in offline dataset.
func WithFallback(next, fallback Repository) *FallbackRepository {
	if fallback == nil {
		fallback = Offline()
	}
	return &FallbackRepository{next: next, fallback: fallback}
}

// degrade logs the switchover once per failed call. networkFailure has
// already filtered out canceled and expired caller contexts.
func degrade(op string, err error) {
	slog.Debug("catalog unreachable, serving fallback data",
		slog.String("operation", op),
		slog.Any("error", err))
}

func (f *FallbackRepository) Channels(ctx context.Context) (*ChannelList, error) {
	res, err := f.next.Channels(ctx)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("channels", err)
	return f.fallback.Channels(ctx)
}

func (f *FallbackRepository) Themes(ctx context.Context, p ThemesParams) (*ThemeList, error) {
	res, err := f.next.Themes(ctx, p)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("themes", err)
	return f.fallback.Themes(ctx, p)
}

func (f *FallbackRepository) Titles(ctx context.Context, p TitlesParams) (*EntryList, error) {
	res, err := f.next.Titles(ctx, p)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("titles", err)
	return f.fallback.Titles(ctx, p)
}

func (f *FallbackRepository) Entry(ctx context.Context, channel, theme, title string) (*EntryResult, error) {
	res, err := f.next.Entry(ctx, channel, theme, title)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("entry", err)
	return f.fallback.Entry(ctx, channel, theme, title)
}

func (f *FallbackRepository) EntryByTheme(ctx context.Context, theme, title string) (*EntryResult, error) {
	res, err := f.next.EntryByTheme(ctx, theme, title)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("entry-by-theme", err)
	return f.fallback.EntryByTheme(ctx, theme, title)
}

func (f *FallbackRepository) EntryByTitle(ctx context.Context, title string) (*EntryResult, error) {
	res, err := f.next.EntryByTitle(ctx, title)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("entry-by-title", err)
	return f.fallback.EntryByTitle(ctx, title)
}

func (f *FallbackRepository) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	res, err := f.next.Search(ctx, p)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("search", err)
	return f.fallback.Search(ctx, p)
}

func (f *FallbackRepository) Recent(ctx context.Context, minTimestamp int64, limit int) (*EntryList, error) {
	res, err := f.next.Recent(ctx, minTimestamp, limit)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("recent", err)
	return f.fallback.Recent(ctx, minTimestamp, limit)
}

func (f *FallbackRepository) Stats(ctx context.Context) (*Stats, error) {
	res, err := f.next.Stats(ctx)
	if err == nil || !networkFailure(ctx, err) {
		return res, err
	}
	degrade("stats", err)
	return f.fallback.Stats(ctx)
}
