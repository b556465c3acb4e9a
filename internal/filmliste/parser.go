// Package filmliste downloads, decompresses, and parses the MediathekView
// Filmliste catalog document and feeds the parsed entries into the media
// repository. The document is a single JSON object whose keys repeat: two
// "Filmliste" header arrays followed by one "X" array per broadcast entry,
// so it cannot be unmarshalled into a map and is instead walked token by
// token off a streaming decoder.
package filmliste

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"kuckmal/internal/domain/entity"
)

// Positions inside an "X" record. The slots in between carry rtmp
// variants and the history URL, which the catalog no longer populates.
const (
	posChannel     = 0
	posTheme       = 1
	posTitle       = 2
	posDate        = 3
	posTime        = 4
	posDuration    = 5
	posSizeMB      = 6
	posDescription = 7
	posURL         = 8
	posWebsite     = 9
	posSubtitleURL = 10
	posURLSmall    = 12
	posURLHD       = 14
	posTimestamp   = 16
	posGeo         = 18
	posIsNew       = 19
)

// BatchSize is how many entries are collected before a batch is handed
// to the emit callback. Sized so a full list of roughly half a million
// entries turns into about a hundred repository round trips.
const BatchSize = 5000

// ListMeta is the header of a catalog document, taken from the first
// "Filmliste" array.
type ListMeta struct {
	CreatedAt    string // local creation time as published, DD.MM.YYYY, HH:MM
	CreatedAtUTC string
	Version      string
	Creator      string
	ID           string
}

// ParseResult reports what a parse run produced.
type ParseResult struct {
	Meta    ListMeta
	Parsed  int64
	Skipped int64
}

// EmitFunc receives each completed batch of parsed entries. Returning an
// error aborts the parse. The batch slice is owned by the callee; the
// parser never reuses it.
type EmitFunc func(ctx context.Context, batch []*entity.MediaEntry) error

// Parse walks a catalog document and emits entries in batches of
// BatchSize. Records that cannot form a valid entry are counted and
// skipped; only JSON-level corruption aborts the run.
func Parse(ctx context.Context, r io.Reader, emit EmitFunc) (*ParseResult, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("Parse: read document start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("Parse: document starts with %v, expected an object", tok)
	}

	res := &ParseResult{}
	batch := make([]*entity.MediaEntry, 0, BatchSize)
	var prevChannel, prevTheme string
	headerSeen := false
	records := 0

	for dec.More() {
		if records%4096 == 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}
		}
		records++

		keyTok, err := dec.Token()
		if err != nil {
			return res, fmt.Errorf("Parse: record %d: read key: %w", records, err)
		}
		key, _ := keyTok.(string)

		var values []string
		if err := dec.Decode(&values); err != nil {
			return res, fmt.Errorf("Parse: record %d: decode values: %w", records, err)
		}

		if key != "X" {
			// The first header array carries the metadata, the second
			// the column names.
			if key == "Filmliste" && !headerSeen {
				headerSeen = true
				res.Meta = metaFromHeader(values)
			}
			continue
		}

		e, ok := entryFromRecord(values, &prevChannel, &prevTheme)
		if !ok {
			res.Skipped++
			continue
		}
		if err := e.Validate(); err != nil {
			res.Skipped++
			slog.Debug("skipping invalid catalog entry",
				"record", records,
				"channel", e.Channel,
				"theme", e.Theme,
				"error", err)
			continue
		}

		res.Parsed++
		batch = append(batch, e)
		if len(batch) >= BatchSize {
			if err := emit(ctx, batch); err != nil {
				return res, fmt.Errorf("Parse: emit batch: %w", err)
			}
			batch = make([]*entity.MediaEntry, 0, BatchSize)
		}
	}

	if len(batch) > 0 {
		if err := emit(ctx, batch); err != nil {
			return res, fmt.Errorf("Parse: emit final batch: %w", err)
		}
	}
	return res, nil
}

func metaFromHeader(values []string) ListMeta {
	at := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return ListMeta{
		CreatedAt:    at(0),
		CreatedAtUTC: at(1),
		Version:      at(2),
		Creator:      at(3),
		ID:           at(4),
	}
}

// entryFromRecord maps one "X" array onto an entry. Empty channel and
// theme slots inherit from the previous record; a record that stays
// without either after inheritance cannot be keyed and is dropped.
func entryFromRecord(values []string, prevChannel, prevTheme *string) (*entity.MediaEntry, bool) {
	if len(values) < 3 {
		return nil, false
	}

	channel := values[posChannel]
	if channel == "" {
		channel = *prevChannel
	}
	theme := values[posTheme]
	if theme == "" {
		theme = *prevTheme
	}
	*prevChannel, *prevTheme = channel, theme

	if channel == "" || theme == "" {
		return nil, false
	}

	at := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	timestamp, err := strconv.ParseInt(at(posTimestamp), 10, 64)
	if err != nil || timestamp < 0 {
		timestamp = 0
	}
	sizeMB, err := strconv.Atoi(at(posSizeMB))
	if err != nil {
		sizeMB = 0
	}

	url := at(posURL)
	return &entity.MediaEntry{
		Channel:     channel,
		Theme:       theme,
		Title:       at(posTitle),
		Date:        at(posDate),
		Time:        at(posTime),
		Duration:    at(posDuration),
		SizeMB:      sizeMB,
		Description: at(posDescription),
		URL:         url,
		Website:     at(posWebsite),
		SubtitleURL: at(posSubtitleURL),
		URLSmall:    ResolveURL(url, at(posURLSmall)),
		URLHD:       ResolveURL(url, at(posURLHD)),
		Timestamp:   timestamp,
		Geo:         at(posGeo),
		IsNew:       strings.EqualFold(at(posIsNew), "true"),
	}, true
}
