package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// offlineRepository serves a small built-in sample of the catalog so an
// application that has never reached the API still renders something.
// Every result is stamped SourceOffline; lookups the sample cannot
// answer fail with ErrOffline, because absence here says nothing about
// the real catalog.
type offlineRepository struct {
	entries []Entry
}

var _ Repository = (*offlineRepository)(nil)

// Offline returns the built-in offline dataset as a Repository.
func Offline() Repository {
	return &offlineRepository{entries: offlineEntries}
}

const offlineDefaultLimit = 100

func clampPage(limit, offset, total int) (int, int) {
	if limit <= 0 {
		limit = offlineDefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	return limit, offset
}

func (o *offlineRepository) Channels(ctx context.Context) (*ChannelList, error) {
	seen := map[string]bool{}
	var channels []string
	for _, e := range o.entries {
		if !seen[e.Channel] {
			seen[e.Channel] = true
			channels = append(channels, e.Channel)
		}
	}
	sort.Strings(channels)
	res := &ChannelList{Channels: channels}
	res.setSource(SourceOffline)
	return res, nil
}

func (o *offlineRepository) Themes(ctx context.Context, p ThemesParams) (*ThemeList, error) {
	seen := map[string]bool{}
	var themes []string
	for _, e := range o.entries {
		if p.Channel != "" && e.Channel != p.Channel {
			continue
		}
		if p.MinTimestamp > 0 && e.Timestamp < p.MinTimestamp {
			continue
		}
		if !seen[e.Theme] {
			seen[e.Theme] = true
			themes = append(themes, e.Theme)
		}
	}
	sort.Strings(themes)

	total := len(themes)
	limit, offset := clampPage(p.Limit, p.Offset, total)
	end := offset + limit
	if end > total {
		end = total
	}

	res := &ThemeList{
		Themes: themes[offset:end],
		Total:  int64(total),
		Offset: offset,
		Limit:  limit,
	}
	res.setSource(SourceOffline)
	return res, nil
}

func (o *offlineRepository) Titles(ctx context.Context, p TitlesParams) (*EntryList, error) {
	matches := o.filter(func(e *Entry) bool {
		if p.Channel != "" && e.Channel != p.Channel {
			return false
		}
		if p.Theme != "" && e.Theme != p.Theme {
			return false
		}
		return p.MinTimestamp <= 0 || e.Timestamp >= p.MinTimestamp
	})
	return pageNewestFirst(matches, p.Limit, p.Offset), nil
}

func (o *offlineRepository) Entry(ctx context.Context, channel, theme, title string) (*EntryResult, error) {
	for _, e := range o.entries {
		if e.Channel == channel && e.Theme == theme && e.Title == title {
			return offlineEntry(e), nil
		}
	}
	return nil, fmt.Errorf("Entry %q/%q/%q: %w", channel, theme, title, ErrOffline)
}

func (o *offlineRepository) EntryByTheme(ctx context.Context, theme, title string) (*EntryResult, error) {
	for _, e := range o.entries {
		if e.Theme == theme && e.Title == title {
			return offlineEntry(e), nil
		}
	}
	return nil, fmt.Errorf("EntryByTheme %q/%q: %w", theme, title, ErrOffline)
}

func (o *offlineRepository) EntryByTitle(ctx context.Context, title string) (*EntryResult, error) {
	for _, e := range o.entries {
		if e.Title == title {
			return offlineEntry(e), nil
		}
	}
	return nil, fmt.Errorf("EntryByTitle %q: %w", title, ErrOffline)
}

func (o *offlineRepository) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	words := strings.Fields(strings.ToLower(p.Query))
	if len(words) == 0 {
		return nil, errors.New("Search: query is required")
	}

	matches := o.filter(func(e *Entry) bool {
		if p.Channel != "" && e.Channel != p.Channel {
			return false
		}
		if p.Theme != "" && e.Theme != p.Theme {
			return false
		}
		haystack := strings.ToLower(e.Title + " " + e.Description + " " + e.Theme)
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				return false
			}
		}
		return true
	})

	res := &SearchResult{
		EntryList: *pageNewestFirst(matches, p.Limit, p.Offset),
		Query:     strings.Join(words, " "),
	}
	return res, nil
}

func (o *offlineRepository) Recent(ctx context.Context, minTimestamp int64, limit int) (*EntryList, error) {
	matches := o.filter(func(e *Entry) bool {
		return minTimestamp <= 0 || e.Timestamp >= minTimestamp
	})
	return pageNewestFirst(matches, limit, 0), nil
}

func (o *offlineRepository) Stats(ctx context.Context) (*Stats, error) {
	channels := map[string]bool{}
	themes := map[string]bool{}
	var latest int64
	var fresh int64
	for _, e := range o.entries {
		channels[e.Channel] = true
		themes[e.Theme] = true
		if e.Timestamp > latest {
			latest = e.Timestamp
		}
		if e.IsNew {
			fresh++
		}
	}
	s := &Stats{
		TotalEntries:    int64(len(o.entries)),
		ChannelCount:    int64(len(channels)),
		ThemeCount:      int64(len(themes)),
		LatestTimestamp: latest,
		NewEntriesCount: fresh,
	}
	s.setSource(SourceOffline)
	return s, nil
}

func (o *offlineRepository) filter(keep func(*Entry) bool) []Entry {
	var out []Entry
	for _, e := range o.entries {
		if keep(&e) {
			out = append(out, e)
		}
	}
	return out
}

func pageNewestFirst(entries []Entry, limit, offset int) *EntryList {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})

	total := len(entries)
	limit, offset = clampPage(limit, offset, total)
	end := offset + limit
	if end > total {
		end = total
	}

	res := &EntryList{
		Entries: entries[offset:end],
		Total:   int64(total),
		Offset:  offset,
		Limit:   limit,
	}
	res.setSource(SourceOffline)
	return res
}

func offlineEntry(e Entry) *EntryResult {
	res := &EntryResult{Entry: e}
	res.setSource(SourceOffline)
	return res
}

// offlineEntries is a hand-picked slice of real catalog shapes: enough
// channels and themes for pickers to render, descriptions for search,
// and plausible media URLs. Timestamps are fixed so tests can assert
// ordering.
var offlineEntries = []Entry{
	{
		Channel: "ARD", Theme: "Tatort", Title: "Tatort: Borowski und das Haupt der Medusa",
		Date: "16.03.2025", Time: "20:15:00", Duration: "01:28:30", SizeMB: 940,
		Description: "Kommissar Borowski ermittelt in Kiel im Umfeld einer Psychiatrie.",
		URL:         "https://media.tagesschau.de/video/2025/0316/tatort-borowski.mp4",
		Website:     "https://www.daserste.de/unterhaltung/krimi/tatort/",
		Timestamp:   1742152500, Geo: "DE-AT-CH",
	},
	{
		Channel: "ARD", Theme: "Tatort", Title: "Tatort: Licht im Dunkel",
		Date: "04.05.2025", Time: "20:15:00", Duration: "01:29:10", SizeMB: 955,
		Description: "Die Wiener Ermittler Eisner und Fellner klären einen Mord im Museumsdepot.",
		URL:         "https://media.tagesschau.de/video/2025/0504/tatort-wien.mp4",
		Website:     "https://www.daserste.de/unterhaltung/krimi/tatort/",
		Timestamp:   1746382500, Geo: "DE-AT-CH",
	},
	{
		Channel: "ARD", Theme: "Tagesschau", Title: "tagesschau 20:00 Uhr",
		Date: "22.06.2025", Time: "20:00:00", Duration: "00:15:12", SizeMB: 160,
		Description: "Die Nachrichten der ARD vom 22. Juni 2025.",
		URL:         "https://media.tagesschau.de/video/2025/0622/ts2000.mp4",
		URLHD:       "https://media.tagesschau.de/video/2025/0622/ts2000.hd.mp4",
		Website:     "https://www.tagesschau.de/", Timestamp: 1750615200, IsNew: true,
	},
	{
		Channel: "ZDF", Theme: "heute journal", Title: "heute journal vom 21. Juni 2025",
		Date: "21.06.2025", Time: "21:45:00", Duration: "00:30:45", SizeMB: 330,
		Description: "Nachrichten, Analysen und Wetter im Zweiten.",
		URL:         "https://rodlzdf-a.akamaihd.net/de/2025/06/heute-journal-2106.mp4",
		Website:     "https://www.zdf.de/nachrichten/heute-journal",
		Timestamp:   1750535100, Geo: "DE-AT-CH", IsNew: true,
	},
	{
		Channel: "ZDF", Theme: "Terra X", Title: "Terra X: Die Alpen von oben",
		Date: "15.06.2025", Time: "19:30:00", Duration: "00:43:20", SizeMB: 470,
		Description: "Dokumentarische Reise über die Gipfel der Alpen, gefilmt aus der Luft.",
		URL:         "https://rodlzdf-a.akamaihd.net/de/2025/06/terra-x-alpen.mp4",
		URLHD:       "https://rodlzdf-a.akamaihd.net/de/2025/06/terra-x-alpen.hd.mp4",
		Website:     "https://www.zdf.de/dokumentation/terra-x", Timestamp: 1750008600,
	},
	{
		Channel: "ARTE.DE", Theme: "Dokumentation", Title: "Die Erben der Nordsee",
		Date: "10.06.2025", Time: "20:15:00", Duration: "00:52:00", SizeMB: 560,
		Description: "Fischer, Forscher und Windparks teilen sich ein schrumpfendes Meer.",
		URL:         "https://arteptweb-a.akamaihd.net/am/ptweb/2025/nordsee.mp4",
		Website:     "https://www.arte.tv/de/", Timestamp: 1749586500, Geo: "DE-FR",
	},
	{
		Channel: "NDR", Theme: "extra 3", Title: "extra 3 vom 19.06.2025",
		Date: "19.06.2025", Time: "22:50:00", Duration: "00:44:05", SizeMB: 480,
		Description: "Satiremagazin mit dem Irrsinn der Woche.",
		URL:         "https://mediandr-a.akamaihd.net/progressive/2025/0619/extra3.mp4",
		Website:     "https://www.ndr.de/fernsehen/sendungen/extra_3/",
		Timestamp:   1750366200,
	},
	{
		Channel: "BR", Theme: "Quer", Title: "quer mit Christoph Süß",
		Date: "12.06.2025", Time: "20:15:00", Duration: "00:45:00", SizeMB: 490,
		Description: "Das Beste aus Bayern, quer betrachtet.",
		URL:         "https://cdn-storage.br.de/2025/0612/quer.mp4",
		Website:     "https://www.br.de/br-fernsehen/sendungen/quer/",
		Timestamp:   1749759300,
	},
	{
		Channel: "SRF", Theme: "Dok", Title: "DOK: Leben am Gotthard",
		Date: "08.06.2025", Time: "21:00:00", Duration: "00:50:30", SizeMB: 540,
		Description: "Menschen und Mythen rund um den wichtigsten Pass der Schweiz.",
		URL:         "https://srfvodhd-vh.akamaihd.net/2025/0608/dok-gotthard.mp4",
		Website:     "https://www.srf.ch/play/tv/sendung/dok", Timestamp: 1749409200, Geo: "CH",
	},
	{
		Channel: "KiKA", Theme: "Die Sendung mit der Maus", Title: "Maus-Spezial: Wie kommt der Strom ins Haus?",
		Date: "01.06.2025", Time: "09:30:00", Duration: "00:28:40", SizeMB: 300,
		Description: "Lach- und Sachgeschichten über Stromnetze und Steckdosen.",
		URL:         "https://wdrmedien-a.akamaihd.net/medp/2025/0601/maus-strom.mp4",
		URLSmall:    "https://wdrmedien-a.akamaihd.net/medp/2025/0601/maus-strom.sd.mp4",
		Website:     "https://www.wdrmaus.de/", Timestamp: 1748763000,
	},
	{
		Channel: "ORF", Theme: "Universum", Title: "Universum: Donau - Lebensader Europas",
		Date: "27.05.2025", Time: "20:15:00", Duration: "00:49:15", SizeMB: 530,
		Description: "Naturdokumentation entlang der Donau von der Quelle bis zum Delta.",
		URL:         "https://apasfiis.sf.apa.at/ipad/cms-worldwide/2025/universum-donau.mp4",
		Website:     "https://tv.orf.at/universum/", Timestamp: 1748369700, Geo: "AT",
	},
	{
		Channel: "ZDF", Theme: "Terra X", Title: "Terra X: Deutschland im Mittelalter",
		Date: "18.05.2025", Time: "19:30:00", Duration: "00:43:55", SizeMB: 475,
		Description: "Burgen, Märkte und Klöster: Alltag zwischen 1000 und 1500.",
		URL:         "https://rodlzdf-a.akamaihd.net/de/2025/05/terra-x-mittelalter.mp4",
		Website:     "https://www.zdf.de/dokumentation/terra-x", Timestamp: 1747589400,
	},
}
