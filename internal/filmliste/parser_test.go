package filmliste

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kuckmal/internal/domain/entity"
)

// sampleDocument mirrors the published format: repeated keys, two header
// arrays, one "X" array per broadcast.
const sampleDocument = `{
 "Filmliste": ["01.12.2024, 09:15", "01.12.2024, 08:15", "3", "MSearch [Vers.: 3.1.139]", "f2c7a8ad9e1b4c6d"],
 "Filmliste": ["Sender", "Thema", "Titel", "Datum", "Zeit", "Dauer", "Größe [MB]", "Beschreibung", "Url", "Website", "Url Untertitel", "Url RTMP", "Url Klein", "Url RTMP Klein", "Url HD", "Url RTMP HD", "DatumL", "Url History", "Geo", "neu"],
 "X": ["ARD", "Tatort", "Borowski und das Haupt der Medusa", "01.12.2024", "20:15:00", "01:28:45", "980", "Kommissar Borowski ermittelt.", "https://media.example.org/ard/tatort/medusa_512.mp4", "https://www.daserste.de/tatort", "https://media.example.org/ard/tatort/medusa.ttml", "", "37|medusa_256.mp4", "", "37|medusa_1024.mp4", "", "1733080500", "", "DE", "true"],
 "X": ["", "", "Borowski und der stille Gast", "08.12.2024", "20:15:00", "01:29:10", "985", "Wiederholung vom Sonntag.", "https://media.example.org/ard/tatort/gast_512.mp4", "https://www.daserste.de/tatort", "", "", "", "", "", "", "1733685300", "", "DE", "false"],
 "X": ["ZDF", "Terra X", "Die Reise der Menschheit", "24.11.2024", "19:30:00", "00:43:20", "450", "Dokumentation in drei Teilen.", "https://media.example.org/zdf/terrax/reise_512.mp4", "https://www.zdf.de/terra-x", "", "", "", "", "", "", "kaputt", "", "", "TRUE"],
 "X": ["nur", "zwei"]
}`

func collectEmit(entries *[]*entity.MediaEntry) EmitFunc {
	return func(_ context.Context, batch []*entity.MediaEntry) error {
		*entries = append(*entries, batch...)
		return nil
	}
}

func TestParseDocument(t *testing.T) {
	var entries []*entity.MediaEntry
	res, err := Parse(context.Background(), strings.NewReader(sampleDocument), collectEmit(&entries))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantMeta := ListMeta{
		CreatedAt:    "01.12.2024, 09:15",
		CreatedAtUTC: "01.12.2024, 08:15",
		Version:      "3",
		Creator:      "MSearch [Vers.: 3.1.139]",
		ID:           "f2c7a8ad9e1b4c6d",
	}
	if diff := cmp.Diff(wantMeta, res.Meta); diff != "" {
		t.Errorf("Meta mismatch (-want +got):\n%s", diff)
	}
	if res.Parsed != 3 {
		t.Errorf("Parsed = %d, want 3", res.Parsed)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	if len(entries) != 3 {
		t.Fatalf("emitted %d entries, want 3", len(entries))
	}

	want := &entity.MediaEntry{
		Channel:     "ARD",
		Theme:       "Tatort",
		Title:       "Borowski und das Haupt der Medusa",
		Date:        "01.12.2024",
		Time:        "20:15:00",
		Duration:    "01:28:45",
		SizeMB:      980,
		Description: "Kommissar Borowski ermittelt.",
		URL:         "https://media.example.org/ard/tatort/medusa_512.mp4",
		Website:     "https://www.daserste.de/tatort",
		SubtitleURL: "https://media.example.org/ard/tatort/medusa.ttml",
		URLSmall:    "https://media.example.org/ard/tatort/medusa_256.mp4",
		URLHD:       "https://media.example.org/ard/tatort/medusa_1024.mp4",
		Timestamp:   1733080500,
		Geo:         "DE",
		IsNew:       true,
	}
	if diff := cmp.Diff(want, entries[0]); diff != "" {
		t.Errorf("first entry mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInheritsChannelAndTheme(t *testing.T) {
	var entries []*entity.MediaEntry
	if _, err := Parse(context.Background(), strings.NewReader(sampleDocument), collectEmit(&entries)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	second := entries[1]
	if second.Channel != "ARD" || second.Theme != "Tatort" {
		t.Errorf("inherited keys = (%q, %q), want (ARD, Tatort)", second.Channel, second.Theme)
	}
	if second.Title != "Borowski und der stille Gast" {
		t.Errorf("Title = %q", second.Title)
	}
	if second.URLSmall != "" || second.URLHD != "" {
		t.Errorf("empty variants must stay empty, got small=%q hd=%q", second.URLSmall, second.URLHD)
	}
}

func TestParseMalformedFields(t *testing.T) {
	var entries []*entity.MediaEntry
	if _, err := Parse(context.Background(), strings.NewReader(sampleDocument), collectEmit(&entries)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	third := entries[2]
	if third.Timestamp != 0 {
		t.Errorf("malformed timestamp: got %d, want 0", third.Timestamp)
	}
	if !third.IsNew {
		t.Error(`isNew "TRUE" should parse as true`)
	}
	if third.Geo != "" {
		t.Errorf("Geo = %q, want empty", third.Geo)
	}
}

func TestParseSkipsUnkeyedLeadingRecord(t *testing.T) {
	// The very first record has nothing to inherit from.
	doc := `{
 "Filmliste": ["01.12.2024, 09:15", "01.12.2024, 08:15", "3", "MSearch", "abc"],
 "X": ["", "", "Verwaist", "01.12.2024", "20:15:00", "", "0", "", "", "", "", "", "", "", "", "", "0", "", "", "false"],
 "X": ["ZDF", "heute", "heute 19:00", "01.12.2024", "19:00:00", "", "0", "", "", "", "", "", "", "", "", "", "1733076000", "", "", "false"]
}`
	var entries []*entity.MediaEntry
	res, err := Parse(context.Background(), strings.NewReader(doc), collectEmit(&entries))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Skipped != 1 || res.Parsed != 1 {
		t.Errorf("Parsed/Skipped = %d/%d, want 1/1", res.Parsed, res.Skipped)
	}
	if len(entries) != 1 || entries[0].Channel != "ZDF" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader(`["X"]`), collectEmit(&[]*entity.MediaEntry{}))
	if err == nil {
		t.Fatal("expected error for non-object document")
	}
}

func TestParseTruncatedDocument(t *testing.T) {
	doc := `{"Filmliste": ["a", "b", "c", "d", "e"], "X": ["ARD", "Tatort", "Abge`
	var entries []*entity.MediaEntry
	_, err := Parse(context.Background(), strings.NewReader(doc), collectEmit(&entries))
	if err == nil {
		t.Fatal("expected error for truncated document")
	}
}

func TestParseBatches(t *testing.T) {
	doc := buildDocument(BatchSize + 1)

	var sizes []int
	res, err := Parse(context.Background(), strings.NewReader(doc), func(_ context.Context, batch []*entity.MediaEntry) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Parsed != int64(BatchSize+1) {
		t.Errorf("Parsed = %d, want %d", res.Parsed, BatchSize+1)
	}
	want := []int{BatchSize, 1}
	if diff := cmp.Diff(want, sizes); diff != "" {
		t.Errorf("batch sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmitErrorAborts(t *testing.T) {
	doc := buildDocument(BatchSize + 1)
	sentinel := errors.New("storage full")

	calls := 0
	_, err := Parse(context.Background(), strings.NewReader(doc), func(_ context.Context, _ []*entity.MediaEntry) error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("error = %v, want wrapped sentinel", err)
	}
	if calls != 1 {
		t.Errorf("emit called %d times after error, want 1", calls)
	}
}

func TestParseContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, strings.NewReader(sampleDocument), collectEmit(&[]*entity.MediaEntry{}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

// buildDocument generates a minimal valid catalog with n broadcast
// records.
func buildDocument(n int) string {
	var b strings.Builder
	b.WriteString(`{"Filmliste": ["01.12.2024, 09:15", "01.12.2024, 08:15", "3", "MSearch", "gen"]`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `, "X": ["ARD", "Sendung", "Folge %d"]`, i)
	}
	b.WriteString("}")
	return b.String()
}

func TestParseKeepsEmptyTitleRecords(t *testing.T) {
	// Some theme-level records ship without a title; the published
	// lists keep them and so does the importer.
	doc := `{
 "Filmliste": ["01.12.2024, 09:15", "01.12.2024, 08:15", "3", "MSearch", "abc123"],
 "X": ["NDR", "Hallo Niedersachsen", "", "01.12.2024", "19:30:00", "00:28:00", "290", "", "https://media.example.org/ndr/hallo.mp4", "", "", "", "", "", "", "", "1733078000", "", "", "false"]
}`

	var entries []*entity.MediaEntry
	res, err := Parse(context.Background(), strings.NewReader(doc), collectEmit(&entries))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Parsed != 1 || res.Skipped != 0 {
		t.Fatalf("Parsed/Skipped = %d/%d, want 1/0", res.Parsed, res.Skipped)
	}
	if entries[0].Title != "" || entries[0].Theme != "Hallo Niedersachsen" {
		t.Errorf("entry = %+v", entries[0])
	}
}
