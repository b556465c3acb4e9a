package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"kuckmal/internal/filmliste"
	"kuckmal/internal/utils/text"
)

// MirrorDiagnostic represents the probe result for a single mirror URL
type MirrorDiagnostic struct {
	Mirror        string `json:"mirror"`
	URL           string `json:"url"`
	Status        string `json:"status"` // "OK", "STALE", "HTTP_ERROR", "TIMEOUT"
	ContentLength int64  `json:"content_length"`
	LastModified  string `json:"last_modified,omitempty"`
	AgeHours      int    `json:"age_hours"`
	ETag          string `json:"etag,omitempty"`
	ResponseTime  int64  `json:"response_time_ms"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// The known distribution hosts of the MediathekView mirror network. The
// full list is republished several times a day, so a Last-Modified older
// than a day means the mirror has fallen out of the rotation.
var defaultMirrors = []string{
	"https://verteiler1.mediathekview.de",
	"https://verteiler2.mediathekview.de",
	"https://verteiler3.mediathekview.de",
	"https://verteiler4.mediathekview.de",
	"https://liste.mediathekview.de",
}

const staleAfter = 24 * time.Hour

func main() {
	jsonOut := flag.Bool("json", false, "print results as JSON instead of a table")
	timeout := flag.Duration("timeout", 15*time.Second, "per-mirror probe timeout")
	flag.Parse()

	mirrors := defaultMirrors
	if base := os.Getenv("MIRROR_BASE_URL"); base != "" {
		mirrors = []string{strings.TrimSuffix(base, "/")}
		log.Printf("MIRROR_BASE_URL set, probing only %s", base)
	}

	log.Printf("Probing %d mirrors...", len(mirrors))

	diagnostics := make([]MirrorDiagnostic, 0, len(mirrors))
	for i, base := range mirrors {
		log.Printf("[%d/%d] %s", i+1, len(mirrors), base)
		diagnostics = append(diagnostics, probeMirror(base, *timeout))

		// Rate limiting to be nice to volunteer-run hosts
		time.Sleep(250 * time.Millisecond)
	}

	if *jsonOut {
		printJSON(diagnostics)
	} else {
		printTable(diagnostics)
	}

	for _, d := range diagnostics {
		if d.Status != "OK" {
			os.Exit(1)
		}
	}
}

// probeMirror issues a HEAD request for the full list on one mirror. Each
// mirror gets its own Downloader so one dead host's circuit breaker state
// cannot taint the next probe.
func probeMirror(base string, timeout time.Duration) MirrorDiagnostic {
	url := base + "/Filmliste-akt.xz"
	diag := MirrorDiagnostic{
		Mirror: strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://"),
		URL:    url,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	d := filmliste.NewDownloader(nil)
	start := time.Now()
	info, err := d.CheckRemote(ctx, url)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("no response within %v", timeout)
		} else {
			diag.Status = "HTTP_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}

	diag.ContentLength = info.ContentLength
	diag.ETag = info.ETag
	if !info.LastModified.IsZero() {
		diag.LastModified = info.LastModified.Format(time.RFC3339)
		age := time.Since(info.LastModified)
		diag.AgeHours = int(age.Hours())
		if age > staleAfter {
			diag.Status = "STALE"
			diag.ErrorMessage = fmt.Sprintf("list is %dh old", diag.AgeHours)
			return diag
		}
	}

	diag.Status = "OK"
	return diag
}

func printTable(diagnostics []MirrorDiagnostic) {
	fmt.Println()
	fmt.Printf("%s %s %s %s %s\n",
		text.Pad("MIRROR", 28), text.Pad("STATUS", 12), text.Pad("SIZE", 10),
		text.Pad("AGE", 6), text.Pad("TIME", 8))
	fmt.Println(strings.Repeat("-", 68))

	for _, d := range diagnostics {
		size := "-"
		if d.ContentLength > 0 {
			size = fmt.Sprintf("%.1f MB", float64(d.ContentLength)/(1024*1024))
		}
		age := "-"
		if d.LastModified != "" {
			age = fmt.Sprintf("%dh", d.AgeHours)
		}
		fmt.Printf("%s %s %s %s %dms\n",
			text.Pad(text.Truncate(d.Mirror, 28), 28),
			text.Pad(d.Status, 12),
			text.Pad(size, 10),
			text.Pad(age, 6),
			d.ResponseTime)
		if d.ErrorMessage != "" {
			fmt.Printf("  %s\n", text.Truncate(d.ErrorMessage, 64))
		}
	}
	fmt.Println()
}

func printJSON(diagnostics []MirrorDiagnostic) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}
