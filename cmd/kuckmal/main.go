// Command kuckmal is a terminal client for the catalog API. It drives
// pkg/client end to end, including the offline degradation chain: with
// no reachable API it falls back to cached and then built-in data, and
// says so on stderr.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"kuckmal/internal/utils/text"
	"kuckmal/pkg/client"
)

const defaultAPI = "http://localhost:8080"

func main() {
	// The CLI talks to humans on stdout; keep library logging out of
	// the way unless something is genuinely wrong.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "channels":
		err = runChannels(args)
	case "themes":
		err = runThemes(args)
	case "titles":
		err = runTitles(args)
	case "search":
		err = runSearch(args)
	case "entry":
		err = runEntry(args)
	case "stats":
		err = runStats(args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "kuckmal: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, client.ErrOffline) {
			fmt.Fprintln(os.Stderr, "kuckmal: catalog unreachable and the offline dataset cannot answer this request")
		} else {
			fmt.Fprintln(os.Stderr, "kuckmal:", err)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: kuckmal <command> [flags]

Commands:
  channels              list all channels
  themes                list themes, optionally per channel
  titles                list entries, optionally per channel/theme
  search <words...>     word-order independent catalog search
  entry                 look up one entry by title (and channel/theme)
  stats                 catalog statistics

Common flags:
  -api URL     catalog API base URL (default $KUCKMAL_API or `+defaultAPI+`)
  -json        raw JSON output
  -offline     skip the network, use the built-in offline dataset
  -timeout D   per-request timeout (default 15s)

Run kuckmal <command> -h for command flags.
`)
}

/* ───────── shared flags and wiring ───────── */

type globalFlags struct {
	api     string
	jsonOut bool
	offline bool
	timeout time.Duration
}

func addGlobalFlags(fs *flag.FlagSet) *globalFlags {
	g := &globalFlags{}
	fs.StringVar(&g.api, "api", envOr("KUCKMAL_API", defaultAPI), "catalog API base URL")
	fs.BoolVar(&g.jsonOut, "json", false, "raw JSON output")
	fs.BoolVar(&g.offline, "offline", false, "use the built-in offline dataset only")
	fs.DurationVar(&g.timeout, "timeout", 15*time.Second, "per-request timeout")
	return g
}

// repo builds the documented composition: REST client wrapped in the
// TTL cache wrapped in the offline fallback. -offline cuts straight to
// the last link.
func (g *globalFlags) repo() client.Repository {
	if g.offline {
		return client.Offline()
	}
	api := client.New(g.api, client.WithTimeout(g.timeout))
	return client.WithFallback(client.WithCache(api), client.Offline())
}

func (g *globalFlags) ctx() (context.Context, context.CancelFunc) {
	// Generous outer bound; retries and fallback all happen inside.
	return context.WithTimeout(context.Background(), 3*g.timeout+5*time.Second)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// noteSource warns on stderr when a result did not come from the live
// catalog, so humans and scripts reading stdout are not misled.
func noteSource(o client.Origin) {
	switch o.Source {
	case client.SourceStale:
		fmt.Fprintln(os.Stderr, "kuckmal: catalog unreachable, showing cached data that may be outdated")
	case client.SourceOffline:
		fmt.Fprintln(os.Stderr, "kuckmal: showing built-in offline sample data")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

/* ───────── commands ───────── */

func runChannels(args []string) error {
	fs := flag.NewFlagSet("channels", flag.ExitOnError)
	g := addGlobalFlags(fs)
	_ = fs.Parse(args)

	ctx, cancel := g.ctx()
	defer cancel()

	res, err := g.repo().Channels(ctx)
	if err != nil {
		return err
	}
	noteSource(res.Origin)

	if g.jsonOut {
		return printJSON(res.Channels)
	}
	for _, ch := range res.Channels {
		fmt.Println(ch)
	}
	return nil
}

func runThemes(args []string) error {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	g := addGlobalFlags(fs)
	channel := fs.String("channel", "", "only themes of this channel")
	limit := fs.Int("limit", 50, "page size")
	offset := fs.Int("offset", 0, "page offset")
	_ = fs.Parse(args)

	ctx, cancel := g.ctx()
	defer cancel()

	res, err := g.repo().Themes(ctx, client.ThemesParams{
		Channel: *channel,
		Limit:   *limit,
		Offset:  *offset,
	})
	if err != nil {
		return err
	}
	noteSource(res.Origin)

	if g.jsonOut {
		return printJSON(res.Themes)
	}
	for _, th := range res.Themes {
		fmt.Println(th)
	}
	if res.Total > int64(len(res.Themes)) {
		fmt.Fprintf(os.Stderr, "(%d of %d, use -offset %d for more)\n",
			len(res.Themes), res.Total, res.Offset+len(res.Themes))
	}
	return nil
}

func runTitles(args []string) error {
	fs := flag.NewFlagSet("titles", flag.ExitOnError)
	g := addGlobalFlags(fs)
	channel := fs.String("channel", "", "only entries of this channel")
	theme := fs.String("theme", "", "only entries of this theme")
	limit := fs.Int("limit", 25, "page size")
	offset := fs.Int("offset", 0, "page offset")
	_ = fs.Parse(args)

	ctx, cancel := g.ctx()
	defer cancel()

	res, err := g.repo().Titles(ctx, client.TitlesParams{
		Channel: *channel,
		Theme:   *theme,
		Limit:   *limit,
		Offset:  *offset,
	})
	if err != nil {
		return err
	}
	noteSource(res.Origin)

	if g.jsonOut {
		return printJSON(res.Entries)
	}
	printEntryTable(res.Entries)
	if res.Total > int64(len(res.Entries)) {
		fmt.Fprintf(os.Stderr, "(%d of %d, use -offset %d for more)\n",
			len(res.Entries), res.Total, res.Offset+len(res.Entries))
	}
	return nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	g := addGlobalFlags(fs)
	channel := fs.String("channel", "", "only entries of this channel")
	theme := fs.String("theme", "", "only entries of this theme")
	limit := fs.Int("limit", 25, "page size")
	offset := fs.Int("offset", 0, "page offset")
	_ = fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("search needs at least one word, e.g.: kuckmal search tatort kiel")
	}

	ctx, cancel := g.ctx()
	defer cancel()

	res, err := g.repo().Search(ctx, client.SearchParams{
		Query:   query,
		Channel: *channel,
		Theme:   *theme,
		Limit:   *limit,
		Offset:  *offset,
	})
	if err != nil {
		return err
	}
	noteSource(res.Origin)

	if g.jsonOut {
		return printJSON(res.Entries)
	}
	if len(res.Entries) == 0 {
		fmt.Fprintf(os.Stderr, "no matches for %q\n", query)
		return nil
	}
	printEntryTable(res.Entries)
	if res.Total > int64(len(res.Entries)) {
		fmt.Fprintf(os.Stderr, "(%d of %d matches)\n", len(res.Entries), res.Total)
	}
	return nil
}

func runEntry(args []string) error {
	fs := flag.NewFlagSet("entry", flag.ExitOnError)
	g := addGlobalFlags(fs)
	channel := fs.String("channel", "", "channel of the entry")
	theme := fs.String("theme", "", "theme of the entry")
	title := fs.String("title", "", "exact title of the entry (required)")
	_ = fs.Parse(args)

	if *title == "" {
		return errors.New("entry needs -title; add -channel and -theme to disambiguate")
	}

	ctx, cancel := g.ctx()
	defer cancel()

	repo := g.repo()
	var res *client.EntryResult
	var err error
	switch {
	case *channel != "" && *theme != "":
		res, err = repo.Entry(ctx, *channel, *theme, *title)
	case *theme != "":
		res, err = repo.EntryByTheme(ctx, *theme, *title)
	default:
		res, err = repo.EntryByTitle(ctx, *title)
	}
	if err != nil {
		return err
	}
	noteSource(res.Origin)

	if g.jsonOut {
		return printJSON(res.Entry)
	}

	e := res.Entry
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Channel:\t%s\n", e.Channel)
	fmt.Fprintf(w, "Theme:\t%s\n", e.Theme)
	fmt.Fprintf(w, "Title:\t%s\n", e.Title)
	fmt.Fprintf(w, "Broadcast:\t%s %s\n", e.Date, e.Time)
	if e.Duration != "" {
		fmt.Fprintf(w, "Duration:\t%s\n", e.Duration)
	}
	if e.Geo != "" {
		fmt.Fprintf(w, "Geo:\t%s\n", e.Geo)
	}
	if e.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", e.Description)
	}
	fmt.Fprintf(w, "Video:\t%s\n", e.BestQualityURL())
	if e.SubtitleURL != "" {
		fmt.Fprintf(w, "Subtitles:\t%s\n", e.SubtitleURL)
	}
	if e.Website != "" {
		fmt.Fprintf(w, "Website:\t%s\n", e.Website)
	}
	return w.Flush()
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	g := addGlobalFlags(fs)
	_ = fs.Parse(args)

	ctx, cancel := g.ctx()
	defer cancel()

	res, err := g.repo().Stats(ctx)
	if err != nil {
		return err
	}
	noteSource(res.Origin)

	if g.jsonOut {
		return printJSON(res)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Entries:\t%d\n", res.TotalEntries)
	fmt.Fprintf(w, "Channels:\t%d\n", res.ChannelCount)
	fmt.Fprintf(w, "Themes:\t%d\n", res.ThemeCount)
	fmt.Fprintf(w, "New entries:\t%d\n", res.NewEntriesCount)
	if res.LatestTimestamp > 0 {
		fmt.Fprintf(w, "Latest broadcast:\t%s\n",
			time.Unix(res.LatestTimestamp, 0).Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

/* ───────── output helpers ───────── */

func printEntryTable(entries []client.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTIME\tCHANNEL\tTHEME\tTITLE\tDURATION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Date, e.Time, e.Channel, e.Theme, text.Truncate(e.Title, 60), e.Duration)
	}
	_ = w.Flush()
}
