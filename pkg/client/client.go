// Package client is the Go client for the Kuckmal catalog API. It is
// what the CLI and embedding applications program against: a
// Repository interface over the browse, detail, and search endpoints,
// plus two decorators for operation away from a reliable network.
//
// The intended composition for offline-capable callers:
//
//	api := client.New("https://catalog.example.de")
//	repo := client.WithFallback(client.WithCache(api), client.Offline())
//
// Reads then degrade live -> fresh cache -> stale cache -> built-in
// offline dataset, and every result reports its Source.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kuckmal/internal/resilience/circuitbreaker"
	"kuckmal/internal/resilience/retry"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "kuckmal-client/1.0 (+https://github.com/kuckmal/kuckmal)"
)

// Client is the REST implementation of Repository. All operations are
// GETs; transient failures are retried with backoff and a circuit
// breaker fails fast when the API is down for good.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	retryCfg  retry.Config

	doer circuitbreaker.Doer
}

var _ Repository = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to add a
// proxy or a test transport. The circuit breaker wraps whatever is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.doer = hc }
}

// WithTimeout bounds each request attempt. Default 15s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent replaces the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxAttempts sets how often a failed GET is tried in total.
// 1 disables retries. Default 3.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.retryCfg.MaxAttempts = n
		}
	}
}

// WithRetryDelay sets the delay before the first retry. Default 500ms,
// doubling per attempt.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryCfg.InitialDelay = d
		}
	}
}

// New creates a catalog API client for the given base URL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		retryCfg: retry.Config{
			MaxAttempts:    3,
			InitialDelay:   500 * time.Millisecond,
			MaxDelay:       5 * time.Second,
			Multiplier:     2.0,
			JitterFraction: 0.1,
		},
		doer: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.doer = circuitbreaker.NewHTTPBreaker(c.doer, circuitbreaker.APIClientConfig())
	return c
}

// Channels lists the distinct channels of the catalog.
func (c *Client) Channels(ctx context.Context) (*ChannelList, error) {
	var env listEnvelope
	if err := c.getJSON(ctx, "/api/channels", nil, &env); err != nil {
		return nil, err
	}
	return &ChannelList{Channels: env.Strings}, nil
}

// Themes lists theme names, optionally narrowed to a channel and a
// minimum broadcast timestamp.
func (c *Client) Themes(ctx context.Context, p ThemesParams) (*ThemeList, error) {
	q := url.Values{}
	setString(q, "channel", p.Channel)
	setInt64(q, "minTimestamp", p.MinTimestamp)
	setPage(q, p.Limit, p.Offset)

	var env listEnvelope
	if err := c.getJSON(ctx, "/api/themes", q, &env); err != nil {
		return nil, err
	}
	return &ThemeList{
		Themes: env.Strings,
		Total:  env.Total,
		Offset: env.Offset,
		Limit:  env.Limit,
	}, nil
}

// Titles lists entries for title browsing, newest first.
func (c *Client) Titles(ctx context.Context, p TitlesParams) (*EntryList, error) {
	q := url.Values{}
	setString(q, "channel", p.Channel)
	setString(q, "theme", p.Theme)
	setInt64(q, "minTimestamp", p.MinTimestamp)
	setPage(q, p.Limit, p.Offset)

	var env entryEnvelope
	if err := c.getJSON(ctx, "/api/titles", q, &env); err != nil {
		return nil, err
	}
	return env.entryList(), nil
}

// Entry looks up one entry by its full natural key.
func (c *Client) Entry(ctx context.Context, channel, theme, title string) (*EntryResult, error) {
	if channel == "" || theme == "" || title == "" {
		return nil, errors.New("Entry: channel, theme, and title are required")
	}
	q := url.Values{}
	q.Set("channel", channel)
	q.Set("theme", theme)
	q.Set("title", title)
	return c.getEntry(ctx, "/api/entry", q)
}

// EntryByTheme looks up the first entry matching theme and title.
func (c *Client) EntryByTheme(ctx context.Context, theme, title string) (*EntryResult, error) {
	if theme == "" || title == "" {
		return nil, errors.New("EntryByTheme: theme and title are required")
	}
	q := url.Values{}
	q.Set("theme", theme)
	q.Set("title", title)
	return c.getEntry(ctx, "/api/entry/by-theme", q)
}

// EntryByTitle looks up the first entry with the given title.
func (c *Client) EntryByTitle(ctx context.Context, title string) (*EntryResult, error) {
	if title == "" {
		return nil, errors.New("EntryByTitle: title is required")
	}
	q := url.Values{}
	q.Set("title", title)
	return c.getEntry(ctx, "/api/entry/by-title", q)
}

// Search runs a word-order independent search over title, description,
// and theme.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, errors.New("Search: query is required")
	}
	q := url.Values{}
	q.Set("q", p.Query)
	setString(q, "channel", p.Channel)
	setString(q, "theme", p.Theme)
	setPage(q, p.Limit, p.Offset)

	var env entryEnvelope
	if err := c.getJSON(ctx, "/api/search", q, &env); err != nil {
		return nil, err
	}
	return &SearchResult{EntryList: *env.entryList(), Query: env.Query}, nil
}

// Recent lists entries broadcast at or after minTimestamp, newest first.
func (c *Client) Recent(ctx context.Context, minTimestamp int64, limit int) (*EntryList, error) {
	q := url.Values{}
	setInt64(q, "minTimestamp", minTimestamp)
	setPage(q, limit, 0)

	var env entryEnvelope
	if err := c.getJSON(ctx, "/api/entries/recent", q, &env); err != nil {
		return nil, err
	}
	list := env.entryList()
	list.Total = int64(env.Count)
	return list, nil
}

// Stats fetches the aggregated catalog statistics.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.getJSON(ctx, "/api/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) getEntry(ctx context.Context, path string, q url.Values) (*EntryResult, error) {
	var env struct {
		Data Entry `json:"data"`
	}
	if err := c.getJSON(ctx, path, q, &env); err != nil {
		return nil, err
	}
	return &EntryResult{Entry: env.Data}, nil
}

// getJSON performs a GET with retry and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	err := retry.WithBackoff(ctx, c.retryCfg, func() error {
		return c.doGet(ctx, path, q, out)
	})
	if err != nil {
		// Strip the retry helper's wrapping when an API error survived
		// all attempts; callers want the typed error up front.
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads the error envelope; a body that is not the
// envelope still yields a usable APIError from the status line.
func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return newAPIError(resp.StatusCode, "", resp.Status)
	}
	return newAPIError(resp.StatusCode, body.Code, body.Error)
}

// listEnvelope and entryEnvelope cover every list-shaped response; the
// endpoint-specific extras (query, minTimestamp, since) are optional.
type listEnvelope struct {
	Strings []string `json:"data"`
	Count   int      `json:"count"`
	Total   int64    `json:"total"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
}

type entryEnvelope struct {
	Data   []Entry `json:"data"`
	Count  int     `json:"count"`
	Total  int64   `json:"total"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
	Query  string  `json:"query"`
}

func (e *entryEnvelope) entryList() *EntryList {
	return &EntryList{
		Entries: e.Data,
		Total:   e.Total,
		Offset:  e.Offset,
		Limit:   e.Limit,
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setInt64(q url.Values, key string, v int64) {
	if v > 0 {
		q.Set(key, strconv.FormatInt(v, 10))
	}
}

func setPage(q url.Values, limit, offset int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}
