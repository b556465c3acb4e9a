package filmliste

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"kuckmal/internal/resilience/circuitbreaker"
	"kuckmal/internal/resilience/retry"

	"github.com/sony/gobreaker"
)

// Published list locations on the MediathekView mirror network.
const (
	DefaultFullListURL = "https://verteiler1.mediathekview.de/Filmliste-akt.xz"
	DefaultDiffListURL = "https://verteiler1.mediathekview.de/Filmliste-diff.xz"
)

const (
	// DownloadTimeout bounds connection setup and response headers. The
	// body transfer itself is bounded by the caller's context, since a
	// full list takes well over 30 seconds on slow links.
	DownloadTimeout = 30 * time.Second

	// chunkSize is the read granularity; progress is reported per chunk.
	chunkSize = 8 * 1024
)

// Progress describes a download in flight. Total is 0 when the mirror
// does not report a content length.
type Progress struct {
	Downloaded int64
	Total      int64
}

// Percent returns the completed share in whole percent, or -1 when the
// total is unknown.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return -1
	}
	return int(p.Downloaded * 100 / p.Total)
}

// ProgressFunc is called after every chunk written to disk.
type ProgressFunc func(Progress)

// RemoteInfo is the mirror's metadata for a published list, used to
// decide whether a new download is worthwhile.
type RemoteInfo struct {
	ContentLength int64
	LastModified  time.Time
	ETag          string
}

// Downloader fetches catalog archives from the mirror network.
// It includes circuit breaker and retry logic: volunteer mirrors fail
// often enough that both are needed for unattended operation.
type Downloader struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewDownloader creates a Downloader with the given HTTP client.
// A nil client gets a default with header timeouts suited to large
// transfers.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: DownloadTimeout,
			},
		}
	}
	return &Downloader{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FilmlisteConfig()),
		retryConfig:    retry.FilmlisteConfig(),
	}
}

// Download fetches url into dst, writing through a temporary file so a
// failed transfer never leaves a truncated archive behind. Progress is
// reported per chunk when onProgress is non-nil.
func (d *Downloader) Download(ctx context.Context, url, dst string, onProgress ProgressFunc) error {
	retryErr := retry.WithBackoff(ctx, d.retryConfig, func() error {
		_, err := d.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, d.doDownload(ctx, url, dst, onProgress)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("filmliste circuit breaker open, download rejected",
					slog.String("service", "filmliste-download"),
					slog.String("url", url),
					slog.String("state", d.circuitBreaker.State().String()))
			}
			return err
		}
		return nil
	})
	if retryErr != nil {
		return fmt.Errorf("Download: %s: %w", url, retryErr)
	}
	return nil
}

// CheckRemote probes url with a HEAD request and reports the mirror's
// metadata. The probe shares the download circuit breaker, so a dead
// mirror is not hammered by staleness checks either.
func (d *Downloader) CheckRemote(ctx context.Context, url string) (*RemoteInfo, error) {
	result, err := d.circuitBreaker.Execute(func() (interface{}, error) {
		return d.doHead(ctx, url)
	})
	if err != nil {
		return nil, fmt.Errorf("CheckRemote: %s: %w", url, err)
	}
	return result.(*RemoteInfo), nil
}

// doDownload performs one transfer attempt without retry or circuit
// breaker.
func (d *Downloader) doDownload(ctx context.Context, url, dst string, onProgress ProgressFunc) error {
	// Best effort: some mirrors reject HEAD, then the total stays unknown.
	var total int64
	if info, err := d.doHead(ctx, url); err == nil {
		total = info.ContentLength
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	if total == 0 && resp.ContentLength > 0 {
		total = resp.ContentLength
	}

	part := dst + ".part"
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(part)
	if err != nil {
		return err
	}

	if err := copyChunks(ctx, f, resp.Body, total, onProgress); err != nil {
		_ = f.Close()
		_ = os.Remove(part)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(part)
		return err
	}
	return os.Rename(part, dst)
}

func (d *Downloader) doHead(ctx context.Context, url string) (*RemoteInfo, error) {
	headCtx, cancel := context.WithTimeout(ctx, DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(headCtx, http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	info := &RemoteInfo{
		ContentLength: resp.ContentLength,
		ETag:          resp.Header.Get("ETag"),
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			info.LastModified = t
		}
	}
	return info, nil
}

// copyChunks streams body to f in chunkSize reads, checking cancellation
// between chunks so an aborted sync stops within one chunk.
func copyChunks(ctx context.Context, f *os.File, body io.Reader, total int64, onProgress ProgressFunc) error {
	buf := make([]byte, chunkSize)
	var downloaded int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return err
			}
			downloaded += int64(n)
			if onProgress != nil {
				onProgress(Progress{Downloaded: downloaded, Total: total})
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
