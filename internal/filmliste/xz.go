package filmliste

import (
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// NewDecompressor wraps an xz-compressed stream in a plain-text reader.
// Decompression happens as the caller reads, so parsing a 90MB archive
// never materializes the ~500MB document in memory.
func NewDecompressor(r io.Reader) (io.Reader, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("NewDecompressor: %w", err)
	}
	return xr, nil
}

// OpenArchive opens an xz-compressed catalog file for streaming reads.
// Closing the returned reader closes the underlying file.
func OpenArchive(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("OpenArchive: %w", err)
	}
	xr, err := xz.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("OpenArchive: %s: %w", path, err)
	}
	return &archiveReader{file: f, xr: xr}, nil
}

type archiveReader struct {
	file *os.File
	xr   io.Reader
}

func (a *archiveReader) Read(p []byte) (int, error) { return a.xr.Read(p) }

func (a *archiveReader) Close() error { return a.file.Close() }
