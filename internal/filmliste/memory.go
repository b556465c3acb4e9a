package filmliste

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// IngestMode selects how parsed batches are written to the repository.
type IngestMode int

const (
	// IngestAuto probes available memory and picks parallel or
	// sequential accordingly.
	IngestAuto IngestMode = iota
	// IngestParallel writes batches through a worker pool.
	IngestParallel
	// IngestSequential writes batches one at a time, bounding memory to
	// roughly one batch plus the decoder window.
	IngestSequential
)

// lowMemoryThreshold is the MemAvailable floor below which auto mode
// falls back to sequential writes.
const lowMemoryThreshold = 1 << 30 // 1 GiB

const meminfoPath = "/proc/meminfo"

func (m IngestMode) String() string {
	switch m {
	case IngestParallel:
		return "parallel"
	case IngestSequential:
		return "sequential"
	default:
		return "auto"
	}
}

// ParseIngestMode maps a configuration string onto a mode.
func ParseIngestMode(s string) (IngestMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return IngestAuto, nil
	case "parallel":
		return IngestParallel, nil
	case "sequential":
		return IngestSequential, nil
	default:
		return IngestAuto, fmt.Errorf("ParseIngestMode: unknown mode %q", s)
	}
}

// Effective resolves auto against the memory probe. Explicit modes pass
// through unchanged. When the probe fails, the safe answer is
// sequential.
func (m IngestMode) Effective() IngestMode {
	if m != IngestAuto {
		return m
	}
	avail, err := availableMemory()
	if err != nil {
		slog.Warn("memory probe failed, ingesting sequentially", "error", err)
		return IngestSequential
	}
	if avail < lowMemoryThreshold {
		slog.Info("low memory, ingesting sequentially",
			"available_bytes", avail,
			"threshold_bytes", int64(lowMemoryThreshold))
		return IngestSequential
	}
	return IngestParallel
}

// availableMemory reports the kernel's MemAvailable estimate in bytes.
func availableMemory() (int64, error) {
	f, err := os.Open(meminfoPath)
	if err != nil {
		return 0, fmt.Errorf("availableMemory: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parseMemAvailable(f)
}

// parseMemAvailable scans meminfo-format text for the MemAvailable line.
// The kernel always reports the value in kB.
func parseMemAvailable(r io.Reader) (int64, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemAvailable:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, fmt.Errorf("parseMemAvailable: malformed line %q", line)
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parseMemAvailable: %w", err)
		}
		return kb * 1024, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("parseMemAvailable: %w", err)
	}
	return 0, fmt.Errorf("parseMemAvailable: no MemAvailable line")
}
