package ingest

import (
	"context"

	"github.com/joseph-ayodele/freight-orders/internal/core/async"
)

// FileResult is the per-file scan outcome.
type FileResult struct {
	Path         string
	HashHex      string
	Deduplicated bool // same content already seen earlier in the walk
	Err          string
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Enqueuer accepts documents for asynchronous processing.
type Enqueuer interface {
	Enqueue(ctx context.Context, job async.Job) error
}
