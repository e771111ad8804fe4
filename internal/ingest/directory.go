package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/freight-orders/internal/core/async"
)

// ScanDirectory walks root, filters by includeExts (or defaults), skips hidden if
// requested, and hashes each match so repeated documents are flagged.
// Returns per-file results + aggregate stats.
func ScanDirectory(root string, includeExts []string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}
	exts := extSet(includeExts)

	var results []FileResult
	var stats DirStats
	seen := map[string]struct{}{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !allowed(path, exts) {
			return nil
		}
		stats.Matched++

		sum, err := hashFile(path)
		if err != nil {
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		_, dup := seen[sum]
		seen[sum] = struct{}{}

		results = append(results, FileResult{Path: path, HashHex: sum, Deduplicated: dup})
		stats.Succeeded++
		if dup {
			stats.Deduplicated++
		}
		return nil
	})
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}

// EnqueueDirectory scans root and hands every new document to q. Duplicates and
// unreadable files are reported but not enqueued.
func EnqueueDirectory(ctx context.Context, q Enqueuer, root string, includeExts []string, skipHidden bool, logger *slog.Logger) ([]FileResult, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results, stats, err := ScanDirectory(root, includeExts, skipHidden)
	if err != nil {
		return results, stats, err
	}
	for i, r := range results {
		if r.Err != "" || r.Deduplicated {
			continue
		}
		if err := q.Enqueue(ctx, async.Job{Path: r.Path, TraceID: r.HashHex}); err != nil {
			results[i].Err = err.Error()
			stats.Succeeded--
			stats.Failed++
			logger.Warn("ingest.enqueue.failed", "path", r.Path, "error", err)
		}
	}
	logger.Info("ingest.directory.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
