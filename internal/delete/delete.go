// Package delete implements the deletion engine: recursive, idempotent
// removal of selected candidates with per-item failure isolation.
package delete

import (
	"context"
	"math"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/nextprune/nextprune/internal/model"
)

// Remover abstracts the single filesystem mutation the deletion engine
// performs, so tests can substitute a fake without touching disk.
type Remover interface {
	RemoveAll(path string) error
}

type osRemover struct{}

func (osRemover) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// OSRemover is the production Remover, backed by os.RemoveAll.
var OSRemover Remover = osRemover{}

// NormalizeSize returns v as a byte count, or 0 if v is not a finite
// positive number.
func NormalizeSize(v float64) uint64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return uint64(v)
}

// Item deletes path with force; a missing path is a success. reclaimedSize
// is the normalized size to report back regardless of outcome.
func Item(remover Remover, path string, size float64) model.DeleteResult {
	reclaimed := NormalizeSize(size)
	if err := remover.RemoveAll(path); err != nil {
		return model.DeleteResult{Path: path, OK: false, Error: err.Error(), ReclaimedSize: reclaimed}
	}
	return model.DeleteResult{Path: path, OK: true, ReclaimedSize: reclaimed}
}

// Items runs Item across items in parallel, bounded by concurrency (0 means
// unbounded), and aggregates the results into a DeleteSummary. One failure
// never prevents the others from running.
func Items(ctx context.Context, remover Remover, items []model.ScanItem, concurrency int) model.DeleteSummary {
	results := make([]model.DeleteResult, len(items))

	g, _ := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i := range items {
		i := i
		g.Go(func() error {
			results[i] = Item(remover, items[i].Path, float64(items[i].Stats.Size))
			return nil
		})
	}
	_ = g.Wait()

	summary := model.DeleteSummary{Results: results}
	for _, r := range results {
		if r.OK {
			summary.DeletedCount++
			summary.ReclaimedBytes += r.ReclaimedSize
		} else {
			summary.FailureCount++
		}
	}
	return summary
}
