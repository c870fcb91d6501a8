package scanner

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nextprune/nextprune/internal/model"
)

// computeStats produces the recursive ArtifactStats for one candidate path.
// A failure on the candidate itself is absorbed into Stats.Error with
// zeroed size/fileCount, per spec §4.D/§7. A listing failure somewhere
// inside a directory candidate's subtree is absorbed the same way scan-time
// listing failures are: that subtree silently contributes zero.
func computeStats(path string) model.ArtifactStats {
	info, err := os.Lstat(path)
	if err != nil {
		return model.ArtifactStats{Error: err.Error()}
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err != nil {
			return model.ArtifactStats{Error: err.Error(), MTime: info.ModTime()}
		}
		info = target
	}

	if !info.IsDir() {
		return model.ArtifactStats{
			Size:      uint64(info.Size()),
			FileCount: 1,
			MTime:     info.ModTime(),
		}
	}

	size, fileCount, maxChildMTime := aggregateDir(path)
	mtime := info.ModTime()
	if maxChildMTime.After(mtime) {
		mtime = maxChildMTime
	}

	return model.ArtifactStats{
		Size:        size,
		FileCount:   fileCount,
		MTime:       mtime,
		IsDirectory: true,
	}
}

func aggregateDir(dirPath string) (size, fileCount uint64, maxMTime time.Time) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return 0, 0, time.Time{}
	}

	var mu sync.Mutex
	g := new(errgroup.Group)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			childPath := filepath.Join(dirPath, entry.Name())
			info, err := entry.Info()
			if err != nil {
				return nil
			}

			var childSize, childCount uint64
			var childMTime time.Time

			switch {
			case info.IsDir():
				s, c, m := aggregateDir(childPath)
				childSize, childCount = s, c
				childMTime = info.ModTime()
				if m.After(childMTime) {
					childMTime = m
				}
			default:
				childSize = uint64(info.Size())
				childCount = 1
				childMTime = info.ModTime()
			}

			mu.Lock()
			size += childSize
			fileCount += childCount
			if childMTime.After(maxMTime) {
				maxMTime = childMTime
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return size, fileCount, maxMTime
}
