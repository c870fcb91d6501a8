package scanner

import (
	"sync"

	"github.com/nextprune/nextprune/internal/model"
)

// collector is the mutex-protected discovered-candidates map described in
// spec §5: every candidate emission across every scan root's concurrent
// traversal is serialized here, and a real-path collision resolves in favor
// of the workspace scope per spec §3.
type collector struct {
	mu      sync.Mutex
	byReal  map[string]model.ScanItem
	order   []string
}

func newCollector() *collector {
	return &collector{byReal: make(map[string]model.ScanItem)}
}

// emit records item, or drops it per the dedup/scope-priority rule. Returns
// true if the map's content changed (item was newly added or replaced an
// existing entry).
func (c *collector) emit(item model.ScanItem) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.byReal[item.RealPath]
	if !ok {
		c.byReal[item.RealPath] = item
		c.order = append(c.order, item.RealPath)
		return true
	}

	if existing.CleanupScope == model.ScopeWorkspace && item.CleanupScope != model.ScopeWorkspace {
		return false
	}
	if existing.CleanupScope != model.ScopeWorkspace && item.CleanupScope == model.ScopeWorkspace {
		c.byReal[item.RealPath] = item
		return true
	}

	// Same scope tier: keep the first occurrence, idempotent duplicate.
	return false
}

func (c *collector) items() []model.ScanItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.ScanItem, 0, len(c.order))
	for _, real := range c.order {
		out = append(out, c.byReal[real])
	}
	return out
}
