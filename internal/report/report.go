// Package report builds the deterministic, signed summary of a completed
// scan: a pure presentation/identity layer over scanner.ScanItem that never
// feeds back into scanning.
package report

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/nextprune/nextprune/internal/diskstat"
	"github.com/nextprune/nextprune/internal/model"
)

// Report is the identity/presentation record for one completed scan.
type Report struct {
	ScanID      string
	RootPath    string
	Items       []model.ScanItem
	Signature   string
	GeneratedAt time.Time
	DiskFree    uint64
	DiskTotal   uint64
}

// Build computes a Report for items, signing it with a BLAKE3-256 hash over
// a canonical newline-joined `realpath\tsize\tfileCount` listing sorted by
// real path. Build is pure and deterministic: item order in the input does
// not affect the signature.
func Build(scanID, root string, items []model.ScanItem, disk diskstat.Usage, generatedAt time.Time) Report {
	sorted := make([]model.ScanItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RealPath < sorted[j].RealPath
	})

	lines := make([]string, 0, len(sorted))
	for _, item := range sorted {
		lines = append(lines, fmt.Sprintf("%s\t%d\t%d", item.RealPath, item.Stats.Size, item.Stats.FileCount))
	}

	sum := blake3.Sum256([]byte(strings.Join(lines, "\n")))

	return Report{
		ScanID:      scanID,
		RootPath:    root,
		Items:       items,
		Signature:   hex.EncodeToString(sum[:]),
		GeneratedAt: generatedAt,
		DiskFree:    disk.Free,
		DiskTotal:   disk.Total,
	}
}

// TotalReclaimable sums the Size of every item in the report.
func (r Report) TotalReclaimable() uint64 {
	var total uint64
	for _, item := range r.Items {
		total += item.Stats.Size
	}
	return total
}
