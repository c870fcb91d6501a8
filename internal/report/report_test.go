package report

import (
	"testing"
	"time"

	"github.com/nextprune/nextprune/internal/diskstat"
	"github.com/nextprune/nextprune/internal/model"
)

func TestBuildSignatureIsOrderIndependent(t *testing.T) {
	a := []model.ScanItem{
		{RealPath: "/repo/apps/web/.next", Stats: model.ArtifactStats{Size: 100, FileCount: 5}},
		{RealPath: "/repo/apps/api/.next", Stats: model.ArtifactStats{Size: 50, FileCount: 2}},
	}
	b := []model.ScanItem{a[1], a[0]}

	now := time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC)
	r1 := Build("scan-1", "/repo", a, diskstat.Usage{}, now)
	r2 := Build("scan-1", "/repo", b, diskstat.Usage{}, now)

	if r1.Signature != r2.Signature {
		t.Fatalf("expected deterministic signature regardless of input order: %s != %s", r1.Signature, r2.Signature)
	}
}

func TestBuildSignatureChangesWithContent(t *testing.T) {
	now := time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC)
	r1 := Build("scan-1", "/repo", []model.ScanItem{
		{RealPath: "/repo/apps/web/.next", Stats: model.ArtifactStats{Size: 100, FileCount: 5}},
	}, diskstat.Usage{}, now)
	r2 := Build("scan-1", "/repo", []model.ScanItem{
		{RealPath: "/repo/apps/web/.next", Stats: model.ArtifactStats{Size: 101, FileCount: 5}},
	}, diskstat.Usage{}, now)

	if r1.Signature == r2.Signature {
		t.Fatal("expected different signatures for different content")
	}
}

func TestTotalReclaimable(t *testing.T) {
	r := Report{Items: []model.ScanItem{
		{Stats: model.ArtifactStats{Size: 10}},
		{Stats: model.ArtifactStats{Size: 20}},
	}}
	if got := r.TotalReclaimable(); got != 30 {
		t.Fatalf("got %d, want 30", got)
	}
}
