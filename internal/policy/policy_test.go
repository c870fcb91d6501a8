package policy

import (
	"path/filepath"
	"testing"

	"github.com/nextprune/nextprune/internal/model"
)

func TestFilterNeverDelete(t *testing.T) {
	cwd := "/repo"
	items := []model.ScanItem{
		{Path: filepath.Join(cwd, "apps/web/.next"), CleanupType: model.CleanupArtifact},
		{Path: filepath.Join(cwd, "apps/api/.next"), CleanupType: model.CleanupArtifact},
	}
	out := FilterNeverDelete(items, cwd, []string{"apps/web"})
	if len(out) != 1 || out[0].Path != filepath.Join(cwd, "apps/api/.next") {
		t.Fatalf("unexpected filtered result: %v", out)
	}
}

func TestFilterNeverDeleteEmptyPatternsIsIdentity(t *testing.T) {
	items := []model.ScanItem{{Path: "/repo/apps/web/.next"}}
	out := FilterNeverDelete(items, "/repo", nil)
	if len(out) != 1 {
		t.Fatalf("expected identity, got %v", out)
	}
}

func TestSelectAlwaysDeletePaths(t *testing.T) {
	cwd := "/repo"
	target := filepath.Join(cwd, "apps/web/.next")
	items := []model.ScanItem{
		{Path: target},
		{Path: filepath.Join(cwd, "apps/api/.next")},
	}
	got := SelectAlwaysDeletePaths(items, cwd, []string{"apps/web"})
	if !got[target] || len(got) != 1 {
		t.Fatalf("unexpected always-delete set: %v", got)
	}
}

func TestIsApplyProtected(t *testing.T) {
	cases := []struct {
		item model.ScanItem
		want bool
	}{
		{model.ScanItem{CleanupType: model.CleanupWorkspaceNodeModules}, true},
		{model.ScanItem{CleanupType: model.CleanupPMCache}, true},
		{model.ScanItem{CleanupType: model.CleanupArtifact, Path: "apps/web/.next"}, false},
	}
	for _, tc := range cases {
		if got := IsApplyProtected(tc.item); got != tc.want {
			t.Errorf("item %+v: got %v, want %v", tc.item, got, tc.want)
		}
	}
}
