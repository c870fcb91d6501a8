package delete

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/nextprune/nextprune/internal/delete/mocks"
	"github.com/nextprune/nextprune/internal/model"
)

func TestNormalizeSize(t *testing.T) {
	cases := []struct {
		in   float64
		want uint64
	}{
		{1024, 1024},
		{0, 0},
		{-5, 0},
		{nan(), 0},
		{inf(), 0},
	}
	for _, tc := range cases {
		if got := NormalizeSize(tc.in); got != tc.want {
			t.Errorf("NormalizeSize(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func nan() float64 { v := 0.0; return v / v }
func inf() float64 { v := 1.0; return v / zero() }
func zero() float64 { return 0.0 }

func TestItemSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	remover.EXPECT().RemoveAll("/tmp/target").Return(nil)

	result := Item(remover, "/tmp/target", 2048)
	if !result.OK || result.ReclaimedSize != 2048 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestItemFailureStillReportsReclaimedSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	remover.EXPECT().RemoveAll("/tmp/target").Return(errors.New("permission denied"))

	result := Item(remover, "/tmp/target", 512)
	if result.OK || result.Error == "" || result.ReclaimedSize != 512 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestItemsPartialFailureIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	remover.EXPECT().RemoveAll("/tmp/a").Return(nil)
	remover.EXPECT().RemoveAll("/tmp/b").Return(errors.New("boom"))

	items := []model.ScanItem{
		{Path: "/tmp/a", Stats: model.ArtifactStats{Size: 100}},
		{Path: "/tmp/b", Stats: model.ArtifactStats{Size: 200}},
	}

	summary := Items(context.Background(), remover, items, 0)
	if summary.DeletedCount != 1 || summary.FailureCount != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.ReclaimedBytes != 100 {
		t.Fatalf("expected reclaimed only from the successful item, got %d", summary.ReclaimedBytes)
	}
}
