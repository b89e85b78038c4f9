package wrapped

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stellarlinkco/photowrap/internal/photos"
)

func scanWindow() photos.TimeRange {
	return photos.TimeRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestScanPhotosPagination(t *testing.T) {
	lib := &fakeLibrary{}
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		lib.assets = append(lib.assets, photoAsset(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour)))
	}

	res, err := ScanPhotos(context.Background(), lib, scanWindow(), 10)
	if err != nil {
		t.Fatalf("ScanPhotos error: %v", err)
	}
	if res.TotalCount != 25 {
		t.Fatalf("expected 25 assets, got %d", res.TotalCount)
	}
	if lib.pages != 3 {
		t.Fatalf("expected 3 pages for 25 assets at size 10, got %d", lib.pages)
	}
}

func TestScanPhotosFiltersVideos(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	lib := &fakeLibrary{assets: []photos.AssetRef{
		photoAsset("p1", ts),
		{AssetID: "v1", CreationTime: ts, MediaType: photos.MediaVideo},
		photoAsset("p2", ts.Add(time.Hour)),
	}}

	res, err := ScanPhotos(context.Background(), lib, scanWindow(), 10)
	if err != nil {
		t.Fatalf("ScanPhotos error: %v", err)
	}
	if res.TotalCount != 2 {
		t.Fatalf("expected 2 photos, got %d", res.TotalCount)
	}
	for _, a := range res.Assets {
		if a.MediaType != photos.MediaPhoto {
			t.Fatalf("video asset %s leaked through", a.AssetID)
		}
	}
}

func TestScanPhotosWindowBounds(t *testing.T) {
	r := scanWindow()
	lib := &fakeLibrary{assets: []photos.AssetRef{
		photoAsset("before", r.Start.Add(-time.Second)),
		photoAsset("atStart", r.Start),
		photoAsset("inside", r.Start.AddDate(0, 6, 0)),
		photoAsset("atEnd", r.End),
		photoAsset("after", r.End.Add(time.Second)),
	}}

	res, err := ScanPhotos(context.Background(), lib, r, 10)
	if err != nil {
		t.Fatalf("ScanPhotos error: %v", err)
	}

	var ids []string
	for _, a := range res.Assets {
		ids = append(ids, a.AssetID)
	}
	if len(ids) != 2 || ids[0] != "atStart" || ids[1] != "inside" {
		t.Fatalf("expected [atStart inside], got %v", ids)
	}
}

func TestScanPhotosSortsAscending(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	lib := &fakeLibrary{assets: []photos.AssetRef{
		photoAsset("c", base.Add(2*time.Hour)),
		photoAsset("a", base),
		photoAsset("b", base.Add(time.Hour)),
	}}

	res, err := ScanPhotos(context.Background(), lib, scanWindow(), 10)
	if err != nil {
		t.Fatalf("ScanPhotos error: %v", err)
	}
	for i := 1; i < len(res.Assets); i++ {
		if res.Assets[i].CreationTime.Before(res.Assets[i-1].CreationTime) {
			t.Fatalf("assets out of order at %d: %v", i, res.Assets)
		}
	}
}

func TestScanPhotosListError(t *testing.T) {
	lib := &fakeLibrary{listErr: errors.New("library offline")}

	_, err := ScanPhotos(context.Background(), lib, scanWindow(), 10)
	if err == nil {
		t.Fatal("expected error from failing library")
	}
}
