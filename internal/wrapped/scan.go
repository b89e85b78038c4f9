package wrapped

import (
	"context"
	"fmt"
	"sort"

	"github.com/stellarlinkco/photowrap/internal/photos"
)

// ScanResult is the complete photo set for one time window. A zero
// TotalCount means the window held no photos; that is a result, not an error.
type ScanResult struct {
	Assets     []photos.AssetRef
	TotalCount int
}

// ScanPhotos pages through the library until it reports no further pages,
// keeping photo assets whose creation time falls in [r.Start, r.End), sorted
// by creation time ascending.
func ScanPhotos(ctx context.Context, lib photos.Library, r photos.TimeRange, pageSize int) (*ScanResult, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var assets []photos.AssetRef
	cursor := ""
	for {
		page, err := lib.ListAssets(ctx, r, pageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		for _, a := range page.Assets {
			if a.MediaType != photos.MediaPhoto {
				continue
			}
			if a.CreationTime.Before(r.Start) || !a.CreationTime.Before(r.End) {
				continue
			}
			assets = append(assets, a)
		}
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreationTime.Before(assets[j].CreationTime)
	})

	return &ScanResult{Assets: assets, TotalCount: len(assets)}, nil
}
