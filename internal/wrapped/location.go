package wrapped

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/stellarlinkco/photowrap/internal/photos"
)

// Extraction is the location extractor's result. Discarded counts assets
// whose info lookup failed or whose coordinates were missing or non-finite.
type Extraction struct {
	Points    []GeoPoint
	Discarded int
}

// ExtractLocations resolves coordinates for the given asset ids. Ids are
// processed in fixed-size batches; within a batch the per-asset fetches run
// concurrently, batches run strictly in sequence. Per-asset failures are
// excluded, never escalated. onProgress (optional) fires after each batch
// with monotonically increasing processed counts, on the caller's goroutine.
func ExtractLocations(ctx context.Context, lib photos.Library, assetIDs []string, batchSize int, onProgress func(processed, total int)) *Extraction {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	out := &Extraction{}
	total := len(assetIDs)
	processed := 0

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		batch := assetIDs[start:end]
		results := make([]*GeoPoint, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, id := range batch {
			g.Go(func() error {
				info, err := lib.AssetInfo(gctx, id)
				if err != nil {
					log.Printf("[location] asset %s: %v", id, err)
					return nil
				}
				if info.Location == nil {
					return nil
				}
				lat := info.Location.Latitude.Float()
				lon := info.Location.Longitude.Float()
				if !isFinite(lat) || !isFinite(lon) {
					log.Printf("[location] asset %s: non-finite coordinates", id)
					return nil
				}
				results[i] = &GeoPoint{
					AssetID:      id,
					Latitude:     lat,
					Longitude:    lon,
					CreationTime: info.CreationTime,
				}
				return nil
			})
		}
		_ = g.Wait()

		for _, r := range results {
			if r != nil {
				out.Points = append(out.Points, *r)
			} else {
				out.Discarded++
			}
		}

		processed += len(batch)
		if onProgress != nil {
			onProgress(processed, total)
		}
	}

	return out
}
