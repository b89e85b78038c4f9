package wrapped

import (
	"fmt"
	"math"
	"sort"
)

type gridCell struct {
	assetIDs    []string
	days        map[string]struct{}
	centroidLat float64
	centroidLon float64
}

// GridClusters quantizes the located points into 120 m grid cells, keeps the
// cells with at least MinPhotosPerPlace photos, and returns the TopPlaces
// largest as place clusters ranked by photo count descending.
//
// Cells and their contents keep input insertion order, so centroids (running
// arithmetic means) are reproducible for identical input order.
func GridClusters(runID string, points []GeoPoint) []PlaceCluster {
	cells := make(map[cellKey]*gridCell)
	var order []cellKey

	for _, p := range points {
		if !isFinite(p.Latitude) || !isFinite(p.Longitude) {
			continue
		}

		key := quantize(p.Latitude, p.Longitude)
		cell, ok := cells[key]
		if !ok {
			cell = &gridCell{
				days:        make(map[string]struct{}),
				centroidLat: p.Latitude,
				centroidLon: p.Longitude,
			}
			cells[key] = cell
			order = append(order, key)
		}

		cell.assetIDs = append(cell.assetIDs, p.AssetID)
		cell.days[p.CreationTime.Format("2006-01-02")] = struct{}{}
		n := float64(len(cell.assetIDs))
		cell.centroidLat = (cell.centroidLat*(n-1) + p.Latitude) / n
		cell.centroidLon = (cell.centroidLon*(n-1) + p.Longitude) / n
	}

	var clusters []PlaceCluster
	for _, key := range order {
		cell := cells[key]
		if len(cell.assetIDs) < MinPhotosPerPlace {
			continue
		}
		clusters = append(clusters, PlaceCluster{
			ID:                     fmt.Sprintf("%s_cluster_%d", runID, len(clusters)),
			RunID:                  runID,
			CentroidLat:            cell.centroidLat,
			CentroidLon:            cell.centroidLon,
			PhotoCount:             len(cell.assetIDs),
			DistinctDaysCount:      len(cell.days),
			Label:                  PlaceholderLabel,
			LabelConfidence:        ConfidenceLow,
			RepresentativeAssetIDs: SelectRepresentatives(cell.assetIDs, MaxRepresentatives),
			Source:                 SourceGridCluster,
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].PhotoCount > clusters[j].PhotoCount
	})
	if len(clusters) > TopPlaces {
		clusters = clusters[:TopPlaces]
	}
	return clusters
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
