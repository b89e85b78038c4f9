package wrapped

import (
	"context"
	"log"

	"github.com/stellarlinkco/photowrap/internal/geocode"
)

// EnrichLabels resolves a human-readable name for each low-confidence
// cluster, persisting the update. A failed or empty geocode leaves the
// placeholder label in place and moves on; enrichment never aborts the run.
func EnrichLabels(ctx context.Context, gc geocode.Geocoder, store *Store, clusters []PlaceCluster) []PlaceCluster {
	for i := range clusters {
		c := &clusters[i]
		if c.LabelConfidence != ConfidenceLow {
			continue
		}
		if !isFinite(c.CentroidLat) || !isFinite(c.CentroidLon) {
			continue
		}

		addrs, err := gc.Reverse(ctx, c.CentroidLat, c.CentroidLon)
		if err != nil {
			log.Printf("[geocode] cluster %s: %v", c.ID, err)
			continue
		}
		label := placeLabel(addrs)
		if label == "" {
			continue
		}

		c.Label = label
		c.LabelConfidence = ConfidenceMedium
		if err := store.SaveCluster(c); err != nil {
			log.Printf("[geocode] save cluster %s: %v", c.ID, err)
		}
	}
	return clusters
}

// placeLabel picks the most specific usable address field:
// sub-locality > district > sub-region > city > region > country.
func placeLabel(addrs []geocode.Address) string {
	if len(addrs) == 0 {
		return ""
	}
	a := addrs[0]
	for _, field := range []string{a.SubLocality, a.District, a.Subregion, a.City, a.Region, a.Country} {
		if field != "" {
			return field
		}
	}
	return ""
}
