// Package wrapped implements the photo-recap analysis pipeline: scanning a
// library time window, clustering located photos into places, aggregating
// temporal stats, and assembling a deterministic deck of summary cards backed
// by a sqlite run store.
package wrapped

import "time"

const (
	// AlgorithmVersion tags every persisted run.
	AlgorithmVersion = "1.0.0"

	// CellSizeMeters is the fixed edge of one clustering grid cell.
	CellSizeMeters = 120

	// MinPhotosPerPlace is the smallest cell that survives clustering.
	MinPhotosPerPlace = 3

	// TopPlaces caps the number of clusters persisted per run.
	TopPlaces = 10

	// MaxRepresentatives caps the preview sample per cluster.
	MaxRepresentatives = 9

	// DefaultPageSize is the scanner's library page size.
	DefaultPageSize = 1000

	// DefaultBatchSize bounds concurrent asset-info fetches per batch.
	DefaultBatchSize = 10
)

// Confidence grades a cluster label.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// SourceGridCluster marks clusters produced by grid clustering.
const SourceGridCluster = "gridcluster"

// PlaceholderLabel is the label clusters carry before enrichment.
const PlaceholderLabel = "Unknown Place"

// GeoPoint is one located asset.
type GeoPoint struct {
	AssetID      string
	Latitude     float64
	Longitude    float64
	CreationTime time.Time
}

// PlaceCluster is a group of photos sharing one grid cell.
type PlaceCluster struct {
	ID                     string     `json:"id"`
	RunID                  string     `json:"runId"`
	CentroidLat            float64    `json:"centroidLat"`
	CentroidLon            float64    `json:"centroidLon"`
	PhotoCount             int        `json:"photoCount"`
	DistinctDaysCount      int        `json:"distinctDaysCount"`
	Label                  string     `json:"label"`
	LabelConfidence        Confidence `json:"labelConfidence"`
	RepresentativeAssetIDs []string   `json:"representativeAssetIds"`
	IsHidden               bool       `json:"isHidden"`
	Source                 string     `json:"source"`
}

// WrappedRun is one pipeline execution record.
type WrappedRun struct {
	ID                  string
	TimeRangeStart      time.Time
	TimeRangeEnd        time.Time
	TotalAssets         int
	LocationAssets      int
	LocationCoveragePct float64
	AccessPrivileges    string
	FiltersHash         string
	AlgorithmVersion    string
	CreatedAt           time.Time
}

// Stage identifies one pipeline phase for progress reporting.
type Stage string

const (
	StageScan     Stage = "scan"
	StagePlaces   Stage = "places"
	StageGeocode  Stage = "geocode"
	StageComplete Stage = "complete"
)
