package wrapped

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/stellarlinkco/photowrap/internal/geocode"
	"github.com/stellarlinkco/photowrap/internal/photos"
)

// ErrNoPhotos is returned when the requested window holds no photos. The
// condition is terminal and user-visible; nothing is persisted.
var ErrNoPhotos = errors.New("no photos found in this time range")

// Pipeline wires the collaborators and the store into one run flow. Stages
// execute strictly in sequence; a Pipeline is not reentrant.
type Pipeline struct {
	Library  photos.Library
	Geocoder geocode.Geocoder
	Store    *Store

	PageSize  int
	BatchSize int

	// OnStage and OnProgress are optional progress hooks; OnProgress reports
	// location extraction as (processed, total).
	OnStage    func(stage Stage)
	OnProgress func(processed, total int)

	// Now and NewRunID are injectable for tests.
	Now      func() time.Time
	NewRunID func() string
}

// RunResult is everything one completed run produced.
type RunResult struct {
	Run       *WrappedRun
	Places    []PlaceCluster
	Cards     []CardModel
	Discarded int
}

// Run executes the full pipeline over the given window: scan, locate,
// cluster, persist, enrich labels, aggregate time stats, assemble and
// persist the card deck.
func (p *Pipeline) Run(ctx context.Context, r photos.TimeRange) (*RunResult, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	newRunID := func() string { return "run_" + uuid.NewString() }
	if p.NewRunID != nil {
		newRunID = p.NewRunID
	}

	p.stage(StageScan)
	scan, err := ScanPhotos(ctx, p.Library, r, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("scan photos: %w", err)
	}
	if scan.TotalCount == 0 {
		return nil, ErrNoPhotos
	}
	log.Printf("[pipeline] scanned %d photos", scan.TotalCount)

	access, err := p.Library.AccessLevel(ctx)
	if err != nil {
		log.Printf("[pipeline] access level: %v", err)
		access = photos.AccessAll
	}

	run := &WrappedRun{
		ID:               newRunID(),
		TimeRangeStart:   r.Start,
		TimeRangeEnd:     r.End,
		TotalAssets:      scan.TotalCount,
		AccessPrivileges: access,
		AlgorithmVersion: AlgorithmVersion,
		CreatedAt:        now(),
	}

	p.stage(StagePlaces)
	assetIDs := make([]string, len(scan.Assets))
	for i, a := range scan.Assets {
		assetIDs[i] = a.AssetID
	}
	extraction := ExtractLocations(ctx, p.Library, assetIDs, p.BatchSize, p.OnProgress)
	log.Printf("[pipeline] located %d of %d photos (%d discarded)",
		len(extraction.Points), scan.TotalCount, extraction.Discarded)

	var places []PlaceCluster
	if len(extraction.Points) >= MinPhotosPerPlace {
		places = GridClusters(run.ID, extraction.Points)
	}

	run.LocationAssets = len(extraction.Points)
	run.LocationCoveragePct = float64(run.LocationAssets) / float64(run.TotalAssets) * 100

	if err := p.Store.SaveRun(run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}
	for i := range places {
		if err := p.Store.SaveCluster(&places[i]); err != nil {
			return nil, fmt.Errorf("persist cluster: %w", err)
		}
	}

	p.stage(StageGeocode)
	if p.Geocoder != nil {
		places = EnrichLabels(ctx, p.Geocoder, p.Store, places)
	}

	stats := ComputeTimeStats(scan.Assets)
	if explored := MostExploredMonth(extraction.Points); explored != nil {
		log.Printf("[pipeline] most explored month: %s (%d places)",
			explored.Month, explored.DistinctPlaces)
	}

	cards := BuildDeck(DeckInput{
		RunID:       run.ID,
		RangeEnd:    r.End,
		TotalPhotos: run.TotalAssets,
		CoveragePct: run.LocationCoveragePct,
		Places:      places,
		Stats:       stats,
	})
	for i := range cards {
		if err := p.Store.SaveCard(&cards[i]); err != nil {
			return nil, fmt.Errorf("persist card: %w", err)
		}
	}

	p.stage(StageComplete)
	log.Printf("[pipeline] run %s complete: %d places, %d cards", run.ID, len(places), len(cards))

	return &RunResult{
		Run:       run,
		Places:    places,
		Cards:     cards,
		Discarded: extraction.Discarded,
	}, nil
}

func (p *Pipeline) stage(s Stage) {
	if p.OnStage != nil {
		p.OnStage(s)
	}
}
