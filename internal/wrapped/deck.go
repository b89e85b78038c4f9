package wrapped

import (
	"fmt"
	"math"
	"time"
)

// DeckInput carries everything the assembler conditions on.
type DeckInput struct {
	RunID       string
	RangeEnd    time.Time
	TotalPhotos int
	CoveragePct float64
	Places      []PlaceCluster
	Stats       *TimeStats
}

// BuildDeck produces the run's card sequence in its fixed order. Each card is
// emitted at most once, conditioned on data availability; renderOrder runs
// 1..N without gaps.
func BuildDeck(in DeckInput) []CardModel {
	var cards []CardModel
	push := func(p CardPayload) {
		cards = append(cards, CardModel{
			ID:          fmt.Sprintf("%s_card_%d", in.RunID, len(cards)),
			RunID:       in.RunID,
			Type:        p.cardType(),
			Payload:     p,
			RenderOrder: len(cards) + 1,
		})
	}

	push(TitlePayload{Year: in.RangeEnd.Year()})

	push(TrustPayload{
		TotalPhotos: in.TotalPhotos,
		CoveragePct: int(math.Round(in.CoveragePct)),
		AssetIDs:    SelectRepresentatives(in.Stats.AllAssetIDs, 6),
	})

	if len(in.Places) > 0 {
		push(TopPlacePayload{Place: in.Places[0]})
	}

	if len(in.Places) >= 3 {
		push(TopPlacesPayload{Place2: in.Places[1], Place3: in.Places[2]})
	}

	if in.Stats.PeakDay != nil {
		push(PeakDayPayload{
			Date:     in.Stats.PeakDay.Date,
			Count:    in.Stats.PeakDay.Count,
			AssetIDs: SelectRepresentatives(in.Stats.PeakDay.AssetIDs, 6),
		})
	}

	if in.Stats.PeakMonth != nil {
		push(PeakMonthPayload{
			Month:    in.Stats.PeakMonth.Month,
			Count:    in.Stats.PeakMonth.Count,
			AssetIDs: SelectRepresentatives(in.Stats.PeakMonth.AssetIDs, 6),
		})
	}

	if in.Stats.TimeOfDay != nil {
		push(TimeOfDayPayload{
			Window:   in.Stats.TimeOfDay.Window,
			Hour:     in.Stats.TimeOfDay.Hour,
			AssetIDs: SelectRepresentatives(in.Stats.TimeOfDay.AssetIDs, 6),
		})
	}

	if len(in.Places) > 0 {
		var ids []string
		for i := 0; i < len(in.Places) && i < 6; i++ {
			if reps := in.Places[i].RepresentativeAssetIDs; len(reps) > 0 {
				ids = append(ids, reps[0])
			}
		}
		push(DistinctPlacesPayload{Count: len(in.Places), AssetIDs: ids})
	}

	var collage []string
	if len(in.Places) > 0 {
		reps := in.Places[0].RepresentativeAssetIDs
		if len(reps) > MaxRepresentatives {
			reps = reps[:MaxRepresentatives]
		}
		collage = reps
	} else {
		collage = SelectRepresentatives(in.Stats.AllAssetIDs, MaxRepresentatives)
	}
	push(CollagePayload{AssetIDs: collage})

	return cards
}
