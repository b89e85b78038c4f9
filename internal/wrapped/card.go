package wrapped

import (
	"encoding/json"
	"fmt"
	"time"
)

// CardType discriminates the card payload variants.
type CardType string

const (
	CardTitle             CardType = "title"
	CardTrust             CardType = "trust"
	CardTopPlace1         CardType = "topPlace1"
	CardTopPlaces23       CardType = "topPlaces23"
	CardPeakDay           CardType = "peakDay"
	CardPeakMonth         CardType = "peakMonth"
	CardMostExploredMonth CardType = "mostExploredMonth"
	CardTimeOfDay         CardType = "timeOfDay"
	CardDistinctPlaces    CardType = "distinctPlaces"
	CardCollage           CardType = "collage"
)

// CardModel is one typed, ordered unit of the output deck. RenderOrder is
// strictly increasing from 1 and defines display order.
type CardModel struct {
	ID          string
	RunID       string
	Type        CardType
	Payload     CardPayload
	RenderOrder int
}

// CardPayload is the tagged-union payload; one concrete type per card type.
type CardPayload interface {
	cardType() CardType
}

type TitlePayload struct {
	Year int `json:"year"`
}

type TrustPayload struct {
	TotalPhotos int      `json:"totalPhotos"`
	CoveragePct int      `json:"coveragePct"`
	AssetIDs    []string `json:"assetIds"`
}

type TopPlacePayload struct {
	Place PlaceCluster `json:"place"`
}

type TopPlacesPayload struct {
	Place2 PlaceCluster `json:"place2"`
	Place3 PlaceCluster `json:"place3"`
}

type PeakDayPayload struct {
	Date     time.Time `json:"date"`
	Count    int       `json:"count"`
	AssetIDs []string  `json:"assetIds"`
}

type PeakMonthPayload struct {
	Month    string   `json:"month"`
	Count    int      `json:"count"`
	AssetIDs []string `json:"assetIds"`
}

type MostExploredMonthPayload struct {
	Month          string   `json:"month"`
	DistinctPlaces int      `json:"distinctPlaces"`
	AssetIDs       []string `json:"assetIds"`
}

type TimeOfDayPayload struct {
	Window   string   `json:"window"`
	Hour     int      `json:"hour"`
	AssetIDs []string `json:"assetIds"`
}

type DistinctPlacesPayload struct {
	Count    int      `json:"count"`
	AssetIDs []string `json:"assetIds"`
}

type CollagePayload struct {
	AssetIDs []string `json:"assetIds"`
}

func (TitlePayload) cardType() CardType             { return CardTitle }
func (TrustPayload) cardType() CardType             { return CardTrust }
func (TopPlacePayload) cardType() CardType          { return CardTopPlace1 }
func (TopPlacesPayload) cardType() CardType         { return CardTopPlaces23 }
func (PeakDayPayload) cardType() CardType           { return CardPeakDay }
func (PeakMonthPayload) cardType() CardType         { return CardPeakMonth }
func (MostExploredMonthPayload) cardType() CardType { return CardMostExploredMonth }
func (TimeOfDayPayload) cardType() CardType         { return CardTimeOfDay }
func (DistinctPlacesPayload) cardType() CardType    { return CardDistinctPlaces }
func (CollagePayload) cardType() CardType           { return CardCollage }

// decodePayload rebuilds the concrete payload for a stored card row.
func decodePayload(t CardType, data []byte) (CardPayload, error) {
	var p CardPayload
	switch t {
	case CardTitle:
		p = &TitlePayload{}
	case CardTrust:
		p = &TrustPayload{}
	case CardTopPlace1:
		p = &TopPlacePayload{}
	case CardTopPlaces23:
		p = &TopPlacesPayload{}
	case CardPeakDay:
		p = &PeakDayPayload{}
	case CardPeakMonth:
		p = &PeakMonthPayload{}
	case CardMostExploredMonth:
		p = &MostExploredMonthPayload{}
	case CardTimeOfDay:
		p = &TimeOfDayPayload{}
	case CardDistinctPlaces:
		p = &DistinctPlacesPayload{}
	case CardCollage:
		p = &CollagePayload{}
	default:
		return nil, fmt.Errorf("unknown card type %q", t)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s payload: %w", t, err)
	}
	return deref(p), nil
}

func deref(p CardPayload) CardPayload {
	switch v := p.(type) {
	case *TitlePayload:
		return *v
	case *TrustPayload:
		return *v
	case *TopPlacePayload:
		return *v
	case *TopPlacesPayload:
		return *v
	case *PeakDayPayload:
		return *v
	case *PeakMonthPayload:
		return *v
	case *MostExploredMonthPayload:
		return *v
	case *TimeOfDayPayload:
		return *v
	case *DistinctPlacesPayload:
		return *v
	case *CollagePayload:
		return *v
	}
	return p
}
