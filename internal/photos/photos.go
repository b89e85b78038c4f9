package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Media types reported by the library.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

// Access privilege levels reported by the library.
const (
	AccessAll     = "all"
	AccessLimited = "limited"
	AccessNone    = "none"
)

// TimeRange is a half-open window [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// AssetRef is the scanner's reduced view of one library asset.
type AssetRef struct {
	AssetID      string
	CreationTime time.Time
	MediaType    string
}

// Location holds per-asset GPS coordinates. Some library backends encode
// coordinates as numeric strings, so the fields decode either form.
type Location struct {
	Latitude  Coord `json:"latitude"`
	Longitude Coord `json:"longitude"`
}

// AssetInfo is the full per-asset record returned by the library.
type AssetInfo struct {
	AssetID      string
	Location     *Location
	CreationTime time.Time
}

// ListPage is one page of a paginated asset listing.
type ListPage struct {
	Assets     []AssetRef
	NextCursor string
	HasMore    bool
}

// Library is the photo-library collaborator. Implementations must return
// photo assets sorted by creation time ascending and filtered to the
// requested window.
type Library interface {
	ListAssets(ctx context.Context, r TimeRange, pageSize int, cursor string) (*ListPage, error)
	AssetInfo(ctx context.Context, assetID string) (*AssetInfo, error)
	AccessLevel(ctx context.Context) (string, error)
}

// Coord is a float64 that also decodes from a quoted numeric string.
// Unparseable input decodes to NaN so that callers can exclude the asset
// instead of zero-filling it.
type Coord float64

func (c *Coord) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = Coord(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coordinate is neither number nor string: %s", data)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = Coord(math.NaN())
		return nil
	}
	*c = Coord(f)
	return nil
}

func (c Coord) Float() float64 { return float64(c) }

// PresetRange resolves one of the named time-range presets relative to now.
func PresetRange(name string, now time.Time) (TimeRange, error) {
	switch name {
	case "this-year":
		return TimeRange{
			Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()),
			End:   now,
		}, nil
	case "last-year":
		return TimeRange{
			Start: time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, now.Location()),
			End:   time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()),
		}, nil
	case "last-30-days":
		return TimeRange{Start: now.AddDate(0, 0, -30), End: now}, nil
	}
	return TimeRange{}, fmt.Errorf("unknown range preset %q", name)
}
