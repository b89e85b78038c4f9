package wrapped

import (
	"time"

	"github.com/stellarlinkco/photowrap/internal/photos"
)

// DayStat is the busiest calendar day.
type DayStat struct {
	Date     time.Time
	Count    int
	AssetIDs []string
}

// MonthStat is the busiest calendar month.
type MonthStat struct {
	Month    string
	Count    int
	AssetIDs []string
}

// HourStat is the dominant time-of-day window.
type HourStat struct {
	Window   string
	Hour     int
	Count    int
	AssetIDs []string
}

// ExploredMonth is the month with the most distinct grid cells visited.
type ExploredMonth struct {
	Month          string
	DistinctPlaces int
	AssetIDs       []string
}

// TimeStats aggregates the run's temporal facts over the full asset list.
type TimeStats struct {
	PeakDay      *DayStat
	PeakMonth    *MonthStat
	TimeOfDay    *HourStat
	DistinctDays int
	AllAssetIDs  []string
}

type dayBucket struct {
	date     time.Time
	count    int
	assetIDs []string
}

type countBucket struct {
	count    int
	assetIDs []string
}

// ComputeTimeStats computes peak day, peak month and the dominant time-of-day
// window over all assets, located or not. Ties resolve to the bucket first
// encountered while scanning the input: buckets keep insertion order and the
// comparison is strictly-greater.
func ComputeTimeStats(assets []photos.AssetRef) *TimeStats {
	dayBuckets := make(map[string]*dayBucket)
	monthBuckets := make(map[string]*countBucket)
	hourBuckets := make(map[int]*countBucket)
	var dayOrder []string
	var monthOrder []string
	var hourOrder []int

	stats := &TimeStats{}

	for _, a := range assets {
		t := a.CreationTime
		dayKey := t.Format("2006-01-02")
		monthKey := t.Format("2006-01")
		hour := t.Hour()

		stats.AllAssetIDs = append(stats.AllAssetIDs, a.AssetID)

		day, ok := dayBuckets[dayKey]
		if !ok {
			day = &dayBucket{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
			dayBuckets[dayKey] = day
			dayOrder = append(dayOrder, dayKey)
		}
		day.count++
		day.assetIDs = append(day.assetIDs, a.AssetID)

		month, ok := monthBuckets[monthKey]
		if !ok {
			month = &countBucket{}
			monthBuckets[monthKey] = month
			monthOrder = append(monthOrder, monthKey)
		}
		month.count++
		month.assetIDs = append(month.assetIDs, a.AssetID)

		hb, ok := hourBuckets[hour]
		if !ok {
			hb = &countBucket{}
			hourBuckets[hour] = hb
			hourOrder = append(hourOrder, hour)
		}
		hb.count++
		hb.assetIDs = append(hb.assetIDs, a.AssetID)
	}

	stats.DistinctDays = len(dayBuckets)

	for _, key := range dayOrder {
		b := dayBuckets[key]
		if stats.PeakDay == nil || b.count > stats.PeakDay.Count {
			stats.PeakDay = &DayStat{Date: b.date, Count: b.count, AssetIDs: b.assetIDs}
		}
	}

	for _, key := range monthOrder {
		b := monthBuckets[key]
		if stats.PeakMonth == nil || b.count > stats.PeakMonth.Count {
			t, _ := time.Parse("2006-01", key)
			stats.PeakMonth = &MonthStat{
				Month:    t.Format("January 2006"),
				Count:    b.count,
				AssetIDs: b.assetIDs,
			}
		}
	}

	for _, hour := range hourOrder {
		b := hourBuckets[hour]
		if stats.TimeOfDay == nil || b.count > stats.TimeOfDay.Count {
			stats.TimeOfDay = &HourStat{
				Window:   TimeOfDayLabel(hour),
				Hour:     hour,
				Count:    b.count,
				AssetIDs: b.assetIDs,
			}
		}
	}

	return stats
}

// TimeOfDayLabel maps an hour of day to its window label.
func TimeOfDayLabel(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

type exploredBucket struct {
	cells    map[cellKey]struct{}
	assetIDs []string
}

// MostExploredMonth finds the month with the greatest number of distinct grid
// cells among the located assets, reusing the clustering quantization. Nil if
// no points were given.
func MostExploredMonth(points []GeoPoint) *ExploredMonth {
	if len(points) == 0 {
		return nil
	}

	buckets := make(map[string]*exploredBucket)
	var order []string

	for _, p := range points {
		monthKey := p.CreationTime.Format("2006-01")
		b, ok := buckets[monthKey]
		if !ok {
			b = &exploredBucket{cells: make(map[cellKey]struct{})}
			buckets[monthKey] = b
			order = append(order, monthKey)
		}
		b.cells[quantize(p.Latitude, p.Longitude)] = struct{}{}
		b.assetIDs = append(b.assetIDs, p.AssetID)
	}

	var best *ExploredMonth
	for _, key := range order {
		b := buckets[key]
		if best == nil || len(b.cells) > best.DistinctPlaces {
			t, _ := time.Parse("2006-01", key)
			best = &ExploredMonth{
				Month:          t.Format("January 2006"),
				DistinctPlaces: len(b.cells),
				AssetIDs:       b.assetIDs,
			}
		}
	}
	return best
}
