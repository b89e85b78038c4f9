package wrapped

import "math"

const metersPerLatDegree = 111320.0

// cellKey identifies one clustering grid cell.
type cellKey struct {
	lat int64
	lon int64
}

// quantize maps a coordinate to its grid cell. The longitude step shrinks
// with cos(lat); below 0.01 it falls back to the latitude step to avoid the
// near-polar degeneracy.
func quantize(lat, lon float64) cellKey {
	latStep := CellSizeMeters / metersPerLatDegree
	cosLat := math.Cos(lat * math.Pi / 180)
	lonStep := latStep
	if cosLat > 0.01 {
		lonStep = CellSizeMeters / (metersPerLatDegree * cosLat)
	}
	return cellKey{
		lat: int64(math.Floor(lat / latStep)),
		lon: int64(math.Floor(lon / lonStep)),
	}
}
