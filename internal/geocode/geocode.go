// Package geocode defines the reverse-geocoding collaborator used to name
// place clusters, plus an HTTP client for a companion geocoding service.
package geocode

import "context"

// Address is one reverse-geocoding candidate. Any field may be empty.
type Address struct {
	SubLocality string `json:"subLocality,omitempty"`
	District    string `json:"district,omitempty"`
	Subregion   string `json:"subregion,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Geocoder resolves coordinates to address candidates.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) ([]Address, error)
}
