package main

import (
	"testing"
	"time"
)

func TestParseWindowPreset(t *testing.T) {
	now := time.Date(2025, 8, 30, 15, 0, 0, 0, time.UTC)

	r, err := parseWindow("this-year", "", "", now)
	if err != nil {
		t.Fatalf("parseWindow error: %v", err)
	}
	if r.Start.Year() != 2025 || r.Start.Month() != time.January || r.Start.Day() != 1 {
		t.Fatalf("unexpected start %v", r.Start)
	}
	if !r.End.Equal(now) {
		t.Fatalf("unexpected end %v", r.End)
	}
}

func TestParseWindowExplicit(t *testing.T) {
	r, err := parseWindow("this-year", "2025-01-01T00:00:00Z", "2025-07-01T00:00:00Z", time.Now())
	if err != nil {
		t.Fatalf("parseWindow error: %v", err)
	}
	if r.Start.Month() != time.January || r.End.Month() != time.July {
		t.Fatalf("unexpected window %v — %v", r.Start, r.End)
	}
}

func TestParseWindowErrors(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		from, to string
	}{
		{"from without to", "2025-01-01T00:00:00Z", ""},
		{"to without from", "", "2025-07-01T00:00:00Z"},
		{"bad from", "yesterday", "2025-07-01T00:00:00Z"},
		{"bad to", "2025-01-01T00:00:00Z", "soon"},
		{"inverted", "2025-07-01T00:00:00Z", "2025-01-01T00:00:00Z"},
		{"equal", "2025-07-01T00:00:00Z", "2025-07-01T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseWindow("this-year", tt.from, tt.to, now); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseWindowUnknownPreset(t *testing.T) {
	if _, err := parseWindow("fortnight", "", "", time.Now()); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
