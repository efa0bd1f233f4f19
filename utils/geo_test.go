package utils

import (
	"math"
	"testing"
)

func TestParseLatLng(t *testing.T) {
	lat, lng := ParseLatLng("-8.0476, -34.8770")
	if lat != -8.0476 || lng != -34.8770 {
		t.Errorf("ParseLatLng = (%v, %v), want (-8.0476, -34.8770)", lat, lng)
	}

	lat, lng = ParseLatLng("garbage")
	if lat != 0 || lng != 0 {
		t.Errorf("malformed input should yield (0, 0), got (%v, %v)", lat, lng)
	}
}

func TestCalculateDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lng1 float64
		lat2, lng2 float64
		wantKm     float64
		tolerance  float64
	}{
		{
			name: "same point",
			lat1: -8.0476, lng1: -34.8770,
			lat2: -8.0476, lng2: -34.8770,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "Recife to Olinda (~7km)",
			lat1: -8.0476, lng1: -34.8770,
			lat2: -8.0089, lng2: -34.8553,
			wantKm:    5,
			tolerance: 3,
		},
		{
			name: "Recife to São Paulo (~2100km)",
			lat1: -8.0476, lng1: -34.8770,
			lat2: -23.5505, lng2: -46.6333,
			wantKm:    2128,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDistance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("CalculateDistance() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestCalculateDistance_Symmetry(t *testing.T) {
	d1 := CalculateDistance(-8.0, -34.9, -8.1, -35.0)
	d2 := CalculateDistance(-8.1, -35.0, -8.0, -34.9)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}
