package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters_Coincident(t *testing.T) {
	assert.Equal(t, 0.0, HaversineMeters(19.2183, 72.9781, 19.2183, 72.9781))
}

func TestHaversineMeters_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
	}{
		{"thane to mumbai central", 19.2183, 72.9781, 19.0760, 72.8777},
		{"delhi to pune", 28.6139, 77.2090, 18.6298, 73.7997},
		{"across the antimeridian", 10, 179.5, -10, -179.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := HaversineMeters(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			ba := HaversineMeters(tt.lat2, tt.lng2, tt.lat1, tt.lng1)
			assert.InDelta(t, ab, ba, 1e-6)
		})
	}
}

func TestHaversineMeters_ThaneToMumbaiCentral(t *testing.T) {
	d := HaversineMeters(19.2183, 72.9781, 19.0760, 72.8777)
	if d < 18500 || d > 19500 {
		t.Fatalf("unexpected distance %.0f m", d)
	}
	assert.InDelta(t, d/1000, HaversineKM(19.2183, 72.9781, 19.0760, 72.8777), 1e-9)
}

func TestHaversineMeters_OneDegreeOfLatitude(t *testing.T) {
	// one degree along a meridian is R*pi/180
	assert.InDelta(t, 111194.93, HaversineMeters(0, 0, 1, 0), 0.01)
}

func TestPresentableDistance(t *testing.T) {
	tests := []struct {
		meters   float64
		expected string
	}{
		{0, "at junction"},
		{99.9, "at junction"},
		{100, "approaching"},
		{499, "approaching"},
		{500, "0.5 km"},
		{21345, "21.3 km"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PresentableDistance(tt.meters))
	}
}
