package utils

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the spherical earth radius used for all distances.
const EarthRadiusMeters = 6371e3

const (
	atJunctionMeters  = 100.0
	approachingMeters = 500.0
)

// HaversineMeters returns the great-circle distance in meters between two
// points given in degrees.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// HaversineKM is HaversineMeters in kilometers.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineMeters(lat1, lng1, lat2, lng2) / 1000
}

// PresentableDistance formats a distance to a junction for display
func PresentableDistance(meters float64) string {
	switch {
	case meters < atJunctionMeters:
		return "at junction"
	case meters < approachingMeters:
		return "approaching"
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
