package tracking

import (
	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

// Position is a WGS84 coordinate in degrees
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InterpolatePosition returns the train's coordinates between its current
// station and the following one, weighted by its progress. The bool is false
// when nothing can be rendered for this train.
func InterpolatePosition(train network.Train, route *network.Route) (Position, bool) {
	current, ok := route.Station(train.CurrentStationIndex)
	if !ok {
		return Position{}, false
	}
	next, ok := route.Station((train.CurrentStationIndex + 1) % len(route.Stations))
	if !ok {
		return Position{Lat: current.Lat, Lng: current.Lng}, true
	}
	return lerp(current, next, train.ProgressToNext), true
}

// SegmentPosition interpolates between the current station and the one
// after it in list order without wrapping: a train at the last station has
// no segment and yields false.
func SegmentPosition(train network.Train, routes RouteLookup) (Position, bool) {
	route, ok := routes.Route(train.RouteID)
	if !ok {
		return Position{}, false
	}
	current, ok := route.Station(train.CurrentStationIndex)
	if !ok {
		return Position{}, false
	}
	next, ok := route.Station(train.CurrentStationIndex + 1)
	if !ok {
		return Position{}, false
	}
	return lerp(current, next, train.ProgressToNext), true
}

func lerp(a, b network.Station, p float64) Position {
	return Position{
		Lat: a.Lat + (b.Lat-a.Lat)*p,
		Lng: a.Lng + (b.Lng-a.Lng)*p,
	}
}

// Locate resolves the train's route and interpolates its position.
func Locate(train network.Train, routes RouteLookup) (Position, bool) {
	route, ok := routes.Route(train.RouteID)
	if !ok {
		return Position{}, false
	}
	return InterpolatePosition(train, route)
}
