package tracking

import (
	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

// ProgressStep is the progress added per tick. Train speed does not affect it.
const ProgressStep = 0.02

// rolloverTolerance absorbs float64 drift so that 1/ProgressStep steps
// always complete a segment.
const rolloverTolerance = 1e-9

// RouteLookup resolves a route by id. *network.Registry implements it.
type RouteLookup interface {
	Route(id string) (*network.Route, bool)
}

// Advance moves a train forward by one tick. A train whose route cannot be
// resolved is returned unchanged.
func Advance(train network.Train, routes RouteLookup) network.Train {
	route, ok := routes.Route(train.RouteID)
	if !ok {
		return train
	}
	return AdvanceOnRoute(train, route)
}

// AdvanceOnRoute is Advance with the route already resolved.
func AdvanceOnRoute(train network.Train, route *network.Route) network.Train {
	if route == nil || len(route.Stations) == 0 {
		return train
	}
	n := len(route.Stations)
	if train.CurrentStationIndex < 0 || train.CurrentStationIndex >= n {
		return train
	}

	progress := train.ProgressToNext + ProgressStep
	index := train.CurrentStationIndex
	if progress >= 1-rolloverTolerance {
		progress = 0
		index = nextIndex(index, train.Direction, n)
	}

	train.ProgressToNext = progress
	train.CurrentStationIndex = index
	return train
}

func nextIndex(i int, dir network.Direction, n int) int {
	if dir == network.Forward {
		return (i + 1) % n
	}
	if i == 0 {
		return n - 1
	}
	return i - 1
}
