package tracking

import (
	"time"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

// State is one committed simulation tick. Values handed out by a Runner are
// shared between readers and must not be modified.
type State struct {
	Tick       uint64                        `json:"tick"`
	At         time.Time                     `json:"at"`
	Trains     []network.Train               `json:"trains"`
	Congestion map[string]CongestionSnapshot `json:"congestion"`
}

// Network is what a tick needs from the static network.
type Network interface {
	RouteLookup
	Junctions() []network.JunctionNode
}

// NewState builds tick zero from an initial train set.
func NewState(trains []network.Train, net Network, at time.Time) State {
	own := append([]network.Train(nil), trains...)
	return State{
		Tick:       0,
		At:         at,
		Trains:     own,
		Congestion: ComputeCongestion(own, net.Junctions(), net),
	}
}

// Advance is the tick transition: every train advances independently, then
// congestion is recomputed from the new train set. s is left untouched.
func (s State) Advance(net Network, at time.Time) State {
	trains := make([]network.Train, len(s.Trains))
	for i, t := range s.Trains {
		trains[i] = Advance(t, net)
	}
	return State{
		Tick:       s.Tick + 1,
		At:         at,
		Trains:     trains,
		Congestion: ComputeCongestion(trains, net.Junctions(), net),
	}
}

// Train projects a single train out of the state, e.g. the one selected in
// a detail view.
func (s State) Train(id string) (network.Train, bool) {
	for _, t := range s.Trains {
		if t.ID == id {
			return t, true
		}
	}
	return network.Train{}, false
}

// TrainsOnRoutes filters trains to the given route ids; an empty set keeps all.
func (s State) TrainsOnRoutes(routeIDs map[string]bool) []network.Train {
	if len(routeIDs) == 0 {
		return s.Trains
	}
	out := []network.Train{}
	for _, t := range s.Trains {
		if routeIDs[t.RouteID] {
			out = append(out, t)
		}
	}
	return out
}

// TrainView is a train together with its rendered position.
type TrainView struct {
	network.Train
	Position *Position `json:"position,omitempty"`
}

// Views attaches interpolated positions to trains. Trains that cannot be
// rendered carry a nil Position.
func Views(trains []network.Train, routes RouteLookup) []TrainView {
	out := make([]TrainView, len(trains))
	for i, t := range trains {
		out[i] = TrainView{Train: t}
		if pos, ok := Locate(t, routes); ok {
			out[i].Position = &pos
		}
	}
	return out
}
