package network

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Registry owns route and junction definitions for the process lifetime
type Registry struct {
	routes     []Route
	routeIndex map[string]int
	junctions  []JunctionNode
	fleet      []Train
}

var validate = validator.New()

// NewRegistry validates a document and indexes it.
func NewRegistry(doc Document) (*Registry, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, err
	}
	r := &Registry{
		routes:     make([]Route, 0, len(doc.Routes)),
		routeIndex: make(map[string]int, len(doc.Routes)),
		junctions:  append([]JunctionNode(nil), doc.Junctions...),
		fleet:      append([]Train(nil), doc.Trains...),
	}
	for _, rt := range doc.Routes {
		if _, dup := r.routeIndex[rt.ID]; dup {
			return nil, fmt.Errorf("route %q: duplicate id", rt.ID)
		}
		rt.Stations = append([]Station(nil), rt.Stations...)
		r.routeIndex[rt.ID] = len(r.routes)
		r.routes = append(r.routes, rt)
	}
	seenJunction := map[string]bool{}
	for _, j := range r.junctions {
		if seenJunction[j.StationCode] {
			return nil, fmt.Errorf("junction %q: duplicate station code", j.StationCode)
		}
		seenJunction[j.StationCode] = true
		for _, id := range j.Routes {
			if _, ok := r.routeIndex[id]; !ok {
				return nil, fmt.Errorf("junction %q: unknown route %q", j.StationCode, id)
			}
		}
	}
	seenTrain := map[string]bool{}
	for _, t := range r.fleet {
		if seenTrain[t.ID] {
			return nil, fmt.Errorf("train %q: duplicate id", t.ID)
		}
		seenTrain[t.ID] = true
		rt, ok := r.Route(t.RouteID)
		if !ok {
			return nil, fmt.Errorf("train %q: unknown route %q", t.ID, t.RouteID)
		}
		if t.CurrentStationIndex >= len(rt.Stations) {
			return nil, fmt.Errorf("train %q: station index %d out of range for route %q (%d stations)",
				t.ID, t.CurrentStationIndex, rt.ID, len(rt.Stations))
		}
	}
	return r, nil
}

// Route looks up a route by id.
func (r *Registry) Route(id string) (*Route, bool) {
	if r == nil {
		return nil, false
	}
	i, ok := r.routeIndex[id]
	if !ok {
		return nil, false
	}
	return &r.routes[i], true
}

// Routes returns all routes in document order. Callers must not modify them.
func (r *Registry) Routes() []Route { return r.routes }

// Junctions returns the junction nodes in document order.
func (r *Registry) Junctions() []JunctionNode { return r.junctions }

// Fleet returns a copy of the initial train set.
func (r *Registry) Fleet() []Train {
	return append([]Train(nil), r.fleet...)
}

// RouteCoordinates returns the route polyline as [lat, lng] pairs; empty
// for an unknown route.
func (r *Registry) RouteCoordinates(routeID string) [][2]float64 {
	rt, ok := r.Route(routeID)
	if !ok {
		return [][2]float64{}
	}
	coords := make([][2]float64, len(rt.Stations))
	for i, s := range rt.Stations {
		coords[i] = [2]float64{s.Lat, s.Lng}
	}
	return coords
}
