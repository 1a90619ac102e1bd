package gtfs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

// DefaultJunctionRadius is the congestion radius, in meters, of derived junctions.
const DefaultJunctionRadius = 500.0

const gtfsRouteTypeRail = 2

// ImportOptions controls how a feed is turned into a network document
type ImportOptions struct {
	JunctionRadius float64
	// SeedTrains places one on-time train at the first station of every route.
	SeedTrains bool
}

// Open indexes a local zip or an http(s) URL.
func Open(ctx context.Context, source string) (*Index, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return Fetch(ctx, source)
	}
	return LoadFile(source)
}

// Import loads a network from a local zip or an http(s) URL.
func Import(ctx context.Context, source string, opts ImportOptions) (*network.Registry, error) {
	ix, err := Open(ctx, source)
	if err != nil {
		return nil, err
	}
	return ix.Registry(opts)
}

// ImportFile loads a network from a local GTFS zip.
func ImportFile(filename string, opts ImportOptions) (*network.Registry, error) {
	ix, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	return ix.Registry(opts)
}

// ImportNetwork loads a network from GTFS zip bytes.
func ImportNetwork(data []byte, opts ImportOptions) (*network.Registry, error) {
	ix, err := NewIndexFromBytes(data)
	if err != nil {
		return nil, err
	}
	return ix.Registry(opts)
}

// Registry builds and validates the network described by the feed.
func (ix *Index) Registry(opts ImportOptions) (*network.Registry, error) {
	doc, err := ix.Document(opts)
	if err != nil {
		return nil, err
	}
	reg, err := network.NewRegistry(doc)
	if err != nil {
		return nil, fmt.Errorf("gtfs network: %w", err)
	}
	return reg, nil
}

// Document maps the feed onto a network document. Routes without a trip of
// at least two placeable stops are left out.
func (ix *Index) Document(opts ImportOptions) (network.Document, error) {
	radius := opts.JunctionRadius
	if radius <= 0 {
		radius = DefaultJunctionRadius
	}

	var doc network.Document
	servedBy := map[string][]string{} // stop_id -> route ids
	for _, routeID := range ix.routeOrder {
		route, ok := ix.buildRoute(routeID)
		if !ok {
			continue
		}
		doc.Routes = append(doc.Routes, route)
		seen := map[string]bool{}
		for _, st := range route.Stations {
			if !seen[st.Code] {
				seen[st.Code] = true
				servedBy[st.Code] = append(servedBy[st.Code], routeID)
			}
		}
		if opts.SeedTrains {
			doc.Trains = append(doc.Trains, seedTrain(route, ix.routes[routeID]))
		}
	}
	if len(doc.Routes) == 0 {
		return doc, errors.New("gtfs feed has no route with two or more stops")
	}

	codes := make([]string, 0, len(servedBy))
	for code, routes := range servedBy {
		if len(routes) >= 2 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		stop := ix.stops[code]
		doc.Junctions = append(doc.Junctions, network.JunctionNode{
			StationCode:      code,
			Name:             stop.name,
			Lat:              stop.lat,
			Lng:              stop.lon,
			Routes:           servedBy[code],
			CongestionRadius: radius,
		})
	}

	log.WithFields(log.Fields{
		"routes":    len(doc.Routes),
		"junctions": len(doc.Junctions),
		"trains":    len(doc.Trains),
	}).Debug("gtfs network built")
	return doc, nil
}

func (ix *Index) buildRoute(routeID string) (network.Route, bool) {
	fr := ix.routes[routeID]
	trip, ok := ix.LongestTrip(routeID)
	if !ok {
		log.WithField("route", routeID).Warn("gtfs route has no trips, skipped")
		return network.Route{}, false
	}

	route := network.Route{
		ID:    routeID,
		Name:  routeName(routeID, fr),
		Color: routeColor(fr.color),
		Type:  network.RouteSuburban,
	}
	if fr.routeType == gtfsRouteTypeRail {
		route.Type = network.RouteIntercity
	}
	for _, stopID := range ix.tripStopSeq[trip] {
		stop, ok := ix.stops[stopID]
		if !ok {
			log.WithFields(log.Fields{"route": routeID, "stop": stopID}).Warn("gtfs stop has no coordinates, skipped")
			continue
		}
		if n := len(route.Stations); n > 0 && route.Stations[n-1].Code == stopID {
			continue
		}
		name := stop.name
		if name == "" {
			name = stopID
		}
		route.Stations = append(route.Stations, network.Station{Code: stopID, Name: name, Lat: stop.lat, Lng: stop.lon})
	}
	if len(route.Stations) < 2 {
		log.WithField("route", routeID).Warn("gtfs route has fewer than two stations, skipped")
		return network.Route{}, false
	}
	return route, true
}

func routeName(id string, fr feedRoute) string {
	switch {
	case fr.longName != "":
		return fr.longName
	case fr.shortName != "":
		return fr.shortName
	}
	return id
}

func routeColor(c string) string {
	if c == "" || strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}

func seedTrain(route network.Route, fr feedRoute) network.Train {
	name := fr.shortName
	if name == "" {
		name = route.Name
	}
	speed := 60.0
	if route.Type == network.RouteIntercity {
		speed = 90
	}
	return network.Train{
		ID:        route.ID + "_1",
		Name:      name,
		RouteID:   route.ID,
		Status:    network.StatusOnTime,
		Speed:     speed,
		Direction: network.Forward,
	}
}
