package formatter

import (
	"sort"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/tracking"
	"github.com/theoremus-urban-solutions/railnet-sim/utils"
)

// Delivery is the header every snapshot response carries
type Delivery struct {
	ResponseTimestamp string `json:"responseTimestamp"`
	ValidUntil        string `json:"validUntil,omitempty"`
	ProducerRef       string `json:"producerRef"`
	Tick              uint64 `json:"tick"`
}

// JunctionCongestion is one junction's snapshot, keyed for list output
type JunctionCongestion struct {
	StationCode string `json:"stationCode"`
	tracking.CongestionSnapshot
}

// CongestionDelivery lists junction congestion in station code order
type CongestionDelivery struct {
	Delivery
	Junctions []JunctionCongestion `json:"junctions"`
}

// TrainsDelivery lists trains with their rendered positions
type TrainsDelivery struct {
	Delivery
	Trains []tracking.TrainView `json:"trains"`
}

// BuildDelivery creates the header for a tick. ValidUntil is one tick
// interval after the snapshot was taken.
func BuildDelivery(s *tracking.State, interval time.Duration, producer string) Delivery {
	if producer == "" {
		producer = "UNKNOWN"
	}
	return Delivery{
		ResponseTimestamp: utils.Iso8601(s.At),
		ValidUntil:        utils.ValidUntil(s.At, interval),
		ProducerRef:       producer,
		Tick:              s.Tick,
	}
}

// WrapCongestion flattens the congestion map. With a non-empty route set
// only junctions served by one of those routes are kept.
func WrapCongestion(d Delivery, s *tracking.State, junctions []network.JunctionNode, routes map[string]bool) CongestionDelivery {
	out := CongestionDelivery{Delivery: d, Junctions: []JunctionCongestion{}}
	visible := map[string]bool{}
	for _, j := range junctions {
		if len(routes) == 0 || servesAny(j, routes) {
			visible[j.StationCode] = true
		}
	}
	for code, snap := range s.Congestion {
		if !visible[code] {
			continue
		}
		out.Junctions = append(out.Junctions, JunctionCongestion{StationCode: code, CongestionSnapshot: snap})
	}
	sort.Slice(out.Junctions, func(i, j int) bool { return out.Junctions[i].StationCode < out.Junctions[j].StationCode })
	return out
}

// WrapTrains attaches positions to the trains on the given routes.
func WrapTrains(d Delivery, s *tracking.State, lookup tracking.RouteLookup, routes map[string]bool) TrainsDelivery {
	return TrainsDelivery{Delivery: d, Trains: tracking.Views(s.TrainsOnRoutes(routes), lookup)}
}

// ParseRouteFilter turns "a, b" into a set; empty input means no filter.
func ParseRouteFilter(raw string) map[string]bool {
	set := map[string]bool{}
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}

func servesAny(j network.JunctionNode, routes map[string]bool) bool {
	for _, id := range j.Routes {
		if routes[id] {
			return true
		}
	}
	return false
}
