package gtfsrt

import (
	"fmt"
	"math"
	"strings"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/tracking"
)

const gtfsRealtimeVersion = "2.0"

// FeedOptions controls ids written into a feed
type FeedOptions struct {
	// AgencyID is set on alert entity selectors when non-empty.
	AgencyID string
	// Language tags alert texts; defaults to "en".
	Language string
}

// BuildFeed encodes one committed tick as a full-dataset FeedMessage.
// Trains that cannot be placed on the map get a trip update but no vehicle
// position.
func BuildFeed(s *tracking.State, net tracking.Network, opts FeedOptions) *gtfsrtpb.FeedMessage {
	if opts.Language == "" {
		opts.Language = "en"
	}
	ts := uint64(s.At.Unix())
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(ts),
		},
	}

	congestion := trainCongestion(s)
	for _, t := range s.Trains {
		if vp := vehiclePosition(t, net, congestion[t.ID], ts); vp != nil {
			fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
				Id:      proto.String("vp-" + t.ID),
				Vehicle: vp,
			})
		}
	}
	for _, t := range s.Trains {
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id: proto.String("tu-" + t.ID),
			TripUpdate: &gtfsrtpb.TripUpdate{
				Trip:      tripDescriptor(t),
				Vehicle:   vehicleDescriptor(t),
				Timestamp: proto.Uint64(ts),
				Delay:     proto.Int32(int32(math.Round(t.Delay * 60))),
			},
		})
	}
	routesAt := map[string][]string{}
	for _, j := range net.Junctions() {
		routesAt[j.StationCode] = j.Routes
	}
	for _, a := range tracking.Alerts(s, net) {
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id:    proto.String("alert-" + a.StationCode),
			Alert: congestionAlert(a, routesAt[a.StationCode], opts),
		})
	}
	return fm
}

// Marshal encodes a tick as GTFS-RT protobuf bytes.
func Marshal(s *tracking.State, net tracking.Network, opts FeedOptions) ([]byte, error) {
	return proto.Marshal(BuildFeed(s, net, opts))
}

// trainCongestion returns, per train id, the worst level among the
// junctions the train is counted at.
func trainCongestion(s *tracking.State) map[string]tracking.Level {
	out := map[string]tracking.Level{}
	for _, snap := range s.Congestion {
		for _, t := range snap.Trains {
			if snap.Level.Rank() > out[t.ID].Rank() {
				out[t.ID] = snap.Level
			}
		}
	}
	return out
}

func congestionLevel(l tracking.Level) *gtfsrtpb.VehiclePosition_CongestionLevel {
	switch l {
	case tracking.LevelHigh:
		return gtfsrtpb.VehiclePosition_SEVERE_CONGESTION.Enum()
	case tracking.LevelMedium:
		return gtfsrtpb.VehiclePosition_CONGESTION.Enum()
	}
	return gtfsrtpb.VehiclePosition_RUNNING_SMOOTHLY.Enum()
}

func vehiclePosition(t network.Train, net tracking.Network, level tracking.Level, ts uint64) *gtfsrtpb.VehiclePosition {
	route, ok := net.Route(t.RouteID)
	if !ok {
		return nil
	}
	pos, ok := tracking.InterpolatePosition(t, route)
	if !ok {
		return nil
	}

	// A train is at its station until it starts moving, then heading for
	// the next one in its direction of travel.
	stopIdx := t.CurrentStationIndex
	status := gtfsrtpb.VehiclePosition_STOPPED_AT
	if t.ProgressToNext > 0 && t.Status != network.StatusStopped {
		status = gtfsrtpb.VehiclePosition_IN_TRANSIT_TO
		stopIdx = nextStation(stopIdx, t.Direction, len(route.Stations))
	}
	stop, _ := route.Station(stopIdx)

	return &gtfsrtpb.VehiclePosition{
		Trip:    tripDescriptor(t),
		Vehicle: vehicleDescriptor(t),
		Position: &gtfsrtpb.Position{
			Latitude:  proto.Float32(float32(pos.Lat)),
			Longitude: proto.Float32(float32(pos.Lng)),
			Speed:     proto.Float32(float32(t.Speed / 3.6)),
		},
		CurrentStopSequence: proto.Uint32(uint32(stopIdx + 1)),
		StopId:              proto.String(stop.Code),
		CurrentStatus:       status.Enum(),
		Timestamp:           proto.Uint64(ts),
		CongestionLevel:     congestionLevel(level),
	}
}

func nextStation(i int, dir network.Direction, n int) int {
	if dir == network.Forward {
		return (i + 1) % n
	}
	return (i - 1 + n) % n
}

func tripDescriptor(t network.Train) *gtfsrtpb.TripDescriptor {
	dir := uint32(0)
	if t.Direction == network.Reverse {
		dir = 1
	}
	return &gtfsrtpb.TripDescriptor{
		TripId:      proto.String(t.ID),
		RouteId:     proto.String(t.RouteID),
		DirectionId: proto.Uint32(dir),
	}
}

func vehicleDescriptor(t network.Train) *gtfsrtpb.VehicleDescriptor {
	return &gtfsrtpb.VehicleDescriptor{
		Id:    proto.String(t.ID),
		Label: proto.String(t.Name),
	}
}

func congestionAlert(a tracking.Alert, routes []string, opts FeedOptions) *gtfsrtpb.Alert {
	entities := []*gtfsrtpb.EntitySelector{{StopId: proto.String(a.StationCode)}}
	for _, rid := range routes {
		sel := &gtfsrtpb.EntitySelector{RouteId: proto.String(rid)}
		if opts.AgencyID != "" {
			sel.AgencyId = proto.String(opts.AgencyID)
		}
		entities = append(entities, sel)
	}
	names := make([]string, len(a.Trains))
	for i, t := range a.Trains {
		names[i] = t.Name
	}
	return &gtfsrtpb.Alert{
		InformedEntity:  entities,
		Cause:           gtfsrtpb.Alert_OTHER_CAUSE.Enum(),
		Effect:          gtfsrtpb.Alert_SIGNIFICANT_DELAYS.Enum(),
		HeaderText:      translated(fmt.Sprintf("%s: %s", a.StationName, a.Message), opts.Language),
		DescriptionText: translated(strings.Join(names, ", "), opts.Language),
	}
}

func translated(text, lang string) *gtfsrtpb.TranslatedString {
	return &gtfsrtpb.TranslatedString{
		Translation: []*gtfsrtpb.TranslatedString_Translation{{
			Text:     proto.String(text),
			Language: proto.String(lang),
		}},
	}
}
