package gtfsrt

import (
	"fmt"
	"sort"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// FeedIndex stores one decoded GTFS-RT feed for lookups by trip
type FeedIndex struct {
	headerTimestamp int64

	vehicles  map[string]Vehicle // trip_id -> position
	tripDelay map[string]int32   // trip_id -> delay seconds
	tripRoute map[string]string  // trip_id -> route_id

	alerts       []RTAlert
	alertsByStop map[string][]int // stop_id -> indices in alerts
}

// ParseFeed decodes protobuf bytes and indexes vehicles, trip delays and
// alerts. Entities without a trip id are ignored.
func ParseFeed(b []byte) (*FeedIndex, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode gtfs-rt feed: %w", err)
	}
	return IndexFeed(&fm), nil
}

// IndexFeed indexes an already decoded feed.
func IndexFeed(fm *gtfsrtpb.FeedMessage) *FeedIndex {
	w := &FeedIndex{
		vehicles:     map[string]Vehicle{},
		tripDelay:    map[string]int32{},
		tripRoute:    map[string]string{},
		alertsByStop: map[string][]int{},
	}
	if fm.GetHeader() != nil {
		w.headerTimestamp = int64(fm.GetHeader().GetTimestamp())
	}
	for _, e := range fm.GetEntity() {
		if vp := e.GetVehicle(); vp != nil {
			w.addVehicle(vp)
		}
		if tu := e.GetTripUpdate(); tu != nil && tu.GetTrip().GetTripId() != "" {
			tripID := tu.GetTrip().GetTripId()
			if tu.Delay != nil {
				w.tripDelay[tripID] = tu.GetDelay()
			}
			if rid := tu.GetTrip().GetRouteId(); rid != "" {
				w.tripRoute[tripID] = rid
			}
		}
		if a := e.GetAlert(); a != nil {
			w.addAlert(e.GetId(), a)
		}
	}
	return w
}

func (w *FeedIndex) addVehicle(vp *gtfsrtpb.VehiclePosition) {
	tripID := vp.GetTrip().GetTripId()
	if tripID == "" {
		return
	}
	v := Vehicle{
		TripID:       tripID,
		RouteID:      vp.GetTrip().GetRouteId(),
		VehicleID:    vp.GetVehicle().GetId(),
		Label:        vp.GetVehicle().GetLabel(),
		StopID:       vp.GetStopId(),
		StopSequence: vp.GetCurrentStopSequence(),
		Timestamp:    int64(vp.GetTimestamp()),
	}
	if pos := vp.GetPosition(); pos != nil {
		v.Lat = float64(pos.GetLatitude())
		v.Lon = float64(pos.GetLongitude())
		v.SpeedMS = float64(pos.GetSpeed())
	}
	if vp.CurrentStatus != nil {
		v.Status = vp.GetCurrentStatus().String()
	}
	if vp.CongestionLevel != nil {
		v.Congestion = vp.GetCongestionLevel().String()
	}
	w.vehicles[tripID] = v
	if v.RouteID != "" {
		w.tripRoute[tripID] = v.RouteID
	}
}

func (w *FeedIndex) addAlert(id string, a *gtfsrtpb.Alert) {
	ra := RTAlert{
		ID:          id,
		Header:      translatedStringToText(a.GetHeaderText()),
		Description: translatedStringToText(a.GetDescriptionText()),
	}
	if a.Cause != nil {
		ra.Cause = a.GetCause().String()
	}
	if a.Effect != nil {
		ra.Effect = a.GetEffect().String()
	}
	for _, ie := range a.GetInformedEntity() {
		if rid := ie.GetRouteId(); rid != "" {
			ra.RouteIDs = append(ra.RouteIDs, rid)
		}
		if tid := ie.GetTrip().GetTripId(); tid != "" {
			ra.TripIDs = append(ra.TripIDs, tid)
		}
		if sid := ie.GetStopId(); sid != "" {
			ra.StopIDs = append(ra.StopIDs, sid)
		}
	}
	idx := len(w.alerts)
	w.alerts = append(w.alerts, ra)
	for _, sid := range ra.StopIDs {
		w.alertsByStop[sid] = append(w.alertsByStop[sid], idx)
	}
}

// translatedStringToText picks the untagged translation, else the first one.
func translatedStringToText(ts *gtfsrtpb.TranslatedString) string {
	var first string
	for _, tr := range ts.GetTranslation() {
		if tr.GetLanguage() == "" {
			return tr.GetText()
		}
		if first == "" {
			first = tr.GetText()
		}
	}
	return first
}

// Trips returns every trip id with a vehicle position, sorted.
func (w *FeedIndex) Trips() []string {
	ids := make([]string, 0, len(w.vehicles))
	for id := range w.vehicles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *FeedIndex) Vehicle(tripID string) (Vehicle, bool) {
	v, ok := w.vehicles[tripID]
	return v, ok
}

// DelayForTrip returns the trip update delay in seconds.
func (w *FeedIndex) DelayForTrip(tripID string) (int32, bool) {
	d, ok := w.tripDelay[tripID]
	return d, ok
}

func (w *FeedIndex) RouteIDForTrip(tripID string) string { return w.tripRoute[tripID] }

func (w *FeedIndex) Timestamp() int64 { return w.headerTimestamp }

func (w *FeedIndex) Alerts() []RTAlert { return w.alerts }

func (w *FeedIndex) AlertsForStop(stopID string) []RTAlert {
	out := make([]RTAlert, 0, len(w.alertsByStop[stopID]))
	for _, i := range w.alertsByStop[stopID] {
		out = append(out, w.alerts[i])
	}
	return out
}
