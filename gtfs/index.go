package gtfs

// Index stores the parts of a GTFS static feed that describe routes and
// their stop sequences.
type Index struct {
	routeOrder  []string             // route ids in routes.txt order
	routes      map[string]feedRoute // route_id -> route
	stops       map[string]feedStop  // stop_id -> stop
	tripOrder   []string             // trip ids in trips.txt order
	tripToRoute map[string]string    // trip_id -> route_id
	tripStopSeq map[string][]string  // trip_id -> ordered stop_ids
}

type feedRoute struct {
	shortName string
	longName  string
	color     string
	routeType int
}

type feedStop struct {
	name     string
	lat, lon float64
}

func newIndex() *Index {
	return &Index{
		routes:      map[string]feedRoute{},
		stops:       map[string]feedStop{},
		tripToRoute: map[string]string{},
		tripStopSeq: map[string][]string{},
	}
}

// RouteIDs returns route ids in feed order
func (ix *Index) RouteIDs() []string { return append([]string(nil), ix.routeOrder...) }

func (ix *Index) RouteType(routeID string) int { return ix.routes[routeID].routeType }

func (ix *Index) StopName(stopID string) string { return ix.stops[stopID].name }

func (ix *Index) RouteIDForTrip(tripID string) string { return ix.tripToRoute[tripID] }

// TripStopSequence returns the stop ids of a trip ordered by stop_sequence.
func (ix *Index) TripStopSequence(tripID string) []string { return ix.tripStopSeq[tripID] }

// LongestTrip returns the trip of a route with the most stops. Ties go to
// the trip listed first in trips.txt.
func (ix *Index) LongestTrip(routeID string) (string, bool) {
	best, bestLen := "", 0
	for _, trip := range ix.tripOrder {
		if ix.tripToRoute[trip] != routeID {
			continue
		}
		if n := len(ix.tripStopSeq[trip]); n > bestLen {
			best, bestLen = trip, n
		}
	}
	return best, bestLen > 0
}
