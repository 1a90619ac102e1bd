package tracking

import (
	"math"
	"time"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/utils"
)

const (
	minutesPerStation     = 30
	minutesPerSegmentLeft = 15
)

// StopStatus is where a station sits relative to a train's journey
type StopStatus string

const (
	StopPassed   StopStatus = "passed"
	StopCurrent  StopStatus = "current"
	StopNext     StopStatus = "next"
	StopUpcoming StopStatus = "upcoming"
)

// JourneyStop is a station annotated for a train's journey
type JourneyStop struct {
	network.Station
	Status        StopStatus `json:"status"`
	EstimatedTime string     `json:"estimatedTime"`
	// Progress is the percentage of the current segment covered; set on the current stop only.
	Progress      *int `json:"progress,omitempty"`
	DelayAdjusted bool `json:"delayAdjusted,omitempty"`
}

// Journey is the "where is my train" projection of one train.
type Journey struct {
	Train              network.Train   `json:"train"`
	RouteID            string          `json:"routeId"`
	RouteName          string          `json:"routeName"`
	Start              network.Station `json:"startStation"`
	End                network.Station `json:"endStation"`
	Current            JourneyStop     `json:"currentStation"`
	Next               *JourneyStop    `json:"nextStation,omitempty"`
	Passed             []JourneyStop   `json:"passedStations"`
	Upcoming           []JourneyStop   `json:"upcomingStations"`
	TotalStations      int             `json:"totalStations"`
	CompletedStations  int             `json:"completedStations"`
	ProgressPercentage int             `json:"progressPercentage"`
	IsMoving           bool            `json:"isMoving"`
	TimeToNextMinutes  int             `json:"timeToNextMinutes"`
	CurrentSpeed       float64         `json:"currentSpeed"`
}

// JourneyDetails lays out a train's trip along its route. Estimated times
// count 30 minutes per station from serviceStart, and upcoming stations are
// shifted by the train's delay. The bool is false for an unknown route or an
// out-of-range station index.
func JourneyDetails(train network.Train, route *network.Route, serviceStart time.Time) (Journey, bool) {
	if _, ok := route.Station(train.CurrentStationIndex); !ok {
		return Journey{}, false
	}
	stations := route.Stations
	n := len(stations)
	i := train.CurrentStationIndex
	p := train.ProgressToNext
	delay := time.Duration(train.Delay * float64(time.Minute))

	// order lists station indexes in the direction of travel
	order := make([]int, n)
	for k := range order {
		if train.Direction == network.Forward {
			order[k] = k
		} else {
			order[k] = n - 1 - k
		}
	}
	at := func(k int) time.Time {
		return serviceStart.Add(time.Duration(k*minutesPerStation) * time.Minute)
	}

	j := Journey{
		Train:         train,
		RouteID:       route.ID,
		RouteName:     route.Name,
		Start:         stations[order[0]],
		End:           stations[order[n-1]],
		Passed:        []JourneyStop{},
		Upcoming:      []JourneyStop{},
		TotalStations: n,
		CurrentSpeed:  train.Speed,
		IsMoving:      p > 0 && p < 1,
	}

	segment := p
	if train.Direction != network.Forward {
		segment = 1 - p
	}
	pos := 0
	for k, idx := range order {
		if idx == i {
			pos = k
			break
		}
	}
	for k, idx := range order {
		switch {
		case k < pos:
			t := utils.ClockTime(at(k))
			j.Passed = append(j.Passed, JourneyStop{Station: stations[idx], Status: StopPassed, EstimatedTime: t})
		case k == pos:
			pct := int(math.Round(segment * 100))
			j.Current = JourneyStop{Station: stations[idx], Status: StopCurrent, EstimatedTime: utils.ClockTime(at(k)), Progress: &pct}
		default:
			if k == pos+1 {
				j.Next = &JourneyStop{Station: stations[idx], Status: StopNext, EstimatedTime: utils.ClockTime(at(k))}
			}
			j.Upcoming = append(j.Upcoming, JourneyStop{
				Station:       stations[idx],
				Status:        StopUpcoming,
				EstimatedTime: utils.ClockTime(at(k).Add(delay)),
				DelayAdjusted: train.Delay > 0,
			})
		}
	}

	j.CompletedStations = len(j.Passed) + 1
	if n > 1 {
		j.ProgressPercentage = int(math.Round((float64(len(j.Passed)) + p) / float64(n-1) * 100))
	}
	if j.Next != nil {
		j.TimeToNextMinutes = int(math.Round((1 - p) * minutesPerSegmentLeft))
	}
	return j, true
}
