package tracking

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/utils"
)

// RouteStatus counts trains on a route by status
type RouteStatus struct {
	RouteID string `json:"routeId"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Total   int    `json:"total"`
	OnTime  int    `json:"onTime"`
	Delayed int    `json:"delayed"`
	Stopped int    `json:"stopped"`
}

// RouteStatuses summarises every route in registry order.
func RouteStatuses(trains []network.Train, routes []network.Route) []RouteStatus {
	out := make([]RouteStatus, len(routes))
	idx := make(map[string]int, len(routes))
	for i, rt := range routes {
		out[i] = RouteStatus{RouteID: rt.ID, Name: rt.Name, Color: rt.Color}
		idx[rt.ID] = i
	}
	for _, t := range trains {
		i, ok := idx[t.RouteID]
		if !ok {
			continue
		}
		out[i].Total++
		switch t.Status {
		case network.StatusOnTime:
			out[i].OnTime++
		case network.StatusDelayed:
			out[i].Delayed++
		case network.StatusStopped:
			out[i].Stopped++
		}
	}
	return out
}

// AlertTrain is a train contributing to a junction alert
type AlertTrain struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// Alert flags a junction whose congestion is above low.
type Alert struct {
	StationCode string       `json:"stationCode"`
	StationName string       `json:"stationName"`
	Level       Level        `json:"level"`
	TrainCount  int          `json:"trainCount"`
	Message     string       `json:"message"`
	Trains      []AlertTrain `json:"trains"`
}

// Alerts lists medium and high congestion, high first, then by station code.
func Alerts(s *State, net Network) []Alert {
	junctions := map[string]network.JunctionNode{}
	for _, j := range net.Junctions() {
		junctions[j.StationCode] = j
	}
	out := []Alert{}
	for code, c := range s.Congestion {
		if c.Level == LevelLow {
			continue
		}
		a := Alert{
			StationCode: code,
			StationName: c.StationName,
			Level:       c.Level,
			TrainCount:  c.TrainCount,
			Message:     alertMessage(c),
			Trains:      make([]AlertTrain, 0, len(c.Trains)),
		}
		node := junctions[code]
		for _, t := range c.Trains {
			at := AlertTrain{ID: t.ID, Name: t.Name}
			if pos, ok := SegmentPosition(t, net); ok {
				at.Distance = utils.PresentableDistance(utils.HaversineMeters(pos.Lat, pos.Lng, node.Lat, node.Lng))
			}
			a.Trains = append(a.Trains, at)
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level.Rank() > out[j].Level.Rank()
		}
		return out[i].StationCode < out[j].StationCode
	})
	return out
}

func alertMessage(c CongestionSnapshot) string {
	label := "Moderate"
	if c.Level == LevelHigh {
		label = "High"
	}
	return fmt.Sprintf("%s congestion - %d trains", label, c.TrainCount)
}
