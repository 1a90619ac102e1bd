package tracking

import (
	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/utils"
)

// Level is a three-tier congestion classification
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Rank orders levels by severity. Unknown levels rank below low.
func (l Level) Rank() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

// CongestionSnapshot is the congestion at one junction for one tick.
type CongestionSnapshot struct {
	Level       Level           `json:"level"`
	TrainCount  int             `json:"trainCount"`
	Trains      []network.Train `json:"trains"`
	StationName string          `json:"stationName"`
}

// ClassifyLevel maps a nearby-train count to a congestion level.
func ClassifyLevel(count int) Level {
	switch {
	case count >= 3:
		return LevelHigh
	case count == 2:
		return LevelMedium
	}
	return LevelLow
}

// ComputeCongestion returns a snapshot per junction station code. Trains
// whose route or station pair cannot be resolved are skipped, which
// includes every train standing at the last station of its route.
func ComputeCongestion(trains []network.Train, junctions []network.JunctionNode, routes RouteLookup) map[string]CongestionSnapshot {
	positions := make([]*Position, len(trains))
	for i, t := range trains {
		if pos, ok := SegmentPosition(t, routes); ok {
			positions[i] = &pos
		}
	}

	out := make(map[string]CongestionSnapshot, len(junctions))
	for _, node := range junctions {
		nearby := []network.Train{}
		for i, t := range trains {
			pos := positions[i]
			if pos == nil {
				continue
			}
			d := utils.HaversineMeters(pos.Lat, pos.Lng, node.Lat, node.Lng)
			if d <= node.CongestionRadius {
				nearby = append(nearby, t)
			}
		}
		out[node.StationCode] = CongestionSnapshot{
			Level:       ClassifyLevel(len(nearby)),
			TrainCount:  len(nearby),
			Trains:      nearby,
			StationName: node.Name,
		}
	}
	return out
}
