package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

func TestInterpolatePosition(t *testing.T) {
	route := &network.Route{ID: "r", Stations: []network.Station{
		{Code: "A", Lat: 10, Lng: 20},
		{Code: "B", Lat: 12, Lng: 24},
		{Code: "C", Lat: 14, Lng: 20},
	}}
	tests := []struct {
		name     string
		index    int
		progress float64
		want     Position
	}{
		{"at station", 0, 0, Position{Lat: 10, Lng: 20}},
		{"midway", 0, 0.5, Position{Lat: 11, Lng: 22}},
		{"quarter", 1, 0.25, Position{Lat: 12.5, Lng: 23}},
		{"last wraps to first", 2, 0.5, Position{Lat: 12, Lng: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InterpolatePosition(network.Train{CurrentStationIndex: tt.index, ProgressToNext: tt.progress}, route)
			assert.True(t, ok)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
			assert.InDelta(t, tt.want.Lng, got.Lng, 1e-9)
		})
	}
}

func TestInterpolatePosition_ReverseUsesFollowingStation(t *testing.T) {
	route := &network.Route{Stations: []network.Station{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}}
	got, ok := InterpolatePosition(network.Train{CurrentStationIndex: 0, ProgressToNext: 0.5, Direction: network.Reverse}, route)
	assert.True(t, ok)
	assert.Equal(t, Position{Lat: 0.5, Lng: 0.5}, got)
}

func TestInterpolatePosition_Unrenderable(t *testing.T) {
	route := &network.Route{Stations: []network.Station{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}}

	_, ok := InterpolatePosition(network.Train{CurrentStationIndex: 5}, route)
	assert.False(t, ok)

	_, ok = InterpolatePosition(network.Train{}, nil)
	assert.False(t, ok)
}

func TestLocate(t *testing.T) {
	reg := defaultRegistry(t)

	pos, ok := Locate(network.Train{RouteID: "mumbai_pune", CurrentStationIndex: 1}, reg)
	assert.True(t, ok)
	assert.Equal(t, Position{Lat: 19.2183, Lng: 72.9781}, pos)

	_, ok = Locate(network.Train{RouteID: "nowhere"}, reg)
	assert.False(t, ok)
}

func TestSegmentPosition(t *testing.T) {
	reg := lineRegistry(t)

	got, ok := SegmentPosition(lineTrain("1", 0.5), reg)
	assert.True(t, ok)
	assert.InDelta(t, 19.2233, got.Lat, 1e-9)

	last := lineTrain("2", 0)
	last.CurrentStationIndex = 1
	_, ok = SegmentPosition(last, reg)
	assert.False(t, ok, "last station has no following station")
	_, ok = Locate(last, reg)
	assert.True(t, ok, "rendering still wraps")

	ghost := lineTrain("3", 0)
	ghost.RouteID = "nowhere"
	_, ok = SegmentPosition(ghost, reg)
	assert.False(t, ok)
}
