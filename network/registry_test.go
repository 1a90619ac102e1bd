package network

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.Len(t, reg.Routes(), 3)
	assert.Len(t, reg.Junctions(), 2)
	assert.Len(t, reg.Fleet(), 5)

	rt, ok := reg.Route("mumbai_local")
	require.True(t, ok)
	assert.Equal(t, RouteSuburban, rt.Type)
	assert.Equal(t, "TNA", rt.Stations[len(rt.Stations)-1].Code)

	_, ok = reg.Route("nowhere")
	assert.False(t, ok)
}

func TestFleet_ReturnsCopy(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	fleet := reg.Fleet()
	fleet[0].CurrentStationIndex = 7
	assert.Equal(t, 0, reg.Fleet()[0].CurrentStationIndex)
}

func TestRouteCoordinates(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	got := reg.RouteCoordinates("mumbai_pune")
	want := [][2]float64{
		{19.0760, 72.8777},
		{19.2183, 72.9781},
		{19.0330, 73.0297},
		{18.9894, 73.1275},
		{18.9067, 73.3364},
		{18.6298, 73.7997},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RouteCoordinates mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, reg.RouteCoordinates("unknown"))
}

func TestRoute_Station(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	rt, _ := reg.Route("mumbai_pune")

	s, ok := rt.Station(5)
	assert.True(t, ok)
	assert.Equal(t, "PUNE", s.Code)

	_, ok = rt.Station(6)
	assert.False(t, ok)
	_, ok = rt.Station(-1)
	assert.False(t, ok)

	var nilRoute *Route
	_, ok = nilRoute.Station(0)
	assert.False(t, ok)
}

func TestGeoJSON(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	fc := reg.GeoJSON()
	require.Len(t, fc.Features, 5)

	first := fc.Features[0]
	assert.Equal(t, "delhi_mumbai", first.ID)
	line, ok := first.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 12)
	// GeoJSON is lng, lat
	assert.Equal(t, orb.Point{77.2090, 28.6139}, line[0])

	junction := fc.Features[3]
	assert.Equal(t, "junction", junction.Properties["kind"])
	assert.Equal(t, orb.Point{72.9781, 19.2183}, junction.Geometry)

	_, err = fc.MarshalJSON()
	assert.NoError(t, err)
}

const minimalDoc = `
routes:
  - id: a
    name: A line
    type: suburban
    stations:
      - {code: X, name: X, lat: 1, lng: 1}
      - {code: Y, name: Y, lat: 1.1, lng: 1.1}
junctions:
  - {stationCode: X, name: X junction, lat: 1, lng: 1, routes: [a], congestionRadius: 250}
trains:
  - {id: T1, routeId: a, currentStationIndex: 1, progressToNext: 0.5, status: stopped, direction: -1}
`

func TestLoadYAML_Minimal(t *testing.T) {
	reg, err := LoadYAML(strings.NewReader(minimalDoc))
	require.NoError(t, err)
	assert.Equal(t, Reverse, reg.Fleet()[0].Direction)
	assert.Equal(t, StatusStopped, reg.Fleet()[0].Status)
	assert.Equal(t, 250.0, reg.Junctions()[0].CongestionRadius)
}

func TestLoadYAML_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		errPart string
	}{
		{"single station route", [2]string{"      - {code: Y, name: Y, lat: 1.1, lng: 1.1}\n", ""}, "Stations"},
		{"bad route type", [2]string{"type: suburban", "type: metro"}, "Type"},
		{"zero radius", [2]string{"congestionRadius: 250", "congestionRadius: 0"}, "CongestionRadius"},
		{"bad direction", [2]string{"direction: -1", "direction: 2"}, "Direction"},
		{"progress at one", [2]string{"progressToNext: 0.5", "progressToNext: 1"}, "ProgressToNext"},
		{"unknown train route", [2]string{"routeId: a", "routeId: b"}, `unknown route "b"`},
		{"station index out of range", [2]string{"currentStationIndex: 1", "currentStationIndex: 2"}, "out of range"},
		{"unknown junction route", [2]string{"routes: [a]", "routes: [a, z]"}, `unknown route "z"`},
		{"unknown field", [2]string{"status: stopped", "status: stopped, platform: 3"}, "platform"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(minimalDoc, tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, minimalDoc, doc, "replacement did not apply")
			_, err := LoadYAML(strings.NewReader(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestNewRegistry_Duplicates(t *testing.T) {
	stations := []Station{{Code: "A", Name: "A", Lat: 1, Lng: 1}, {Code: "B", Name: "B", Lat: 2, Lng: 2}}
	route := Route{ID: "r", Name: "R", Type: RouteIntercity, Stations: stations}
	train := Train{ID: "t", RouteID: "r", Status: StatusOnTime, Direction: Forward}

	_, err := NewRegistry(Document{Routes: []Route{route, route}})
	assert.ErrorContains(t, err, "duplicate id")

	_, err = NewRegistry(Document{Routes: []Route{route}, Trains: []Train{train, train}})
	assert.ErrorContains(t, err, "duplicate id")

	j := JunctionNode{StationCode: "A", Name: "A", Lat: 1, Lng: 1, CongestionRadius: 10}
	_, err = NewRegistry(Document{Routes: []Route{route}, Junctions: []JunctionNode{j, j}})
	assert.ErrorContains(t, err, "duplicate station code")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(t.TempDir() + "/network.yml")
	assert.Error(t, err)
}
