package formatter

import (
	"encoding/json"
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
	"github.com/theoremus-urban-solutions/railnet-sim/tracking"
)

var at = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func defaultState(t *testing.T) (*tracking.State, *network.Registry) {
	t.Helper()
	reg, err := network.Default()
	require.NoError(t, err)
	s := tracking.NewState(reg.Fleet(), reg, at)
	return &s, reg
}

func TestBuildDelivery(t *testing.T) {
	s, _ := defaultState(t)
	d := BuildDelivery(s, time.Second, "")

	assert.Equal(t, Delivery{
		ResponseTimestamp: "2024-03-01T08:00:00Z",
		ValidUntil:        "2024-03-01T08:00:01Z",
		ProducerRef:       "UNKNOWN",
		Tick:              0,
	}, d)
}

func TestParseRouteFilter(t *testing.T) {
	assert.Empty(t, ParseRouteFilter(""))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, ParseRouteFilter(" a, ,b "))
}

func TestWrapCongestion(t *testing.T) {
	s, reg := defaultState(t)
	d := BuildDelivery(s, time.Second, "IR")

	all := WrapCongestion(d, s, reg.Junctions(), nil)
	require.Len(t, all.Junctions, 2)
	assert.Equal(t, "MMCT", all.Junctions[0].StationCode)
	assert.Equal(t, "TNA", all.Junctions[1].StationCode)

	none := WrapCongestion(d, s, reg.Junctions(), map[string]bool{"elsewhere": true})
	assert.Empty(t, none.Junctions)
	assert.NotNil(t, none.Junctions)
}

func TestWrapTrains(t *testing.T) {
	s, reg := defaultState(t)
	d := BuildDelivery(s, time.Second, "IR")

	got := WrapTrains(d, s, reg, ParseRouteFilter("mumbai_pune"))
	require.Len(t, got.Trains, 1)
	assert.Equal(t, "TRAIN_12124", got.Trains[0].ID)
	require.NotNil(t, got.Trains[0].Position)
}

func TestBuildJSON_FlattensEnvelope(t *testing.T) {
	s, reg := defaultState(t)
	body, err := NewResponseBuilder().BuildJSON(WrapCongestion(BuildDelivery(s, time.Second, "IR"), s, reg.Junctions(), nil))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "IR", got["producerRef"])
	junctions := got["junctions"].([]any)
	first := junctions[0].(map[string]any)
	assert.Equal(t, "MMCT", first["stationCode"])
	assert.Equal(t, "low", first["level"])
	assert.Equal(t, "Mumbai Central Junction", first["stationName"])
}

func TestBuildCongestionXML(t *testing.T) {
	d := CongestionDelivery{
		Delivery: Delivery{ResponseTimestamp: "2024-03-01T08:00:00Z", ProducerRef: "IR", Tick: 7},
		Junctions: []JunctionCongestion{{
			StationCode: "TNA",
			CongestionSnapshot: tracking.CongestionSnapshot{
				Level:       tracking.LevelMedium,
				TrainCount:  2,
				StationName: "Thane <Jn> & Co",
				Trains: []network.Train{
					{ID: "A", Name: "Alpha", RouteID: "r", Status: network.StatusOnTime, Direction: network.Forward},
					{ID: "B", Name: "Bravo", RouteID: "r", Status: network.StatusDelayed, Direction: network.Reverse, Delay: 3},
				},
			},
		}},
	}
	body := NewResponseBuilder().BuildCongestionXML(d)

	assert.Contains(t, string(body), "<StationName>Thane &lt;Jn&gt; &amp; Co</StationName>")
	assert.Contains(t, string(body), "<Tick>7</Tick>")

	var parsed struct {
		Tick     uint64 `xml:"Tick"`
		Junction []struct {
			StationCode string `xml:"StationCode"`
			Level       string `xml:"Level"`
			TrainCount  int    `xml:"TrainCount"`
			Trains      []struct {
				ID        string `xml:"id,attr"`
				Direction int    `xml:"Direction"`
			} `xml:"Trains>Train"`
		} `xml:"Junction"`
	}
	require.NoError(t, xml.Unmarshal(body, &parsed))
	require.Len(t, parsed.Junction, 1)
	assert.Equal(t, "medium", parsed.Junction[0].Level)
	assert.Equal(t, 2, parsed.Junction[0].TrainCount)
	require.Len(t, parsed.Junction[0].Trains, 2)
	assert.Equal(t, -1, parsed.Junction[0].Trains[1].Direction)
}

func TestBuildTrainsXML(t *testing.T) {
	s, reg := defaultState(t)
	d := WrapTrains(BuildDelivery(s, time.Second, "IR"), s, reg, nil)
	d.Trains = append(d.Trains, tracking.TrainView{Train: network.Train{ID: "ghost"}})

	var parsed struct {
		Train []struct {
			ID       string `xml:"id,attr"`
			Position *struct {
				Latitude float64 `xml:"Latitude"`
			} `xml:"Position"`
		} `xml:"Train"`
	}
	require.NoError(t, xml.Unmarshal(NewResponseBuilder().BuildTrainsXML(d), &parsed))
	require.Len(t, parsed.Train, 6)
	require.NotNil(t, parsed.Train[0].Position)
	assert.Equal(t, 28.6139, parsed.Train[0].Position.Latitude)
	assert.Nil(t, parsed.Train[5].Position)
}
