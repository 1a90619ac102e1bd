package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/railnet-sim/network"
)

func TestRouteStatuses(t *testing.T) {
	reg := defaultRegistry(t)
	trains := append(reg.Fleet(), network.Train{ID: "ghost", RouteID: "nowhere", Status: network.StatusStopped})

	got := RouteStatuses(trains, reg.Routes())

	assert.Equal(t, []RouteStatus{
		{RouteID: "delhi_mumbai", Name: "Delhi → Mumbai Rajdhani", Color: "#2563eb", Total: 2, OnTime: 1, Delayed: 1},
		{RouteID: "mumbai_pune", Name: "Mumbai → Pune Express", Color: "#dc2626", Total: 1, Delayed: 1},
		{RouteID: "mumbai_local", Name: "Mumbai Local (Western)", Color: "#059669", Total: 2, OnTime: 1, Delayed: 1},
	}, got)
}

func TestAlerts(t *testing.T) {
	reg := lineRegistry(t)
	s := NewState([]network.Train{
		lineTrain("1", 0),
		lineTrain("2", 0.15),
		lineTrain("3", 0.2),
		lineTrain("4", 0.6),
		lineTrain("5", 0.7),
	}, reg, epoch)

	alerts := Alerts(&s, reg)

	require.Len(t, alerts, 2)
	high := alerts[0]
	assert.Equal(t, "Z1", high.StationCode)
	assert.Equal(t, LevelHigh, high.Level)
	assert.Equal(t, "High congestion - 3 trains", high.Message)
	assert.Equal(t, []AlertTrain{
		{ID: "1", Name: "Train 1", Distance: "at junction"},
		{ID: "2", Name: "Train 2", Distance: "approaching"},
		{ID: "3", Name: "Train 3", Distance: "approaching"},
	}, high.Trains)

	assert.Equal(t, "A1", alerts[1].StationCode)
	assert.Equal(t, LevelMedium, alerts[1].Level)
	assert.Equal(t, "Moderate congestion - 2 trains", alerts[1].Message)
}

func TestAlerts_NoneWhenQuiet(t *testing.T) {
	reg := defaultRegistry(t)
	s := NewState(reg.Fleet(), reg, epoch)
	assert.Empty(t, Alerts(&s, reg))
}
