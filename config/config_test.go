package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 16181, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Second, cfg.Simulation.TickInterval())
	assert.Equal(t, 5*time.Second, cfg.Simulation.CacheTTL())
	assert.Equal(t, 500.0, cfg.Network.JunctionRadius)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 8080
  allowedOrigins: ["http://localhost:3000"]
simulation:
  tickIntervalMS: 250
  startPaused: true
  agencyID: IR
  serviceStart: "06:30"
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.TickInterval())
	assert.True(t, cfg.Simulation.StartPaused)
	assert.Equal(t, "IR", cfg.Simulation.AgencyID)
	assert.Equal(t, "json", cfg.Logging.Format)

	day := time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 6, 30, 0, 0, time.UTC), cfg.Simulation.ServiceStartOn(day))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative port", "server: {port: -1}"},
		{"unknown field", "server: {prot: 80}"},
		{"bad log level", "logging: {level: loud}"},
		{"bad service start", "simulation: {serviceStart: '25:99'}"},
		{"missing network file", "network: {path: /does/not/exist.yml}"},
		{"path and gtfs", "network: {path: config_test.go, gtfsPath: feed.zip}"},
		{"not yaml", "server: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_SearchPaths(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.yml")
	require.NoError(t, os.WriteFile(second, []byte("server: {port: 9000}\n"), 0o644))

	cfg, err := Load(filepath.Join(dir, "first.yml"), second)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)

	_, err = Load(filepath.Join(dir, "nope.yml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSelectNetwork(t *testing.T) {
	dir := t.TempDir()
	netFile := filepath.Join(dir, "net.yml")
	require.NoError(t, os.WriteFile(netFile, []byte("routes: []\n"), 0o644))

	cfg, err := Parse([]byte(`
network: {junctionRadius: 300}
networks:
  - {name: mumbai, path: ` + netFile + `}
  - {name: pune, gtfsPath: "https://example.org/gtfs.zip", junctionRadius: 800}
`))
	require.NoError(t, err)

	assert.Equal(t, "pune", cfg.SelectNetwork("pune").Name)
	assert.Equal(t, 800.0, cfg.SelectNetwork("pune").JunctionRadius)
	assert.Equal(t, "mumbai", cfg.SelectNetwork("").Name)
	assert.Equal(t, 500.0, cfg.SelectNetwork("unknown").JunctionRadius)

	cfg.Networks = nil
	assert.Equal(t, 300.0, cfg.SelectNetwork("pune").JunctionRadius)
}
