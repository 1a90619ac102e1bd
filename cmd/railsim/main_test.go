package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/railnet-sim/config"
)

func TestConvertSource(t *testing.T) {
	cfg, err := config.Parse([]byte(`
network:
  junctionRadius: 500
networks:
  - name: western
    gtfsPath: western.zip
    junctionRadius: 750
  - name: central
    gtfsPath: central.zip
`))
	require.NoError(t, err)

	src, opts, err := convertSource(cfg, "western", "")
	require.NoError(t, err)
	assert.Equal(t, "western.zip", src)
	assert.Equal(t, 750.0, opts.JunctionRadius)
	assert.True(t, opts.SeedTrains)

	src, opts, err = convertSource(cfg, "central", "https://example.org/gtfs.zip")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/gtfs.zip", src)
	assert.Equal(t, 500.0, opts.JunctionRadius, "default radius of the selected network")

	_, _, err = convertSource(config.Default(), "", "")
	assert.Error(t, err)
}
