package config

import (
	"time"
)

// ServerConfig contains server configuration
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SimulationConfig contains tick loop configuration
type SimulationConfig struct {
	TickIntervalMS int    `yaml:"tickIntervalMS" validate:"gte=0"`
	StartPaused    bool   `yaml:"startPaused"`
	AgencyID       string `yaml:"agencyID"`
	CacheTTLMS     int    `yaml:"cacheTTLMS" validate:"gte=0"`
	ServiceStart   string `yaml:"serviceStart" validate:"omitempty,datetime=15:04"` // HH:MM of the first station in journey estimates
}

// NetworkConfig says where the rail network comes from. With neither path
// set the built-in network is used.
type NetworkConfig struct {
	Name           string  `yaml:"name"`
	Path           string  `yaml:"path" validate:"omitempty,file"`
	GTFSPath       string  `yaml:"gtfsPath" validate:"excluded_with=Path"` // zip file or http(s) URL
	JunctionRadius float64 `yaml:"junctionRadius" validate:"gte=0"`
}

// LoggingConfig contains logrus settings
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Simulation SimulationConfig `yaml:"simulation"`
	Network    NetworkConfig    `yaml:"network"`
	Networks   []NetworkConfig  `yaml:"networks" validate:"dive"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TickInterval returns the configured tick period
func (s SimulationConfig) TickInterval() time.Duration {
	return time.Duration(s.TickIntervalMS) * time.Millisecond
}

// CacheTTL returns how long serialized bodies are kept
func (s SimulationConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLMS) * time.Millisecond
}

// ServiceStartOn returns the service start clock time on the day of t.
func (s SimulationConfig) ServiceStartOn(t time.Time) time.Time {
	hm, err := time.Parse("15:04", s.ServiceStart)
	if err != nil {
		hm, _ = time.Parse("15:04", defaultServiceStart)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, hm.Hour(), hm.Minute(), 0, 0, t.Location())
}
