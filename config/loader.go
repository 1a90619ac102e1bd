package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = 16181
	defaultTickIntervalMS = 1000
	defaultCacheTTLMS     = 5000
	defaultJunctionRadius = 500
	defaultServiceStart   = "08:00"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// SearchPaths are tried in order by LoadAppConfig.
var SearchPaths = []string{"config.yml", "./railsim/config.yml"}

// Config is the global application configuration
var Config = Default()

var validate = validator.New()

// Default returns the configuration used when no file is present.
func Default() AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return cfg
}

// LoadAppConfig loads and validates the application configuration from
// the first readable file in SearchPaths.
func LoadAppConfig() error {
	cfg, err := Load(SearchPaths...)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Load reads the first readable path. The error wraps os.ErrNotExist when
// none of the paths exist.
func Load(paths ...string) (AppConfig, error) {
	var data []byte
	err := os.ErrNotExist
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, fmt.Errorf("no config file in %v: %w", paths, err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML config.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Simulation.TickIntervalMS == 0 {
		cfg.Simulation.TickIntervalMS = defaultTickIntervalMS
	}
	if cfg.Simulation.CacheTTLMS == 0 {
		cfg.Simulation.CacheTTLMS = defaultCacheTTLMS
	}
	if cfg.Simulation.ServiceStart == "" {
		cfg.Simulation.ServiceStart = defaultServiceStart
	}
	if cfg.Network.JunctionRadius == 0 {
		cfg.Network.JunctionRadius = defaultJunctionRadius
	}
	for i := range cfg.Networks {
		if cfg.Networks[i].JunctionRadius == 0 {
			cfg.Networks[i].JunctionRadius = defaultJunctionRadius
		}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}

// SelectNetwork chooses a network by name; fallback to the first listed;
// if none, use the top-level network section.
func (c AppConfig) SelectNetwork(name string) NetworkConfig {
	if name != "" {
		for _, n := range c.Networks {
			if n.Name == name {
				return n
			}
		}
	}
	if len(c.Networks) > 0 {
		return c.Networks[0]
	}
	return c.Network
}
