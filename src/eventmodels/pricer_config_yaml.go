package eventmodels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

type ServerConfigYAML struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"readTimeoutSec"`
	WriteTimeoutSec int    `yaml:"writeTimeoutSec"`
}

type TelemetryConfigYAML struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"serviceName"`
}

type LogConfigYAML struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PricerConfigYAML struct {
	Defaults   pricing.Inputs      `yaml:"defaults"`
	Resolution int                 `yaml:"resolution"`
	Server     ServerConfigYAML    `yaml:"server"`
	Telemetry  TelemetryConfigYAML `yaml:"telemetry"`
	Log        LogConfigYAML       `yaml:"log"`
}

func NewPricerConfig() *PricerConfigYAML {
	return &PricerConfigYAML{
		Defaults:   pricing.DefaultInputs(),
		Resolution: DefaultResolution,
		Server: ServerConfigYAML{
			Addr:            ":8080",
			ReadTimeoutSec:  5,
			WriteTimeoutSec: 10,
		},
		Telemetry: TelemetryConfigYAML{
			ServiceName: "bsm-heatmap",
		},
		Log: LogConfigYAML{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadPricerConfig overlays the yaml file at path on top of NewPricerConfig. An
// empty path returns the defaults.
func LoadPricerConfig(path string) (*PricerConfigYAML, error) {
	config := NewPricerConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadPricerConfig: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("LoadPricerConfig: failed to unmarshal %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("LoadPricerConfig: %w", err)
	}

	return config, nil
}

func (c *PricerConfigYAML) Validate() error {
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("PricerConfigYAML: invalid defaults: %w", err)
	}

	if c.Resolution < MinResolution || c.Resolution > MaxResolution {
		return fmt.Errorf("PricerConfigYAML: resolution %d: %w", c.Resolution, InvalidResolutionErr)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("PricerConfigYAML: server.addr is required")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("PricerConfigYAML: unknown log format %q", c.Log.Format)
	}

	return nil
}
