package run

import (
	"fmt"
	"strconv"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/utils"
)

// LoadConfig reads the .env file for goEnv, the yaml config at configPath and finally
// the BSM_* environment overrides.
func LoadConfig(configPath, goEnv string) (*eventmodels.PricerConfigYAML, error) {
	envDir := utils.GetEnvOrDefault("PROJECTS_DIR", ".")
	if err := utils.InitEnvironmentVariables(envDir, goEnv); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	config, err := eventmodels.LoadPricerConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	return config, nil
}

func applyEnv(config *eventmodels.PricerConfigYAML) error {
	config.Server.Addr = utils.GetEnvOrDefault("BSM_SERVER_ADDR", config.Server.Addr)
	config.Log.Level = utils.GetEnvOrDefault("BSM_LOG_LEVEL", config.Log.Level)
	config.Log.Format = utils.GetEnvOrDefault("BSM_LOG_FORMAT", config.Log.Format)

	if v, err := utils.GetEnv("BSM_TELEMETRY_ENABLED"); err == nil {
		enabled, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return fmt.Errorf("invalid BSM_TELEMETRY_ENABLED: %w", parseErr)
		}
		config.Telemetry.Enabled = enabled
	}

	return nil
}
