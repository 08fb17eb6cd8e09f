package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"logsight/internal/types"
)

// LoadConfig reads the configuration from the given path
func LoadConfig(path string) (*types.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg types.Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	validateConfig(&cfg)
	return &cfg, nil
}

// Default returns a configuration with only the defaults applied,
// for runs that pass everything on the command line.
func Default() *types.Config {
	var cfg types.Config
	validateConfig(&cfg)
	return &cfg
}

// validateConfig applies defaults and hard rules
func validateConfig(cfg *types.Config) {
	if cfg.Analysis.TopFilenames <= 0 {
		cfg.Analysis.TopFilenames = 10
	}
	if cfg.Analysis.TopNotFound <= 0 {
		cfg.Analysis.TopNotFound = 15
	}
	// The reference dataset is the July 1995 NASA-HTTP access log.
	if cfg.Analysis.BandwidthYear == 0 {
		cfg.Analysis.BandwidthYear = 1995
	}
	if cfg.Analysis.BandwidthMonth < 1 || cfg.Analysis.BandwidthMonth > 12 {
		cfg.Analysis.BandwidthMonth = 7
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.MetricsAddr == "" {
		cfg.Server.MetricsAddr = ":9090"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
}
