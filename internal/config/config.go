// Package config handles inspector configuration loading and management.
package config

import "time"

// Config holds all inspector settings.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Lod      LodConfig      `yaml:"lod"`
	Rules    RulesConfig    `yaml:"rules"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// StorageConfig holds asset storage paths.
type StorageConfig struct {
	Root string `yaml:"root"` // asset storage directory
}

// AnalysisConfig holds analyzer tunables.
type AnalysisConfig struct {
	// ClusterEpsilon is the default distance below which two vertices are
	// considered duplicates.
	ClusterEpsilon float32 `yaml:"cluster_epsilon"`
}

// LodConfig holds level-of-detail planning settings.
type LodConfig struct {
	Ratios []float32 `yaml:"ratios"` // reduction ladder, full detail = 1.0
}

// RulesConfig holds acceptance-check settings.
type RulesConfig struct {
	Timeout time.Duration `yaml:"timeout"` // hard limit per check run
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Root: "./storage",
		},
		Analysis: AnalysisConfig{
			ClusterEpsilon: 1e-5,
		},
		Lod: LodConfig{
			Ratios: []float32{0.75, 0.5, 0.25, 0.1},
		},
		Rules: RulesConfig{
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
