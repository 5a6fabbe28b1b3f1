// Package config loads rulang's CLI configuration from defaults, environment
// variables, and an optional rulang.yaml file, layered with viper the way
// the teacher's internal/cli/config does for its own config file.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the rulang CLI configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Repl    ReplConfig    `mapstructure:"repl"`
}

// ServerConfig holds default HTTP address settings. The run command does
// not read it: its port comes from the program's `server` statement or --port.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// LoggingConfig controls the zap logger used by the CLI and the HTTP router.
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// ReplConfig controls the interactive REPL.
type ReplConfig struct {
	HistoryFile string `mapstructure:"history_file"`
}

// Load reads rulang.yaml (if present), environment variables (RULANG_*),
// and returns a Config with sensible defaults applied.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("logging.level", "info")
	v.SetDefault("repl.history_file", ".rulang_history")

	v.SetConfigName("rulang")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RULANG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// InProject reports whether the current directory looks like a rulang
// project (contains at least one *.ru source file or rulang.yaml).
func InProject() bool {
	if _, err := os.Stat("rulang.yaml"); err == nil {
		return true
	}
	entries, err := os.ReadDir(".")
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && len(e.Name()) > 3 && e.Name()[len(e.Name())-3:] == ".ru" {
			return true
		}
	}
	return false
}
