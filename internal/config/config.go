// Package config loads the pathways CLI configuration. Configuration is
// read from ~/.pathways/config.yaml (overridable) with PATHWAYS_* environment
// variables layered on top. The library packages take plain option structs;
// this file exists only for the CLI surface.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the CLI's settings.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
}

// LoggingConfig controls CLI log output.
type LoggingConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// Pretty switches to the human console writer instead of JSON lines.
	Pretty bool `mapstructure:"pretty" yaml:"pretty"`
}

// SnapshotConfig controls where the demo saves and restores navigation
// state.
type SnapshotConfig struct {
	// Path is the state snapshot file the demo writes on exit and restores
	// on start.
	Path string `mapstructure:"path" yaml:"path"`

	// SaveOnExit writes the snapshot when the demo quits.
	SaveOnExit bool `mapstructure:"save_on_exit" yaml:"save_on_exit"`
}

// DefaultDir returns the pathways config directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".pathways")
}

// Load reads the configuration. An empty path means the default location; a
// missing file is not an error, it just yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", true)
	v.SetDefault("snapshot.path", filepath.Join(DefaultDir(), "state.json"))
	v.SetDefault("snapshot.save_on_exit", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
	}

	v.SetEnvPrefix("PATHWAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}
