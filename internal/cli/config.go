package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/treekit/tidytree/pkg/pipeline"
)

// Config holds user defaults read from the config file. Flags given on
// the command line take precedence over config values.
type Config struct {
	DepthLimit     int      `toml:"depth_limit"`
	Direction      string   `toml:"direction"`
	KeepRoot       bool     `toml:"keep_root"`
	SiblingSpacing float64  `toml:"sibling_spacing"`
	LevelSpacing   float64  `toml:"level_spacing"`
	Formats        []string `toml:"formats"`
}

// configPath returns the config file location
// (~/.config/tidytree/config.toml on Linux).
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the user config file. A missing file yields a zero
// Config without error.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies config values into pipeline options. Zero values are
// left alone so pipeline defaults still apply.
func (cfg Config) apply(opts *pipeline.Options) {
	if cfg.DepthLimit != 0 {
		opts.DepthLimit = cfg.DepthLimit
	}
	if cfg.Direction != "" {
		opts.Direction = cfg.Direction
	}
	if cfg.KeepRoot {
		opts.KeepRoot = true
	}
	if cfg.SiblingSpacing != 0 {
		opts.SiblingSpacing = cfg.SiblingSpacing
	}
	if cfg.LevelSpacing != 0 {
		opts.LevelSpacing = cfg.LevelSpacing
	}
	if len(cfg.Formats) != 0 {
		opts.Formats = cfg.Formats
	}
}
