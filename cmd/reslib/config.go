package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maja42/resourcelib"
)

const configFileName = "reslib.toml"

type config struct {
	Library libraryConfig `toml:"library"`
	CLI     cliConfig     `toml:"cli"`
}

type libraryConfig struct {
	Game          string `toml:"game"`
	PropertyNames string `toml:"property_names"`
}

type cliConfig struct {
	Workers  int    `toml:"workers"`
	LogLevel string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Library: libraryConfig{Game: "HM3"},
		CLI: cliConfig{
			Workers:  runtime.NumCPU(),
			LogLevel: "info",
		},
	}
}

// findConfig searches startDir and its parents for reslib.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads a config file on top of the defaults.
// Relative paths inside the file are resolved against its directory.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("library", "property_names") {
		p := strings.TrimSpace(cfg.Library.PropertyNames)
		if p != "" && !filepath.IsAbs(p) {
			cfg.Library.PropertyNames = filepath.Join(filepath.Dir(path), filepath.FromSlash(p))
		}
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	if _, err := resourcelib.ParseGame(c.Library.Game); err != nil {
		return fmt.Errorf("[library].game: %w", err)
	}
	if c.CLI.Workers < 1 {
		return fmt.Errorf("[cli].workers must be at least 1, got %d", c.CLI.Workers)
	}
	if _, err := logrus.ParseLevel(c.CLI.LogLevel); err != nil {
		return fmt.Errorf("[cli].log_level: %w", err)
	}
	return nil
}

// resolveConfig loads the configuration for a command invocation:
// the explicit --config file, a reslib.toml found upwards, or the defaults.
// Flags override file values.
func resolveConfig(cmd *cobra.Command) (config, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return config{}, err
	}
	cfg := defaultConfig()
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if cfg, err = loadConfig(path); err != nil {
			return config{}, err
		}
		logrus.Debugf("using config %s", path)
	}

	if flags.Changed("game") {
		cfg.Library.Game, _ = flags.GetString("game")
	}
	if flags.Changed("log-level") {
		cfg.CLI.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("workers") {
		cfg.CLI.Workers, _ = flags.GetInt("workers")
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}
