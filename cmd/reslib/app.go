package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maja42/resourcelib"
)

// app is initialized before any subcommand runs.
var app struct {
	cfg config
	lib *resourcelib.Library
}

func setupApp(cmd *cobra.Command, _ []string) error {
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	if err := setColorMode(colorMode); err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	level, _ := logrus.ParseLevel(cfg.CLI.LogLevel) // validated by resolveConfig
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	lib, err := newLibrary(cfg)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.lib = lib
	return nil
}

func newLibrary(cfg config) (*resourcelib.Library, error) {
	game, err := resourcelib.ParseGame(cfg.Library.Game)
	if err != nil {
		return nil, err
	}
	lib := resourcelib.New(game, resourcelib.WithLogger(logrus.StandardLogger()))

	if cfg.Library.PropertyNames != "" {
		f, err := os.Open(cfg.Library.PropertyNames)
		if err != nil {
			return nil, fmt.Errorf("property names: %w", err)
		}
		defer f.Close()
		if _, err := lib.LoadPropertyNames(f); err != nil {
			return nil, fmt.Errorf("property names %s: %w", cfg.Library.PropertyNames, err)
		}
	}
	return lib, nil
}

func setColorMode(mode string) error {
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (must be auto, on or off)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var (
	success = color.New(color.FgGreen).SprintfFunc()
	failure = color.New(color.FgRed).SprintfFunc()
	heading = color.New(color.Bold).SprintfFunc()
	faint   = color.New(color.Faint).SprintfFunc()
)
