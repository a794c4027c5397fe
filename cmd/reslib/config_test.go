package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maja42/resourcelib"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	writeFile(t, path, `
[library]
game = "h2"
property_names = "names/props.txt"

[cli]
workers = 3
log_level = "debug"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "h2", cfg.Library.Game)
	assert.Equal(t, filepath.Join(dir, "names", "props.txt"), cfg.Library.PropertyNames)
	assert.Equal(t, 3, cfg.CLI.Workers)
	assert.Equal(t, "debug", cfg.CLI.LogLevel)
}

func TestLoadConfig_defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	writeFile(t, path, "[library]\n")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     string
	}{
		{"syntax", "[library", "failed to parse TOML"},
		{"unknown key", "[library]\nflavor = 1\n", "unknown key library.flavor"},
		{"game", "[library]\ngame = \"HM9\"\n", `[library].game: unknown game "HM9"`},
		{"workers", "[cli]\nworkers = 0\n", "[cli].workers must be at least 1, got 0"},
		{"log level", "[cli]\nlog_level = \"loud\"\n", "[cli].log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configFileName)
			writeFile(t, path, tt.content)
			_, err := loadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := findConfig(nested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, configFileName), path)
}

func newTestRoot() *cobra.Command {
	cmd := &cobra.Command{Use: "reslib"}
	addGlobalFlags(cmd)
	return cmd
}

func TestResolveConfig_flagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	writeFile(t, path, "[library]\ngame = \"HM2\"\n[cli]\nworkers = 2\n")

	cmd := newTestRoot()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--game", "HM2016", "--log-level", "warn"}))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "HM2016", cfg.Library.Game)
	assert.Equal(t, 2, cfg.CLI.Workers)
	assert.Equal(t, "warn", cfg.CLI.LogLevel)
}

func TestResolveConfig_invalidFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	writeFile(t, path, "")

	cmd := newTestRoot()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--workers=-1"}))

	_, err := resolveConfig(cmd)
	assert.EqualError(t, err, "[cli].workers must be at least 1, got -1")
}

func TestNewLibrary(t *testing.T) {
	names := filepath.Join(t.TempDir(), "props.txt")
	writeFile(t, names, "m_fCustom\n")

	cfg := defaultConfig()
	cfg.Library.Game = "HM2"
	cfg.Library.PropertyNames = names

	lib, err := newLibrary(cfg)
	require.NoError(t, err)
	assert.Equal(t, "HM2", lib.Game().String())
	assert.Equal(t, "m_fCustom", lib.PropertyName(resourcelib.PropertyID("m_fCustom")).String())

	cfg.Library.PropertyNames = names + ".missing"
	_, err = newLibrary(cfg)
	assert.Error(t, err)
}

func TestSetColorMode(t *testing.T) {
	assert.NoError(t, setColorMode("off"))
	assert.NoError(t, setColorMode("on"))
	assert.NoError(t, setColorMode("auto"))
	assert.EqualError(t, setColorMode("rainbow"), `invalid --color value "rainbow" (must be auto, on or off)`)
	assert.NoError(t, setColorMode("off"))
}
