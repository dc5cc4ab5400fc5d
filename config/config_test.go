// config/config_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesFrequencyDefaults(t *testing.T) {
	path := writeConfig(t, `
[world]
seed = 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(42), cfg.World.Seed)
	require.Equal(t, DefaultFrequency, cfg.Frequencies.Ground)
	require.Equal(t, DefaultAddress, cfg.Server.Address)
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	path := writeConfig(t, `
[frequencies]
ground = 121.9

[server]
address = "0.0.0.0:9000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 121.9, cfg.Frequencies.Ground)
	require.Equal(t, DefaultFrequency, cfg.Frequencies.Tower)
	require.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestFrequenciesAviation(t *testing.T) {
	f := Frequencies{Approach: 119.1, Ground: 121.9}
	av := f.Aviation()
	require.Equal(t, float32(119.1), av.Approach)
	require.Equal(t, float32(121.9), av.Ground)
}
