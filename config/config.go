// config/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config loads the TOML configuration file described in
// spec.md §6: per-airspace default frequencies, world options (RNG
// seed, optional TTS), and the HTTP server's listen address. Grounded
// on original_source/server/src/config.rs's three-section shape
// (frequencies/world/server, all optional with defaults filled in after
// load), translated from serde/Option<T> to Go's zero-value-then-default
// pattern rather than struct tags or a validation library.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	av "github.com/mmp/atctower/aviation"
)

// DefaultFrequency is applied to any frequency left unset (0) in the
// loaded file (spec.md §6 "MHz floats, default 118.5").
const DefaultFrequency = 118.5

// DefaultAddress is used when [server].address is absent.
const DefaultAddress = ":8080"

// Frequencies mirrors av.Frequencies for the TOML wire format — config
// only ever sets defaults for a world's airspaces; Aviation converts it
// to av's own type.
type Frequencies struct {
	Approach  float64 `toml:"approach"`
	Departure float64 `toml:"departure"`
	Tower     float64 `toml:"tower"`
	Ground    float64 `toml:"ground"`
	Center    float64 `toml:"center"`
	Clearance float64 `toml:"clearance"`
}

type World struct {
	Seed        uint64 `toml:"seed"`
	UsePiperTTS bool   `toml:"use_piper_tts"`
}

type Server struct {
	Address string `toml:"address"`
}

// Config is the top-level [frequencies]/[world]/[server] document.
type Config struct {
	Frequencies Frequencies `toml:"frequencies"`
	World       World       `toml:"world"`
	Server      Server      `toml:"server"`
}

// Load reads and parses path, then fills in every zero-valued default.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Aviation converts the loaded frequency table into av.Frequencies, for
// airspaces the world loader creates without their own authored table.
func (f Frequencies) Aviation() av.Frequencies {
	return av.Frequencies{
		Approach:  float32(f.Approach),
		Departure: float32(f.Departure),
		Tower:     float32(f.Tower),
		Ground:    float32(f.Ground),
		Center:    float32(f.Center),
		Clearance: float32(f.Clearance),
	}
}

func (c *Config) applyDefaults() {
	for _, f := range []*float64{
		&c.Frequencies.Approach, &c.Frequencies.Departure, &c.Frequencies.Tower,
		&c.Frequencies.Ground, &c.Frequencies.Center, &c.Frequencies.Clearance,
	} {
		if *f == 0 {
			*f = DefaultFrequency
		}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
}
