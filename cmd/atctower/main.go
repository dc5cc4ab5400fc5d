// main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// loads the configuration and world, starts the simulation loop, and
// serves the HTTP API until interrupted.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/config"
	"github.com/mmp/atctower/httpapi"
	"github.com/mmp/atctower/log"
	"github.com/mmp/atctower/math"
	"github.com/mmp/atctower/msgring"
	"github.com/mmp/atctower/sim"
)

var (
	configPath = flag.String("config", "config.toml", "path to the TOML configuration file")
	airportDir = flag.String("airports", "airports", "directory of authored airport JSON files")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	seed       = flag.Uint64("seed", 0, "RNG seed override (0 = use the config file's seed)")
	lint       = flag.Bool("lint", false, "load every airport JSON in -airports and report errors, without starting the server")
	tickRate   = flag.Int("rate", sim.DefaultTickRate, "simulation tick rate, Hz")
)

func main() {
	flag.Parse()

	if *lint {
		lintAirports(*airportDir)
		return
	}

	lg := log.New(true, *logLevel, *logDir)

	cfg, err := config.Load(*configPath)
	if err != nil {
		lg.Errorf("loading config: %v", err)
		os.Exit(1)
	}

	worldSeed := cfg.World.Seed
	if *seed != 0 {
		worldSeed = *seed
	}

	airports, err := av.LoadAirportDir(*airportDir)
	if err != nil {
		lg.Errorf("loading airports: %v", err)
		os.Exit(1)
	}
	world := buildWorld(airports, cfg)

	game := av.NewGame()
	engine := sim.NewEngine(*tickRate, worldSeed, world)
	loop := sim.NewLoop(engine, world, game, lg)

	ring := msgring.NewRing(500, 10*time.Minute)
	srv := httpapi.NewServer(cfg.Server.Address, loop, ring, msgring.NoopProvider{}, lg)

	go loop.Run()
	defer loop.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Infof("serving on %s", cfg.Server.Address)
	if err := srv.ListenAndServe(ctx); err != nil {
		lg.Errorf("http server: %v", err)
		os.Exit(1)
	}
}

// buildWorld wraps every loaded airport in its own human-controlled
// airspace (spec.md §6 "Default airspace radius (player, manual): ~30
// NM") using the config file's default frequency table, plus a single
// automated exit airspace far from the authored airports that spawned
// aircraft eventually fly into and complete against (spec.md §4.4
// "Spawn policy", Open Question 4). Airspace authoring beyond "one per
// airport" is out of scope (spec.md §1 Non-goals): a full scenario
// format describing overlapping sectors, handoffs, and STARs/SIDs per
// airspace belongs to the airport authoring toolchain, not this binary.
func buildWorld(airports []*av.Airport, cfg config.Config) *av.World {
	const playerRadiusFt = 30 * av.NauticalMile
	const worldRadiusFt = 500 * av.NauticalMile

	freqs := cfg.Frequencies.Aviation()

	airspaces := make([]*av.Airspace, 0, len(airports)+1)
	for _, ap := range airports {
		airspaces = append(airspaces, &av.Airspace{
			ID:          ap.ID,
			Centre:      ap.Centre,
			Radius:      playerRadiusFt,
			AltitudeHi:  60000,
			Airports:    []*av.Airport{ap},
			Frequencies: freqs,
		})
	}
	airspaces = append(airspaces, &av.Airspace{
		ID:         "EXIT",
		Centre:     math.Vec2{X: 0.9 * worldRadiusFt, Y: 0},
		Radius:     playerRadiusFt,
		AltitudeHi: 60000,
		Auto:       true,
	})

	return &av.World{
		Airspaces: airspaces,
		Radius:    worldRadiusFt,
	}
}

// lintAirports is the -lint flag's entire job: load every JSON document
// in dir and report the errors found, without ever starting the
// loop or the server (spec.md §7 taxonomy (f), checked ahead of time
// rather than at boot).
func lintAirports(dir string) {
	airports, err := av.LoadAirportDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d airport(s) OK\n", len(airports))
}
