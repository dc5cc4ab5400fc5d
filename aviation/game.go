// aviation/game.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "time"

const (
	LandingReward   = 150
	TakeoffReward   = 100
	GoAroundPenalty = 50

	PointsWindow = 30 * time.Minute
)

// Points tracks landing/takeoff counts over a rolling window, each with
// its own Marker so the two rates can be reported independently.
type Points struct {
	Landings *Marker
	Takeoffs *Marker
}

func NewPoints() Points {
	return Points{
		Landings: NewMarker(PointsWindow),
		Takeoffs: NewMarker(PointsWindow),
	}
}

// Game is the mutable simulation state owned exclusively by the tick
// loop: the aircraft in the world, the funds balance, scheduled flights,
// and the landing/takeoff point counters.
type Game struct {
	Aircraft []*Aircraft
	Funds    int
	Flights  []*Flight
	Points   Points
	Paused   bool
}

func NewGame() *Game {
	return &Game{Points: NewPoints()}
}

// ByCallsign returns the aircraft with the given callsign, if present.
func (g *Game) ByCallsign(cs Callsign) (*Aircraft, bool) {
	for _, ac := range g.Aircraft {
		if ac.Callsign == cs {
			return ac, true
		}
	}
	return nil, false
}

// Add appends a new aircraft to the game. The caller is responsible for
// ensuring callsign uniqueness (spec.md §8 invariant 6); Add itself does
// not check, leaving that to whatever spawns the aircraft rather than
// every insert.
func (g *Game) Add(ac *Aircraft) {
	g.Aircraft = append(g.Aircraft, ac)
}

// RemoveCallsigns deletes every aircraft whose callsign is in the set,
// preserving the relative order of those that remain.
func (g *Game) RemoveCallsigns(dead map[Callsign]bool) {
	if len(dead) == 0 {
		return
	}
	kept := g.Aircraft[:0]
	for _, ac := range g.Aircraft {
		if !dead[ac.Callsign] {
			kept = append(kept, ac)
		}
	}
	g.Aircraft = kept
}

func (g *Game) Flight(id string) (*Flight, bool) {
	for _, f := range g.Flights {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// RemoveFlight deletes a scheduled-flight slot by id (spec.md §6 "DELETE
// /flights/{id}"), reporting whether it existed.
func (g *Game) RemoveFlight(id string) bool {
	for i, f := range g.Flights {
		if f.ID == id {
			g.Flights = append(g.Flights[:i], g.Flights[i+1:]...)
			return true
		}
	}
	return false
}
