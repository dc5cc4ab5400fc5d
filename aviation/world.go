// aviation/world.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "github.com/mmp/atctower/math"

// World is the static environment the simulation runs in: airspaces,
// global waypoints, and named waypoint sets for STAR/SID routing.
// Airspaces and their airports are created at world construction and are
// never destroyed.
type World struct {
	Airspaces    []*Airspace            `json:"airspaces"`
	Waypoints    map[string]Waypoint    `json:"waypoints"`
	WaypointSets map[string]WaypointSet `json:"waypoint_sets"`

	Radius float32 `json:"radius"` // world disc radius, feet; default ~500 NM
}

// AirspaceAt returns the first airspace (in declared order) whose disc
// contains pos, or nil if none does.
func (w *World) AirspaceAt(pos math.Vec2, altitude float32, hasAltitude bool) *Airspace {
	for _, a := range w.Airspaces {
		if a.Contains(pos, altitude, hasAltitude) {
			return a
		}
	}
	return nil
}

func (w *World) Airspace(id string) (*Airspace, bool) {
	for _, a := range w.Airspaces {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// ResolveWaypoints expands a waypoint-set's named list (an approach or
// departure id) into concrete Waypoint values, skipping any name not
// found in the world's waypoint table.
func (w *World) ResolveWaypoints(names []string) []Waypoint {
	wps := make([]Waypoint, 0, len(names))
	for _, n := range names {
		if wp, ok := w.Waypoints[n]; ok {
			wps = append(wps, wp)
		}
	}
	return wps
}

// ClosestAirport returns the airport nearest pos across the whole world,
// along with the airspace that owns it. Used to resolve NamedFrequency
// and Land/Takeoff commands that reference an airport the aircraft isn't
// necessarily inside yet.
func (w *World) ClosestAirport(pos math.Vec2) (*Airspace, *Airport) {
	var bestA *Airspace
	var bestAp *Airport
	best := float32(-1)
	for _, a := range w.Airspaces {
		for _, ap := range a.Airports {
			d := math.Distance(pos, ap.Centre)
			if best < 0 || d < best {
				best, bestA, bestAp = d, a, ap
			}
		}
	}
	return bestA, bestAp
}
