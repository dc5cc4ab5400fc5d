// aviation/waypoint.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/mmp/atctower/math"
)

// Waypoint is a named position, optionally constraining altitude and/or
// speed for aircraft that pass through it.
type Waypoint struct {
	Name     string    `json:"name"`
	Pos      math.Vec2 `json:"pos"`
	Altitude *float32  `json:"altitude,omitempty"`
	Speed    *float32  `json:"speed,omitempty"`

	// Actions named in the world's event table that fire when an aircraft
	// passes this waypoint (e.g., a scripted frequency handoff).
	Events []string `json:"events,omitempty"`
}

// WaypointSet is a named ordered list of waypoints used for STAR/SID
// routing, keyed by id in the world's WaypointSets map.
type WaypointSet struct {
	Approach  []string `json:"approach,omitempty"`
	Departure []string `json:"departure,omitempty"`
}

// FlightPlan is an aircraft's intended route.
type FlightPlan struct {
	Departing     string     `json:"departing"`
	Arriving      string     `json:"arriving"`
	Waypoints     []Waypoint `json:"waypoints"`
	CruiseAlt     float32    `json:"cruise_altitude"`
	CruiseSpeed   float32    `json:"cruise_speed"`
	DepartureName string     `json:"departure_name,omitempty"` // waypoint-set id, for Depart(id)
	ApproachName  string     `json:"approach_name,omitempty"`  // waypoint-set id, for Approach(id)
}

// Flip turns an arrival's flight plan into the outbound departure that
// results once the aircraft parks at its arrival airport: departing and
// arriving swap and the waypoint list is cleared for a freshly-assigned
// departure routing.
func (fp FlightPlan) Flip() FlightPlan {
	fp.Departing, fp.Arriving = fp.Arriving, fp.Departing
	fp.Waypoints = nil
	fp.DepartureName, fp.ApproachName = "", ""
	return fp
}
