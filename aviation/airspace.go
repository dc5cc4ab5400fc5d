// aviation/airspace.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "github.com/mmp/atctower/math"

// Frequencies is the radio table an airspace publishes for its
// controller positions.
type Frequencies struct {
	Approach   float32 `json:"approach"`
	Departure  float32 `json:"departure"`
	Tower      float32 `json:"tower"`
	Ground     float32 `json:"ground"`
	Center     float32 `json:"center"`
	Clearance  float32 `json:"clearance"`
}

// Airspace is a controlled disc of airspace: a centre, radius and
// altitude band, with zero or more airports and a radio table.
type Airspace struct {
	ID          string      `json:"id"`
	Centre      math.Vec2   `json:"centre"`
	Radius      float32     `json:"radius"` // feet
	AltitudeLo  float32     `json:"altitude_lo"`
	AltitudeHi  float32     `json:"altitude_hi"`
	Airports    []*Airport  `json:"airports"`
	Auto        bool        `json:"auto"` // true => controlled by the simulator, no human input
	Frequencies Frequencies `json:"frequencies"`
}

// Contains reports whether pos (and, if hasAltitude, altitude) lies
// within the airspace's disc.
func (a *Airspace) Contains(pos math.Vec2, altitude float32, hasAltitude bool) bool {
	if math.Distance(pos, a.Centre) > a.Radius {
		return false
	}
	if hasAltitude && (altitude < a.AltitudeLo || altitude > a.AltitudeHi) {
		return false
	}
	return true
}

func (a *Airspace) Airport(id string) (*Airport, bool) {
	for _, ap := range a.Airports {
		if ap.ID == id {
			return ap, true
		}
	}
	return nil, false
}
