// aviation/airport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"

	"github.com/mmp/atctower/math"
)

// Runway is a single paved strip; Start and End are derived from Pos,
// Heading and Length rather than stored, so moving or rotating a runway
// never leaves them stale.
type Runway struct {
	ID      string    `json:"id"`
	Pos     math.Vec2 `json:"pos"` // centre
	Heading float32   `json:"heading"`
	Length  float32   `json:"length"`
}

func (r Runway) Start() math.Vec2 {
	return math.Translate(r.Pos, math.OppositeHeading(r.Heading), r.Length/2)
}

func (r Runway) End() math.Vec2 {
	return math.Translate(r.Pos, r.Heading, r.Length/2)
}

func (r Runway) Line() math.Line {
	return math.Line{P0: r.Start(), P1: r.End()}
}

// Taxiway is a straight ground segment between two points.
type Taxiway struct {
	ID string    `json:"id"`
	A  math.Vec2 `json:"a"`
	B  math.Vec2 `json:"b"`
}

func (t Taxiway) Line() math.Line {
	return math.Line{P0: t.A, P1: t.B}
}

// Gate is a single parking position at a terminal.
type Gate struct {
	ID        string    `json:"id"`
	Pos       math.Vec2 `json:"pos"`
	Heading   float32   `json:"heading"` // points away from the apron
	Available bool      `json:"available"`
}

// Terminal is a quadrilateral a,b,c,d whose a-b edge is the apron that
// the gates face; gates are given in order along the building.
type Terminal struct {
	ID         string      `json:"id"`
	A, B, C, D math.Vec2   `json:"-"`
	Gates      []Gate      `json:"gates"`
}

func (t Terminal) Apron() math.Line {
	return math.Line{P0: t.A, P1: t.B}
}

// Airport is a fixed collection of ground features plus the pathfinder
// graph built over them. Airports are created once at world construction
// and never destroyed.
type Airport struct {
	ID       string     `json:"id"`
	Centre   math.Vec2  `json:"centre"`
	Runways  []Runway   `json:"runways"`
	Taxiways []Taxiway  `json:"taxiways"`
	Terminals []Terminal `json:"terminals"`
}

func (a *Airport) Runway(id string) (Runway, bool) {
	for _, r := range a.Runways {
		if r.ID == id {
			return r, true
		}
	}
	return Runway{}, false
}

func (a *Airport) Gate(id string) (Gate, bool) {
	for _, t := range a.Terminals {
		for _, g := range t.Gates {
			if g.ID == id {
				return g, true
			}
		}
	}
	return Gate{}, false
}

// Validate reports structural problems with the airport's geometry, per
// the invariants in spec.md §3: runway length must be positive and
// terminal quadrilaterals must be given with the apron as the a-b side
// and gates facing away from it.
func (a *Airport) Validate() error {
	for _, r := range a.Runways {
		if r.Length <= 0 {
			return fmt.Errorf("airport %s: runway %s has non-positive length %f", a.ID, r.ID, r.Length)
		}
	}
	for _, t := range a.Terminals {
		for _, g := range t.Gates {
			apron := t.Apron()
			away := math.Heading2Vec2(math.ClosestPointOnLine(g.Pos, apron.P0, apron.P1), g.Pos)
			if math.HeadingDifference(away, g.Heading) > 135 {
				return fmt.Errorf("airport %s: gate %s heading %f does not point away from apron",
					a.ID, g.ID, g.Heading)
			}
		}
	}
	return nil
}
