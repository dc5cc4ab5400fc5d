// aviation/aircraft.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"time"

	"github.com/mmp/atctower/math"
)

// KnotsToFeetPerSecond converts knots (nautical miles per hour) to feet
// per second.
const KnotsToFeetPerSecond = 1.68781

const NauticalMile = 6076.115 // feet

// Target is the heading/speed/altitude the dynamics converge current
// kinematics toward.
type Target struct {
	Heading  float32
	Speed    float32
	Altitude float32
}

// TaxiingMode is the taxi controller's stop/go state.
type TaxiingMode int

const (
	TaxiArmed TaxiingMode = iota
	TaxiStopped
	TaxiOverride
	TaxiHolding
)

// LandingPhase is informational sub-state of the Landing variant; the
// landing controller's logic (see sim package) is driven entirely off
// current position and doesn't branch on this beyond deciding when to
// advance it, but it's useful for telemetry and for readbacks.
type LandingPhase int

const (
	LandingApproaching LandingPhase = iota
	LandingEstablished
)

// State is the aircraft's tagged state-machine variant. Each concrete
// type below implements it; callers switch on the dynamic type rather
// than an embedded inheritance hierarchy, per the design notes in
// spec.md §9.
type State interface {
	aircraftState()
}

// Flying is the no-landing-lock default state: the aircraft proceeds
// along its flight-plan waypoints, or a manually assigned heading.
type Flying struct{}

func (Flying) aircraftState() {}

// Landing is held while an aircraft is established on an ILS/visual
// approach to Runway, until touchdown (-> Taxiing) or a go-around
// (-> Flying).
type Landing struct {
	Runway string
	Phase  LandingPhase
}

func (Landing) aircraftState() {}

// Taxiing is held from touchdown/pushback until either a gate park or a
// takeoff roll. CurrentNode is the feature id the aircraft is physically
// at; Waypoints is the remaining route, consumed from the back (top of
// stack = next stop).
type Taxiing struct {
	CurrentNode string
	Waypoints   []TaxiWaypoint
	Mode        TaxiingMode
}

func (Taxiing) aircraftState() {}

// Parked is held while an aircraft sits at a gate awaiting its next
// push-back or deletion.
type Parked struct {
	AtNode string
}

func (Parked) aircraftState() {}

// Aircraft is a single simulated flight.
type Aircraft struct {
	Callsign  Callsign
	Pos       math.Vec2
	Heading   float32 // degrees, [0,360)
	Speed     float32 // knots
	Altitude  float32 // feet
	Target    Target
	State     State
	Segment   Segment
	FlightPlan FlightPlan

	Frequency float32 // MHz

	Airspace string // airspace id, or "" for none

	TCAS TCASState

	FlightTime *time.Duration

	// WaypointIndex is how far into FlightPlan.Waypoints the aircraft has
	// progressed while Flying; waypoints before this index have already
	// been passed.
	WaypointIndex int
}

// NewAircraft constructs an aircraft parked at a gate, the common spawn
// point for a departure.
func NewAircraft(callsign Callsign, pos math.Vec2, heading float32, fp FlightPlan, freq float32, atNode string) *Aircraft {
	return &Aircraft{
		Callsign:   callsign,
		Pos:        pos,
		Heading:    heading,
		FlightPlan: fp,
		Frequency:  freq,
		Segment:    SegmentParked,
		State:      Parked{AtNode: atNode},
	}
}

// RemainingWaypoints returns the flight-plan waypoints not yet passed.
func (ac *Aircraft) RemainingWaypoints() []Waypoint {
	if ac.WaypointIndex >= len(ac.FlightPlan.Waypoints) {
		return nil
	}
	return ac.FlightPlan.Waypoints[ac.WaypointIndex:]
}

// CheckInvariants validates the per-tick invariants from spec.md §8;
// returns the first violation found, or nil.
func (ac *Aircraft) CheckInvariants() error {
	if ac.Heading < 0 || ac.Heading >= 360 {
		return invariantError("heading %f out of [0,360) for %s", ac.Heading, ac.Callsign)
	}
	if ac.Speed < 0 {
		return invariantError("negative speed %f for %s", ac.Speed, ac.Callsign)
	}
	if ac.Altitude < 0 {
		return invariantError("negative altitude %f for %s", ac.Altitude, ac.Callsign)
	}
	if ac.Altitude == 0 {
		switch ac.State.(type) {
		case Parked, Taxiing:
		default:
			return invariantError("%s at altitude 0 but not in a ground state", ac.Callsign)
		}
	}
	return nil
}

type invariantViolation string

func (e invariantViolation) Error() string { return string(e) }

func invariantError(format string, args ...any) error {
	return invariantViolation(fmt.Sprintf(format, args...))
}
