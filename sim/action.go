// sim/action.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
)

// ActionKind is what an event handler or effect emits into a per-
// aircraft Bundle; the action-handler phase applies a Bundle's actions
// in emission order, so a later action on the same field wins.
type ActionKind interface {
	actionKind()
}

// Bundle accumulates one aircraft's actions for a single tick, in the
// order effects and event handlers produced them.
type Bundle []ActionKind

type SetTargetHeading struct{ Heading float32 }

func (SetTargetHeading) actionKind() {}

type SetTargetSpeed struct{ Speed float32 }

func (SetTargetSpeed) actionKind() {}

type SetTargetAltitude struct{ Altitude float32 }

func (SetTargetAltitude) actionKind() {}

type SnapHeading struct{ Heading float32 }

func (SnapHeading) actionKind() {}

type SnapSpeed struct{ Speed float32 }

func (SnapSpeed) actionKind() {}

type SnapAltitude struct{ Altitude float32 }

func (SnapAltitude) actionKind() {}

type SnapPos struct{ Pos math.Vec2 }

func (SnapPos) actionKind() {}

type SetAircraftState struct{ State av.State }

func (SetAircraftState) actionKind() {}

type SetSegment struct{ Segment av.Segment }

func (SetSegment) actionKind() {}

type SetAirspace struct{ ID string }

func (SetAirspace) actionKind() {}

type SetFrequencyAction struct{ Frequency float32 }

func (SetFrequencyAction) actionKind() {}

type SetWaypointIndex struct{ Index int }

func (SetWaypointIndex) actionKind() {}

type SetFlightPlanWaypoints struct{ Waypoints []av.Waypoint }

func (SetFlightPlanWaypoints) actionKind() {}

type FlipFlightPlan struct{}

func (FlipFlightPlan) actionKind() {}

type SetApproachName struct{ Name string }

func (SetApproachName) actionKind() {}

type SetDepartureName struct{ Name string }

func (SetDepartureName) actionKind() {}

type AmendFlightPlan struct {
	Departure *string
	CruiseAlt *float32
	CruiseKt  *float32
}

func (AmendFlightPlan) actionKind() {}

type SetTCAS struct{ State av.TCASState }

func (SetTCAS) actionKind() {}

// Callout is an action with an external effect: it doesn't mutate the
// aircraft, it asks the tick loop to route readback/advisory text to
// the message ring and broadcast channel on the aircraft's frequency.
type Callout struct{ Text string }

func (Callout) actionKind() {}

// CreditPoints is an action with an external effect on Game.Points and
// Game.Funds (DOMAIN STACK EXPANSION item 2).
type CreditPoints struct {
	Landing bool // false => takeoff
	Funds   int  // signed; negative for a go-around penalty
}

func (CreditPoints) actionKind() {}

// CompleteFlight marks the aircraft's current flight as completed
// (DOMAIN STACK EXPANSION item 3); fired when a Parked action lands the
// aircraft at a gate in its arrival airspace.
type CompleteFlight struct{}

func (CompleteFlight) actionKind() {}

// DeleteAircraft marks the aircraft for removal at end-of-tick cleanup.
type DeleteAircraft struct{}

func (DeleteAircraft) actionKind() {}

// apply mutates ac according to the bundle, in order, and returns the
// tick-level outcomes (callouts, points/funds credits, completions,
// deletion) that the aircraft mutation itself can't represent.
func apply(ac *av.Aircraft, bundle Bundle) aircraftOutcome {
	var out aircraftOutcome
	for _, a := range bundle {
		switch act := a.(type) {
		case SetTargetHeading:
			ac.Target.Heading = math.NormalizeHeading(act.Heading)
		case SetTargetSpeed:
			ac.Target.Speed = act.Speed
		case SetTargetAltitude:
			ac.Target.Altitude = act.Altitude
		case SnapHeading:
			ac.Heading = math.NormalizeHeading(act.Heading)
		case SnapSpeed:
			ac.Speed = act.Speed
		case SnapAltitude:
			ac.Altitude = act.Altitude
		case SnapPos:
			ac.Pos = act.Pos
		case SetAircraftState:
			ac.State = act.State
		case SetSegment:
			ac.Segment = act.Segment
		case SetAirspace:
			ac.Airspace = act.ID
		case SetFrequencyAction:
			ac.Frequency = act.Frequency
		case SetWaypointIndex:
			ac.WaypointIndex = act.Index
		case SetFlightPlanWaypoints:
			ac.FlightPlan.Waypoints = act.Waypoints
			ac.WaypointIndex = 0
		case FlipFlightPlan:
			ac.FlightPlan = ac.FlightPlan.Flip()
			ac.WaypointIndex = 0
		case SetApproachName:
			ac.FlightPlan.ApproachName = act.Name
		case SetDepartureName:
			ac.FlightPlan.DepartureName = act.Name
		case AmendFlightPlan:
			if act.Departure != nil {
				ac.FlightPlan.Departing = *act.Departure
			}
			if act.CruiseAlt != nil {
				ac.FlightPlan.CruiseAlt = *act.CruiseAlt
			}
			if act.CruiseKt != nil {
				ac.FlightPlan.CruiseSpeed = *act.CruiseKt
			}
		case SetTCAS:
			ac.TCAS = act.State
		case Callout:
			out.callout = act.Text
		case CreditPoints:
			out.points = &act
		case CompleteFlight:
			out.completedFlight = true
		case DeleteAircraft:
			out.deleted = true
		}
	}
	return out
}

// aircraftOutcome is the non-aircraft-field fallout of applying one
// aircraft's bundle; the tick loop folds these into the tick's Outcome.
type aircraftOutcome struct {
	callout         string
	points          *CreditPoints
	completedFlight bool
	deleted         bool
}
