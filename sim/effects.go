// sim/effects.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
)

// speedRateFor picks the kt/s convergence rate from spec.md §4.2's
// table: three regimes (taxi/takeoff, landing roll, flight), the first
// qualified by "(low altitude <= 1000 ft or speed <= 20 kt)". We read
// that qualifier as the operative test and use the aircraft's State
// only to distinguish the landing-roll case from ordinary flight once
// the low-altitude/low-speed test doesn't already apply (documented in
// DESIGN.md).
func speedRateFor(ac *av.Aircraft) float32 {
	if ac.Altitude <= LowAltitudeFt || ac.Speed <= LowSpeedKt {
		return TaxiSpeedRateKtSec
	}
	if _, landing := ac.State.(av.Landing); landing {
		return LandingRollKtSec
	}
	return FlightSpeedRateKt
}

// stepScalar advances current toward target by at most maxDelta,
// snapping exactly to target when within one tick's worth of change.
func stepScalar(current, target, maxDelta float32) float32 {
	d := target - current
	if math.Abs(d) <= maxDelta {
		return target
	}
	if d < 0 {
		return current - maxDelta
	}
	return current + maxDelta
}

// UpdateFromTargets converges heading/speed/altitude toward Target at
// the bounded rates from spec.md §4.2.
func UpdateFromTargets(ac *av.Aircraft, dt float32) []ActionKind {
	maxTurn := TurnRateDegPerSec * dt
	delta := math.DeltaAngleSigned(ac.Heading, ac.Target.Heading)
	var newHeading float32
	if math.Abs(delta) <= maxTurn {
		newHeading = ac.Target.Heading
	} else if delta < 0 {
		newHeading = math.AddDegrees(ac.Heading, -maxTurn)
	} else {
		newHeading = math.AddDegrees(ac.Heading, maxTurn)
	}

	speedRate := speedRateFor(ac)
	newSpeed := stepScalar(ac.Speed, ac.Target.Speed, speedRate*dt)

	climbRate := float32(ClimbRateFtPerSec)
	if ac.Speed < NoClimbBelowSpeedKt {
		climbRate = 0
	}
	newAltitude := stepScalar(ac.Altitude, ac.Target.Altitude, climbRate*dt)

	return []ActionKind{
		SnapHeading{newHeading},
		SnapSpeed{newSpeed},
		SnapAltitude{newAltitude},
	}
}

// UpdatePosition translates the aircraft by speed*dt feet along its
// current heading.
func UpdatePosition(ac *av.Aircraft, dt float32) []ActionKind {
	feetPerSec := ac.Speed * av.KnotsToFeetPerSecond
	newPos := math.Translate(ac.Pos, ac.Heading, feetPerSec*dt)
	return []ActionKind{SnapPos{newPos}}
}

// UpdateAirspace sets the aircraft's airspace to the first (in world
// order) airspace whose disc contains its current position.
func UpdateAirspace(ac *av.Aircraft, world *av.World) []ActionKind {
	a := world.AirspaceAt(ac.Pos, ac.Altitude, true)
	id := ""
	if a != nil {
		id = a.ID
	}
	if id == ac.Airspace {
		return nil
	}
	return []ActionKind{SetAirspace{ID: id}}
}

// UpdateSegment advances the coarse flight-phase flag from the
// aircraft's ground/air state and altitude band.
func UpdateSegment(ac *av.Aircraft) []ActionKind {
	var seg av.Segment
	switch ac.State.(type) {
	case av.Parked:
		seg = av.SegmentParked
	case av.Taxiing:
		if ac.Segment == av.SegmentTaxiArr {
			seg = av.SegmentTaxiArr
		} else {
			seg = av.SegmentTaxiDep
		}
	case av.Landing:
		seg = av.SegmentLanding
	case av.Flying:
		switch {
		case ac.Altitude < ApproachAltitudeFt:
			seg = av.SegmentApproach
		case ac.Altitude < ArrivalAltitudeFt:
			seg = av.SegmentArrival
		case ac.Altitude < MinCruiseAltitudeFt && ac.Target.Altitude >= MinCruiseAltitudeFt:
			seg = av.SegmentClimb
		case ac.Altitude >= MinCruiseAltitudeFt:
			seg = av.SegmentCruise
		default:
			seg = av.SegmentDeparture
		}
	}
	if seg == ac.Segment {
		return nil
	}
	return []ActionKind{SetSegment{Segment: seg}}
}

// UpdateWaypointLimits walks the remaining flight-plan waypoints and
// sets the altitude/speed target induced by the nearest active
// constraint; later waypoints never override a nearer one's limit.
func UpdateWaypointLimits(ac *av.Aircraft) []ActionKind {
	if _, flying := ac.State.(av.Flying); !flying {
		return nil
	}
	remaining := ac.RemainingWaypoints()
	var actions []ActionKind
	cumulative := float32(0)
	prev := ac.Pos
	for _, wp := range remaining {
		cumulative += math.Distance(prev, wp.Pos)
		prev = wp.Pos

		if wp.Altitude != nil && ac.Target.Altitude != *wp.Altitude {
			required := requiredDistance(ac.Altitude, *wp.Altitude, ClimbRateFtPerSec, ac.Speed*av.KnotsToFeetPerSecond)
			if cumulative <= required {
				actions = append(actions, SetTargetAltitude{Altitude: *wp.Altitude})
				break
			}
		}
	}
	prev = ac.Pos
	cumulative = 0
	for _, wp := range remaining {
		cumulative += math.Distance(prev, wp.Pos)
		prev = wp.Pos

		if wp.Speed != nil && ac.Target.Speed != *wp.Speed {
			required := requiredDistance(ac.Speed, *wp.Speed, FlightSpeedRateKt, ac.Speed*av.KnotsToFeetPerSecond)
			if cumulative <= required {
				actions = append(actions, SetTargetSpeed{Speed: *wp.Speed})
				break
			}
		}
	}
	return actions
}

// requiredDistance estimates the ground distance needed to change a
// quantity from cur to target at the given per-second rate while
// covering groundSpeedFtPerSec feet per second; rate and groundSpeed are
// in the same units as cur/target per second and feet per second
// respectively.
func requiredDistance(cur, target, ratePerSec, groundSpeedFtPerSec float32) float32 {
	if ratePerSec <= 0 || groundSpeedFtPerSec <= 0 {
		return 0
	}
	timeNeeded := math.Abs(target-cur) / ratePerSec
	return timeNeeded * groundSpeedFtPerSec
}

// UpdateTCASAll is a whole-world pass (not a per-aircraft effect) run
// after the per-aircraft pipeline: an O(n^2) pairwise proximity check
// that sets each aircraft's TCAS advisory. Grounded on the original
// source's collision-avoidance pass (see DESIGN.md); aircraft counts per
// tick are small enough that the quadratic cost is a non-issue.
func UpdateTCASAll(aircraft []*av.Aircraft) {
	for i, a := range aircraft {
		state := av.TCASIdle
		for j, b := range aircraft {
			if i == j {
				continue
			}
			horiz := math.Distance(a.Pos, b.Pos)
			vert := math.Abs(a.Altitude - b.Altitude)
			if horiz <= TCASHorizontalFt && vert <= TCASVerticalFt {
				state = av.TCASWarning
				if a.Altitude < b.Altitude {
					state = av.TCASDescend
				} else if a.Altitude > b.Altitude {
					state = av.TCASClimb
				} else {
					state = av.TCASHold
				}
				break
			}
		}
		a.TCAS = state
	}
}
