// sim/taxi.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
)

// UpdateTaxi drives the taxi controller (spec.md §4.2): it walks the
// waypoint stack, popping a stop once the aircraft is within one tick's
// travel of it, and reacts to the stop's behavior. The takeoff roll
// (spec.md's separate "UpdateTakeoff" paragraph) is folded in here
// rather than deferred a tick, since it fires at exactly the moment a
// Takeoff-behavior waypoint is reached — see DESIGN.md.
func UpdateTaxi(ac *av.Aircraft, world *av.World, others []*av.Aircraft, dt float32) []ActionKind {
	taxiing, ok := ac.State.(av.Taxiing)
	if !ok {
		return nil
	}

	if taxiing.Mode == av.TaxiHolding {
		return doHoldTaxi(ac)
	}

	if len(taxiing.Waypoints) == 0 {
		return doHoldTaxi(ac)
	}

	wp := taxiing.Waypoints[len(taxiing.Waypoints)-1]
	heading := math.Heading2Vec2(ac.Pos, wp.Pos)

	if taxiing.Mode != av.TaxiOverride && blockedAhead(ac, wp, others) {
		return []ActionKind{
			SnapHeading{Heading: heading},
			SetTargetHeading{Heading: heading},
			SetTargetSpeed{Speed: 0},
		}
	}

	actions := []ActionKind{
		SnapHeading{Heading: heading},
		SetTargetHeading{Heading: heading},
	}

	travel := ac.Speed * av.KnotsToFeetPerSecond * dt
	if travel*travel >= math.DistanceSquared(ac.Pos, wp.Pos) {
		remaining := taxiing.Waypoints[:len(taxiing.Waypoints)-1]

		switch wp.Behavior {
		case av.BehaviorPark:
			actions = append(actions,
				SnapPos{Pos: wp.Pos},
				SetTargetSpeed{Speed: 0},
				SnapSpeed{Speed: 0},
				SetAircraftState{State: av.Parked{AtNode: wp.FeatureID}},
				SetSegment{Segment: av.SegmentParked},
			)
			if ac.Segment == av.SegmentTaxiArr {
				actions = append(actions, CompleteFlight{})
			}
			return actions

		case av.BehaviorTakeoff:
			_, runway, found := findRunway(world, wp.FeatureID)
			if !found {
				break
			}
			actions = append(actions,
				SnapPos{Pos: runway.Start()},
				SnapHeading{Heading: runway.Heading},
				SetTargetHeading{Heading: runway.Heading},
				SnapSpeed{Speed: TakeoffRollSpeedKt},
				SetTargetSpeed{Speed: TakeoffTargetSpeedKt},
				SetTargetAltitude{Altitude: TakeoffTargetAltFt},
				SetAircraftState{State: av.Flying{}},
				SetSegment{Segment: av.SegmentTakeoff},
				CreditPoints{Landing: false, Funds: av.TakeoffReward},
			)
			return actions

		case av.BehaviorHoldShort, av.BehaviorLineUp:
			actions = append(actions,
				SnapPos{Pos: wp.Pos},
				SetTargetSpeed{Speed: 0},
				SetAircraftState{State: av.Taxiing{CurrentNode: wp.FeatureID, Waypoints: remaining, Mode: av.TaxiHolding}},
			)
			return actions

		default: // BehaviorGoTo
			actions = append(actions,
				SnapPos{Pos: wp.Pos},
				SetAircraftState{State: av.Taxiing{CurrentNode: wp.FeatureID, Waypoints: remaining, Mode: taxiing.Mode}},
			)
			return actions
		}
	}

	return actions
}

// doHoldTaxi is the stand-still behavior when there's nowhere left to
// taxi to: target speed zero, snapped to an exact stop once slow enough.
func doHoldTaxi(ac *av.Aircraft) []ActionKind {
	actions := []ActionKind{SetTargetSpeed{Speed: 0}}
	if ac.Speed <= TaxiHoldSpeedSnapKt {
		actions = append(actions, SnapSpeed{Speed: 0})
	}
	return actions
}

// blockedAhead reports whether another aircraft sits within the taxi
// collision radius of the next waypoint's position.
func blockedAhead(ac *av.Aircraft, wp av.TaxiWaypoint, others []*av.Aircraft) bool {
	for _, o := range others {
		if o.Callsign == ac.Callsign {
			continue
		}
		if math.Distance(o.Pos, wp.Pos) <= TaxiCollisionRadiusFt {
			return true
		}
	}
	return false
}
