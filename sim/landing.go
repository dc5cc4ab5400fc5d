// sim/landing.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
)

// findRunway looks up a runway by id across every airport in the world.
// Runway ids are airport-scoped in principle, but by the time a
// Landing lock has been granted the aircraft is already tied to one
// airport, so the first match is authoritative in practice.
func findRunway(world *av.World, id string) (av.Airport, av.Runway, bool) {
	for _, a := range world.Airspaces {
		for _, ap := range a.Airports {
			if r, ok := ap.Runway(id); ok {
				return *ap, r, true
			}
		}
	}
	return av.Airport{}, av.Runway{}, false
}

// UpdateLanding drives the landing-approach controller: it runs only
// while the aircraft holds a Landing lock and implements the glideslope/
// localiser capture, go-around, and touchdown transition from spec.md
// §4.2.
func UpdateLanding(ac *av.Aircraft, world *av.World, dt float32) []ActionKind {
	landing, ok := ac.State.(av.Landing)
	if !ok {
		return nil
	}
	_, runway, ok := findRunway(world, landing.Runway)
	if !ok {
		return nil
	}

	start, end := runway.Start(), runway.End()
	distToThreshold := math.Distance(ac.Pos, start)
	distToEnd2 := math.DistanceSquared(ac.Pos, end)

	angleToRunway := math.OppositeHeading(math.Heading2Vec2(start, ac.Pos))

	ilsStart := math.Translate(end, math.OppositeHeading(runway.Heading), runway.Length+ILSExtensionNM*av.NauticalMile)
	ilsEnd := math.Translate(start, runway.Heading, ILSThresholdPastFt)
	closestPt := math.ClosestPointOnLine(ac.Pos, ilsStart, ilsEnd)
	landingPt := math.Translate(closestPt, runway.Heading, LandingPointOffsetNM*av.NauticalMile)

	targetAltitude := distToThreshold * math.Tan(math.Radians(GlideslopeDeg))

	var actions []ActionKind
	actions = append(actions, SetTargetHeading{Heading: math.Heading2Vec2(ac.Pos, landingPt)})

	if ac.Altitude-targetAltitude > GoAroundMarginFt {
		actions = append(actions,
			SetAircraftState{State: av.Flying{}},
			Callout{Text: "going around, too high"},
			CreditPoints{Landing: true, Funds: -av.GoAroundPenalty},
		)
		return actions
	}

	if math.HeadingDifference(angleToRunway, runway.Heading) <= LocaliserConeDeg && distToThreshold <= LocaliserRangeNM*av.NauticalMile {
		climbRateFtPerSec := float32(ClimbRateFtPerSec)
		if ac.Altitude > 0 && climbRateFtPerSec > 0 {
			descentSeconds := ac.Altitude / climbRateFtPerSec
			if descentSeconds > 0 {
				targetSpeedKt := distToThreshold / descentSeconds / av.KnotsToFeetPerSecond
				if targetSpeedKt > MaxApproachSpeedKt {
					targetSpeedKt = MaxApproachSpeedKt
				}
				actions = append(actions, SetTargetSpeed{Speed: targetSpeedKt})
			}
		}
		if ac.Altitude > targetAltitude {
			actions = append(actions, SetTargetAltitude{Altitude: targetAltitude})
		}
	}

	if distToEnd2 <= runway.Length*runway.Length {
		actions = append(actions,
			SnapAltitude{Altitude: 0},
			SnapHeading{Heading: runway.Heading},
			SetTargetSpeed{Speed: 0},
			SetAircraftState{State: av.Taxiing{CurrentNode: landing.Runway, Mode: av.TaxiArmed}},
			SetSegment{Segment: av.SegmentTaxiArr},
			CreditPoints{Landing: true, Funds: av.LandingReward},
		)
	}

	return actions
}
