// sim/sim_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"
	"time"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
	"github.com/stretchr/testify/require"
)

// TestHeadingSnapWithinOneTick checks that a heading delta smaller than
// one tick's turn budget (2°/s over 1/15 s, about 0.133°) snaps exactly
// to target rather than overshooting or asymptotically crawling toward it.
func TestHeadingSnapWithinOneTick(t *testing.T) {
	ac := &av.Aircraft{Heading: 10, Target: av.Target{Heading: 10.1}}
	actions := UpdateFromTargets(ac, 1.0/DefaultTickRate)
	apply(ac, actions)
	require.Equal(t, float32(10.1), ac.Heading)
}

func TestHeadingConvergesGraduallyWhenDeltaExceedsBudget(t *testing.T) {
	ac := &av.Aircraft{Heading: 0, Target: av.Target{Heading: 90}}
	dt := float32(1.0)
	actions := UpdateFromTargets(ac, dt)
	apply(ac, actions)
	require.InDelta(t, TurnRateDegPerSec, ac.Heading, 0.01)
}

// runwayWorld builds the runway of spec.md §8 scenario 2's numeric
// example: runway 9, start (0,0), heading 90, length 7000.
func runwayWorld() (*av.World, av.Runway) {
	rw := av.Runway{ID: "9", Pos: math.Vec2{X: 3500, Y: 0}, Heading: 90, Length: 7000}
	ap := &av.Airport{ID: "KXX", Centre: math.Vec2{X: 3500, Y: 0}, Runways: []av.Runway{rw}}
	airspace := &av.Airspace{ID: "KXX-TRACON", Centre: ap.Centre, Radius: 100000, AltitudeHi: 20000, Airports: []*av.Airport{ap}}
	return &av.World{Airspaces: []*av.Airspace{airspace}, Radius: 500 * av.NauticalMile}, rw
}

func TestLandingNoGoAroundWhenFarOut(t *testing.T) {
	world, _ := runwayWorld()
	ac := &av.Aircraft{
		Callsign: "AAL1",
		Pos:      math.Vec2{X: -60000, Y: 0},
		Altitude: 4000,
		State:    av.Landing{Runway: "9"},
	}
	actions := UpdateLanding(ac, world, 1.0/DefaultTickRate)
	out := apply(ac, actions)
	_, stillLanding := ac.State.(av.Landing)
	require.True(t, stillLanding)
	require.Empty(t, out.callout)
}

func TestLandingGoAroundWhenTooHighCloseIn(t *testing.T) {
	world, _ := runwayWorld()
	ac := &av.Aircraft{
		Callsign: "AAL1",
		Pos:      math.Vec2{X: -5000, Y: 0},
		Altitude: 4000,
		State:    av.Landing{Runway: "9"},
	}
	actions := UpdateLanding(ac, world, 1.0/DefaultTickRate)
	out := apply(ac, actions)
	_, flying := ac.State.(av.Flying)
	require.True(t, flying, "expected go-around to return the aircraft to Flying")
	require.NotEmpty(t, out.callout)
	require.NotNil(t, out.points)
	require.Equal(t, -av.GoAroundPenalty, out.points.Funds)
}

// TestLandingNoClimbCommandWhenAlreadyBelowGlideslope covers the
// guard on the localiser-cone branch: an aircraft already below the
// glideslope altitude must not be commanded back up to it every tick.
func TestLandingNoClimbCommandWhenAlreadyBelowGlideslope(t *testing.T) {
	world, _ := runwayWorld()
	ac := &av.Aircraft{
		Callsign: "AAL1",
		Pos:      math.Vec2{X: -5000, Y: 0},
		Altitude: 400, // well below the ~614ft glideslope altitude at this range
		Target:   av.Target{Altitude: 400},
		State:    av.Landing{Runway: "9"},
	}
	actions := UpdateLanding(ac, world, 1.0/DefaultTickRate)
	apply(ac, actions)
	require.Equal(t, float32(400), ac.Target.Altitude, "should not command altitude back up once already below glideslope")
}

func TestLandingTouchdownTransitionsToTaxiing(t *testing.T) {
	world, rw := runwayWorld()
	ac := &av.Aircraft{
		Callsign: "AAL1",
		Pos:      rw.End(),
		Altitude: 0,
		Speed:    130,
		State:    av.Landing{Runway: "9"},
	}
	actions := UpdateLanding(ac, world, 1.0/DefaultTickRate)
	out := apply(ac, actions)
	taxiing, ok := ac.State.(av.Taxiing)
	require.True(t, ok)
	require.Equal(t, "9", taxiing.CurrentNode)
	require.Equal(t, av.SegmentTaxiArr, ac.Segment)
	require.NotNil(t, out.points)
	require.True(t, out.points.Landing)
	require.Equal(t, av.LandingReward, out.points.Funds)
}

// TestTaxiThroughIntersection walks an aircraft through a two-stop
// waypoint stack and confirms each stop is popped once reached, matching
// spec.md §8 scenario 3 at the dynamics-controller level (the ground-
// route geometry itself is covered in package pathfinder).
func TestTaxiThroughIntersection(t *testing.T) {
	// Stack order: the next stop is the last element.
	wps := []av.TaxiWaypoint{
		{FeatureID: "gate2", Kind: av.FeatureGate, Behavior: av.BehaviorPark, Pos: math.Vec2{X: 5, Y: 0}},
		{FeatureID: "A", Kind: av.FeatureTaxiway, Behavior: av.BehaviorGoTo, Pos: math.Vec2{X: 0, Y: 0}},
	}
	ac := &av.Aircraft{
		Callsign: "AAL1",
		Pos:      math.Vec2{X: -100, Y: 0},
		Speed:    20,
		Segment:  av.SegmentTaxiArr,
		State:    av.Taxiing{CurrentNode: "start", Waypoints: wps, Mode: av.TaxiArmed},
	}
	world := &av.World{}

	dt := float32(1.0 / DefaultTickRate)
	step := func() aircraftOutcome {
		var bundle Bundle
		bundle = append(bundle, UpdatePosition(ac, dt)...)
		bundle = append(bundle, UpdateTaxi(ac, world, nil, dt)...)
		return apply(ac, bundle)
	}

	// Several ticks of travel toward the first stop; it should pop once
	// within reach, long before reaching the gate.
	for i := 0; i < 2000; i++ {
		step()
		taxiing, ok := ac.State.(av.Taxiing)
		require.True(t, ok)
		if len(taxiing.Waypoints) == 1 {
			break
		}
	}
	taxiing := ac.State.(av.Taxiing)
	require.Len(t, taxiing.Waypoints, 1)
	require.Equal(t, "A", taxiing.CurrentNode)

	// Continue until the park stop pops too.
	var out aircraftOutcome
	for i := 0; i < 2000; i++ {
		out = step()
		if _, parked := ac.State.(av.Parked); parked {
			break
		}
	}
	parked, ok := ac.State.(av.Parked)
	require.True(t, ok)
	require.Equal(t, "gate2", parked.AtNode)
	require.True(t, out.completedFlight)
}

// TestTaxiBlockedByCollisionRadius confirms the stop predicate fires
// when another aircraft sits at the next waypoint, and that Override
// bypasses it.
func TestTaxiBlockedByCollisionRadius(t *testing.T) {
	wp := av.TaxiWaypoint{FeatureID: "B", Kind: av.FeatureTaxiway, Behavior: av.BehaviorGoTo, Pos: math.Vec2{X: 1000, Y: 0}}
	ac := &av.Aircraft{
		Callsign: "AAL1",
		Pos:      math.Vec2{X: 0, Y: 0},
		Speed:    10,
		State:    av.Taxiing{CurrentNode: "A", Waypoints: []av.TaxiWaypoint{wp}, Mode: av.TaxiArmed},
	}
	blocker := &av.Aircraft{Callsign: "DAL2", Pos: math.Vec2{X: 1000, Y: 0}}
	world := &av.World{}

	actions := UpdateTaxi(ac, world, []*av.Aircraft{ac, blocker}, 1.0/DefaultTickRate)
	apply(ac, actions)
	require.Zero(t, ac.Target.Speed)

	ac.State = av.Taxiing{CurrentNode: "A", Waypoints: []av.TaxiWaypoint{wp}, Mode: av.TaxiOverride}
	actions = UpdateTaxi(ac, world, []*av.Aircraft{ac, blocker}, 1.0/DefaultTickRate)
	apply(ac, actions)
	require.NotZero(t, ac.Target.Heading)
}

// TestSpawnSignalPicksOnlyNonAutoParkedAircraft covers spec.md §8
// scenario 5's first half: the signal generator only selects Parked
// aircraft outside the automated exit airspace.
func TestSpawnSignalPicksOnlyNonAutoParkedAircraft(t *testing.T) {
	controlled := &av.Airspace{ID: "ctl", Centre: math.Vec2{}, Radius: 100000, AltitudeHi: 60000, Auto: false}
	auto := &av.Airspace{ID: "auto", Centre: math.Vec2{X: 1000000, Y: 0}, Radius: 100000, AltitudeHi: 60000, Auto: true}
	world := &av.World{Airspaces: []*av.Airspace{controlled, auto}, Radius: 500 * av.NauticalMile}

	parkedHere := &av.Aircraft{Callsign: "AAL1", Airspace: "ctl", State: av.Parked{AtNode: "gate1"}}
	parkedThere := &av.Aircraft{Callsign: "DAL2", Airspace: "auto", State: av.Parked{AtNode: "gate2"}}
	flying := &av.Aircraft{Callsign: "UAL3", Airspace: "ctl", State: av.Flying{}}
	game := &av.Game{Aircraft: []*av.Aircraft{parkedHere, parkedThere, flying}}

	e := NewEngine(DefaultTickRate, 1, world)
	e.SpawnPeriod = time.Second

	now := time.Unix(0, 0)
	require.Nil(t, e.MaybeSignalSpawn(world, game, now, 500*time.Millisecond))
	ev := e.MaybeSignalSpawn(world, game, now.Add(time.Second), 600*time.Millisecond)
	require.NotNil(t, ev)
	require.Equal(t, av.Callsign("AAL1"), ev.Callsign)
	require.IsType(t, QuickDepartEvent{}, ev.Kind)
}

// TestQuickDepartMovesParkedAircraftToTaxiing exercises the event handler
// the signal generator's event feeds into.
func TestQuickDepartMovesParkedAircraftToTaxiing(t *testing.T) {
	ac := &av.Aircraft{Callsign: "AAL1", State: av.Parked{AtNode: "gate1"}}
	actions := handleEvent(ac, &av.World{}, QuickDepartEvent{})
	apply(ac, actions)
	taxiing, ok := ac.State.(av.Taxiing)
	require.True(t, ok)
	require.Equal(t, "gate1", taxiing.CurrentNode)
	require.Equal(t, av.SegmentTaxiDep, ac.Segment)
}

// TestCompleteAndRecycleDeletesInAutoAirspace and
// TestCompleteAndRecycleFlipsInControlledAirspace cover the second half
// of scenario 5 and the "flipped into outbound departures" policy
// sentence.
func TestCompleteAndRecycleDeletesInAutoAirspace(t *testing.T) {
	auto := &av.Airspace{ID: "auto", Centre: math.Vec2{}, Radius: 100000, AltitudeHi: 60000, Auto: true}
	world := &av.World{Airspaces: []*av.Airspace{auto}}
	game := &av.Game{Flights: []*av.Flight{{ID: "f1", Status: av.Ongoing("AAL1"), SpawnAt: time.Unix(0, 0)}}}
	ac := &av.Aircraft{Callsign: "AAL1", Airspace: "auto"}

	e := NewEngine(DefaultTickRate, 1, world)
	var outcome TickOutcome
	e.completeAndRecycle(world, game, ac, time.Unix(100, 0), &outcome)

	require.Contains(t, outcome.Deleted, av.Callsign("AAL1"))
	require.True(t, game.Flights[0].Status.Completed)
}

func TestCompleteAndRecycleFlipsInControlledAirspace(t *testing.T) {
	ctl := &av.Airspace{ID: "ctl", Centre: math.Vec2{}, Radius: 100000, AltitudeHi: 60000, Auto: false}
	world := &av.World{Airspaces: []*av.Airspace{ctl}}
	game := &av.Game{Flights: []*av.Flight{{ID: "f1", Status: av.Ongoing("AAL1"), SpawnAt: time.Unix(0, 0)}}}
	ac := &av.Aircraft{
		Callsign:   "AAL1",
		Airspace:   "ctl",
		FlightPlan: av.FlightPlan{Departing: "KAAA", Arriving: "KBBB"},
	}

	e := NewEngine(DefaultTickRate, 1, world)
	var outcome TickOutcome
	e.completeAndRecycle(world, game, ac, time.Unix(100, 0), &outcome)

	require.Empty(t, outcome.Deleted)
	require.Equal(t, "KBBB", ac.FlightPlan.Departing)
	require.Equal(t, "KAAA", ac.FlightPlan.Arriving)
	require.Len(t, game.Flights, 2)
	require.True(t, game.Flights[1].Status.Scheduled)
	require.Equal(t, av.Callsign("AAL1"), game.Flights[1].Status.Callsign)
}

// TestTickDeletesAircraftAfterCleanup runs a full Tick and checks that a
// DeleteEvent actually removes the aircraft from Game.Aircraft.
func TestTickDeletesAircraftAfterCleanup(t *testing.T) {
	world := &av.World{}
	ac := &av.Aircraft{Callsign: "AAL1", State: av.Parked{AtNode: "gate1"}}
	game := &av.Game{Aircraft: []*av.Aircraft{ac}}
	e := NewEngine(DefaultTickRate, 1, world)

	events := []Event{{Callsign: "AAL1", Kind: DeleteEvent{}, CreatedAt: time.Unix(0, 0)}}
	e.Tick(world, game, events, time.Unix(0, 0))
	require.Empty(t, game.Aircraft)
}

func TestTickSuspendedWhilePaused(t *testing.T) {
	world := &av.World{}
	ac := &av.Aircraft{Callsign: "AAL1", State: av.Parked{AtNode: "gate1"}}
	game := &av.Game{Aircraft: []*av.Aircraft{ac}, Paused: true}
	e := NewEngine(DefaultTickRate, 1, world)

	events := []Event{{Callsign: "AAL1", Kind: DeleteEvent{}, CreatedAt: time.Unix(0, 0)}}
	e.Tick(world, game, events, time.Unix(0, 0))
	require.Len(t, game.Aircraft, 1, "a paused tick must not apply any events")
}
