// pathfinder/pathfinder_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pathfinder

import (
	"testing"

	"github.com/stretchr/testify/require"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
)

// crossingAirport builds the two-taxiway crossing from spec.md §8
// scenario 3: "A" runs (0,0)-(10,0), "B" runs (5,-5)-(5,5); they cross
// at (5,0).
func crossingAirport() *av.Airport {
	return &av.Airport{
		ID: "TEST",
		Taxiways: []av.Taxiway{
			{ID: "A", A: math.Vec2{X: 0, Y: 0}, B: math.Vec2{X: 10, Y: 0}},
			{ID: "B", A: math.Vec2{X: 5, Y: -5}, B: math.Vec2{X: 5, Y: 5}},
		},
	}
}

func TestGraphBuildFindsCrossing(t *testing.T) {
	g := Build(crossingAirport())
	p, ok := edgePoint(g, "A", "B")
	require.True(t, ok)
	require.InDelta(t, float32(5), p.X, 1e-3)
	require.InDelta(t, float32(0), p.Y, 1e-3)
}

func TestQueryStraightAcrossCrossing(t *testing.T) {
	f := NewFinder(crossingAirport())
	// Approaching along taxiway A heading east, routed onto B.
	wps, ok := f.Query("A", "B", math.Vec2{X: 0, Y: 0}, 90, av.BehaviorGoTo)
	require.True(t, ok)
	require.Len(t, wps, 1)
	require.Equal(t, "B", wps[0].FeatureID)
	require.InDelta(t, float32(5), wps[0].Pos.X, 1e-3)
}

func TestQueryRejectsUTurn(t *testing.T) {
	// Taxiway A (0,0)-(10,0) crosses taxiway D (10,0)-(10,-10) at (10,0).
	// An aircraft at the start of A heading 270 (west, away from the
	// junction) would need to reverse course to reach it: rejected.
	ap := &av.Airport{
		ID: "TEST2",
		Taxiways: []av.Taxiway{
			{ID: "A", A: math.Vec2{X: 0, Y: 0}, B: math.Vec2{X: 10, Y: 0}},
			{ID: "D", A: math.Vec2{X: 10, Y: 0}, B: math.Vec2{X: 10, Y: -10}},
		},
	}
	f := NewFinder(ap)
	_, ok := f.Query("A", "D", math.Vec2{X: 0, Y: 0}, 270, av.BehaviorGoTo)
	require.False(t, ok)

	// Heading 90 (east, toward the junction) succeeds.
	wps, ok := f.Query("A", "D", math.Vec2{X: 0, Y: 0}, 90, av.BehaviorGoTo)
	require.True(t, ok)
	require.Len(t, wps, 1)
}

func TestGateConnectsToTerminalApron(t *testing.T) {
	ap := &av.Airport{
		ID: "TEST3",
		Terminals: []av.Terminal{
			{
				ID: "T1",
				A:  math.Vec2{X: 0, Y: 0}, B: math.Vec2{X: 100, Y: 0},
				C: math.Vec2{X: 100, Y: 50}, D: math.Vec2{X: 0, Y: 50},
				Gates: []av.Gate{
					{ID: "G1", Pos: math.Vec2{X: 50, Y: 20}, Heading: 180, Available: true},
				},
			},
		},
	}
	f := NewFinder(ap)
	wps, ok := f.Query("G1", "T1", math.Vec2{X: 50, Y: 20}, 180, av.BehaviorPark)
	require.True(t, ok)
	require.Len(t, wps, 1)
	require.Equal(t, av.BehaviorPark, wps[0].Behavior)
	require.InDelta(t, float32(50), wps[0].Pos.X, 1e-3)
	require.InDelta(t, float32(0), wps[0].Pos.Y, 1e-3)
}

func TestQueryRejectsIntermediateRunway(t *testing.T) {
	// Runway R sits between taxiways A and B with no other connection, so
	// the only path from A to B is forced through R as an intermediate
	// node, which must be rejected.
	ap := &av.Airport{
		ID: "TEST4",
		Runways: []av.Runway{
			{ID: "R", Pos: math.Vec2{X: 10, Y: 0}, Heading: 0, Length: 10},
		},
		Taxiways: []av.Taxiway{
			{ID: "A", A: math.Vec2{X: 5, Y: 0}, B: math.Vec2{X: 10, Y: 0}},
			{ID: "B", A: math.Vec2{X: 10, Y: 0}, B: math.Vec2{X: 15, Y: 0}},
		},
	}
	f := NewFinder(ap)
	_, ok := f.Query("A", "B", math.Vec2{X: 5, Y: 0}, 90, av.BehaviorGoTo)
	require.False(t, ok)
}
