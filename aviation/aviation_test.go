// aviation/aviation_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"testing"
	"time"

	"github.com/mmp/atctower/math"
	"github.com/stretchr/testify/require"
)

func TestRunwayEndpoints(t *testing.T) {
	r := Runway{ID: "9", Pos: math.Vec2{X: 0, Y: 0}, Heading: 90, Length: 7000}
	require.InDelta(t, float32(-3500), r.Start().X, 1)
	require.InDelta(t, float32(3500), r.End().X, 1)
}

func TestAirspaceContains(t *testing.T) {
	a := &Airspace{Centre: math.Vec2{X: 0, Y: 0}, Radius: 1000, AltitudeLo: 0, AltitudeHi: 10000}
	require.True(t, a.Contains(math.Vec2{X: 500, Y: 0}, 5000, true))
	require.False(t, a.Contains(math.Vec2{X: 1500, Y: 0}, 5000, true))
	require.False(t, a.Contains(math.Vec2{X: 0, Y: 0}, 20000, true))
	require.True(t, a.Contains(math.Vec2{X: 0, Y: 0}, 0, false))
}

func TestMarkerRate(t *testing.T) {
	m := NewMarker(time.Hour)
	now := time.Unix(0, 0)
	m.Mark(now)
	m.Mark(now.Add(10 * time.Minute))
	require.Equal(t, 2, m.Count(now.Add(20*time.Minute)))
	// An event older than the window should be dropped.
	require.Equal(t, 1, m.Count(now.Add(65*time.Minute)))
}

func TestGameRemoveCallsignsPreservesOrder(t *testing.T) {
	g := NewGame()
	g.Add(&Aircraft{Callsign: "AAL1"})
	g.Add(&Aircraft{Callsign: "DAL2"})
	g.Add(&Aircraft{Callsign: "UAL3"})
	g.RemoveCallsigns(map[Callsign]bool{"DAL2": true})
	require.Equal(t, []Callsign{"AAL1", "UAL3"}, []Callsign{g.Aircraft[0].Callsign, g.Aircraft[1].Callsign})
}

func TestFlightPlanFlip(t *testing.T) {
	fp := FlightPlan{Departing: "KJFK", Arriving: "KBOS", Waypoints: []Waypoint{{Name: "FOO"}}}
	flipped := fp.Flip()
	require.Equal(t, "KBOS", flipped.Departing)
	require.Equal(t, "KJFK", flipped.Arriving)
	require.Empty(t, flipped.Waypoints)
}
