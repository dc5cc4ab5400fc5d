// parser/parser_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package parser

import (
	"testing"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/sim"
	"github.com/stretchr/testify/require"
)

func TestParseAltitude(t *testing.T) {
	require.Equal(t, []sim.Task{sim.SetAltitude{Altitude: 25000}}, Parse("alt 250"))
	require.Equal(t, []sim.Task{sim.SetAltitude{Altitude: 4000}}, Parse("alt 040"))
}

func TestParseAltitudeMultiplePhrases(t *testing.T) {
	got := Parse("alt 250, alt 040, alt 40")
	require.Equal(t, []sim.Task{
		sim.SetAltitude{Altitude: 25000},
		sim.SetAltitude{Altitude: 4000},
		sim.SetAltitude{Altitude: 4000},
	}, got)
}

func TestParseDirectIsCaseInsensitiveAndUppercases(t *testing.T) {
	require.Equal(t, []sim.Task{sim.Direct{Waypoint: "ABCD"}}, Parse("direct ABCD"))
	require.Equal(t, []sim.Task{sim.Direct{Waypoint: "ABCD"}}, Parse("direct abcd"))
	require.Equal(t, []sim.Task{sim.Direct{Waypoint: "ABCD"}}, Parse("d abcd"))
}

func TestParseFrequency(t *testing.T) {
	require.Equal(t, []sim.Task{sim.SetFrequency{Frequency: 123.4}}, Parse("frequency 123.4"))
}

func TestParseGoAround(t *testing.T) {
	for _, phrase := range []string{"g", "ga", "go"} {
		require.Equal(t, []sim.Task{sim.GoAround{Reason: sim.ReasonTooHigh}}, Parse(phrase), phrase)
	}
}

func TestParseHeading(t *testing.T) {
	require.Equal(t, []sim.Task{sim.SetHeading{Heading: 250}}, Parse("turn 250"))
}

func TestParseNoTrailingTokens(t *testing.T) {
	// "go around" has a trailing token the bare go-around parser doesn't
	// consume, so spec.md §4.5's strict-structure rule rejects it outright
	// rather than matching on the first token alone.
	require.Empty(t, Parse("go around"))
}

func TestParseUnknownPhraseYieldsNoTasks(t *testing.T) {
	require.Empty(t, Parse("frobnicate the whatsit"))
}

func TestParseTaxiShortViaRotatesTargetToEnd(t *testing.T) {
	got := Parse("tx short 27L via A B")
	require.Equal(t, []sim.Task{
		sim.TaxiRequest{Via: []string{"A", "B"}, Target: "27L", Behavior: av.BehaviorHoldShort},
	}, got)
}

func TestParseTaxiGate(t *testing.T) {
	got := Parse("tx gate A1")
	require.Equal(t, []sim.Task{
		sim.TaxiRequest{Target: "A1", Behavior: av.BehaviorPark},
	}, got)
}

func TestParseTaxiPlainGoTo(t *testing.T) {
	got := Parse("tx B3")
	require.Equal(t, []sim.Task{
		sim.TaxiRequest{Target: "B3", Behavior: av.BehaviorGoTo},
	}, got)
}

func TestParseClearance(t *testing.T) {
	dep := "KJFK"
	alt := float32(25000)
	spd := float32(250)
	got := Parse("clear dep kjfk alt 250 spd 250")
	require.Equal(t, []sim.Task{
		sim.ClearanceEvent{Departure: &dep, Altitude: &alt, Speed: &spd},
	}, got)
}

func TestParseIdentAloneProducesOneTask(t *testing.T) {
	require.Equal(t, []sim.Task{sim.IdentEvent{}}, Parse("ident"))
}

// TestRoundTrip covers spec.md §8's "parse(render(task)) = [task]" property
// for every canonical task form the parser produces.
func TestRoundTrip(t *testing.T) {
	dep := "KJFK"
	alt := float32(4000)
	spd := float32(210)

	tasks := []sim.Task{
		sim.SetAltitude{Altitude: 25000},
		sim.SetHeading{Heading: 250},
		sim.SetSpeed{Speed: 210},
		sim.SetFrequency{Frequency: 123.4},
		sim.SetNamedFrequency{Name: "ground"},
		sim.Direct{Waypoint: "ABCD"},
		sim.ApproachVia{SetID: "ILS27L"},
		sim.DepartVia{SetID: "SID1"},
		sim.LandOn{Runway: "27L"},
		sim.GoAround{Reason: sim.ReasonTooHigh},
		sim.TakeoffFrom{Runway: "27L"},
		sim.LineUpOn{Runway: "27L"},
		sim.IdentEvent{},
		sim.ResumeOwnNavigation{},
		sim.TaxiHoldEvent{},
		sim.TaxiContinueEvent{},
		sim.DeleteEvent{},
		sim.ClearanceEvent{Departure: &dep, Altitude: &alt, Speed: &spd},
		sim.TaxiRequest{Target: "A1", Behavior: av.BehaviorPark},
		sim.TaxiRequest{Via: []string{"A", "B"}, Target: "27L", Behavior: av.BehaviorHoldShort},
	}

	for _, task := range tasks {
		rendered := Render(task)
		require.NotEmpty(t, rendered, "%#v", task)
		require.Equal(t, []sim.Task{task}, Parse(rendered), "round-trip of %q", rendered)
	}
}

func TestRenderAllJoinsWithCommas(t *testing.T) {
	got := RenderAll([]sim.Task{sim.SetAltitude{Altitude: 25000}, sim.SetHeading{Heading: 250}})
	require.Equal(t, "alt 250, turn 250", got)
}
