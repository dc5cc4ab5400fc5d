// parser/parser.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package parser turns free-text controller instructions into sim.Task
// values (spec.md §4.5). Grounded on the original engine's parser.rs:
// an ordered table of small per-task parsers, the first match wins, and
// unparseable input simply yields nothing rather than an error.
package parser

import (
	"strconv"
	"strings"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/sim"
)

// taskParser tries to consume all of tokens as one task. ok is false if
// the phrase doesn't match this parser's alias or shape at all, in
// which case the caller tries the next parser; tokens left over after a
// match (trailing tokens) are also a non-match, per spec.md §4.5's
// "no trailing tokens" rule.
type taskParser func(tokens []string) (sim.Task, bool)

var parsers = []taskParser{
	parseAltitude,
	parseDirect,
	parseFrequency,
	parseNamedFrequency,
	parseGoAround,
	parseHeading,
	parseIdent,
	parseLand,
	parseResume,
	parseSpeed,
	parseTaxiHold,
	parseTaxiContinue,
	parseTakeoff,
	parseLineUp,
	parseApproach,
	parseDepart,
	parseClearance,
	parseDelete,
	parseTaxi,
}

// Parse splits text into comma-separated phrases and runs each through
// the parser table. Never returns an error: a phrase that matches
// nothing simply contributes no task (spec.md §4.5, §7 taxonomy (a)).
func Parse(text string) []sim.Task {
	var tasks []sim.Task
	for _, phrase := range strings.Split(text, ",") {
		tokens := strings.Fields(phrase)
		if len(tokens) == 0 {
			continue
		}
		for _, p := range parsers {
			if t, ok := p(tokens); ok {
				tasks = append(tasks, t)
				break
			}
		}
	}
	return tasks
}

func isAlias(tok string, aliases ...string) bool {
	tok = strings.ToLower(tok)
	for _, a := range aliases {
		if tok == a {
			return true
		}
	}
	return false
}

func parseNumberTask(tokens []string, aliases []string, build func(v float32) sim.Task) (sim.Task, bool) {
	if len(tokens) != 2 || !isAlias(tokens[0], aliases...) {
		return nil, false
	}
	v, err := strconv.ParseFloat(tokens[1], 32)
	if err != nil {
		return nil, false
	}
	return build(float32(v)), true
}

func parseIDTask(tokens []string, aliases []string, upper bool, build func(id string) sim.Task) (sim.Task, bool) {
	if len(tokens) != 2 || !isAlias(tokens[0], aliases...) {
		return nil, false
	}
	id := tokens[1]
	if upper {
		id = strings.ToUpper(id)
	} else {
		id = strings.ToLower(id)
	}
	return build(id), true
}

func parseBareTask(tokens []string, aliases []string, task sim.Task) (sim.Task, bool) {
	if len(tokens) != 1 || !isAlias(tokens[0], aliases...) {
		return nil, false
	}
	return task, true
}

func parseAltitude(tokens []string) (sim.Task, bool) {
	return parseNumberTask(tokens, []string{"a", "alt", "altitude"}, func(v float32) sim.Task {
		return sim.SetAltitude{Altitude: v * 100}
	})
}

func parseHeading(tokens []string) (sim.Task, bool) {
	return parseNumberTask(tokens, []string{"t", "turn", "heading", "h"}, func(v float32) sim.Task {
		return sim.SetHeading{Heading: v}
	})
}

func parseSpeed(tokens []string) (sim.Task, bool) {
	return parseNumberTask(tokens, []string{"s", "spd", "speed"}, func(v float32) sim.Task {
		return sim.SetSpeed{Speed: v}
	})
}

func parseFrequency(tokens []string) (sim.Task, bool) {
	return parseNumberTask(tokens, []string{"f", "freq", "frequency", "tune"}, func(v float32) sim.Task {
		return sim.SetFrequency{Frequency: v}
	})
}

func parseNamedFrequency(tokens []string) (sim.Task, bool) {
	return parseIDTask(tokens, []string{"fn"}, false, func(name string) sim.Task {
		return sim.SetNamedFrequency{Name: name}
	})
}

func parseDirect(tokens []string) (sim.Task, bool) {
	return parseIDTask(tokens, []string{"d", "dt", "direct"}, true, func(id string) sim.Task {
		return sim.Direct{Waypoint: id}
	})
}

func parseApproach(tokens []string) (sim.Task, bool) {
	return parseIDTask(tokens, []string{"ap", "appr", "approach"}, true, func(id string) sim.Task {
		return sim.ApproachVia{SetID: id}
	})
}

func parseDepart(tokens []string) (sim.Task, bool) {
	return parseIDTask(tokens, []string{"dp", "dep", "depart"}, true, func(id string) sim.Task {
		return sim.DepartVia{SetID: id}
	})
}

func parseLand(tokens []string) (sim.Task, bool) {
	return parseIDTask(tokens, []string{"l", "land", "cl"}, true, func(id string) sim.Task {
		return sim.LandOn{Runway: id}
	})
}

func parseTakeoff(tokens []string) (sim.Task, bool) {
	return parseIDTask(tokens, []string{"ct", "to", "takeoff"}, true, func(id string) sim.Task {
		return sim.TakeoffFrom{Runway: id}
	})
}

func parseLineUp(tokens []string) (sim.Task, bool) {
	return parseIDTask(tokens, []string{"lu", "line"}, true, func(id string) sim.Task {
		return sim.LineUpOn{Runway: id}
	})
}

func parseGoAround(tokens []string) (sim.Task, bool) {
	return parseBareTask(tokens, []string{"g", "ga", "go"}, sim.GoAround{Reason: sim.ReasonTooHigh})
}

func parseIdent(tokens []string) (sim.Task, bool) {
	return parseBareTask(tokens, []string{"i", "ident"}, sim.IdentEvent{})
}

func parseResume(tokens []string) (sim.Task, bool) {
	return parseBareTask(tokens, []string{"r", "raf", "resume"}, sim.ResumeOwnNavigation{})
}

func parseTaxiHold(tokens []string) (sim.Task, bool) {
	return parseBareTask(tokens, []string{"th", "hold"}, sim.TaxiHoldEvent{})
}

func parseTaxiContinue(tokens []string) (sim.Task, bool) {
	return parseBareTask(tokens, []string{"tc", "c", "continue"}, sim.TaxiContinueEvent{})
}

func parseDelete(tokens []string) (sim.Task, bool) {
	return parseBareTask(tokens, []string{"delete", "del"}, sim.DeleteEvent{})
}

// parseClearance parses "clear" (or "cx"/"clearance") followed by any
// number of key/value pairs (dep <id>, alt <ft/100>, spd <kt>), in any
// order, each amending one optional field of the flight plan.
func parseClearance(tokens []string) (sim.Task, bool) {
	if len(tokens) < 1 || !isAlias(tokens[0], "cx", "clear", "clearance") {
		return nil, false
	}
	rest := tokens[1:]
	if len(rest)%2 != 0 {
		return nil, false
	}

	var ev sim.ClearanceEvent
	for i := 0; i < len(rest); i += 2 {
		key, val := strings.ToLower(rest[i]), rest[i+1]
		switch key {
		case "dep":
			dep := strings.ToUpper(val)
			ev.Departure = &dep
		case "alt":
			v, err := strconv.ParseFloat(val, 32)
			if err != nil {
				return nil, false
			}
			alt := float32(v) * 100
			ev.Altitude = &alt
		case "spd":
			v, err := strconv.ParseFloat(val, 32)
			if err != nil {
				return nil, false
			}
			spd := float32(v)
			ev.Speed = &spd
		default:
			return nil, false
		}
	}
	return ev, true
}

// parseTaxi matches "tx [short|gate] <target> [via <feature> ...]"
// (spec.md §4.5). The behavior modifier is optional (default GoTo); an
// explicit via-list names intermediate features the route must pass
// through, with the target itself (carrying the behavior) appended
// last: the target, named right after its modifier, ends up last in
// the resolved waypoint stack once via is present.
func parseTaxi(tokens []string) (sim.Task, bool) {
	if len(tokens) < 2 || !isAlias(tokens[0], "tx", "taxi") {
		return nil, false
	}
	rest := tokens[1:]

	behavior := av.BehaviorGoTo
	switch strings.ToLower(rest[0]) {
	case "short":
		behavior = av.BehaviorHoldShort
		rest = rest[1:]
	case "gate":
		behavior = av.BehaviorPark
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil, false
	}
	target := strings.ToUpper(rest[0])
	rest = rest[1:]

	if len(rest) == 0 {
		return sim.TaxiRequest{Target: target, Behavior: behavior}, true
	}
	if len(rest) < 2 || !isAlias(rest[0], "via") {
		return nil, false
	}
	via := make([]string, 0, len(rest)-1)
	for _, tok := range rest[1:] {
		via = append(via, strings.ToUpper(tok))
	}
	return sim.TaxiRequest{Via: via, Target: target, Behavior: behavior}, true
}
