// sim/render.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"strconv"
	"strings"

	av "github.com/mmp/atctower/aviation"
)

// Render is the inverse of Parse for one task: it produces the
// canonical phrase that, parsed back, yields exactly this task (spec.md
// §8 "Parser: for every canonical task form, parse(render(task)) =
// [task]"). Tasks with no free-text form of their own (TaxiTo,
// QuickDepartEvent, and the other resolved/internal event kinds) have
// no canonical phrase and render as "" — they never originate from the
// parser in the first place.
//
// Lives in sim rather than parser so Dispatch can build a command's
// readback without parser importing sim and sim importing parser back.
func Render(t Task) string {
	switch v := t.(type) {
	case SetAltitude:
		return "alt " + trimFloat(v.Altitude/100)
	case SetHeading:
		return "turn " + trimFloat(v.Heading)
	case SetSpeed:
		return "speed " + trimFloat(v.Speed)
	case SetFrequency:
		return "freq " + trimFloat(v.Frequency)
	case SetNamedFrequency:
		return "fn " + strings.ToLower(v.Name)
	case Direct:
		return "direct " + strings.ToUpper(v.Waypoint)
	case ApproachVia:
		return "approach " + strings.ToUpper(v.SetID)
	case DepartVia:
		return "depart " + strings.ToUpper(v.SetID)
	case LandOn:
		return "land " + strings.ToUpper(v.Runway)
	case GoAround:
		return "go"
	case TakeoffFrom:
		return "takeoff " + strings.ToUpper(v.Runway)
	case LineUpOn:
		return "line " + strings.ToUpper(v.Runway)
	case IdentEvent:
		return "ident"
	case ResumeOwnNavigation:
		return "resume"
	case TaxiHoldEvent:
		return "hold"
	case TaxiContinueEvent:
		return "continue"
	case DeleteEvent:
		return "delete"
	case ClearanceEvent:
		return renderClearance(v)
	case TaxiRequest:
		return renderTaxi(v)
	default:
		return ""
	}
}

// RenderAll joins a task list into one comma-separated command string —
// the readback Dispatch attaches to an accepted CommandWithFreq.
func RenderAll(tasks []Task) string {
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if r := Render(t); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, ", ")
}

func renderClearance(v ClearanceEvent) string {
	parts := []string{"clear"}
	if v.Departure != nil {
		parts = append(parts, "dep", strings.ToUpper(*v.Departure))
	}
	if v.Altitude != nil {
		parts = append(parts, "alt", trimFloat(*v.Altitude/100))
	}
	if v.Speed != nil {
		parts = append(parts, "spd", trimFloat(*v.Speed))
	}
	return strings.Join(parts, " ")
}

func renderTaxi(v TaxiRequest) string {
	var b strings.Builder
	b.WriteString("tx")
	switch v.Behavior {
	case av.BehaviorHoldShort:
		b.WriteString(" short")
	case av.BehaviorPark:
		b.WriteString(" gate")
	}
	fmt.Fprintf(&b, " %s", strings.ToUpper(v.Target))
	if len(v.Via) > 0 {
		b.WriteString(" via")
		for _, wp := range v.Via {
			fmt.Fprintf(&b, " %s", strings.ToUpper(wp))
		}
	}
	return b.String()
}

// trimFloat renders a float without a trailing ".0" for whole numbers,
// matching the integer-looking tokens the parser's own numeric fields
// expect back (e.g. "250" not "250.000000").
func trimFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
