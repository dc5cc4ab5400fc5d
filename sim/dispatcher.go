// sim/dispatcher.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"slices"
	"time"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/pathfinder"
)

// CommandWithFreq is a controller instruction addressed to one aircraft
// on one frequency, per spec.md §4.4. Dispatch does not fill in Reply:
// it returns the rendered readback text as its reply result instead.
type CommandWithFreq struct {
	Callsign  av.Callsign
	Frequency float32
	Reply     string
	Tasks     []Task
	CreatedAt time.Time
}

// Finders maps an airport id to its pathfinder, so the dispatcher can
// resolve Taxi/LineUp/Takeoff tasks into concrete ground routes.
type Finders map[string]*pathfinder.Finder

// Dispatch validates a command's addressing (spec.md §4.4 "Addressing":
// callsign AND frequency must both match) and translates its tasks into
// events queued for the aircraft. ok is false when the command is
// unaddressable (unknown callsign or mistuned frequency), in which case
// the caller must not produce a readback. On success, reply is the
// rendered readback text per spec.md §4.4 "Callout policy" — every
// accepted command produces one, except an Ident-only command, which
// produces none.
func Dispatch(cmd CommandWithFreq, game *av.Game, world *av.World, finders Finders) (events []Event, reply string, ok bool) {
	ac, found := game.ByCallsign(cmd.Callsign)
	if !found || ac.Frequency != cmd.Frequency {
		return nil, "", false
	}

	for _, t := range cmd.Tasks {
		if kind, ok := resolveTask(ac, world, finders, t); ok {
			events = append(events, Event{Callsign: cmd.Callsign, Kind: kind, CreatedAt: cmd.CreatedAt})
		}
	}

	if !isIdentOnly(cmd.Tasks) {
		reply = RenderAll(cmd.Tasks)
	}
	return events, reply, true
}

// isIdentOnly reports whether tasks is exactly a single Ident — the one
// accepted command spec.md §4.4 "Callout policy" exempts from producing
// a readback.
func isIdentOnly(tasks []Task) bool {
	if len(tasks) != 1 {
		return false
	}
	_, ok := tasks[0].(IdentEvent)
	return ok
}

// resolveTask turns one Task into a tick-ready EventKind. Most tasks
// pass through verbatim — the same types serve as both Task and
// EventKind — but the taxi-family tasks need the aircraft's current
// position and the airport's pathfinder to become a concrete route.
func resolveTask(ac *av.Aircraft, world *av.World, finders Finders, t Task) (EventKind, bool) {
	switch v := t.(type) {
	case TaxiRequest:
		return resolveTaxi(ac, world, finders, v)
	case TakeoffFrom:
		return resolveTaxi(ac, world, finders, TaxiRequest{Target: v.Runway, Behavior: av.BehaviorTakeoff})
	case LineUpOn:
		return resolveTaxi(ac, world, finders, TaxiRequest{Target: v.Runway, Behavior: av.BehaviorLineUp})
	default:
		return v, true
	}
}

// currentNode returns the ground feature id the aircraft is physically
// at, for taxi routing purposes. Only Taxiing and Parked aircraft have
// one.
func currentNode(ac *av.Aircraft) (string, bool) {
	switch st := ac.State.(type) {
	case av.Taxiing:
		return st.CurrentNode, true
	case av.Parked:
		return st.AtNode, true
	default:
		return "", false
	}
}

func resolveTaxi(ac *av.Aircraft, world *av.World, finders Finders, req TaxiRequest) (EventKind, bool) {
	from, ok := currentNode(ac)
	if !ok {
		return nil, false
	}
	_, ap := world.ClosestAirport(ac.Pos)
	if ap == nil {
		return nil, false
	}
	finder, ok := finders[ap.ID]
	if !ok {
		return nil, false
	}

	if len(req.Via) > 0 {
		wps, ok := finder.RouteVia(from, append(req.Via, req.Target), req.Behavior)
		if !ok {
			return nil, false
		}
		slices.Reverse(wps) // travel order -> stack order (next stop last)
		return TaxiTo{Waypoints: wps}, true
	}

	wps, ok := finder.Query(from, req.Target, ac.Pos, ac.Heading, req.Behavior)
	if !ok {
		return nil, false
	}
	slices.Reverse(wps) // travel order -> stack order (next stop last)
	return TaxiTo{Waypoints: wps}, true
}

// handleEvent applies one already-queued, aircraft-addressed event,
// producing the actions the tick's action-handler phase will apply. This
// is phase 1 of spec.md §4.2's per-tick pipeline.
func handleEvent(ac *av.Aircraft, world *av.World, ev EventKind) []ActionKind {
	switch v := ev.(type) {
	case SetHeading:
		if _, flying := ac.State.(av.Flying); !flying {
			return nil
		}
		return []ActionKind{
			SetWaypointIndex{Index: len(ac.FlightPlan.Waypoints)},
			SetTargetHeading{Heading: v.Heading},
		}

	case SetAltitude:
		return []ActionKind{SetTargetAltitude{Altitude: v.Altitude}}

	case SetSpeed:
		return []ActionKind{SetTargetSpeed{Speed: v.Speed}}

	case SetFrequency:
		return []ActionKind{SetFrequencyAction{Frequency: v.Frequency}}

	case SetNamedFrequency:
		airspace, _ := world.ClosestAirport(ac.Pos)
		if airspace == nil {
			return nil
		}
		freq, ok := namedFrequency(airspace.Frequencies, v.Name)
		if !ok {
			return nil
		}
		return []ActionKind{SetFrequencyAction{Frequency: freq}}

	case Direct:
		if _, flying := ac.State.(av.Flying); !flying {
			return nil
		}
		for i, wp := range ac.FlightPlan.Waypoints {
			if wp.Name == v.Waypoint {
				return []ActionKind{SetWaypointIndex{Index: i}}
			}
		}
		return nil

	case ApproachVia:
		if _, flying := ac.State.(av.Flying); !flying {
			return nil
		}
		set, ok := world.WaypointSets[v.SetID]
		if !ok {
			return nil
		}
		return []ActionKind{
			SetFlightPlanWaypoints{Waypoints: world.ResolveWaypoints(set.Approach)},
			SetApproachName{Name: v.SetID},
		}

	case DepartVia:
		if _, flying := ac.State.(av.Flying); !flying {
			return nil
		}
		set, ok := world.WaypointSets[v.SetID]
		if !ok {
			return nil
		}
		return []ActionKind{
			SetFlightPlanWaypoints{Waypoints: world.ResolveWaypoints(set.Departure)},
			SetDepartureName{Name: v.SetID},
		}

	case LandOn:
		if _, found := findRunwayUnderAircraft(world, ac, v.Runway); !found {
			return nil
		}
		return []ActionKind{SetAircraftState{State: av.Landing{Runway: v.Runway, Phase: av.LandingApproaching}}}

	case GoAround:
		if _, landing := ac.State.(av.Landing); !landing {
			return nil
		}
		return []ActionKind{
			SetAircraftState{State: av.Flying{}},
			Callout{Text: "going around"},
			CreditPoints{Landing: true, Funds: -av.GoAroundPenalty},
		}

	case TaxiTo:
		mode := av.TaxiArmed
		return []ActionKind{SetAircraftState{State: av.Taxiing{CurrentNode: currentNodeOrEmpty(ac), Waypoints: v.Waypoints, Mode: mode}}}

	case TaxiHoldEvent:
		if t, ok := ac.State.(av.Taxiing); ok {
			t.Mode = av.TaxiStopped
			return []ActionKind{SetAircraftState{State: t}}
		}
		return nil

	case TaxiContinueEvent:
		if t, ok := ac.State.(av.Taxiing); ok {
			t.Mode = av.TaxiArmed
			return []ActionKind{SetAircraftState{State: t}}
		}
		return nil

	case ResumeOwnNavigation:
		return []ActionKind{SetWaypointIndex{Index: 0}}

	case IdentEvent:
		return nil

	case ClearanceEvent:
		return []ActionKind{AmendFlightPlan{Departure: v.Departure, CruiseAlt: v.Altitude, CruiseKt: v.Speed}}

	case DeleteEvent:
		return []ActionKind{DeleteAircraft{}}

	case QuickDepartEvent:
		return handleQuickDepart(ac)

	default:
		return nil
	}
}

func currentNodeOrEmpty(ac *av.Aircraft) string {
	n, _ := currentNode(ac)
	return n
}

func findRunwayUnderAircraft(world *av.World, ac *av.Aircraft, runway string) (av.Runway, bool) {
	_, ap := world.ClosestAirport(ac.Pos)
	if ap == nil {
		return av.Runway{}, false
	}
	return ap.Runway(runway)
}

func namedFrequency(f av.Frequencies, name string) (float32, bool) {
	switch name {
	case "approach":
		return f.Approach, true
	case "departure":
		return f.Departure, true
	case "tower":
		return f.Tower, true
	case "ground":
		return f.Ground, true
	case "center":
		return f.Center, true
	case "clearance":
		return f.Clearance, true
	default:
		return 0, false
	}
}

// handleQuickDepart pushes a parked aircraft off the gate: the spawn
// signal generator (spec.md §4.4 "Spawn policy") only selects aircraft
// that are already Parked in a controlled airspace, so this just needs
// to move it into the taxi-out segment; the actual taxi route to the
// runway is left to the controller's subsequent Taxi command — the
// engine starts the clock, the controller drives.
func handleQuickDepart(ac *av.Aircraft) []ActionKind {
	if _, parked := ac.State.(av.Parked); !parked {
		return nil
	}
	node, _ := currentNode(ac)
	return []ActionKind{
		SetAircraftState{State: av.Taxiing{CurrentNode: node, Mode: av.TaxiArmed}},
		SetSegment{Segment: av.SegmentTaxiDep},
	}
}
