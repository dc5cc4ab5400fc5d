// sim/event.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"time"

	av "github.com/mmp/atctower/aviation"
)

// EventKind is the tagged union of things that can happen to an
// aircraft in a tick: either a controller instruction (translated from
// a Task by the dispatcher) or an internally generated trigger
// (QuickDepart). Each variant is handled by handleEvent,
// which turns it into zero or more Actions.
type EventKind interface {
	eventKind()
}

// Task is the dispatcher/parser vocabulary from spec.md §4.4/§4.5: every
// controller instruction the parser can produce is also a valid
// EventKind once addressed to an aircraft, so the two share one set of
// types rather than duplicating them.
type Task = EventKind

type SetHeading struct{ Heading float32 }

func (SetHeading) eventKind() {}

type SetAltitude struct{ Altitude float32 }

func (SetAltitude) eventKind() {}

type SetSpeed struct{ Speed float32 }

func (SetSpeed) eventKind() {}

type SetFrequency struct{ Frequency float32 }

func (SetFrequency) eventKind() {}

// SetNamedFrequency resolves to a Frequency via the aircraft's closest
// airspace frequency table at handling time.
type SetNamedFrequency struct{ Name string }

func (SetNamedFrequency) eventKind() {}

type Direct struct{ Waypoint string }

func (Direct) eventKind() {}

type ApproachVia struct{ SetID string }

func (ApproachVia) eventKind() {}

type DepartVia struct{ SetID string }

func (DepartVia) eventKind() {}

type LandOn struct{ Runway string }

func (LandOn) eventKind() {}

// GoAroundReason identifies why a go-around was triggered; currently
// only TooHigh (glideslope exceeded) is produced by the controller, but
// the type leaves room for others without an interface change.
type GoAroundReason string

const ReasonTooHigh GoAroundReason = "too-high"

type GoAround struct{ Reason GoAroundReason }

func (GoAround) eventKind() {}

type TakeoffFrom struct{ Runway string }

func (TakeoffFrom) eventKind() {}

type LineUpOn struct{ Runway string }

func (LineUpOn) eventKind() {}

// TaxiRequest is the Task-level form of a taxi instruction, as the
// parser produces it: either an explicit via-list of feature ids ending
// at Target, or just Target with Via empty (auto-routed). Dispatch
// resolves it into a TaxiTo event with concrete, positioned waypoints;
// a TaxiRequest should never reach the tick loop's event handler.
type TaxiRequest struct {
	Via      []string
	Target   string
	Behavior av.NodeBehavior
}

func (TaxiRequest) eventKind() {}

// TaxiTo is the resolved event form: a concrete, positioned waypoint
// stack ready for the taxi controller.
type TaxiTo struct{ Waypoints []av.TaxiWaypoint }

func (TaxiTo) eventKind() {}

type TaxiHoldEvent struct{}

func (TaxiHoldEvent) eventKind() {}

type TaxiContinueEvent struct{}

func (TaxiContinueEvent) eventKind() {}

type ResumeOwnNavigation struct{}

func (ResumeOwnNavigation) eventKind() {}

// IdentEvent is a no-op reply; it's distinguished from other events only
// so the dispatcher's callout policy can suppress the readback when it's
// the sole task in a command.
type IdentEvent struct{}

func (IdentEvent) eventKind() {}

type ClearanceEvent struct {
	Departure *string
	Altitude  *float32
	Speed     *float32
}

func (ClearanceEvent) eventKind() {}

type DeleteEvent struct{}

func (DeleteEvent) eventKind() {}

// QuickDepartEvent is emitted by the spawn signal generator (spec.md
// §4.4 "Spawn policy"), not by a controller command.
type QuickDepartEvent struct{}

func (QuickDepartEvent) eventKind() {}

// Event is a single instruction addressed to one aircraft, queued for
// the next tick's event-handler phase.
type Event struct {
	ID        string
	Callsign  av.Callsign
	Kind      EventKind
	CreatedAt time.Time
}
