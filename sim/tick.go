// sim/tick.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"time"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/pathfinder"
	"github.com/mmp/atctower/rand"
)

// Engine owns the per-tick entity-component pipeline (spec.md §4.2) and
// the spawn signal generator (§4.4). It holds no aircraft state itself —
// that lives in the caller's *av.Game — only the seeded RNG and the
// per-airport pathfinders the dispatcher needs to resolve taxi tasks.
type Engine struct {
	Rate        int
	DT          float32
	Rng         rand.Rand
	Finders     Finders
	SpawnPeriod time.Duration
	SpawnLimit  int // spec.md §6 "spawn limit 34": no new QuickDepart once reached

	spawnAccum time.Duration
}

// NewEngine builds an Engine ticking at rate Hz, seeded deterministically,
// with one pathfinder per airport built from world's airspaces.
func NewEngine(rate int, seed uint64, world *av.World) *Engine {
	r := rand.New()
	r.Seed(seed)

	finders := Finders{}
	for _, a := range world.Airspaces {
		for _, ap := range a.Airports {
			finders[ap.ID] = pathfinder.NewFinder(ap)
		}
	}

	return &Engine{
		Rate:        rate,
		DT:          1.0 / float32(rate),
		Rng:         r,
		Finders:     finders,
		SpawnPeriod: DefaultSpawnPeriod,
		SpawnLimit:  DefaultSpawnLimit,
	}
}

// ReplyOut is a callout routed to whichever frequency an aircraft was on
// when it fired, for the loop to broadcast or log.
type ReplyOut struct {
	Callsign  av.Callsign
	Frequency float32
	Text      string
}

// TickOutcome collects everything one Tick produced that isn't a direct
// aircraft-field mutation: callouts to route, aircraft removed from the
// world, and flights that completed this tick.
type TickOutcome struct {
	Replies   []ReplyOut
	Deleted   []av.Callsign
	Completed []av.Callsign
}

// Tick runs one fixed-rate step of the simulation (spec.md §4.2's
// per-aircraft pipeline, plus the whole-world TCAS pass and end-of-tick
// cleanup). events are the already-addressed, already-dispatched
// instructions queued for this tick; Paused suspends only this step, not
// the inbound drain/outbound broadcast that wrap it in the caller's loop.
func (e *Engine) Tick(world *av.World, game *av.Game, events []Event, now time.Time) TickOutcome {
	var outcome TickOutcome
	if game.Paused {
		return outcome
	}

	byCallsign := make(map[av.Callsign][]Event, len(events))
	for _, ev := range events {
		byCallsign[ev.Callsign] = append(byCallsign[ev.Callsign], ev)
	}

	for _, ac := range game.Aircraft {
		var bundle Bundle
		for _, ev := range byCallsign[ac.Callsign] {
			bundle = append(bundle, handleEvent(ac, world, ev.Kind)...)
		}
		bundle = append(bundle, UpdateFromTargets(ac, e.DT)...)
		bundle = append(bundle, UpdatePosition(ac, e.DT)...)
		bundle = append(bundle, UpdateAirspace(ac, world)...)
		bundle = append(bundle, UpdateSegment(ac)...)
		bundle = append(bundle, UpdateLanding(ac, world, e.DT)...)
		bundle = append(bundle, UpdateTaxi(ac, world, game.Aircraft, e.DT)...)
		bundle = append(bundle, UpdateWaypointLimits(ac)...)

		out := apply(ac, bundle)

		if out.callout != "" {
			outcome.Replies = append(outcome.Replies, ReplyOut{ac.Callsign, ac.Frequency, out.callout})
		}
		if out.points != nil {
			if out.points.Landing {
				game.Points.Landings.Mark(now)
			} else {
				game.Points.Takeoffs.Mark(now)
			}
			game.Funds += out.points.Funds
		}
		if out.completedFlight {
			e.completeAndRecycle(world, game, ac, now, &outcome)
		}
		if out.deleted {
			outcome.Deleted = append(outcome.Deleted, ac.Callsign)
		}
	}

	UpdateTCASAll(game.Aircraft)

	if len(outcome.Deleted) > 0 {
		dead := make(map[av.Callsign]bool, len(outcome.Deleted))
		for _, cs := range outcome.Deleted {
			dead[cs] = true
		}
		game.RemoveCallsigns(dead)
	}

	return outcome
}

// completeAndRecycle closes out the Flight record backing ac (Open
// Question 4: ongoing on spawn, completed on Parked-in-arrival-airspace)
// and then either retires the aircraft, if it parked in the world's
// automated exit airspace, or flips its flight plan and schedules its
// next departure (spec.md §4.4 "Spawn policy", second sentence).
func (e *Engine) completeAndRecycle(world *av.World, game *av.Game, ac *av.Aircraft, now time.Time, outcome *TickOutcome) {
	outcome.Completed = append(outcome.Completed, ac.Callsign)

	for _, f := range game.Flights {
		if f.Status.Ongoing && f.Status.Callsign == ac.Callsign {
			f.Status = av.Completed(ac.Callsign, now.Sub(f.SpawnAt))
			break
		}
	}

	if airspace, ok := world.Airspace(ac.Airspace); ok && airspace.Auto {
		outcome.Deleted = append(outcome.Deleted, ac.Callsign)
		return
	}

	ac.FlightPlan = ac.FlightPlan.Flip()
	ac.WaypointIndex = 0

	delay := MinFlipDelay + time.Duration(e.Rng.Intn(int((MaxFlipDelay-MinFlipDelay)/time.Second)+1))*time.Second
	spawnAt := now.Add(delay)
	// Scheduled (not yet Ongoing): the aircraft sits Parked, eligible for
	// the signal generator's next pick, which flips this record to
	// Ongoing when it actually fires the QuickDepart (see spawn.go).
	game.Flights = append(game.Flights, &av.Flight{
		ID:       string(ac.Callsign) + "@" + spawnAt.Format(time.RFC3339Nano),
		Kind:     av.FlightOutbound,
		Status:   av.FlightStatus{Scheduled: true, Callsign: ac.Callsign},
		SpawnAt:  spawnAt,
		Airspace: ac.Airspace,
	})
}
