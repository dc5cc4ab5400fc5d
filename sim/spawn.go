// sim/spawn.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"strconv"
	"time"

	av "github.com/mmp/atctower/aviation"
)

// MaybeSignalSpawn advances the spawn-period accumulator by elapsed and,
// once it crosses SpawnPeriod, picks a random Parked aircraft sitting in
// a human-controlled airspace (Auto == false — the automated airspace is
// the world's exit, never a spawn source) and returns a QuickDepart event
// for it (spec.md §4.4 "Spawn policy", first sentence). Returns nil on
// ticks that don't cross the period, or when no eligible aircraft exists.
func (e *Engine) MaybeSignalSpawn(world *av.World, game *av.Game, now time.Time, elapsed time.Duration) *Event {
	e.spawnAccum += elapsed
	if e.spawnAccum < e.SpawnPeriod {
		return nil
	}
	e.spawnAccum -= e.SpawnPeriod

	if e.SpawnLimit > 0 && len(game.Aircraft) >= e.SpawnLimit {
		return nil
	}

	var candidates []*av.Aircraft
	for _, ac := range game.Aircraft {
		if _, parked := ac.State.(av.Parked); !parked {
			continue
		}
		airspace, ok := world.Airspace(ac.Airspace)
		if !ok || airspace.Auto {
			continue
		}
		candidates = append(candidates, ac)
	}
	if len(candidates) == 0 {
		return nil
	}

	ac := candidates[e.Rng.Intn(len(candidates))]
	e.markOngoing(game, ac, now)

	return &Event{Callsign: ac.Callsign, Kind: QuickDepartEvent{}, CreatedAt: now}
}

// markOngoing flips the Scheduled flight record this aircraft's next
// departure is waiting on (written by completeAndRecycle, or present from
// the aircraft's initial spawn) to Ongoing, per Open Question 4.
func (e *Engine) markOngoing(game *av.Game, ac *av.Aircraft, now time.Time) {
	for _, f := range game.Flights {
		if f.Status.Scheduled && f.Status.Callsign == ac.Callsign {
			f.Status = av.Ongoing(ac.Callsign)
			return
		}
	}
}

// SpawnScheduledFlights materializes every Flight whose SpawnAt has
// arrived and that hasn't already produced an aircraft: an inbound flight
// appears already Flying over its airspace's centre at
// ArrivalAltitudeFt, an outbound one appears Parked at a free gate. Flights created
// externally via the scheduled-flight API (spec.md §6 "POST /flights")
// are picked up here; flights created internally by completeAndRecycle
// reuse the existing aircraft instead and are skipped (Callsign already
// set before SpawnAt arrives).
func (e *Engine) SpawnScheduledFlights(world *av.World, game *av.Game, now time.Time) {
	for _, f := range game.Flights {
		if !f.Status.Scheduled || f.Status.Callsign != "" || f.SpawnAt.After(now) {
			continue
		}
		airspace, ok := world.Airspace(f.Airspace)
		if !ok || len(airspace.Airports) == 0 {
			continue
		}
		ap := airspace.Airports[0]

		cs := av.Intern(e.randomCallsign())
		switch f.Kind {
		case av.FlightInbound:
			ac := av.NewAircraft(cs, airspace.Centre, 0, av.FlightPlan{Arriving: ap.ID}, airspace.Frequencies.Center, "")
			ac.State = av.Flying{}
			ac.Altitude = ArrivalAltitudeFt
			ac.Speed = MaxApproachSpeedKt
			ac.Segment = av.SegmentArrival
			game.Add(ac)
		case av.FlightOutbound:
			gate, ok := firstAvailableGate(ap)
			if !ok {
				continue
			}
			ac := av.NewAircraft(cs, gate.Pos, gate.Heading, av.FlightPlan{Departing: ap.ID}, airspace.Frequencies.Ground, gate.ID)
			game.Add(ac)
		}
		f.Status = av.Ongoing(cs)
	}
}

func firstAvailableGate(ap *av.Airport) (av.Gate, bool) {
	for _, t := range ap.Terminals {
		for _, g := range t.Gates {
			if g.Available {
				return g, true
			}
		}
	}
	return av.Gate{}, false
}

// randomCallsign draws a generic flight number rather than a real airline
// code; good enough to be unique in practice for externally-scheduled
// flights, which don't arrive with one attached.
func (e *Engine) randomCallsign() string {
	return "FLT" + strconv.Itoa(1000+e.Rng.Intn(9000))
}
