// aviation/flight.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "time"

// FlightKind is whether a scheduled flight slot is an arrival into the
// world or a departure out of it.
type FlightKind int

const (
	FlightInbound FlightKind = iota
	FlightOutbound
)

// FlightStatus is a scheduled flight's lifecycle state, per spec.md §3:
// scheduled -> ongoing(callsign) -> completed(callsign, duration).
type FlightStatus struct {
	Scheduled bool
	Ongoing   bool
	Completed bool

	Callsign Callsign
	Duration time.Duration
}

func Scheduled() FlightStatus { return FlightStatus{Scheduled: true} }

func Ongoing(cs Callsign) FlightStatus {
	return FlightStatus{Ongoing: true, Callsign: cs}
}

func Completed(cs Callsign, d time.Duration) FlightStatus {
	return FlightStatus{Completed: true, Callsign: cs, Duration: d}
}

// Flight is a scheduled flight slot, created by an external caller (the
// scheduled-flight CRUD described in spec.md §6) and picked up by the
// simulator's spawner when its SpawnAt time arrives.
type Flight struct {
	ID       string
	Kind     FlightKind
	Status   FlightStatus
	SpawnAt  time.Time
	Airspace string // which airspace this flight arrives at / departs from
}
