// aviation/segment.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

// Segment is a coarse flag for the aircraft's flight phase, used by
// displays and by go/no-go checks (e.g., "is this aircraft on the
// ground") that don't want to switch on the full State variant.
type Segment int

const (
	SegmentDormant Segment = iota
	SegmentBoarding
	SegmentParked
	SegmentTaxiDep
	SegmentTakeoff
	SegmentDeparture
	SegmentClimb
	SegmentCruise
	SegmentArrival
	SegmentApproach
	SegmentLanding
	SegmentTaxiArr
)

// OnGround reports whether the segment corresponds to a ground phase.
func (s Segment) OnGround() bool {
	switch s {
	case SegmentDormant, SegmentBoarding, SegmentParked, SegmentTaxiDep, SegmentTaxiArr:
		return true
	default:
		return false
	}
}

func (s Segment) String() string {
	switch s {
	case SegmentDormant:
		return "dormant"
	case SegmentBoarding:
		return "boarding"
	case SegmentParked:
		return "parked"
	case SegmentTaxiDep:
		return "taxi-departure"
	case SegmentTakeoff:
		return "takeoff"
	case SegmentDeparture:
		return "departure"
	case SegmentClimb:
		return "climb"
	case SegmentCruise:
		return "cruise"
	case SegmentArrival:
		return "arrival"
	case SegmentApproach:
		return "approach"
	case SegmentLanding:
		return "landing"
	case SegmentTaxiArr:
		return "taxi-arrival"
	default:
		return "unknown"
	}
}

// TCASState is the traffic collision avoidance advisory an aircraft is
// currently following.
type TCASState int

const (
	TCASIdle TCASState = iota
	TCASWarning
	TCASClimb
	TCASDescend
	TCASHold
)

func (t TCASState) String() string {
	switch t {
	case TCASIdle:
		return "idle"
	case TCASWarning:
		return "warning"
	case TCASClimb:
		return "climb"
	case TCASDescend:
		return "descend"
	case TCASHold:
		return "hold"
	default:
		return "unknown"
	}
}
