// aviation/node.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "github.com/mmp/atctower/math"

// FeatureKind is the kind of ground feature a pathfinder node sits on.
type FeatureKind int

const (
	FeatureTaxiway FeatureKind = iota
	FeatureRunway
	FeatureApron
	FeatureGate
	FeatureVOR
)

func (k FeatureKind) String() string {
	switch k {
	case FeatureTaxiway:
		return "taxiway"
	case FeatureRunway:
		return "runway"
	case FeatureApron:
		return "apron"
	case FeatureGate:
		return "gate"
	case FeatureVOR:
		return "vor"
	default:
		return "unknown"
	}
}

// NodeBehavior is the action an aircraft takes once it reaches a given
// node while taxiing.
type NodeBehavior int

const (
	BehaviorGoTo NodeBehavior = iota
	BehaviorPark
	BehaviorHoldShort
	BehaviorTakeoff
	BehaviorLineUp
)

func (b NodeBehavior) String() string {
	switch b {
	case BehaviorGoTo:
		return "goto"
	case BehaviorPark:
		return "park"
	case BehaviorHoldShort:
		return "hold-short"
	case BehaviorTakeoff:
		return "takeoff"
	case BehaviorLineUp:
		return "line-up"
	default:
		return "unknown"
	}
}

// TaxiWaypoint is one stop along a ground route: a position (the
// intersection of two features, or a gate position) plus the feature's
// kind and the behavior to perform there. Pathfinder queries return a
// stack of these; aircraft pop them off as they taxi.
type TaxiWaypoint struct {
	FeatureID string       `json:"feature_id"`
	Kind      FeatureKind  `json:"kind"`
	Behavior  NodeBehavior `json:"behavior"`
	Pos       math.Vec2    `json:"pos"`
}
