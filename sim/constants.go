// sim/constants.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"time"

	av "github.com/mmp/atctower/aviation"
)

// DefaultTickRate is the simulation's default fixed tick rate, in Hz.
const DefaultTickRate = 15

// Convergence rates applied by UpdateFromTargets.
const (
	ClimbRateFtPerSec  = 2000.0 / 60.0 // 2000 ft/min
	TurnRateDegPerSec  = 2.0
	TaxiSpeedRateKtSec = 5.0
	LandingRollKtSec   = 3.3
	FlightSpeedRateKt  = 2.0

	// NoClimbBelowSpeedKt is the speed threshold below which an aircraft
	// cannot climb — it's still rolling or taxiing.
	NoClimbBelowSpeedKt = 140.0

	// LowAltitudeFt/LowSpeedKt gate the taxi/takeoff speed convergence
	// rate: an aircraft near the ground or slow is assumed to be
	// taxiing/rolling rather than in flight.
	LowAltitudeFt = 1000.0
	LowSpeedKt    = 20.0
)

// Altitude bands (spec.md §6).
const (
	ApproachAltitudeFt   = 3000.0
	ArrivalAltitudeFt    = 10000.0
	TransitionAltitudeFt = 18000.0
	MinCruiseAltitudeFt  = 28000.0
)

// Landing-controller constants.
const (
	GlideslopeDeg        = 7.0
	LocaliserConeDeg     = 5.0
	LocaliserRangeNM     = 10.0
	GoAroundMarginFt     = 100.0
	ILSExtensionNM       = 10.0
	ILSThresholdPastFt   = 500.0
	LandingPointOffsetNM = 0.4
	MaxApproachSpeedKt   = 180.0
)

// Takeoff constants.
const (
	TakeoffRollSpeedKt   = 170.0
	TakeoffTargetSpeedKt = 220.0
	TakeoffTargetAltFt   = 3000.0
)

// Taxi constants.
const TaxiHoldSpeedSnapKt = 20.0

// TaxiCollisionRadiusFt is the separation taxiing checks, in every mode
// except Override, against other aircraft before allowing forward motion
// onto the next segment.
const TaxiCollisionRadiusFt = 300.0

// Spawn / points-economy constants.
const (
	DefaultSpawnPeriod = 210 * time.Second
	DefaultSpawnLimit  = 34

	MinFlipDelay = 3 * time.Minute
	MaxFlipDelay = 15 * time.Minute
)

// TCAS proximity envelope (DOMAIN STACK EXPANSION item 1).
const (
	TCASHorizontalFt = 3 * av.NauticalMile
	TCASVerticalFt   = 1000.0
)
