// math/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// Clamp restricts x to the range [low, high].
func Clamp[T int | int32 | int64 | float32 | float64](x, low, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Lerp linearly interpolates x of the way between a and b; x==0 gives a,
// x==1 gives b.
func Lerp(x, a, b float32) float32 {
	return (1-x)*a + x*b
}

// Mod is a floating-point modulus that always returns a non-negative
// result for a non-negative modulus, unlike the language's %.
func Mod(a, m float32) float32 {
	if a < 0 {
		return m - Mod(-a, m)
	}
	return float32(gomath.Mod(float64(a), float64(m)))
}

func Sqrt(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}

func Abs[T int | int32 | int64 | float32 | float64](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func Radians(d float32) float32 {
	return d * gomath.Pi / 180
}

func Degrees(r float32) float32 {
	return r * 180 / gomath.Pi
}

// float32 constants and bit-level helpers used by transcendentals.go.
const (
	Pi         = float32(gomath.Pi)
	PiOver2    = Pi / 2
	PiOver4    = Pi / 4
	FourOverPi = 4 / Pi
)

var Infinity = float32(gomath.Inf(1))

func Floor(x float32) float32      { return float32(gomath.Floor(float64(x))) }
func SignBit(x float32) bool       { return gomath.Signbit(float64(x)) }
func FloatToBits(f float32) uint32 { return gomath.Float32bits(f) }
func BitsToFloat(b uint32) float32 { return gomath.Float32frombits(b) }
func Exponent(v float32) int       { return int(FloatToBits(v)>>23&0xff) - 127 }
