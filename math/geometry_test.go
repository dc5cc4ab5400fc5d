// math/geometry_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddDegreesMatchesNormalize(t *testing.T) {
	for _, tc := range []struct{ a, b float32 }{
		{10, 20}, {350, 20}, {0, 360}, {-10, 5}, {720, 1},
	} {
		require.InDelta(t, NormalizeHeading(tc.a+tc.b), AddDegrees(tc.a, tc.b), 1e-3)
	}
}

func TestDeltaAngleIdempotent(t *testing.T) {
	for _, a := range []float32{0, 90, 180, 270, 359} {
		require.InDelta(t, float32(0), DeltaAngleSigned(a, a), 1e-3)
	}
}

func TestDeltaAngleShortPath(t *testing.T) {
	// Heading 10 should turn toward 350 via -20, not +340.
	d := DeltaAngleSigned(10, 350)
	require.InDelta(t, float32(-20), d, 1e-3)
}

func TestHeading2Vec2Compass(t *testing.T) {
	// North = 0, east = 90, clockwise.
	require.InDelta(t, float32(0), Heading2Vec2(Vec2{0, 0}, Vec2{0, 10}), 1e-2)
	require.InDelta(t, float32(90), Heading2Vec2(Vec2{0, 0}, Vec2{10, 0}), 1e-2)
	require.InDelta(t, float32(180), Heading2Vec2(Vec2{0, 0}, Vec2{0, -10}), 1e-2)
	require.InDelta(t, float32(270), Heading2Vec2(Vec2{0, 0}, Vec2{-10, 0}), 1e-2)
}

func TestSegmentIntersection(t *testing.T) {
	// Taxiway A (0,0)->(10,0) and taxiway B (5,-5)->(5,5) cross at (5,0).
	p, ok := SegmentSegmentIntersect(Vec2{0, 0}, Vec2{10, 0}, Vec2{5, -5}, Vec2{5, 5})
	require.True(t, ok)
	require.InDelta(t, float32(5), p.X, 1e-2)
	require.InDelta(t, float32(0), p.Y, 1e-2)
}

func TestSegmentIntersectionMiss(t *testing.T) {
	// Parallel segments never intersect.
	_, ok := SegmentSegmentIntersect(Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 5}, Vec2{10, 5})
	require.False(t, ok)
}

func TestClosestPointOnSegment(t *testing.T) {
	p := ClosestPointOnSegment(Vec2{5, 5}, Vec2{0, 0}, Vec2{10, 0})
	require.InDelta(t, float32(5), p.X, 1e-2)
	require.InDelta(t, float32(0), p.Y, 1e-2)

	// Clamped to the endpoint when the projection falls outside the segment.
	p = ClosestPointOnSegment(Vec2{-5, 5}, Vec2{0, 0}, Vec2{10, 0})
	require.InDelta(t, float32(0), p.X, 1e-2)
	require.InDelta(t, float32(0), p.Y, 1e-2)
}

func TestTranslate(t *testing.T) {
	// Translating due east (90) by 10 should move +X by 10.
	p := Translate(Vec2{0, 0}, 90, 10)
	require.InDelta(t, float32(10), p.X, 1e-2)
	require.InDelta(t, float32(0), p.Y, 1e-2)
}
