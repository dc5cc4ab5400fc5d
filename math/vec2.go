// math/vec2.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Vec2 is a 2-D point or vector in feet, world frame.
type Vec2 struct {
	X, Y float32
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func (a Vec2) Scale(s float32) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

func (a Vec2) Dot(b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

func (a Vec2) Length() float32 {
	return Sqrt(a.Dot(a))
}

func (a Vec2) Normalize() Vec2 {
	l := a.Length()
	if l == 0 {
		return Vec2{}
	}
	return a.Scale(1 / l)
}

func Distance(a, b Vec2) float32 {
	return a.Sub(b).Length()
}

func DistanceSquared(a, b Vec2) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

func Lerp2(x float32, a, b Vec2) Vec2 {
	return Vec2{Lerp(x, a.X, b.X), Lerp(x, a.Y, b.Y)}
}

// HeadingVec2 returns the unit vector pointing along the compass heading
// (north=0, east=90, clockwise).
func HeadingVec2(heading float32) Vec2 {
	r := Radians(heading)
	return Vec2{Sin(r), Cos(r)}
}

// Translate moves p by dist feet along the compass heading.
func Translate(p Vec2, heading float32, dist float32) Vec2 {
	return p.Add(HeadingVec2(heading).Scale(dist))
}

// Heading2Vec2 returns the compass heading (north=0, east=90, clockwise)
// from the point "from" to the point "to". This is §9's normative
// convention; the original source also has a mathematical (east=0,
// counterclockwise) convention in a dead code path, which is not used
// here.
func Heading2Vec2(from, to Vec2) float32 {
	v := to.Sub(from)
	return NormalizeHeading(Degrees(Atan2(v.X, v.Y)))
}

// AngleBetween returns the unshortened angle in degrees between two
// vectors, in [0,180].
func AngleBetween(a, b Vec2) float32 {
	an, bn := a.Normalize(), b.Normalize()
	d := Clamp(an.Dot(bn), -1, 1)
	return Degrees(SafeACos(d))
}

// Line is a directed line segment from P0 to P1.
type Line struct {
	P0, P1 Vec2
}

func (l Line) Heading() float32 {
	return Heading2Vec2(l.P0, l.P1)
}

func (l Line) Length() float32 {
	return Distance(l.P0, l.P1)
}

// LineLineIntersect returns the intersection of the two infinite lines
// through (p1,p2) and (p3,p4); ok is false for (near-)parallel lines.
func LineLineIntersect(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	d12x, d12y := p1.X-p2.X, p1.Y-p2.Y
	d34x, d34y := p3.X-p4.X, p3.Y-p4.Y
	denom := d12x*d34y - d12y*d34x
	if Abs(denom) < 1e-5 {
		return Vec2{}, false
	}

	a := p1.X*p2.Y - p1.Y*p2.X
	b := p3.X*p4.Y - p3.Y*p4.X
	numx := a*(p3.X-p4.X) - (p1.X-p2.X)*b
	numy := a*(p3.Y-p4.Y) - (p1.Y-p2.Y)*b
	return Vec2{numx / denom, numy / denom}, true
}

// SegmentSegmentIntersect is LineLineIntersect restricted to the two
// segments' bounding boxes.
func SegmentSegmentIntersect(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	p, ok := LineLineIntersect(p1, p2, p3, p4)
	if !ok {
		return Vec2{}, false
	}
	inside := func(p, a, b Vec2) bool {
		lo, hi := min(a.X, b.X), max(a.X, b.X)
		if p.X < lo-1e-3 || p.X > hi+1e-3 {
			return false
		}
		lo, hi = min(a.Y, b.Y), max(a.Y, b.Y)
		return p.Y >= lo-1e-3 && p.Y <= hi+1e-3
	}
	return p, inside(p, p1, p2) && inside(p, p3, p4)
}

// ClosestPointOnSegment returns the point on segment (a,b) closest to p.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	len2 := ab.Dot(ab)
	if len2 == 0 {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/len2, 0, 1)
	return a.Add(ab.Scale(t))
}

// ClosestPointOnLine returns the point on the infinite line through (a,b)
// closest to p, with no clamping of t to [0,1].
func ClosestPointOnLine(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	len2 := ab.Dot(ab)
	if len2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / len2
	return a.Add(ab.Scale(t))
}
