/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package sphere provides the spherical-geometry primitives the indexer
// bounds regions with: halfspaces (oriented caps), convexes (intersections of
// halfspaces) and spherical convex hulls. All points are unit vectors on S2,
// represented as s2.Point.
package sphere

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/dkondor/HTMIndex/htm"
)

// Halfspace is an oriented spherical cap: the set of points within Radius
// degrees of Dir. A radius of 90 is a great-circle halfspace, larger radii
// describe caps wider than a hemisphere.
type Halfspace struct {
	Dir    s2.Point
	Radius float64
}

func (h Halfspace) cosRadius() float64 {
	r := h.Radius
	if r < 0 {
		r = 0
	}
	if r > 180 {
		r = 180
	}
	return math.Cos(r * math.Pi / 180)
}

// ContainsPoint reports whether p lies in the cap, boundary included.
func (h Halfspace) ContainsPoint(p s2.Point) bool {
	return p.Dot(h.Dir.Vector) >= h.cosRadius()
}

func (h Halfspace) complement() Halfspace {
	return Halfspace{Dir: s2.Point{Vector: h.Dir.Mul(-1)}, Radius: 180 - h.Radius}
}

type coverage int

const (
	outside coverage = iota
	straddling
	inside
)

// classifyTriangle places a spherical triangle relative to the cap. The
// result is conservative in the safe direction: "outside" is only reported
// when the triangle certainly misses the cap, and "inside" only when the
// triangle is certainly contained.
func (h Halfspace) classifyTriangle(tri htm.Triangle) coverage {
	in := 0
	for _, v := range tri {
		if h.ContainsPoint(v) {
			in++
		}
	}
	switch in {
	case 3:
		if h.Radius <= 90 {
			// The cap is convex, so the geodesic triangle of three interior
			// points stays interior.
			return inside
		}
		if h.complement().avoidsTriangle(tri) {
			return inside
		}
		return straddling
	case 0:
		if h.avoidsTriangle(tri) {
			return outside
		}
		return straddling
	default:
		return straddling
	}
}

// avoidsTriangle reports whether the cap certainly has no point in common
// with the triangle: no vertex inside, no edge passing within the radius and
// the axis not interior to the triangle.
func (h Halfspace) avoidsTriangle(tri htm.Triangle) bool {
	for _, v := range tri {
		if h.ContainsPoint(v) {
			return false
		}
	}
	limit := s1.Angle(h.Radius * math.Pi / 180)
	for i := range 3 {
		if s2.DistanceFromSegment(h.Dir, tri[i], tri[(i+1)%3]) <= limit {
			return false
		}
	}
	return !PointInTriangle(h.Dir, tri)
}

// PointInTriangle reports whether p lies inside the spherical triangle,
// boundary excluded. The test is winding-agnostic.
func PointInTriangle(p s2.Point, tri htm.Triangle) bool {
	s := s2.RobustSign(tri[0], tri[1], tri[2])
	if s == s2.Indeterminate {
		return false
	}
	return s2.RobustSign(tri[0], tri[1], p) == s &&
		s2.RobustSign(tri[1], tri[2], p) == s &&
		s2.RobustSign(tri[2], tri[0], p) == s
}
