/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package sphere

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// ErrHull reports that a spherical convex hull could not be built for a
// point set.
var ErrHull = errors.New("convex hull failed")

// Hull computes the spherical convex hull of the given points and returns it
// as a Convex. The points must fit in an open hemisphere around their
// centroid; larger sets have no convex hull in this model.
func Hull(pts []s2.Point) (*Convex, error) {
	boundary, err := HullVertices(pts)
	if err != nil {
		return nil, err
	}
	cv, err := convexFromBoundary(boundary)
	if err != nil {
		return nil, err
	}
	cv.Simplify()
	return cv, nil
}

// HullVertices computes the spherical convex hull of the given points and
// returns its boundary vertices in counter-clockwise order.
func HullVertices(pts []s2.Point) ([]s2.Point, error) {
	if len(pts) < 3 {
		return nil, errors.Wrapf(ErrHull, "need at least 3 points, have %d", len(pts))
	}
	center, err := centroid(pts)
	if err != nil {
		return nil, err
	}
	flat, err := gnomonic(pts, center)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(pts))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := flat[order[i]], flat[order[j]]
		if a.x != b.x {
			return a.x < b.x
		}
		return a.y < b.y
	})

	// Andrew's monotone chain over the projected points.
	var lower, upper []int
	for _, idx := range order {
		for len(lower) >= 2 && turn(flat[lower[len(lower)-2]], flat[lower[len(lower)-1]], flat[idx]) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, idx)
	}
	for i := len(order) - 1; i >= 0; i-- {
		idx := order[i]
		for len(upper) >= 2 && turn(flat[upper[len(upper)-2]], flat[upper[len(upper)-1]], flat[idx]) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, idx)
	}
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return nil, errors.Wrap(ErrHull, "points are degenerate")
	}
	boundary := make([]s2.Point, len(hull))
	for i, idx := range hull {
		boundary[i] = pts[idx]
	}
	return boundary, nil
}

type planar struct {
	x, y float64
}

func turn(o, a, b planar) float64 {
	return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
}

func centroid(pts []s2.Point) (s2.Point, error) {
	var sum r3.Vector
	for _, p := range pts {
		sum = sum.Add(p.Vector)
	}
	if sum.Norm2() < 1e-30 {
		return s2.Point{}, errors.Wrap(ErrHull, "points have no well-defined centroid")
	}
	return s2.Point{Vector: sum.Normalize()}, nil
}

// gnomonic projects the points onto the tangent plane at center. Points at or
// beyond 90 degrees from the center have no projection, which is also the
// hemisphere bound of the hull model.
func gnomonic(pts []s2.Point, center s2.Point) ([]planar, error) {
	u := center.Ortho()
	v := center.Cross(u)
	flat := make([]planar, len(pts))
	for i, p := range pts {
		d := p.Dot(center.Vector)
		if d < 1e-12 {
			return nil, errors.Wrap(ErrHull, "points span more than a hemisphere")
		}
		flat[i] = planar{x: p.Dot(u) / d, y: p.Dot(v) / d}
	}
	return flat, nil
}

// BoundingCap returns the centroid direction of the points and the maximal
// angular distance from it in degrees, the envelope the cap seed mode feeds
// on.
func BoundingCap(pts []s2.Point) (s2.Point, float64, error) {
	center, err := centroid(pts)
	if err != nil {
		return s2.Point{}, 0, err
	}
	var radius float64
	for _, p := range pts {
		if d := center.Distance(p).Degrees(); d > radius {
			radius = d
		}
	}
	return center, radius, nil
}

// sortAroundCentroid orders points counter-clockwise around their centroid,
// dropping exact duplicates. This is the Safe vertex-order policy.
func sortAroundCentroid(pts []s2.Point) ([]s2.Point, error) {
	center, err := centroid(pts)
	if err != nil {
		return nil, err
	}
	flat, err := gnomonic(pts, center)
	if err != nil {
		return nil, err
	}
	var cx, cy float64
	for _, f := range flat {
		cx += f.x
		cy += f.y
	}
	cx /= float64(len(flat))
	cy /= float64(len(flat))

	order := make([]int, len(pts))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := flat[order[i]], flat[order[j]]
		return math.Atan2(a.y-cy, a.x-cx) < math.Atan2(b.y-cy, b.x-cx)
	})

	sorted := make([]s2.Point, 0, len(pts))
	for _, idx := range order {
		p := pts[idx]
		if len(sorted) > 0 && p == sorted[len(sorted)-1] {
			continue
		}
		sorted = append(sorted, p)
	}
	return sorted, nil
}
