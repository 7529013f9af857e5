/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package region

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/sphere"
)

// ring is a closed boundary on the sphere. The loop always has the
// smaller-than-hemisphere side as its interior, so rings combine by odd-even
// counting regardless of their winding.
type ring struct {
	pts  []s2.Point
	loop *s2.Loop
}

func newRing(pts []s2.Point) (ring, bool) {
	if len(pts) < 3 {
		return ring{}, false
	}
	loop := s2.LoopFromPoints(pts)
	if loop.Area() > 2*math.Pi {
		rev := make([]s2.Point, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		pts = rev
		loop = s2.LoopFromPoints(pts)
	}
	return ring{pts: pts, loop: loop}, true
}

// polygon is one outer boundary with its holes, all held as odd-even rings.
type polygon struct {
	rings []ring
}

func (p *polygon) containsPoint(pt s2.Point) bool {
	in := false
	for _, r := range p.rings {
		if r.loop.ContainsPoint(pt) {
			in = !in
		}
	}
	return in
}

func (p *polygon) containsTriangle(tri htm.Triangle) bool {
	for _, v := range tri {
		if !p.containsPoint(v) {
			return false
		}
	}
	for _, r := range p.rings {
		n := len(r.pts)
		for i := range n {
			a, b := r.pts[i], r.pts[(i+1)%n]
			for k := range 3 {
				if s2.CrossingSign(a, b, tri[k], tri[(k+1)%3]) == s2.Cross {
					return false
				}
			}
		}
		// A boundary fully inside the triangle (a hole, say) has no edge
		// crossings but still punches out area.
		for _, v := range r.pts {
			if sphere.PointInTriangle(v, tri) {
				return false
			}
		}
	}
	return true
}

// Poly is a polygonal Region: a union of polygons on the sphere.
type Poly struct {
	polys []*polygon
}

var _ Region = (*Poly)(nil)

// FromGeom builds a polygonal region from a geography value. The same type
// constraints apply as for Vertices.
func FromGeom(g geom.T) (*Poly, error) {
	pr := &Poly{}
	if err := pr.add(g); err != nil {
		return nil, err
	}
	return pr, nil
}

func (pr *Poly) add(g geom.T) error {
	switch v := g.(type) {
	case *geom.Polygon:
		var p polygon
		for i := range v.NumLinearRings() {
			if r, ok := newRing(ringPoints(v.LinearRing(i))); ok {
				p.rings = append(p.rings, r)
			}
		}
		if len(p.rings) > 0 {
			pr.polys = append(pr.polys, &p)
		}
		return nil
	case *geom.GeometryCollection:
		for i := range v.NumGeoms() {
			if err := pr.add(v.Geom(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Wrapf(ErrUnsupportedGeometry, "cannot index geometry of type %T", g)
	}
}

// IsEmpty reports whether the region has no area left.
func (pr *Poly) IsEmpty() bool {
	return len(pr.polys) == 0
}

// ContainsPoint reports whether pt lies in the union.
func (pr *Poly) ContainsPoint(pt s2.Point) bool {
	for _, p := range pr.polys {
		if p.containsPoint(pt) {
			return true
		}
	}
	return false
}

// ContainsTriangle reports whether some polygon of the union fully contains
// the triangle. The test errs toward false on boundary coincidences; callers
// absorb that with the shrink epsilon.
func (pr *Poly) ContainsTriangle(tri htm.Triangle) bool {
	for _, p := range pr.polys {
		if p.containsTriangle(tri) {
			return true
		}
	}
	return false
}

// IntersectTriangle clips the region to the triangle and returns the result.
// Each ring is clipped against the triangle's three bounding great circles;
// the trixel is convex, so Sutherland-Hodgman applies per ring.
func (pr *Poly) IntersectTriangle(tri htm.Triangle) Region {
	planes, ok := clipPlanes(tri)
	if !ok {
		return &Poly{}
	}
	out := &Poly{}
	for _, p := range pr.polys {
		var np polygon
		for _, r := range p.rings {
			pts := r.pts
			for _, n := range planes {
				pts = clipRing(pts, n)
				if len(pts) == 0 {
					break
				}
			}
			if nr, ok := newRing(pts); ok {
				np.rings = append(np.rings, nr)
			}
		}
		if len(np.rings) > 0 {
			out.polys = append(out.polys, &np)
		}
	}
	return out
}

// clipPlanes returns the triangle's edge-plane normals oriented so the
// interior side is positive.
func clipPlanes(tri htm.Triangle) ([3]r3.Vector, bool) {
	var planes [3]r3.Vector
	orient := s2.RobustSign(tri[0], tri[1], tri[2])
	if orient == s2.Indeterminate {
		return planes, false
	}
	for k := range 3 {
		n := tri[k].Cross(tri[(k+1)%3].Vector)
		if orient == s2.Clockwise {
			n = n.Mul(-1)
		}
		planes[k] = n
	}
	return planes, true
}

// clipRing clips a closed vertex chain against the positive side of the
// great-circle plane with normal n.
func clipRing(pts []s2.Point, n r3.Vector) []s2.Point {
	if len(pts) == 0 {
		return nil
	}
	var out []s2.Point
	cnt := len(pts)
	for i := range cnt {
		s, e := pts[i], pts[(i+1)%cnt]
		sIn := s.Dot(n) >= 0
		eIn := e.Dot(n) >= 0
		switch {
		case eIn && sIn:
			out = append(out, e)
		case eIn && !sIn:
			out = append(out, crossPoint(s, e, n), e)
		case !eIn && sIn:
			out = append(out, crossPoint(s, e, n))
		}
	}
	return out
}

// crossPoint is the point where the arc from s to e meets the great circle
// with normal n.
func crossPoint(s, e s2.Point, n r3.Vector) s2.Point {
	w := s.Mul(e.Dot(n)).Sub(e.Mul(s.Dot(n)))
	if w.Norm2() < 1e-60 {
		// The arc runs along the plane; either endpoint will do.
		return s
	}
	w = w.Normalize()
	if w.Dot(s.Add(e.Vector)) < 0 {
		w = w.Mul(-1)
	}
	return s2.Point{Vector: w}
}
