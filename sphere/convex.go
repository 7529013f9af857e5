/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package sphere

import (
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"

	"github.com/dkondor/HTMIndex/htm"
)

// PointOrder tells the Convex constructor how far to trust the order of an
// incoming vertex list.
type PointOrder int

const (
	// Trusted points already traverse the hull boundary in order.
	Trusted PointOrder = iota
	// Safe points may arrive in any order and are re-sorted around their
	// centroid before halfspaces are derived.
	Safe
)

// Convex is a spherically convex region, the intersection of halfspaces.
// A Convex with no halfspaces is the full sphere.
type Convex struct {
	halves []Halfspace
	empty  bool
}

// ConvexFromCap returns the convex bounded by the single given cap.
func ConvexFromCap(center s2.Point, radiusDeg float64) *Convex {
	return &Convex{halves: []Halfspace{{Dir: center, Radius: radiusDeg}}}
}

// ConvexFromHalfspaces returns the intersection of the given halfspaces.
func ConvexFromHalfspaces(halves ...Halfspace) *Convex {
	return &Convex{halves: halves}
}

// ConvexFromHull builds the convex bounded by great circles through
// consecutive vertices of the given hull boundary. With Safe ordering the
// vertices are first re-sorted around their centroid; with Trusted ordering
// they are taken as a boundary walk in either winding.
func ConvexFromHull(pts []s2.Point, order PointOrder) (*Convex, error) {
	if len(pts) < 3 {
		return nil, errors.Wrapf(ErrHull, "need at least 3 boundary points, have %d", len(pts))
	}
	if order == Safe {
		var err error
		if pts, err = sortAroundCentroid(pts); err != nil {
			return nil, err
		}
	}
	cv, err := convexFromBoundary(pts)
	if err != nil {
		return nil, err
	}
	cv.Simplify()
	return cv, nil
}

func convexFromBoundary(pts []s2.Point) (*Convex, error) {
	center, err := centroid(pts)
	if err != nil {
		return nil, err
	}
	halves, ok := boundaryHalfspaces(pts, center, false)
	if !ok {
		halves, ok = boundaryHalfspaces(pts, center, true)
	}
	if !ok {
		return nil, errors.Wrap(ErrHull, "boundary does not wind around its centroid")
	}
	return &Convex{halves: halves}, nil
}

func boundaryHalfspaces(pts []s2.Point, center s2.Point, reverse bool) ([]Halfspace, bool) {
	n := len(pts)
	halves := make([]Halfspace, 0, n)
	for i := range n {
		a, b := pts[i], pts[(i+1)%n]
		if reverse {
			a, b = b, a
		}
		normal := a.Cross(b.Vector)
		if normal.Norm2() < 1e-30 {
			// Duplicate or antipodal neighbors define no plane.
			continue
		}
		h := Halfspace{Dir: s2.Point{Vector: normal.Normalize()}, Radius: 90}
		if !h.ContainsPoint(center) {
			return nil, false
		}
		halves = append(halves, h)
	}
	return halves, len(halves) >= 3
}

// IsEmpty reports whether the convex has been determined to contain no point.
func (c *Convex) IsEmpty() bool {
	return c.empty
}

// ContainsPoint reports whether p satisfies every halfspace.
func (c *Convex) ContainsPoint(p s2.Point) bool {
	if c.empty {
		return false
	}
	for _, h := range c.halves {
		if !h.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// ContainsTriangle reports whether the triangle is certainly contained in the
// convex. Implements htm.Surface.
func (c *Convex) ContainsTriangle(tri htm.Triangle) bool {
	if c.empty {
		return false
	}
	for _, h := range c.halves {
		if h.classifyTriangle(tri) != inside {
			return false
		}
	}
	return true
}

// IntersectsTriangle reports whether the triangle may share a point with the
// convex. Implements htm.Surface.
func (c *Convex) IntersectsTriangle(tri htm.Triangle) bool {
	if c.empty {
		return false
	}
	for _, h := range c.halves {
		if h.classifyTriangle(tri) == outside {
			return false
		}
	}
	return true
}

// Halfspaces returns the bounding halfspaces.
func (c *Convex) Halfspaces() []Halfspace {
	return c.halves
}

// Simplify drops halfspaces implied by tighter ones and flags the convex as
// empty when two caps cannot meet.
func (c *Convex) Simplify() {
	if c.empty {
		return
	}
	for i := 0; i < len(c.halves) && !c.empty; i++ {
		for j := i + 1; j < len(c.halves); j++ {
			sep := c.halves[i].Dir.Distance(c.halves[j].Dir).Degrees()
			if sep > c.halves[i].Radius+c.halves[j].Radius {
				c.empty = true
				break
			}
		}
	}
	if c.empty {
		return
	}
	kept := make([]Halfspace, 0, len(c.halves))
	for i, h := range c.halves {
		redundant := false
		for j, other := range c.halves {
			if i == j {
				continue
			}
			sep := h.Dir.Distance(other.Dir).Degrees()
			if sep+other.Radius < h.Radius ||
				(sep+other.Radius == h.Radius && j < i) {
				// other's cap sits inside h's, so h constrains nothing.
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, h)
		}
	}
	c.halves = kept
}
