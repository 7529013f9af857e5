/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package htm

import (
	"sort"

	"github.com/dkondor/HTMIndex/x"
)

// Surface is the minimal geometric interface the cover iterates against.
// ContainsTriangle must never report true for a triangle that is not fully
// inside the surface; IntersectsTriangle must never report false for a
// triangle the surface touches. Either may err on the conservative side, at
// the cost of a looser cover.
type Surface interface {
	ContainsTriangle(tri Triangle) bool
	IntersectsTriangle(tri Triangle) bool
}

// Markup selects which trixels of a Cover to report.
type Markup int

const (
	// Outer is the over-approximating markup: fully-inside trixels plus the
	// partially-overlapping frontier.
	Outer Markup = iota
	// Inner is the fully-inside markup only.
	Inner
	// Partial is the current frontier only.
	Partial
)

// Cover is a level-stepped trixel cover of a Surface. It starts at the eight
// faces and refines the partial frontier one level per Step; trixels resolved
// as fully inside stay at the level they were resolved at.
type Cover struct {
	surface Surface
	level   int
	inner   []ID
	partial []ID
}

// NewCover classifies the eight faces against s and returns the level-0 cover.
func NewCover(s Surface) *Cover {
	c := &Cover{surface: s}
	for id := ID(8); id < 16; id++ {
		c.classify(id)
	}
	return c
}

func (c *Cover) classify(id ID) {
	tri, err := TriangleOf(id)
	x.Check(err)
	if c.surface.ContainsTriangle(tri) {
		c.inner = append(c.inner, id)
	} else if c.surface.IntersectsTriangle(tri) {
		c.partial = append(c.partial, id)
	}
}

// Level returns the level of the partial frontier.
func (c *Cover) Level() int {
	return c.level
}

// Step subdivides every partial trixel one level and reclassifies the
// children. Stepping an exhausted frontier only advances the level.
func (c *Cover) Step() {
	if c.level >= MaxLevel {
		return
	}
	c.level++
	frontier := c.partial
	c.partial = nil
	for _, id := range frontier {
		for child := id << 2; child < id<<2+4; child++ {
			c.classify(child)
		}
	}
}

// Trixels returns the requested markup. Inner trixels may sit at coarser
// levels than the frontier; the result is ordered by position along the mesh
// (ascending deepest-level range), which interleaves levels correctly.
func (c *Cover) Trixels(m Markup) []ID {
	var ids []ID
	if m == Outer || m == Inner {
		ids = append(ids, c.inner...)
	}
	if m == Outer || m == Partial {
		ids = append(ids, c.partial...)
	}
	sort.Slice(ids, func(i, j int) bool {
		return meshOrder(ids[i]) < meshOrder(ids[j])
	})
	return ids
}

func meshOrder(id ID) ID {
	r, err := Extend(id, DepthLevel)
	x.Check(err)
	return r.Lo
}
