/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"github.com/golang/geo/s2"
	"github.com/golang/glog"
	"github.com/twpayne/go-geom"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/region"
	"github.com/dkondor/HTMIndex/sphere"
	"github.com/dkondor/HTMIndex/x"
)

const (
	// DefaultSeedLevel is the seed level used by the full indexing pipeline.
	DefaultSeedLevel = 8
	// FallbackSeedLevel replaces a seed level given as 0 or above the cap.
	FallbackSeedLevel = 10
	// MaxSeedLevel is the deepest level seed covers are generated at.
	MaxSeedLevel = 16

	// envelopeScale converts a host envelope angle to a halfspace radius.
	// The factor matches the upstream unit convention and must not change.
	envelopeScale = 60
)

// SeedFromVertices bounds a vertex list with its spherical convex hull.
func SeedFromVertices(pts []s2.Point) (*sphere.Convex, error) {
	return sphere.Hull(pts)
}

// SeedFromHullGeometry bounds a region with a hull the host geometry library
// already computed. The hull's vertex order is not trusted.
func SeedFromHullGeometry(g geom.T) (*sphere.Convex, error) {
	pts, err := region.Vertices(g)
	if err != nil {
		return nil, err
	}
	return sphere.ConvexFromHull(pts, sphere.Safe)
}

// SeedFromEnvelope bounds a region with a single cap around the host's
// envelope center, scaled from the envelope angle.
func SeedFromEnvelope(center s2.Point, radiusDeg float64) *sphere.Convex {
	return sphere.ConvexFromCap(center, envelopeScale*radiusDeg)
}

// SeedGlobe returns the eight faces, covering the full sphere.
func SeedGlobe() []htm.ID {
	ids := make([]htm.ID, 8)
	for i := range ids {
		ids[i] = htm.ID(8 + i)
	}
	return ids
}

// ClampSeedLevel applies the seed-level substitution rule: 0 and anything
// above MaxSeedLevel fall back to FallbackSeedLevel.
func ClampSeedLevel(level int) int {
	if level == 0 || level > MaxSeedLevel {
		return FallbackSeedLevel
	}
	return level
}

// SeedCover covers the convex bound with trixels, stepping the cover from
// the faces down to the requested level, and returns the outer markup.
func SeedCover(cv *sphere.Convex, level int) []htm.ID {
	level = ClampSeedLevel(level)
	cv.Simplify()
	if cv.IsEmpty() {
		return nil
	}
	cover := htm.NewCover(cv)
	for cover.Level() < level {
		cover.Step()
	}
	// The outer markup holds inner trixels at the level they resolved at;
	// flatten everything to the seed level so the candidate list is uniform.
	var ids []htm.ID
	for _, id := range cover.Trixels(htm.Outer) {
		rng, err := htm.Extend(id, level)
		x.Check(err)
		for c := rng.Lo; c <= rng.Hi; c++ {
			ids = append(ids, c)
		}
	}
	glog.V(2).Infof("seed cover at level %d: %d trixels", level, len(ids))
	return ids
}
