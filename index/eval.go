/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package index turns a polygonal region on the sphere into a trixel
// covering: a seed cover of a convex bound, refined by recursive
// classification against the region, normalized to uniform deepest-level ID
// ranges.
package index

import (
	"iter"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/region"
	"github.com/dkondor/HTMIndex/x"
)

// State classifies a trixel relative to the region.
type State int

const (
	// Outside trixels are pruned during evaluation and never emitted.
	Outside State = iota
	// Inner trixels lie fully inside the region.
	Inner
	// Partial trixels overlap the region boundary.
	Partial
)

func (s State) String() string {
	switch s {
	case Inner:
		return "inner"
	case Partial:
		return "partial"
	default:
		return "outside"
	}
}

// Classified is one evaluated trixel. Clip is the region clipped to the
// trixel; it is set only for partial trixels at the maximum level and only
// when intersections were requested.
type Classified struct {
	ID    htm.ID
	State State
	Clip  region.Region
}

// Evaluate lazily classifies the candidate trixels against r, subdividing
// partial trixels until the maximum level. Candidates may sit at mixed
// levels. The sequence is produced in traversal order: for each candidate,
// an inner record before any descendant records, siblings by ascending ID.
// Consumers may stop pulling at any point.
func Evaluate(r region.Region, ids []htm.ID, opts Options) (iter.Seq[Classified], error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}
	return func(yield func(Classified) bool) {
		for _, id := range ids {
			if !evalTrixel(r, id, opts, yield) {
				return
			}
		}
	}, nil
}

// evalTrixel classifies one trixel and recurses into its children while the
// consumer keeps pulling. Returns false once the consumer stops.
func evalTrixel(r region.Region, id htm.ID, opts Options, yield func(Classified) bool) bool {
	tri, err := htm.TriangleOf(id)
	x.Check(err)

	probe := tri
	if opts.Epsilon > 0 {
		probe = shrink(tri, opts.Epsilon)
	}
	if r.ContainsTriangle(probe) {
		return yield(Classified{ID: id, State: Inner})
	}

	clip := r.IntersectTriangle(tri)
	if clip == nil || clip.IsEmpty() {
		return true
	}

	level, err := htm.LevelOf(id)
	x.Check(err)
	if level >= opts.MaxLevel {
		rec := Classified{ID: id, State: Partial}
		if opts.KeepIntersections {
			rec.Clip = clip
		}
		return yield(rec)
	}

	next := min(level+opts.LevelSkip, opts.MaxLevel)
	children, err := htm.Extend(id, next)
	x.Check(err)
	// The children are tested against the clip, not the full region: deeper
	// predicates only ever see the geometry local to this trixel.
	for child := children.Lo; child <= children.Hi; child++ {
		if !evalTrixel(clip, child, opts, yield) {
			return false
		}
	}
	return true
}

// shrink pulls the triangle's vertices toward its centroid by factor eps and
// renormalizes. The containment probe uses the shrunk triangle so that exact
// boundary coincidences do not read as false negatives.
func shrink(tri htm.Triangle, eps float64) htm.Triangle {
	c := tri[0].Add(tri[1].Vector).Add(tri[2].Vector).Normalize()
	var out htm.Triangle
	for i, v := range tri {
		moved := v.Sub(v.Sub(c).Mul(eps))
		out[i] = s2.Point{Vector: moved.Normalize()}
	}
	return out
}

// DefaultEpsilon is the shrink factor applied when callers do not choose one.
const DefaultEpsilon = 1e-10

// DefaultLevelSkip is the number of levels descended per recursion step.
const DefaultLevelSkip = 2

// Options parameterize an indexing run.
type Options struct {
	// MaxLevel is the deepest level trixels are refined to, in [1, 20].
	MaxLevel int
	// SeedLevel is the level of the initial cover, in [1, 16]; 0 and
	// out-of-range values above the cap fall back to 10.
	SeedLevel int
	// LevelSkip is how many levels each subdivision descends, in {1, 2, 3};
	// 0 means DefaultLevelSkip.
	LevelSkip int
	// Epsilon is the shrink factor for the containment probe, in [0, 1).
	Epsilon float64
	// KeepIntersections attaches the clipped geometry to partial records at
	// the maximum level.
	KeepIntersections bool
}

// DefaultOptions returns the standard indexing parameters for a maximum
// level.
func DefaultOptions(maxLevel int) Options {
	return Options{
		MaxLevel:  maxLevel,
		SeedLevel: DefaultSeedLevel,
		LevelSkip: DefaultLevelSkip,
		Epsilon:   DefaultEpsilon,
	}
}

func (o Options) validate() (Options, error) {
	if o.MaxLevel < 1 || o.MaxLevel > htm.MaxLevel {
		return o, errors.Wrapf(htm.ErrInvalidArgument, "max level %d outside [1, %d]", o.MaxLevel, htm.MaxLevel)
	}
	if o.Epsilon < 0 || o.Epsilon >= 1 {
		return o, errors.Wrapf(htm.ErrInvalidArgument, "shrink epsilon %g outside [0, 1)", o.Epsilon)
	}
	if o.LevelSkip == 0 {
		o.LevelSkip = DefaultLevelSkip
	}
	if o.LevelSkip < 1 || o.LevelSkip > 3 {
		return o, errors.Wrapf(htm.ErrInvalidArgument, "level skip %d outside {1, 2, 3}", o.LevelSkip)
	}
	if o.SeedLevel < 0 {
		return o, errors.Wrapf(htm.ErrInvalidArgument, "negative seed level %d", o.SeedLevel)
	}
	o.SeedLevel = ClampSeedLevel(o.SeedLevel)
	return o, nil
}
