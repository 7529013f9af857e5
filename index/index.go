/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"iter"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/region"
)

// Create indexes a polygonal geography value: it bounds the region with its
// spherical convex hull, covers the bound at the seed level and refines the
// cover against the region down to opts.MaxLevel. Rows stream lazily in
// traversal order; all validation happens before the first row.
func Create(g geom.T, opts Options) (iter.Seq[Row], error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}
	pts, err := region.Vertices(g)
	if err != nil {
		return nil, err
	}
	cv, err := SeedFromVertices(pts)
	if err != nil {
		return nil, err
	}
	r, err := region.FromGeom(g)
	if err != nil {
		return nil, err
	}
	seed := SeedCover(cv, opts.SeedLevel)
	glog.V(2).Infof("indexing to level %d from %d seed trixels", opts.MaxLevel, len(seed))
	records, err := Evaluate(r, seed, opts)
	if err != nil {
		return nil, err
	}
	return Normalize(records), nil
}

// ChullRanges covers the spherical convex hull of a geography value at the
// given level and emits the cover as deepest-level ranges, with no
// refinement against the region itself. The level goes through the seed
// rules of SeedCover: levels above MaxSeedLevel are covered at
// FallbackSeedLevel.
func ChullRanges(g geom.T, maxLevel int) (iter.Seq[Row], error) {
	if maxLevel < 1 || maxLevel > htm.MaxLevel {
		return nil, errors.Wrapf(htm.ErrInvalidArgument, "max level %d outside [1, %d]", maxLevel, htm.MaxLevel)
	}
	pts, err := region.Vertices(g)
	if err != nil {
		return nil, err
	}
	cv, err := SeedFromVertices(pts)
	if err != nil {
		return nil, err
	}
	seed := SeedCover(cv, maxLevel)
	return RangesOf(seed), nil
}

// RangesOf emits the deepest-level range of each trixel in order, without
// classification.
func RangesOf(ids []htm.ID) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, id := range ids {
			if !yield(rowFor(Classified{ID: id, State: Partial})) {
				return
			}
		}
	}
}
