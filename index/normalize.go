/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"iter"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/region"
	"github.com/dkondor/HTMIndex/x"
)

// Row is one output record: the deepest-level ID range covering a trixel.
// Every row has the same shape regardless of the trixel's level, so a
// downstream point classifier can filter level-20 point IDs with a single
// BETWEEN Lo AND Hi predicate.
type Row struct {
	Lo   int64
	Hi   int64
	Full bool
	// GeomInt is the region clipped to the trixel, present only on partial
	// rows produced with KeepIntersections.
	GeomInt region.Region
}

// Normalize extends every classified trixel to the fixed deepest level and
// emits uniform rows, preserving order and laziness.
func Normalize(records iter.Seq[Classified]) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for rec := range records {
			if !yield(rowFor(rec)) {
				return
			}
		}
	}
}

func rowFor(rec Classified) Row {
	rng, err := htm.Extend(rec.ID, htm.DepthLevel)
	x.Check(err)
	return Row{
		Lo:      int64(rng.Lo),
		Hi:      int64(rng.Hi),
		Full:    rec.State == Inner,
		GeomInt: rec.Clip,
	}
}
