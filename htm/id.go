/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package htm implements the trixel arithmetic of the Hierarchical Triangular
// Mesh: 64-bit trixel IDs, level handling, truncate/extend range operations,
// vertex lookup and a level-stepped cover of convex surfaces.
//
// The ID encoding follows the HTM paper. The eight octahedron faces are
// level 0 and carry IDs 8 through 15 (a leading 1 bit, the hemisphere bit and
// two face bits). Each deeper level appends two bits, so the four children of
// a trixel t are 4t+0 .. 4t+3 and a level-L ID occupies 4+2L significant
// bits. The deepest level supported here is 20, which keeps every ID well
// inside an int64.
package htm

import (
	"iter"
	"math/bits"

	"github.com/pkg/errors"
)

// ID is an HTM trixel identifier.
type ID int64

// MaxLevel is the deepest subdivision level supported by the mesh.
const MaxLevel = 20

// DepthLevel is the uniform level output ranges are normalized to.
const DepthLevel = 20

// ErrInvalidArgument reports an ID or level outside the valid domain of an
// operation.
var ErrInvalidArgument = errors.New("invalid argument")

// Range is an inclusive pair of trixel IDs at a common level.
type Range struct {
	Lo ID
	Hi ID
}

// LevelOf returns the subdivision level encoded in id.
func LevelOf(id ID) (int, error) {
	if id < 8 {
		return 0, errors.Wrapf(ErrInvalidArgument, "htm id %d below face range", id)
	}
	n := bits.Len64(uint64(id))
	if n%2 != 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "htm id %d has no valid level", id)
	}
	level := (n - 4) / 2
	if level > MaxLevel {
		return 0, errors.Wrapf(ErrInvalidArgument, "htm id %d deeper than level %d", id, MaxLevel)
	}
	return level, nil
}

// Valid reports whether id encodes a trixel at some level in [0, MaxLevel].
func Valid(id ID) bool {
	_, err := LevelOf(id)
	return err == nil
}

// Truncate returns the ancestor of id at the given coarser level.
func Truncate(id ID, level int) (ID, error) {
	cur, err := LevelOf(id)
	if err != nil {
		return 0, err
	}
	if level < 0 || level > cur {
		return 0, errors.Wrapf(ErrInvalidArgument,
			"cannot truncate level %d id %d to level %d", cur, id, level)
	}
	return id >> uint(2*(cur-level)), nil
}

// Extend returns the contiguous range of descendants of id at the given
// deeper level. Extending to the trixel's own level yields (id, id).
func Extend(id ID, level int) (Range, error) {
	cur, err := LevelOf(id)
	if err != nil {
		return Range{}, err
	}
	if level < cur || level > MaxLevel {
		return Range{}, errors.Wrapf(ErrInvalidArgument,
			"cannot extend level %d id %d to level %d", cur, id, level)
	}
	shift := uint(2 * (level - cur))
	return Range{Lo: id << shift, Hi: (id+1)<<shift - 1}, nil
}

// TruncateRange returns the sequence of ancestor IDs at the given coarser
// level covering the inclusive range [lo, hi]. lo and hi must be at the same
// level and in order.
func TruncateRange(lo, hi ID, level int) (iter.Seq[ID], error) {
	llo, err := LevelOf(lo)
	if err != nil {
		return nil, err
	}
	lhi, err := LevelOf(hi)
	if err != nil {
		return nil, err
	}
	if llo != lhi {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"range bounds at different levels: %d vs %d", llo, lhi)
	}
	if hi < lo {
		return nil, errors.Wrapf(ErrInvalidArgument, "inverted range [%d, %d]", lo, hi)
	}
	tlo, err := Truncate(lo, level)
	if err != nil {
		return nil, err
	}
	thi, err := Truncate(hi, level)
	if err != nil {
		return nil, err
	}
	return func(yield func(ID) bool) {
		for id := tlo; id <= thi; id++ {
			if !yield(id) {
				return
			}
		}
	}, nil
}
