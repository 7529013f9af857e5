/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package index

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/region"
	"github.com/dkondor/HTMIndex/sphere"
	"github.com/dkondor/HTMIndex/x"
)

func squareGeom(lng, lat, half float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{lng - half, lat - half},
		{lng + half, lat - half},
		{lng + half, lat + half},
		{lng - half, lat + half},
		{lng - half, lat - half},
	}})
}

// trixelGeom builds a polygon tracing the trixel's triangle, with vertices
// optionally pulled toward the centroid by nudge.
func trixelGeom(t *testing.T, id htm.ID, nudge float64) *geom.Polygon {
	tri, err := htm.TriangleOf(id)
	require.NoError(t, err)
	if nudge > 0 {
		tri = shrink(tri, nudge)
	}
	coords := make([]geom.Coord, 0, 4)
	for _, v := range tri {
		coords = append(coords, geom.Coord{region.RA(v), region.Dec(v)})
	}
	coords = append(coords, coords[0])
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{coords})
}

func collect(t *testing.T, r region.Region, ids []htm.ID, opts Options) []Classified {
	seq, err := Evaluate(r, ids, opts)
	require.NoError(t, err)
	var out []Classified
	for rec := range seq {
		out = append(out, rec)
	}
	return out
}

func TestEvaluateFaceAsRegion(t *testing.T) {
	// The region is the face triangle itself: one inner record, nothing else.
	r, err := region.FromGeom(trixelGeom(t, 8, 0))
	require.NoError(t, err)

	recs := collect(t, r, []htm.ID{8}, Options{MaxLevel: 1, Epsilon: DefaultEpsilon})
	require.Len(t, recs, 1)
	require.Equal(t, htm.ID(8), recs[0].ID)
	require.Equal(t, Inner, recs[0].State)

	row := rowFor(recs[0])
	rng, err := htm.Extend(8, htm.DepthLevel)
	require.NoError(t, err)
	require.Equal(t, int64(rng.Lo), row.Lo)
	require.Equal(t, int64(rng.Hi), row.Hi)
	require.True(t, row.Full)
}

func TestEvaluateShrinkNecessity(t *testing.T) {
	// A region a hair smaller than trixel 14248: the exact containment probe
	// must fail, the shrunk probe must pass.
	const id = htm.ID(14248)
	level, err := htm.LevelOf(id)
	require.NoError(t, err)
	require.Equal(t, 5, level)

	r, err := region.FromGeom(trixelGeom(t, id, 1e-12))
	require.NoError(t, err)

	recs := collect(t, r, []htm.ID{id}, Options{MaxLevel: level, Epsilon: DefaultEpsilon})
	require.Len(t, recs, 1)
	require.Equal(t, Inner, recs[0].State, "shrunk probe must sit inside the region")

	recs = collect(t, r, []htm.ID{id}, Options{MaxLevel: level, Epsilon: 0})
	require.Len(t, recs, 1)
	require.Equal(t, Partial, recs[0].State, "exact probe must fail on the region boundary")
}

func TestEvaluatePrunesOutside(t *testing.T) {
	// Region on the northern hemisphere, candidate face in the south.
	r, err := region.FromGeom(squareGeom(20, 40, 5))
	require.NoError(t, err)
	recs := collect(t, r, []htm.ID{8}, Options{MaxLevel: 3})
	require.Empty(t, recs)
}

func TestEvaluateKeepIntersections(t *testing.T) {
	r, err := region.FromGeom(squareGeom(-45, 20, 3))
	require.NoError(t, err)

	recs := collect(t, r, []htm.ID{12}, Options{MaxLevel: 1, LevelSkip: 1, KeepIntersections: true})
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		require.Equal(t, Partial, rec.State)
		require.NotNil(t, rec.Clip)
		require.False(t, rec.Clip.IsEmpty())
	}

	recs = collect(t, r, []htm.ID{12}, Options{MaxLevel: 1, LevelSkip: 1})
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		require.Nil(t, rec.Clip)
	}
}

func TestEvaluateSeedLevelEqualsMaxLevel(t *testing.T) {
	g := squareGeom(30, -25, 4)
	r, err := region.FromGeom(g)
	require.NoError(t, err)
	pts, err := region.Vertices(g)
	require.NoError(t, err)
	cv, err := SeedFromVertices(pts)
	require.NoError(t, err)
	seed := SeedCover(cv, 5)

	// No recursion happens: every record is one of the seed trixels.
	seedSet := make(map[htm.ID]bool, len(seed))
	for _, id := range seed {
		seedSet[id] = true
	}
	for _, rec := range collect(t, r, seed, Options{MaxLevel: 5, Epsilon: DefaultEpsilon}) {
		require.True(t, seedSet[rec.ID], "record %d not in the seed cover", rec.ID)
	}
}

func TestEvaluateInnerAndPartialSound(t *testing.T) {
	r, err := region.FromGeom(squareGeom(0, 10, 40))
	require.NoError(t, err)

	recs := collect(t, r, SeedGlobe(), Options{MaxLevel: 3, LevelSkip: 1, Epsilon: DefaultEpsilon, KeepIntersections: true})
	require.NotEmpty(t, recs)

	var inner, partial int
	for _, rec := range recs {
		tri, err := htm.TriangleOf(rec.ID)
		require.NoError(t, err)
		switch rec.State {
		case Inner:
			inner++
			require.True(t, r.ContainsTriangle(shrink(tri, DefaultEpsilon)))
		case Partial:
			partial++
			require.NotNil(t, rec.Clip)
			require.False(t, rec.Clip.IsEmpty())
		default:
			t.Fatalf("outside record emitted: %+v", rec)
		}
	}
	require.NotZero(t, inner)
	require.NotZero(t, partial)
}

func TestEvaluateInvalidOptions(t *testing.T) {
	r, err := region.FromGeom(squareGeom(0, 0, 5))
	require.NoError(t, err)

	for _, opts := range []Options{
		{MaxLevel: 0},
		{MaxLevel: htm.MaxLevel + 1},
		{MaxLevel: 5, Epsilon: -1e-10},
		{MaxLevel: 5, Epsilon: 1},
		{MaxLevel: 5, LevelSkip: 4},
		{MaxLevel: 5, SeedLevel: -1},
	} {
		_, err := Evaluate(r, SeedGlobe(), opts)
		require.ErrorIs(t, err, htm.ErrInvalidArgument, "%+v", opts)
	}
}

func TestEvaluateConsumerStops(t *testing.T) {
	r, err := region.FromGeom(squareGeom(0, 10, 30))
	require.NoError(t, err)
	seq, err := Evaluate(r, SeedGlobe(), Options{MaxLevel: 4})
	require.NoError(t, err)
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)
}

// pointID descends the mesh to the trixel containing p at the given level.
// Points on trixel boundaries are not resolved.
func pointID(p s2.Point, level int) (htm.ID, bool) {
	containing := func(lo, hi htm.ID) (htm.ID, bool) {
		for id := lo; id <= hi; id++ {
			tri, err := htm.TriangleOf(id)
			x.Check(err)
			if sphere.PointInTriangle(p, tri) {
				return id, true
			}
		}
		return 0, false
	}
	cur, ok := containing(8, 15)
	if !ok {
		return 0, false
	}
	for l := 0; l < level; l++ {
		if cur, ok = containing(cur<<2, cur<<2+3); !ok {
			return 0, false
		}
	}
	return cur, true
}
