/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package region

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func square(lng, lat, half float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{lng - half, lat - half},
		{lng + half, lat - half},
		{lng + half, lat + half},
		{lng - half, lat + half},
		{lng - half, lat - half},
	}})
}

func TestVerticesPolygon(t *testing.T) {
	pts, err := Vertices(square(0, 0, 10))
	require.NoError(t, err)
	// The repeated closing coordinate is dropped.
	require.Len(t, pts, 4)
	require.Equal(t, PointFromLonLat(-10, -10), pts[0])
	require.Equal(t, PointFromLonLat(10, -10), pts[1])
}

func TestVerticesWithHole(t *testing.T) {
	p := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}, {-10, -10}},
		{{-2, -2}, {2, -2}, {2, 2}, {-2, 2}, {-2, -2}},
	})
	pts, err := Vertices(p)
	require.NoError(t, err)
	// Outer ring first, hole after, holes not distinguished.
	require.Len(t, pts, 8)
	require.Equal(t, PointFromLonLat(-10, -10), pts[0])
	require.Equal(t, PointFromLonLat(-2, -2), pts[4])
}

func TestVerticesCollection(t *testing.T) {
	gc := geom.NewGeometryCollection()
	require.NoError(t, gc.Push(square(0, 0, 5)))

	inner := geom.NewGeometryCollection()
	require.NoError(t, inner.Push(square(40, 20, 5)))
	require.NoError(t, gc.Push(inner))

	pts, err := Vertices(gc)
	require.NoError(t, err)
	require.Len(t, pts, 8)
}

func TestVerticesUnsupported(t *testing.T) {
	unsupported := []geom.T{
		geom.NewPointFlat(geom.XY, []float64{1, 2}),
		geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}),
		geom.NewMultiPoint(geom.XY),
		geom.NewMultiLineString(geom.XY),
		geom.NewMultiPolygon(geom.XY),
	}
	for _, g := range unsupported {
		_, err := Vertices(g)
		require.ErrorIs(t, err, ErrUnsupportedGeometry, "%T", g)
	}

	// The same leaf inside a collection is rejected too.
	gc := geom.NewGeometryCollection()
	require.NoError(t, gc.Push(square(0, 0, 5)))
	require.NoError(t, gc.Push(geom.NewPointFlat(geom.XY, []float64{1, 2})))
	_, err := Vertices(gc)
	require.ErrorIs(t, err, ErrUnsupportedGeometry)
}

func TestRADec(t *testing.T) {
	p := PointFromLonLat(-122.082506, 37.4249518)
	require.InDelta(t, -122.082506, RA(p), 1e-9)
	require.InDelta(t, 37.4249518, Dec(p), 1e-9)
}
