/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package htm

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/dkondor/HTMIndex/x"
)

// Triangle holds the three Cartesian vertices of a trixel, in the order
// defined by the mesh subdivision.
type Triangle [3]s2.Point

// The six octahedron vertices the mesh is anchored on.
var octahedron = [6]s2.Point{
	{Vector: r3.Vector{X: 0, Y: 0, Z: 1}},
	{Vector: r3.Vector{X: 1, Y: 0, Z: 0}},
	{Vector: r3.Vector{X: 0, Y: 1, Z: 0}},
	{Vector: r3.Vector{X: -1, Y: 0, Z: 0}},
	{Vector: r3.Vector{X: 0, Y: -1, Z: 0}},
	{Vector: r3.Vector{X: 0, Y: 0, Z: -1}},
}

// Vertex indices of the eight faces, S0..S3 then N0..N3, matching IDs 8..15.
var faceVertices = [8][3]int{
	{1, 5, 2},
	{2, 5, 3},
	{3, 5, 4},
	{4, 5, 1},
	{1, 0, 4},
	{4, 0, 3},
	{3, 0, 2},
	{2, 0, 1},
}

// triangles are looked up repeatedly while refining and the midpoint walk
// rederives every ancestor each time, so cache resolved vertices by ID.
var triCache *ristretto.Cache[int64, Triangle]

func init() {
	var err error
	triCache, err = ristretto.NewCache(&ristretto.Config[int64, Triangle]{
		NumCounters: 1 << 16,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	x.Check(err)
}

func midpoint(a, b s2.Point) s2.Point {
	return s2.Point{Vector: a.Add(b.Vector).Normalize()}
}

// TriangleOf returns the vertices of the trixel with the given ID.
func TriangleOf(id ID) (Triangle, error) {
	level, err := LevelOf(id)
	if err != nil {
		return Triangle{}, err
	}
	if tri, ok := triCache.Get(int64(id)); ok {
		return tri, nil
	}

	shift := uint(2 * level)
	face := faceVertices[id>>shift-8]
	tri := Triangle{octahedron[face[0]], octahedron[face[1]], octahedron[face[2]]}
	for shift >= 2 {
		shift -= 2
		w0 := midpoint(tri[1], tri[2])
		w1 := midpoint(tri[0], tri[2])
		w2 := midpoint(tri[0], tri[1])
		switch id >> shift & 3 {
		case 0:
			tri = Triangle{tri[0], w2, w1}
		case 1:
			tri = Triangle{tri[1], w0, w2}
		case 2:
			tri = Triangle{tri[2], w1, w0}
		case 3:
			tri = Triangle{w0, w1, w2}
		}
	}
	triCache.Set(int64(id), tri, 1)
	return tri, nil
}
