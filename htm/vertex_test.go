/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package htm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriangleOfFaces(t *testing.T) {
	tri, err := TriangleOf(8)
	require.NoError(t, err)
	require.Equal(t, octahedron[1], tri[0])
	require.Equal(t, octahedron[5], tri[1])
	require.Equal(t, octahedron[2], tri[2])

	for id := ID(8); id < 16; id++ {
		tri, err := TriangleOf(id)
		require.NoError(t, err)
		for _, v := range tri {
			require.InDelta(t, 1.0, v.Norm(), 1e-15)
		}
	}
}

func TestTriangleOfChildren(t *testing.T) {
	parent, err := TriangleOf(8)
	require.NoError(t, err)

	child0, err := TriangleOf(32)
	require.NoError(t, err)
	require.Equal(t, parent[0], child0[0])
	require.Equal(t, midpoint(parent[0], parent[1]), child0[1])
	require.Equal(t, midpoint(parent[0], parent[2]), child0[2])

	child3, err := TriangleOf(35)
	require.NoError(t, err)
	require.Equal(t, midpoint(parent[1], parent[2]), child3[0])
	require.Equal(t, midpoint(parent[0], parent[2]), child3[1])
	require.Equal(t, midpoint(parent[0], parent[1]), child3[2])
}

func TestTriangleOfDeep(t *testing.T) {
	rng, err := Extend(14248, MaxLevel)
	require.NoError(t, err)
	tri, err := TriangleOf(rng.Lo)
	require.NoError(t, err)
	for _, v := range tri {
		require.InDelta(t, 1.0, v.Norm(), 1e-12)
	}

	// The cache must hand back the same vertices on a second lookup.
	again, err := TriangleOf(rng.Lo)
	require.NoError(t, err)
	require.Equal(t, tri, again)
}

func TestTriangleOfInvalid(t *testing.T) {
	_, err := TriangleOf(7)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
