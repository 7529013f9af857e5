/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package htm_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/require"

	"github.com/dkondor/HTMIndex/htm"
	"github.com/dkondor/HTMIndex/sphere"
)

func TestCoverFullSphere(t *testing.T) {
	cover := htm.NewCover(sphere.ConvexFromHalfspaces())
	require.Equal(t, 0, cover.Level())
	require.Len(t, cover.Trixels(htm.Inner), 8)
	require.Empty(t, cover.Trixels(htm.Partial))

	cover.Step()
	require.Equal(t, 1, cover.Level())
	require.Len(t, cover.Trixels(htm.Outer), 8)
}

func TestCoverCap(t *testing.T) {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(40.5, -100.25))
	cv := sphere.ConvexFromCap(center, 15)

	cover := htm.NewCover(cv)
	for cover.Level() < 5 {
		cover.Step()
	}
	require.Equal(t, 5, cover.Level())

	outer := cover.Trixels(htm.Outer)
	require.NotEmpty(t, outer)
	for _, id := range outer {
		tri, err := htm.TriangleOf(id)
		require.NoError(t, err)
		require.True(t, cv.IntersectsTriangle(tri), "trixel %d does not touch the cap", id)
	}
	// The cap center must be covered.
	covered := false
	for _, id := range outer {
		tri, err := htm.TriangleOf(id)
		require.NoError(t, err)
		if sphere.PointInTriangle(center, tri) {
			covered = true
		}
	}
	require.True(t, covered)

	// Inner trixels are fully inside the cap.
	for _, id := range cover.Trixels(htm.Inner) {
		tri, err := htm.TriangleOf(id)
		require.NoError(t, err)
		require.True(t, cv.ContainsTriangle(tri))
	}
}

func TestCoverOrdering(t *testing.T) {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(-33.25, 151.5))
	cover := htm.NewCover(sphere.ConvexFromCap(center, 30))
	for cover.Level() < 4 {
		cover.Step()
	}
	outer := cover.Trixels(htm.Outer)
	for i := 1; i < len(outer); i++ {
		prev, err := htm.Extend(outer[i-1], htm.DepthLevel)
		require.NoError(t, err)
		cur, err := htm.Extend(outer[i], htm.DepthLevel)
		require.NoError(t, err)
		require.Less(t, prev.Hi, cur.Lo, "outer markup not in mesh order")
	}
}
