/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package region adapts geography values onto the sphere and exposes the
// geometric predicates the trixel evaluator needs: containment of a trixel,
// intersection with a trixel and emptiness.
package region

import "github.com/dkondor/HTMIndex/htm"

// Region is a point set on the sphere the indexer can classify trixels
// against. ContainsTriangle must not report true unless the triangle is
// fully inside the region; IntersectTriangle returns the clipped sub-region,
// which may be nil or empty when the trixel misses the region — the two are
// equivalent to callers.
type Region interface {
	ContainsTriangle(tri htm.Triangle) bool
	IntersectTriangle(tri htm.Triangle) Region
	IsEmpty() bool
}
