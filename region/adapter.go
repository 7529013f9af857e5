/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package region

import (
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
)

// ErrUnsupportedGeometry reports a geography value the indexer cannot use.
// Only polygons, and collections recursively made of polygons, are accepted.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Vertices flattens a polygonal geography value into its ordered vertex
// sequence on the sphere. Each polygon contributes its outer ring and holes
// in visitation order; holes are not distinguished, since the hull generator
// consuming this list is orientation-agnostic. Anything that is not a
// polygon or a collection of polygons is rejected.
func Vertices(g geom.T) ([]s2.Point, error) {
	switch v := g.(type) {
	case *geom.Polygon:
		var pts []s2.Point
		for i := range v.NumLinearRings() {
			pts = append(pts, ringPoints(v.LinearRing(i))...)
		}
		return pts, nil
	case *geom.GeometryCollection:
		var pts []s2.Point
		for i := range v.NumGeoms() {
			sub, err := Vertices(v.Geom(i))
			if err != nil {
				return nil, err
			}
			pts = append(pts, sub...)
		}
		return pts, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedGeometry, "cannot index geometry of type %T", g)
	}
}

// pointFromCoord maps a (longitude, latitude) coordinate in degrees onto the
// unit sphere. Coordinates are specified as [long, lat], following geojson.
func pointFromCoord(c geom.Coord) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X()))
}

// ringPoints converts a linear ring to sphere points, dropping the repeated
// closing coordinate.
func ringPoints(r *geom.LinearRing) []s2.Point {
	n := r.NumCoords()
	if n > 1 && r.Coord(0).Equal(geom.XY, r.Coord(n-1)) {
		n--
	}
	pts := make([]s2.Point, n)
	for i := range n {
		pts[i] = pointFromCoord(r.Coord(i))
	}
	return pts
}

// RA returns the right ascension (longitude) of p in degrees.
func RA(p s2.Point) float64 {
	return s2.LatLngFromPoint(p).Lng.Degrees()
}

// Dec returns the declination (latitude) of p in degrees.
func Dec(p s2.Point) float64 {
	return s2.LatLngFromPoint(p).Lat.Degrees()
}

// PointFromLonLat maps a longitude/latitude pair in degrees onto the sphere.
func PointFromLonLat(lon, lat float64) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
}
