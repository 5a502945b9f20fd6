/*
Copyright © 2026 the Geoman authors.
This file is part of Geoman.

Geoman is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Geoman is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Geoman.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package geoman is an editing engine for vector geometry layered on a map
// surface. It snaps, reshapes, rotates, drags and cuts marker, line, polygon,
// rectangle, circle, text and image overlay shapes on a projected plane while
// keeping helper geometry (vertex markers, middle markers, rotation handles and
// hidden circle polygons) synchronized with the shapes they belong to.
//
// The host map is represented by a Projection and a Map. All operations are
// synchronous and a Map must not be used from more than one goroutine.
package geoman

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Version gives the version number.
const Version = "1.0.0"

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat, Lng float64
}

// Equals returns whether ll and o are exactly equal.
func (ll LatLng) Equals(o LatLng) bool {
	return ll.Lat == o.Lat && ll.Lng == o.Lng
}

// EqualsWithin returns whether ll and o differ by no more than eps in
// either coordinate.
func (ll LatLng) EqualsWithin(o LatLng, eps float64) bool {
	return math.Abs(ll.Lat-o.Lat) <= eps && math.Abs(ll.Lng-o.Lng) <= eps
}

// Add returns the coordinate shifted by delta.
func (ll LatLng) Add(delta LatLng) LatLng {
	return LatLng{Lat: ll.Lat + delta.Lat, Lng: ll.Lng + delta.Lng}
}

// Sub returns the difference ll - o.
func (ll LatLng) Sub(o LatLng) LatLng {
	return LatLng{Lat: ll.Lat - o.Lat, Lng: ll.Lng - o.Lng}
}

func (ll LatLng) String() string {
	return fmt.Sprintf("LatLng(%g, %g)", ll.Lat, ll.Lng)
}

// LatLngBounds is an axis-aligned geographic rectangle.
type LatLngBounds struct {
	SouthWest, NorthEast LatLng
}

// NorthWest returns the north-west corner of b.
func (b LatLngBounds) NorthWest() LatLng {
	return LatLng{Lat: b.NorthEast.Lat, Lng: b.SouthWest.Lng}
}

// SouthEast returns the south-east corner of b.
func (b LatLngBounds) SouthEast() LatLng {
	return LatLng{Lat: b.SouthWest.Lat, Lng: b.NorthEast.Lng}
}

// Ring returns the corners of b as a closed counter-clockwise ring
// starting at the south-west corner.
func (b LatLngBounds) Ring() []LatLng {
	return []LatLng{b.SouthWest, b.SouthEast(), b.NorthEast, b.NorthWest()}
}

// IndexPath locates one coordinate within a shape: the ring it belongs to
// and its position in that ring.
type IndexPath struct {
	Ring, Index int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d %d]", p.Ring, p.Index)
}

// toPath converts a ring of plane points into a geom path.
func toPath(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	copy(out, pts)
	return out
}

// closePath returns pts with its first point repeated at the end, which is
// the ring convention of the geom clipping routines.
func closePath(pts []geom.Point) []geom.Point {
	out := toPath(pts)
	if len(out) > 0 && !out[0].Equals(out[len(out)-1]) {
		out = append(out, out[0])
	}
	return out
}

// openPath drops a repeated closing point.
func openPath(pts []geom.Point) []geom.Point {
	if len(pts) > 1 && pts[0].Equals(pts[len(pts)-1]) {
		return pts[:len(pts)-1]
	}
	return pts
}

func cloneRings(rings [][]LatLng) [][]LatLng {
	out := make([][]LatLng, len(rings))
	for i, r := range rings {
		out[i] = append([]LatLng(nil), r...)
	}
	return out
}
