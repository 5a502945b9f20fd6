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

package geoman

import "github.com/ctessum/geom"

// segmentIntersection returns the point where segments p1–p2 and p3–p4
// meet, endpoints included. Parallel and collinear segments do not
// intersect.
func segmentIntersection(p1, p2, p3, p4 geom.Point) (geom.Point, bool) {
	denom := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if denom == 0 {
		return geom.Point{}, false
	}
	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / denom
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / denom
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return geom.Point{}, false
	}
	return geom.Point{X: p1.X + ua*(p2.X-p1.X), Y: p1.Y + ua*(p2.Y-p1.Y)}, true
}

func latLngPoint(ll LatLng) geom.Point { return geom.Point{X: ll.Lng, Y: ll.Lat} }

func latLngPoints(rings [][]LatLng) [][]geom.Point {
	out := make([][]geom.Point, len(rings))
	for i, r := range rings {
		out[i] = make([]geom.Point, len(r))
		for j, ll := range r {
			out[i][j] = latLngPoint(ll)
		}
	}
	return out
}

// segmentCount returns the number of edges of a ring with n points.
func segmentCount(n int, closed bool) int {
	switch {
	case n < 2:
		return 0
	case closed && n > 2:
		return n
	}
	return n - 1
}

func segment(r []geom.Point, i int) (geom.Point, geom.Point) {
	return r[i], r[(i+1)%len(r)]
}

// Kinks returns the points where the rings cross themselves or each
// other. Edges sharing a vertex within one ring are not compared.
func Kinks(rings [][]geom.Point, closed bool) []geom.Point {
	var out []geom.Point
	for i, r1 := range rings {
		n1 := segmentCount(len(r1), closed)
		for k := i; k < len(rings); k++ {
			r2 := rings[k]
			n2 := segmentCount(len(r2), closed)
			for ii := 0; ii < n1; ii++ {
				start := 0
				if k == i {
					start = ii + 1
				}
				for kk := start; kk < n2; kk++ {
					if k == i && adjacentSegments(ii, kk, n1, closed) {
						continue
					}
					a, b := segment(r1, ii)
					c, d := segment(r2, kk)
					if p, ok := segmentIntersection(a, b, c, d); ok {
						out = append(out, p)
					}
				}
			}
		}
	}
	return out
}

func adjacentSegments(i, k, n int, closed bool) bool {
	if i-k == 1 || k-i == 1 {
		return true
	}
	return closed && n > 2 && (i == 0 && k == n-1 || k == 0 && i == n-1)
}

// SelfIntersects reports whether the rings have any kink.
func SelfIntersects(rings [][]LatLng, closed bool) bool {
	return len(Kinks(latLngPoints(rings), closed)) > 0
}

// edgeCrossings returns the number of distinct points at which segment
// a–b meets the rings.
func edgeCrossings(a, b geom.Point, rings [][]geom.Point, closed bool) int {
	var pts []geom.Point
	for _, r := range rings {
		for i := 0; i < segmentCount(len(r), closed); i++ {
			c, d := segment(r, i)
			p, ok := segmentIntersection(a, b, c, d)
			if !ok {
				continue
			}
			dup := false
			for _, q := range pts {
				if distance(p, q) < coordEpsilon {
					dup = true
					break
				}
			}
			if !dup {
				pts = append(pts, p)
			}
		}
	}
	return len(pts)
}
