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

import (
	"math"

	"github.com/ctessum/geom"
)

const (
	// EarthRadius is the sphere radius in meters used for great-circle
	// destinations.
	EarthRadius = 6378137.
	// haversineRadius is the mean earth radius in meters used for
	// distances between coordinates.
	haversineRadius = 6371000.

	vincentyA = 6378137.
	vincentyB = 6356752.3142
	vincentyF = 1 / 298.257223563

	coordEpsilon = 1e-9
)

func distance(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// ClosestPointOnSegment returns the point of segment a–b nearest to p.
func ClosestPointOnSegment(p, a, b geom.Point) geom.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	d := dx*dx + dy*dy
	if d == 0 {
		return a
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / d
	switch {
	case t > 1:
		return b
	case t < 0:
		return a
	}
	return geom.Point{X: a.X + dx*t, Y: a.Y + dy*t}
}

// SegmentDistance returns the distance from p to segment a–b.
func SegmentDistance(p, a, b geom.Point) float64 {
	return distance(p, ClosestPointOnSegment(p, a, b))
}

// MiddleLatLng returns the coordinate halfway between a and b in the
// plane at the current zoom.
func (m *Map) MiddleLatLng(a, b LatLng) LatLng {
	pa, pb := m.project(a), m.project(b)
	return m.unproject(geom.Point{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2})
}

// FindDeepCoordIndex returns the location of ll within rings. Unless
// exact is set, coordinates within 1e-9 degrees match.
func FindDeepCoordIndex(rings [][]LatLng, ll LatLng, exact bool) (IndexPath, bool) {
	for i, r := range rings {
		for j, c := range r {
			if exact && c.Equals(ll) || !exact && c.EqualsWithin(ll, coordEpsilon) {
				return IndexPath{Ring: i, Index: j}, true
			}
		}
	}
	return IndexPath{}, false
}

// IndexFromSegment returns the position in ring at which to insert a new
// coordinate lying on the segment a–b, or -1 if either endpoint is not
// in ring. A segment joining the last and first coordinates of a closed
// ring inserts at the end.
func IndexFromSegment(ring []LatLng, a, b LatLng) int {
	ia, ib := -1, -1
	for i, c := range ring {
		if ia < 0 && c.EqualsWithin(a, coordEpsilon) {
			ia = i
		}
		if ib < 0 && c.EqualsWithin(b, coordEpsilon) {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return -1
	}
	idx := ia
	if ib > idx {
		idx = ib
	}
	if (ia == 0 || ib == 0) && idx != 1 {
		idx++
	}
	return idx
}

// Destination returns the point reached by travelling distance meters
// from ll along the great circle with the given heading in degrees.
func Destination(ll LatLng, heading, distance float64) LatLng {
	heading = math.Mod(heading+360, 360)
	const rad = math.Pi / 180
	lon1 := ll.Lng * rad
	lat1 := ll.Lat * rad
	h := heading * rad
	sinLat1, cosLat1 := math.Sin(lat1), math.Cos(lat1)
	cosDist, sinDist := math.Cos(distance/EarthRadius), math.Sin(distance/EarthRadius)
	lat2 := math.Asin(sinLat1*cosDist + cosLat1*sinDist*math.Cos(h))
	lon2 := lon1 + math.Atan2(math.Sin(h)*sinDist*cosLat1, cosDist-sinLat1*math.Sin(lat2))
	lon2 /= rad
	switch {
	case lon2 > 180:
		lon2 -= 360
	case lon2 < -180:
		lon2 += 360
	}
	return LatLng{Lat: lat2 / rad, Lng: lon2}
}

// DestinationVincenty solves the direct geodesic problem on the WGS84
// ellipsoid: the point reached from ll after dist meters on bearing brng
// degrees.
func DestinationVincenty(ll LatLng, brng, dist float64) LatLng {
	a, b, f := vincentyA, vincentyB, vincentyF
	alpha1 := brng * math.Pi / 180
	sinAlpha1, cosAlpha1 := math.Sin(alpha1), math.Cos(alpha1)
	tanU1 := (1 - f) * math.Tan(ll.Lat*math.Pi/180)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha
	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	sigma := dist / (b * A)
	sigmaP := 2 * math.Pi
	var cos2SigmaM, sinSigma, cosSigma float64
	for i := 0; math.Abs(sigma-sigmaP) > 1e-12 && i < 200; i++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma = math.Sin(sigma)
		cosSigma = math.Cos(sigma)
		deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		sigmaP = sigma
		sigma = dist/(b*A) + deltaSigma
	}
	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	lat2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1-f)*math.Sqrt(sinAlpha*sinAlpha+tmp*tmp))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
	lam := lambda - (1-C)*f*sinAlpha*(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	return LatLng{Lat: lat2 * 180 / math.Pi, Lng: ll.Lng + lam*180/math.Pi}
}

// GeodesicPolygon returns a ring of sides points approximating a circle of
// radius around center. With bearing, points are placed radius meters away
// on the ellipsoid starting at the given rotation in degrees; otherwise
// radius is in degrees and points are placed directly in coordinate space.
func GeodesicPolygon(center LatLng, radius float64, sides int, rotation float64, withBearing bool) []LatLng {
	pts := make([]LatLng, sides)
	for i := range pts {
		if withBearing {
			pts[i] = DestinationVincenty(center, float64(i)*360/float64(sides)+rotation, radius)
			continue
		}
		a := 2 * float64(i) * math.Pi / float64(sides)
		pts[i] = LatLng{Lat: center.Lat + math.Cos(a)*radius, Lng: center.Lng + math.Sin(a)*radius}
	}
	return pts
}

// Distance returns the haversine distance between a and b in meters.
func Distance(a, b LatLng) float64 {
	const rad = math.Pi / 180
	lat1, lat2 := a.Lat*rad, b.Lat*rad
	sinDLat := math.Sin((b.Lat - a.Lat) * rad / 2)
	sinDLon := math.Sin((b.Lng - a.Lng) * rad / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	return 2 * haversineRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// simple reports whether m maps coordinates directly onto the plane, in
// which case distances are measured in coordinate units.
func (m *Map) simple() bool {
	_, ok := m.proj.(Identity)
	return ok
}

// Distance returns the distance between a and b: meters on the sphere, or
// coordinate units with the Identity projection.
func (m *Map) Distance(a, b LatLng) float64 {
	if m.simple() {
		return math.Hypot(b.Lat-a.Lat, b.Lng-a.Lng)
	}
	return Distance(a, b)
}

// PxRadiusToMeterRadius converts a radius in plane pixels at center to
// meters.
func (m *Map) PxRadiusToMeterRadius(px float64, center LatLng) float64 {
	p := m.project(center)
	return m.Distance(m.unproject(geom.Point{X: p.X + px, Y: p.Y}), center)
}

// CalcAngle returns the heading in degrees from a to b in the plane,
// measured clockwise from the plane's negative y axis and normalized to
// [0, 360).
func CalcAngle(a, b geom.Point) float64 {
	deg := math.Atan2(b.Y-a.Y, b.X-a.X)*180/math.Pi + 90
	if deg < 0 {
		deg += 360
	}
	return math.Mod(deg, 360)
}

// RotatedRectangle returns the corners of the rectangle with opposite
// corners a and b whose sides are rotated by angle degrees, starting at a
// and continuing in ring order.
func RotatedRectangle(a, b geom.Point, angle float64) [4]geom.Point {
	theta := angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	dx, dy := b.X-a.X, b.Y-a.Y
	width := dx*cos + dy*sin
	height := dy*cos - dx*sin
	return [4]geom.Point{
		a,
		{X: width*cos + a.X, Y: width*sin + a.Y},
		b,
		{X: -height*sin + a.X, Y: height*cos + a.Y},
	}
}

// rotatedRectangle is RotatedRectangle on geographic coordinates in the
// precise plane of m.
func (m *Map) rotatedRectangle(a, b LatLng, angle float64) []LatLng {
	c := RotatedRectangle(m.projectPrecise(a), m.projectPrecise(b), angle)
	out := make([]LatLng, 4)
	for i, p := range c {
		out[i] = m.unprojectPrecise(p)
	}
	out[0], out[2] = a, b
	return out
}

// hasValues reports whether any ring holds a coordinate.
func hasValues(rings [][]LatLng) bool {
	for _, r := range rings {
		if len(r) > 0 {
			return true
		}
	}
	return false
}

// removeEmptyRings drops rings without coordinates.
func removeEmptyRings(rings [][]LatLng) [][]LatLng {
	out := rings[:0]
	for _, r := range rings {
		if len(r) > 0 {
			out = append(out, r)
		}
	}
	return out
}
