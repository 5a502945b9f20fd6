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
	"testing"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

func TestClosestPointOnSegment(t *testing.T) {
	a, b := geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}
	tests := []struct {
		p, want geom.Point
	}{
		{p: geom.Point{X: 5, Y: 5}, want: geom.Point{X: 5, Y: 0}},
		{p: geom.Point{X: -3, Y: 2}, want: a},
		{p: geom.Point{X: 12, Y: -1}, want: b},
	}
	for _, test := range tests {
		if have := ClosestPointOnSegment(test.p, a, b); pointDifferent(have, test.want, testTolerance) {
			t.Errorf("%v: have %v, want %v", test.p, have, test.want)
		}
	}
	if have := ClosestPointOnSegment(geom.Point{X: 1, Y: 1}, a, a); have != a {
		t.Errorf("degenerate segment: have %v, want %v", have, a)
	}
	if d := SegmentDistance(geom.Point{X: 5, Y: 5}, a, b); absDifferent(d, 5, testTolerance) {
		t.Errorf("distance: have %g, want 5", d)
	}
}

func TestFindDeepCoordIndex(t *testing.T) {
	rings := [][]LatLng{
		{ll(0, 0), ll(10, 0), ll(10, 10)},
		{ll(2, 2), ll(3, 3)},
	}
	ip, ok := FindDeepCoordIndex(rings, ll(3, 3), true)
	if !ok || ip != (IndexPath{Ring: 1, Index: 1}) {
		t.Errorf("have %v %v, want [1 1] true", ip, ok)
	}
	if _, ok := FindDeepCoordIndex(rings, ll(3, 3+1e-12), true); ok {
		t.Error("exact lookup matched a nearby coordinate")
	}
	if ip, ok := FindDeepCoordIndex(rings, ll(3, 3+1e-12), false); !ok || ip.Index != 1 {
		t.Errorf("inexact lookup: have %v %v", ip, ok)
	}
}

func TestIndexFromSegment(t *testing.T) {
	ring := []LatLng{ll(0, 0), ll(10, 0), ll(10, 10), ll(0, 10)}
	tests := []struct {
		name string
		a, b LatLng
		want int
	}{
		{name: "first edge", a: ring[0], b: ring[1], want: 1},
		{name: "middle edge", a: ring[1], b: ring[2], want: 2},
		{name: "reversed", a: ring[3], b: ring[2], want: 3},
		{name: "closing edge", a: ring[3], b: ring[0], want: 4},
		{name: "missing", a: ring[0], b: ll(5, 5), want: -1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if have := IndexFromSegment(ring, test.a, test.b); have != test.want {
				t.Errorf("have %d, want %d", have, test.want)
			}
		})
	}
}

func TestDestination(t *testing.T) {
	start := LatLng{Lat: 0, Lng: 0}
	// A quarter of the equator.
	d := math.Pi / 2 * EarthRadius
	east := Destination(start, 90, d)
	if absDifferent(east.Lat, 0, 1e-9) || absDifferent(east.Lng, 90, 1e-9) {
		t.Errorf("have %v, want LatLng(0, 90)", east)
	}
	north := Destination(start, 0, d)
	if absDifferent(north.Lat, 90, 1e-9) {
		t.Errorf("have %v, want latitude 90", north)
	}
	wrapped := Destination(LatLng{Lat: 0, Lng: 170}, 90, 20*math.Pi/180*EarthRadius)
	if absDifferent(wrapped.Lng, -170, 1e-9) {
		t.Errorf("have %v, want longitude -170", wrapped)
	}
}

func TestDestinationVincenty(t *testing.T) {
	start := LatLng{Lat: 40, Lng: -105}
	for _, brng := range []float64{0, 45, 90, 200, 315} {
		to := DestinationVincenty(start, brng, 10000)
		d := Distance(start, to)
		// The ellipsoid and the haversine sphere differ by well under 1%.
		if math.Abs(d-10000) > 50 {
			t.Errorf("bearing %g: distance %g, want about 10000", brng, d)
		}
	}
}

func TestGeodesicPolygon(t *testing.T) {
	center := LatLng{Lat: 10, Lng: 20}
	flat := GeodesicPolygon(center, 2, 4, 0, false)
	want := []LatLng{{Lat: 12, Lng: 20}, {Lat: 10, Lng: 22}, {Lat: 8, Lng: 20}, {Lat: 10, Lng: 18}}
	if latLngsDifferent(flat, want, 1e-9) {
		t.Errorf("have %v, want %v", flat, want)
	}

	round := GeodesicPolygon(center, 1000, 36, 0, true)
	if len(round) != 36 {
		t.Fatalf("have %d points, want 36", len(round))
	}
	d := make([]float64, len(round))
	for i, p := range round {
		d[i] = Distance(center, p)
	}
	if floats.Max(d)-floats.Min(d) > 10 {
		t.Errorf("radius varies from %g to %g", floats.Min(d), floats.Max(d))
	}
}

func TestDistance(t *testing.T) {
	d := Distance(LatLng{Lat: 0, Lng: 0}, LatLng{Lat: 0, Lng: 1})
	want := haversineRadius * math.Pi / 180
	if !floats.EqualWithinAbs(d, want, 1e-6) {
		t.Errorf("have %g, want %g", d, want)
	}
	m := newTestMap(t)
	if d := m.Distance(ll(0, 0), ll(3, 4)); absDifferent(d, 5, testTolerance) {
		t.Errorf("simple distance: have %g, want 5", d)
	}
}

func TestCalcAngle(t *testing.T) {
	o := geom.Point{}
	tests := []struct {
		b    geom.Point
		want float64
	}{
		{b: geom.Point{X: 0, Y: -1}, want: 0},
		{b: geom.Point{X: 1, Y: 0}, want: 90},
		{b: geom.Point{X: 0, Y: 1}, want: 180},
		{b: geom.Point{X: -1, Y: 0}, want: 270},
	}
	for _, test := range tests {
		if have := CalcAngle(o, test.b); absDifferent(have, test.want, testTolerance) {
			t.Errorf("%v: have %g, want %g", test.b, have, test.want)
		}
	}
}

func TestRotatedRectangle(t *testing.T) {
	a, b := geom.Point{X: 0, Y: 0}, geom.Point{X: 4, Y: 2}
	c := RotatedRectangle(a, b, 0)
	want := [4]geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}}
	for i := range c {
		if pointDifferent(c[i], want[i], testTolerance) {
			t.Errorf("corner %d: have %v, want %v", i, c[i], want[i])
		}
	}

	// Corners of a rotated rectangle keep right angles.
	c = RotatedRectangle(a, geom.Point{X: 3, Y: 5}, 30)
	for i := range c {
		p, q, r := c[(i+3)%4], c[i], c[(i+1)%4]
		dot := (p.X-q.X)*(r.X-q.X) + (p.Y-q.Y)*(r.Y-q.Y)
		if absDifferent(dot, 0, 1e-9) {
			t.Errorf("corner %d is not square: dot %g", i, dot)
		}
	}
}

func TestMiddleLatLng(t *testing.T) {
	m := newTestMap(t)
	if have := m.MiddleLatLng(ll(0, 0), ll(10, 4)); have != ll(5, 2) {
		t.Errorf("have %v, want %v", have, ll(5, 2))
	}
}
