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
	"testing"

	"github.com/ctessum/geom"
)

func TestWebMercator(t *testing.T) {
	var p WebMercator
	if have := p.Project(LatLng{}, 0); pointDifferent(have, geom.Point{X: 128, Y: 128}, testTolerance) {
		t.Errorf("origin: have %v, want (128, 128)", have)
	}
	north := p.Project(LatLng{Lat: 45}, 0)
	if north.Y >= 128 {
		t.Errorf("north should be up: have y=%g", north.Y)
	}
	for _, c := range []LatLng{{Lat: 45, Lng: 7}, {Lat: -33.9, Lng: 151.2}, {Lat: 0, Lng: -179}} {
		back := p.Unproject(p.Project(c, 10), 10)
		if absDifferent(back.Lat, c.Lat, 1e-9) || absDifferent(back.Lng, c.Lng, 1e-9) {
			t.Errorf("round trip of %v: have %v", c, back)
		}
	}
}

func TestSRProjection(t *testing.T) {
	sr, err := NewSRProjection(WebMapProj)
	if err != nil {
		t.Fatal(err)
	}
	var wm WebMercator
	for _, c := range []LatLng{{Lat: 45, Lng: 7}, {Lat: -20, Lng: -60}} {
		have, want := sr.Project(c, 10), wm.Project(c, 10)
		if pointDifferent(have, want, 1e-4) {
			t.Errorf("%v: have %v, want %v", c, have, want)
		}
		back := sr.Unproject(have, 10)
		if absDifferent(back.Lat, c.Lat, 1e-7) || absDifferent(back.Lng, c.Lng, 1e-7) {
			t.Errorf("round trip of %v: have %v", c, back)
		}
	}
	// Neither a proj4 string nor WKT.
	if _, err := NewSRProjection("web mercator"); err == nil {
		t.Error("expected an error for an invalid definition")
	}
}

func TestIdentity(t *testing.T) {
	var p Identity
	have := p.Project(ll(3, 4), 12)
	if have != (geom.Point{X: 3, Y: 4}) {
		t.Errorf("have %v, want (3, 4)", have)
	}
	if back := p.Unproject(have, 5); back != ll(3, 4) {
		t.Errorf("have %v, want %v", back, ll(3, 4))
	}
}
