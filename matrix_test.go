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
)

func pointDifferent(a, b geom.Point, tolerance float64) bool {
	return absDifferent(a.X, b.X, tolerance) || absDifferent(a.Y, b.Y, tolerance)
}

func TestMatrix(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   geom.Point
		want geom.Point
	}{
		{name: "identity", m: NewMatrix(), in: geom.Point{X: 3, Y: -2}, want: geom.Point{X: 3, Y: -2}},
		{name: "translate", m: NewMatrix().Translate(geom.Point{X: 3, Y: 4}), in: geom.Point{X: 1, Y: 1}, want: geom.Point{X: 4, Y: 5}},
		{name: "scale", m: NewMatrix().Scale(geom.Point{X: 2, Y: 3}, geom.Point{}), in: geom.Point{X: 1, Y: 1}, want: geom.Point{X: 2, Y: 3}},
		{name: "scale about origin", m: NewMatrix().Scale(geom.Point{X: 2, Y: 3}, geom.Point{X: 1, Y: 1}), in: geom.Point{X: 2, Y: 2}, want: geom.Point{X: 3, Y: 4}},
		{name: "quarter turn", m: NewMatrix().Rotate(math.Pi/2, geom.Point{}).Flip(), in: geom.Point{X: 1, Y: 0}, want: geom.Point{X: 0, Y: 1}},
		{name: "half turn about origin", m: NewMatrix().Rotate(math.Pi, geom.Point{X: 1, Y: 1}).Flip(), in: geom.Point{X: 2, Y: 1}, want: geom.Point{X: 0, Y: 1}},
		{name: "unflipped quarter turn", m: NewMatrix().Rotate(math.Pi/2, geom.Point{}), in: geom.Point{X: 1, Y: 0}, want: geom.Point{X: 0, Y: -1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			have := test.m.Transform(test.in)
			if pointDifferent(have, test.want, testTolerance) {
				t.Errorf("have %v, want %v", have, test.want)
			}
		})
	}
}

func TestMatrix_Inverse(t *testing.T) {
	o := geom.Point{X: 12, Y: -7}
	pts := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 3}, {X: -4, Y: 8}}
	fwd := NewMatrix().Rotate(0.7, o).Flip()
	back := NewMatrix().Rotate(-0.7, o).Flip()
	have := back.TransformAll(fwd.TransformAll(pts))
	for i := range pts {
		if pointDifferent(have[i], pts[i], testTolerance) {
			t.Errorf("point %d: have %v, want %v", i, have[i], pts[i])
		}
	}
}

func TestMatrix_Immutable(t *testing.T) {
	m := NewMatrix()
	m.Translate(geom.Point{X: 1, Y: 1})
	if m != NewMatrix() {
		t.Errorf("Translate modified the receiver: %v", m)
	}
}
