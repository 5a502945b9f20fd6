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
	"gonum.org/v1/gonum/mat"
)

// Matrix is a 2D affine transformation stored as the 6-tuple
// [a b c d e f], which maps (x, y) to (a·x + b·y + e, c·x + d·y + f).
// Matrix values are immutable; every method returns a new Matrix so that
// calls can be chained:
//
//	m := NewMatrix().Rotate(rad, origin).Flip()
type Matrix [6]float64

// NewMatrix returns the identity transformation.
func NewMatrix() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies m to p.
func (m Matrix) Transform(p geom.Point) geom.Point {
	return geom.Point{
		X: m[0]*p.X + m[1]*p.Y + m[4],
		Y: m[2]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformAll applies m to every point in pts and returns the results
// in a new slice.
func (m Matrix) TransformAll(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = m.Transform(p)
	}
	return out
}

// Rotate composes a rotation by angle radians around origin.
func (m Matrix) Rotate(angle float64, origin geom.Point) Matrix {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return m.compose(cos, sin, -sin, cos, origin.X, origin.Y).
		compose(1, 0, 0, 1, -origin.X, -origin.Y)
}

// Scale composes a scaling by factor around origin.
func (m Matrix) Scale(factor geom.Point, origin geom.Point) Matrix {
	return m.compose(factor.X, 0, 0, factor.Y, origin.X, origin.Y).
		compose(1, 0, 0, 1, -origin.X, -origin.Y)
}

// Translate composes a translation by t.
func (m Matrix) Translate(t geom.Point) Matrix {
	return m.compose(1, 0, 0, 1, t.X, t.Y)
}

// Flip negates the b and c terms, which mirrors the rotation sense to
// account for a plane whose vertical axis points down.
func (m Matrix) Flip() Matrix {
	m[1] = -m[1]
	m[2] = -m[2]
	return m
}

// homogeneous returns the 3×3 form of m. The linear terms are laid out
// column-wise, matching the composition order of compose.
func (m Matrix) homogeneous() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0], m[2], m[4],
		m[1], m[3], m[5],
		0, 0, 1,
	})
}

// compose right-multiplies the homogeneous form of m by the matrix
// built from a through f.
func (m Matrix) compose(a, b, c, d, e, f float64) Matrix {
	other := Matrix{a, b, c, d, e, f}.homogeneous()
	var r mat.Dense
	r.Mul(m.homogeneous(), other)
	return Matrix{r.At(0, 0), r.At(1, 0), r.At(0, 1), r.At(1, 1), r.At(0, 2), r.At(1, 2)}
}
