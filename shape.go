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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/google/uuid"
)

// ShapeKind identifies the kind of geometry a Shape holds.
type ShapeKind int

// The available shape kinds.
const (
	KindMarker ShapeKind = iota
	KindCircleMarker
	KindCircle
	KindLine
	KindPolygon
	KindRectangle
	KindText
	KindImageOverlay
)

var kindNames = [...]string{
	KindMarker:       "Marker",
	KindCircleMarker: "CircleMarker",
	KindCircle:       "Circle",
	KindLine:         "Line",
	KindPolygon:      "Polygon",
	KindRectangle:    "Rectangle",
	KindText:         "Text",
	KindImageOverlay: "ImageOverlay",
}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseShapeKind returns the kind with the given name.
func ParseShapeKind(name string) (ShapeKind, error) {
	for k, n := range kindNames {
		if n == name {
			return ShapeKind(k), nil
		}
	}
	return 0, fmt.Errorf("geoman: %w %q", ErrUnknownKind, name)
}

// isPolyline reports whether shapes of kind k store their geometry as rings.
func (k ShapeKind) isPolyline() bool {
	return k == KindLine || k == KindPolygon || k == KindRectangle
}

// closed reports whether rings of kind k connect their last point to their
// first.
func (k ShapeKind) closed() bool {
	return k == KindPolygon || k == KindRectangle
}

// minRingLen is the smallest number of points a ring of kind k may have.
func (k ShapeKind) minRingLen() int {
	if k.closed() {
		return 3
	}
	return 2
}

// Style holds the drawing style of a shape.
type Style struct {
	Color     string
	FillColor string
	Weight    float64
	Opacity   float64
}

// DefaultStyle is the style given to new shapes.
var DefaultStyle = Style{Color: "#3388ff", FillColor: "#3388ff", Weight: 3, Opacity: 1}

// Shape is a piece of geometry displayed on a Map.
type Shape struct {
	// ID uniquely identifies the shape.
	ID   string
	Kind ShapeKind

	Style Style

	// Options overrides the Map's global options for this shape when
	// non-nil.
	Options *Options

	// Wireframe shapes only snap to other wireframe shapes.
	Wireframe bool

	// Temporary marks helper geometry that is never edited, cut or
	// snapped to.
	Temporary bool

	// Ignore excludes the shape from editing, cutting and snapping.
	Ignore bool

	// SnapIgnore excludes the shape from snapping only.
	SnapIgnore bool

	rings  [][]LatLng
	latlng LatLng
	radius float64
	angle  float64
	bounds LatLngBounds
	text   string

	// copyOf is the ID of the shape this shape was derived from.
	copyOf string
	stamp  int
}

func newShape(k ShapeKind) *Shape {
	return &Shape{ID: uuid.NewString(), Kind: k, Style: DefaultStyle}
}

// NewMarker creates a point marker.
func NewMarker(ll LatLng) *Shape {
	s := newShape(KindMarker)
	s.latlng = ll
	return s
}

// NewCircleMarker creates a circle with a radius in plane pixels.
func NewCircleMarker(center LatLng, radius float64) *Shape {
	s := newShape(KindCircleMarker)
	s.latlng = center
	s.radius = radius
	return s
}

// NewCircle creates a circle with a radius in meters.
func NewCircle(center LatLng, radius float64) *Shape {
	s := newShape(KindCircle)
	s.latlng = center
	s.radius = radius
	return s
}

// NewLine creates a line, optionally with several parts.
func NewLine(parts ...[]LatLng) *Shape {
	s := newShape(KindLine)
	s.rings = cloneRings(parts)
	return s
}

// NewPolygon creates a polygon. The first ring is the outer boundary and
// the remaining rings are holes. Rings are stored without a repeated
// closing point.
func NewPolygon(rings ...[]LatLng) *Shape {
	s := newShape(KindPolygon)
	s.rings = cloneRings(rings)
	for i, r := range s.rings {
		if len(r) > 1 && r[0].Equals(r[len(r)-1]) {
			s.rings[i] = r[:len(r)-1]
		}
	}
	return s
}

// NewRectangle creates an unrotated rectangle covering b. The corners are
// stored south-west, north-west, north-east, south-east.
func NewRectangle(b LatLngBounds) *Shape {
	s := newShape(KindRectangle)
	s.rings = [][]LatLng{{b.SouthWest, b.NorthWest(), b.NorthEast, b.SouthEast()}}
	return s
}

// NewText creates a text label at ll.
func NewText(ll LatLng, text string) *Shape {
	s := newShape(KindText)
	s.latlng = ll
	s.text = text
	return s
}

// NewImageOverlay creates an image overlay covering b.
func NewImageOverlay(b LatLngBounds) *Shape {
	s := newShape(KindImageOverlay)
	s.bounds = b
	return s
}

// Rings returns a copy of the rings of a line, polygon or rectangle.
func (s *Shape) Rings() [][]LatLng {
	return cloneRings(s.rings)
}

// SetRings replaces the rings of a line, polygon or rectangle.
func (s *Shape) SetRings(rings [][]LatLng) {
	s.rings = cloneRings(rings)
}

// LatLng returns the position of a marker or text, or the center of a
// circle.
func (s *Shape) LatLng() LatLng { return s.latlng }

// SetLatLng sets the position of a marker or text, or the center of a
// circle.
func (s *Shape) SetLatLng(ll LatLng) { s.latlng = ll }

// Radius returns the radius of a circle (meters) or circle marker
// (pixels).
func (s *Shape) Radius() float64 { return s.radius }

// SetRadius sets the radius of a circle or circle marker.
func (s *Shape) SetRadius(r float64) { s.radius = r }

// Bounds returns the bounds of an image overlay.
func (s *Shape) Bounds() LatLngBounds { return s.bounds }

// SetBounds sets the bounds of an image overlay.
func (s *Shape) SetBounds(b LatLngBounds) { s.bounds = b }

// Angle returns the rotation angle of the shape in degrees.
func (s *Shape) Angle() float64 { return s.angle }

// Text returns the content of a text shape.
func (s *Shape) Text() string { return s.text }

// Stamp returns the order in which the shape was added to its Map.
func (s *Shape) Stamp() int { return s.stamp }

// Empty reports whether the shape holds no coordinates.
func (s *Shape) Empty() bool {
	if !s.Kind.isPolyline() {
		return false
	}
	for _, r := range s.rings {
		if len(r) > 0 {
			return false
		}
	}
	return true
}

// Points returns every coordinate of the shape in ring order.
func (s *Shape) Points() []LatLng {
	switch s.Kind {
	case KindLine, KindPolygon, KindRectangle:
		var out []LatLng
		for _, r := range s.rings {
			out = append(out, r...)
		}
		return out
	case KindImageOverlay:
		return s.bounds.Ring()
	case KindMarker, KindCircleMarker, KindCircle, KindText:
		return []LatLng{s.latlng}
	}
	return nil
}

// Translate moves the whole shape by delta. Circles keep their radius.
func (s *Shape) Translate(delta LatLng) {
	switch s.Kind {
	case KindLine, KindPolygon, KindRectangle:
		for _, r := range s.rings {
			for i := range r {
				r[i] = r[i].Add(delta)
			}
		}
	case KindImageOverlay:
		s.bounds.SouthWest = s.bounds.SouthWest.Add(delta)
		s.bounds.NorthEast = s.bounds.NorthEast.Add(delta)
	case KindMarker, KindCircleMarker, KindCircle, KindText:
		s.latlng = s.latlng.Add(delta)
	}
}

// Transform applies t to every coordinate of the shape in the plane of
// m at its precise zoom.
func (s *Shape) Transform(m *Map, t Matrix) {
	f := func(ll LatLng) LatLng {
		return m.unprojectPrecise(t.Transform(m.projectPrecise(ll)))
	}
	switch s.Kind {
	case KindLine, KindPolygon, KindRectangle:
		for _, r := range s.rings {
			for i := range r {
				r[i] = f(r[i])
			}
		}
	case KindImageOverlay:
		s.bounds.SouthWest = f(s.bounds.SouthWest)
		s.bounds.NorthEast = f(s.bounds.NorthEast)
	case KindMarker, KindCircleMarker, KindCircle, KindText:
		s.latlng = f(s.latlng)
	}
}

// copyStyle returns a new empty shape of kind k carrying the style,
// options and tags of s.
func (s *Shape) copyStyle(k ShapeKind) *Shape {
	c := newShape(k)
	c.Style = s.Style
	if s.Options != nil {
		o := *s.Options
		c.Options = &o
	}
	c.Wireframe = s.Wireframe
	c.SnapIgnore = s.SnapIgnore
	return c
}

// planeRings projects the rings of s at the zoom used for distances.
func (s *Shape) planeRings(m *Map) [][]geom.Point {
	out := make([][]geom.Point, len(s.rings))
	for i, r := range s.rings {
		out[i] = make([]geom.Point, len(r))
		for j, ll := range r {
			out[i][j] = m.project(ll)
		}
	}
	return out
}

// planePreciseRings projects the rings of s at the precise zoom of m.
func (s *Shape) planePreciseRings(m *Map) [][]geom.Point {
	out := make([][]geom.Point, len(s.rings))
	for i, r := range s.rings {
		out[i] = make([]geom.Point, len(r))
		for j, ll := range r {
			out[i][j] = m.projectPrecise(ll)
		}
	}
	return out
}

// Draggable is geometry that can move by a geographic delta.
type Draggable interface {
	Translate(delta LatLng)
}

// Rotatable is geometry that can be transformed in the plane of a Map.
type Rotatable interface {
	Transform(m *Map, t Matrix)
}

var (
	_ Draggable = (*Shape)(nil)
	_ Rotatable = (*Shape)(nil)
)
