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
	"math"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// Rotation is an open rotation session on a line, polygon or rectangle.
// A gesture is a Start, any number of Rotate calls and an End. The
// geometry follows the gesture in the precise plane of the map.
type Rotation struct {
	m *Map
	s *Shape

	center    LatLng
	hasCenter bool

	// helper is the outline the rotation handles sit on. helperOrg is its
	// shape at the start of the current gesture.
	helper, helperOrg [][]LatLng

	rotating   bool
	origin     geom.Point
	start      geom.Point
	initial    [][]LatLng
	startAngle float64

	rotated bool
	enabled bool
}

// rotatable reports whether shapes of kind k can be rotated.
func rotatable(k ShapeKind) bool {
	return k == KindLine || k == KindPolygon || k == KindRectangle
}

// EnableRotate opens a rotation session on s. An open session on s is
// closed first.
func (m *Map) EnableRotate(s *Shape) (*Rotation, error) {
	if !m.HasShape(s) {
		return nil, fmt.Errorf("geoman: rotating shape %s: %w", s.ID, ErrUnknownShape)
	}
	if !rotatable(s.Kind) {
		return nil, fmt.Errorf("geoman: rotating %v %s: %w", s.Kind, s.ID, ErrNotRotatable)
	}
	if !m.optionsFor(s).AllowRotation {
		return nil, fmt.Errorf("geoman: rotating shape %s: %w", s.ID, ErrRotationDisabled)
	}
	if r, ok := m.rotations[s.ID]; ok {
		r.Disable()
	}
	if s.Kind == KindRectangle && s.angle == 0 && len(s.rings) > 0 && len(s.rings[0]) > 1 {
		s.angle = CalcAngle(m.project(s.rings[0][0]), m.project(s.rings[0][1]))
	}
	r := &Rotation{m: m, s: s, enabled: true}
	r.helper = cloneRings(s.rings)
	r.helperOrg = cloneRings(s.rings)
	m.rotations[s.ID] = r
	m.Log.WithFields(logrus.Fields{"shape": s.ID, "angle": s.angle}).Debug("geoman: rotation enabled")
	r.fire(EventRotationEnable, Event{Enabled: true})
	return r, nil
}

// Rotation returns the open rotation session on s, or nil.
func (m *Map) Rotation(s *Shape) *Rotation {
	return m.rotations[s.ID]
}

// Shape returns the shape being rotated.
func (r *Rotation) Shape() *Shape { return r.s }

// Enabled reports whether the session is open.
func (r *Rotation) Enabled() bool { return r.enabled }

// Helper returns the outline carrying the rotation handles.
func (r *Rotation) Helper() [][]LatLng { return cloneRings(r.helper) }

// SetCenter fixes the pivot of later gestures.
func (r *Rotation) SetCenter(ll LatLng) {
	r.center = ll
	r.hasCenter = true
}

// Center returns the pivot: the fixed center if one was set, else the
// centroid of the shape.
func (r *Rotation) Center() LatLng {
	if r.hasCenter {
		return r.center
	}
	return r.m.unprojectPrecise(centroid(r.s.planePreciseRings(r.m)))
}

// Start begins a gesture with the handle at ll.
func (r *Rotation) Start(ll LatLng) error {
	if !r.enabled {
		return fmt.Errorf("geoman: starting rotation of %s: %w", r.s.ID, ErrNotEnabled)
	}
	r.origin = r.m.projectPrecise(r.Center())
	r.start = r.m.projectPrecise(ll)
	r.initial = cloneRings(r.s.rings)
	r.helperOrg = cloneRings(r.helper)
	r.startAngle = r.s.angle
	r.rotating = true
	r.fire(EventRotateStart, Event{LatLng: ll, Angle: r.s.angle})
	return nil
}

// Rotate moves the handle of the current gesture to ll and turns the
// shape by the angle the handle swept around the pivot.
func (r *Rotation) Rotate(ll LatLng) error {
	if !r.rotating {
		return fmt.Errorf("geoman: rotating %s: %w", r.s.ID, ErrNotEnabled)
	}
	p := r.m.projectPrecise(ll)
	rad := math.Atan2(p.Y-r.origin.Y, p.X-r.origin.X) -
		math.Atan2(r.start.Y-r.origin.Y, r.start.X-r.origin.X)
	t := NewMatrix().Rotate(rad, r.origin).Flip()

	old := cloneRings(r.s.rings)
	r.s.rings = r.m.transformRings(r.initial, t)
	r.helper = r.m.transformRings(r.helperOrg, t)

	diff := rad * 180 / math.Pi
	if diff < 0 {
		diff += 360
	}
	r.s.angle = normalizeAngle(r.startAngle + diff)
	r.m.syncEditor(r.s)
	r.fireRotation(diff, old)
	return nil
}

// End finishes the current gesture.
func (r *Rotation) End() error {
	if !r.rotating {
		return fmt.Errorf("geoman: ending rotation of %s: %w", r.s.ID, ErrNotEnabled)
	}
	r.rotating = false
	r.helperOrg = cloneRings(r.helper)
	r.rotated = true
	r.fire(EventRotateEnd, Event{Angle: r.s.angle, Original: r.originalShape(r.initial)})
	r.fire(EventEdit, Event{})
	return nil
}

// Disable closes the session, firing update if the shape was rotated.
func (r *Rotation) Disable() {
	if !r.enabled {
		return
	}
	r.enabled = false
	r.rotating = false
	if cur, ok := r.m.rotations[r.s.ID]; ok && cur == r {
		delete(r.m.rotations, r.s.ID)
	}
	if r.rotated {
		r.fire(EventUpdate, Event{})
	}
	r.rotated = false
	r.fire(EventRotationDisable, Event{Enabled: false})
}

func (r *Rotation) fire(t EventType, ev Event) {
	ev.Type = t
	ev.Source = SourceRotation
	ev.Shape = r.s
	r.m.fire(ev)
}

func (r *Rotation) fireRotation(diff float64, old [][]LatLng) {
	r.fire(EventRotate, Event{Angle: r.s.angle, AngleDelta: diff, Original: r.originalShape(old)})
	r.fire(EventChange, Event{})
}

// originalShape wraps rings in a detached copy of the rotated shape.
func (r *Rotation) originalShape(rings [][]LatLng) *Shape {
	o := r.s.copyStyle(r.s.Kind)
	o.ID = r.s.ID
	o.rings = cloneRings(rings)
	o.angle = r.startAngle
	return o
}

// RotateLayer turns s by deg degrees around its pivot without a gesture.
func (m *Map) RotateLayer(s *Shape, deg float64) error {
	if !m.HasShape(s) {
		return fmt.Errorf("geoman: rotating shape %s: %w", s.ID, ErrUnknownShape)
	}
	if !rotatable(s.Kind) {
		return fmt.Errorf("geoman: rotating %v %s: %w", s.Kind, s.ID, ErrNotRotatable)
	}
	r := m.rotations[s.ID]
	var pivot LatLng
	if r != nil {
		pivot = r.Center()
	} else {
		pivot = m.unprojectPrecise(centroid(s.planePreciseRings(m)))
	}
	t := NewMatrix().Rotate(deg*math.Pi/180, m.projectPrecise(pivot)).Flip()

	oldAngle := s.angle
	old := cloneRings(s.rings)
	s.rings = m.transformRings(s.rings, t)
	s.angle = normalizeAngle(s.angle + deg)

	diff := s.angle - oldAngle
	if diff < 0 {
		diff += 360
	}
	m.syncEditor(s)
	if r == nil {
		r = &Rotation{m: m, s: s, startAngle: oldAngle}
	} else {
		r.helper = m.transformRings(r.helper, t)
		r.helperOrg = cloneRings(r.helper)
		r.startAngle = s.angle
	}
	orig := r.originalShape(old)
	orig.angle = oldAngle
	r.fire(EventRotate, Event{Angle: s.angle, AngleDelta: diff, Original: orig})
	r.fire(EventChange, Event{})
	return nil
}

// RotateLayerToAngle turns s so that its angle becomes deg.
func (m *Map) RotateLayerToAngle(s *Shape, deg float64) error {
	return m.RotateLayer(s, deg-s.angle)
}

// SetInitAngle sets the angle s reports without moving it.
func (s *Shape) SetInitAngle(deg float64) {
	s.angle = normalizeAngle(deg)
}

// normalizeAngle maps deg into [0, 360).
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// transformRings applies t to rings in the precise plane of m.
func (m *Map) transformRings(rings [][]LatLng, t Matrix) [][]LatLng {
	out := make([][]LatLng, len(rings))
	for i, r := range rings {
		out[i] = make([]LatLng, len(r))
		for j, ll := range r {
			out[i][j] = m.unprojectPrecise(t.Transform(m.projectPrecise(ll)))
		}
	}
	return out
}

// centroid returns the area centroid of the outer ring, or the mean of
// all points when the outline encloses no area. Points are taken relative
// to the first vertex so that large plane coordinates keep their
// precision.
func centroid(rings [][]geom.Point) geom.Point {
	var o geom.Point
	if len(rings) > 0 && len(rings[0]) > 0 {
		o = rings[0][0]
	}
	local := make([][]geom.Point, len(rings))
	for i, r := range rings {
		local[i] = make([]geom.Point, len(r))
		for j, p := range r {
			local[i][j] = geom.Point{X: p.X - o.X, Y: p.Y - o.Y}
		}
	}
	c := localCentroid(local)
	return geom.Point{X: c.X + o.X, Y: c.Y + o.Y}
}

func localCentroid(rings [][]geom.Point) geom.Point {
	if len(rings) > 0 && len(rings[0]) > 2 {
		poly := geom.Polygon{rings[0]}
		if a := poly.Area(); a > 0 && !math.IsNaN(a) {
			c := poly.Centroid()
			if !math.IsNaN(c.X) && !math.IsNaN(c.Y) {
				return c
			}
		}
	}
	var sum geom.Point
	n := 0
	for _, r := range rings {
		for _, p := range r {
			sum.X += p.X
			sum.Y += p.Y
			n++
		}
	}
	if n == 0 {
		return sum
	}
	return geom.Point{X: sum.X / float64(n), Y: sum.Y / float64(n)}
}

// markerSyncer is an editor whose handles can follow its shape.
type markerSyncer interface {
	syncMarkers()
}

// syncEditor moves the handles of the editor open on s, if any, to the
// current geometry of s.
func (m *Map) syncEditor(s *Shape) {
	if e, ok := m.editors[s.ID].(markerSyncer); ok {
		e.syncMarkers()
	}
}
