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

// CircleEditor edits a circle or circle marker. When resizing is enabled
// it offers a center marker that moves the circle and an outer marker
// that changes its radius.
type CircleEditor struct {
	editSession

	center, outer *VertexMarker
	gesture       *VertexMarker

	// startLatLng and startRadius are the circle at the start of the
	// gesture.
	startLatLng LatLng
	startRadius float64
}

func (m *Map) newCircleEditor(s *Shape) *CircleEditor {
	e := &CircleEditor{editSession: m.newEditSession(s)}
	if e.resizeable() {
		e.center = newVertexMarker(e, s.latlng)
		e.outer = newVertexMarker(e, m.latLngOnCircle(s, s.latlng, s.radius))
	}
	return e
}

func (e *CircleEditor) resizeable() bool {
	if e.s.Kind == KindCircle {
		return e.opts().ResizeableCircle
	}
	return e.opts().ResizeableCircleMarker
}

func (e *CircleEditor) radiusLimits() (min, max float64) {
	o := e.opts()
	if e.s.Kind == KindCircle {
		return o.MinRadiusCircle, o.MaxRadiusCircle
	}
	return o.MinRadiusCircleMarker, o.MaxRadiusCircleMarker
}

func (e *CircleEditor) indexOf(vm *VertexMarker) (IndexPath, bool) {
	switch {
	case vm == nil:
	case vm == e.center:
		return IndexPath{}, true
	case vm == e.outer:
		return IndexPath{Index: 1}, true
	}
	return IndexPath{}, false
}

// CenterMarker returns the marker at the center, or nil when the circle
// is not resizeable.
func (e *CircleEditor) CenterMarker() *VertexMarker { return e.center }

// OuterMarker returns the marker on the outline, or nil when the circle
// is not resizeable.
func (e *CircleEditor) OuterMarker() *VertexMarker { return e.outer }

// radiusOf returns the distance between the center and ll in the unit of
// the shape's radius.
func (m *Map) radiusOf(s *Shape, ll LatLng) float64 {
	if s.Kind == KindCircle {
		return m.Distance(s.latlng, ll)
	}
	return distance(m.project(s.latlng), m.project(ll))
}

// latLngOnCircle returns the point east of center at radius r in the
// unit of the shape's radius.
func (m *Map) latLngOnCircle(s *Shape, center LatLng, r float64) LatLng {
	if s.Kind == KindCircle {
		if m.simple() {
			return LatLng{Lat: center.Lat, Lng: center.Lng + r}
		}
		return Destination(center, 90, r)
	}
	p := m.project(center)
	return m.unproject(geom.Point{X: p.X + r, Y: p.Y})
}

// destinationOnLine returns the point at radius r from the center of s in
// the direction of toward.
func (m *Map) destinationOnLine(s *Shape, toward LatLng, r float64) LatLng {
	pc, pt := m.project(s.latlng), m.project(toward)
	if s.Kind == KindCircle && !m.simple() {
		return Destination(s.latlng, CalcAngle(pc, pt), r)
	}
	d := distance(pc, pt)
	if d == 0 {
		return m.latLngOnCircle(s, s.latlng, r)
	}
	// Radii of circle markers, and of circles on the Identity projection,
	// are in plane units.
	return m.unproject(geom.Point{X: pc.X + (pt.X-pc.X)*r/d, Y: pc.Y + (pt.Y-pc.Y)*r/d})
}

// clampOuter keeps ll within the radius limits of the circle.
func (e *CircleEditor) clampOuter(ll LatLng) LatLng {
	min, max := e.radiusLimits()
	d := e.m.radiusOf(e.s, ll)
	switch {
	case min > 0 && d < min:
		return e.m.destinationOnLine(e.s, ll, min)
	case max > 0 && d > max:
		return e.m.destinationOnLine(e.s, ll, max)
	}
	return ll
}

func (e *CircleEditor) clampRadius(r float64) float64 {
	min, max := e.radiusLimits()
	switch {
	case min > 0 && r < min:
		return min
	case max > 0 && r > max:
		return max
	}
	return r
}

// StartVertexDrag opens a drag gesture on the center or outer marker.
func (e *CircleEditor) StartVertexDrag(vm *VertexMarker) bool {
	if _, ok := e.indexOf(vm); !e.enabled || !ok {
		return false
	}
	e.gesture = vm
	vm.dragging = true
	e.startLatLng, e.startRadius = e.s.latlng, e.s.radius
	if !e.validate(e.opts().MoveVertexValidation, VertexContext{Marker: vm, Event: EventMarkerDragStart}) {
		vm.pinned = true
		vm.pinnedAt = vm.latlng
		return false
	}
	if vm == e.center && !e.opts().Draggable {
		vm.pinned = true
		vm.pinnedAt = vm.latlng
		return false
	}
	e.fire(EventMarkerDragStart, Event{Marker: vm, IndexPath: vm.IndexPath(), LatLng: vm.latlng})
	return true
}

// MoveVertex drags vm to ll. Moving the center moves the circle; moving
// the outer marker resizes it within the radius limits.
func (e *CircleEditor) MoveVertex(vm *VertexMarker, ll LatLng) bool {
	if !e.enabled {
		return false
	}
	if e.gesture != vm {
		if !e.StartVertexDrag(vm) {
			e.EndVertexDrag(vm)
			return false
		}
		moved := e.MoveVertex(vm, ll)
		e.EndVertexDrag(vm)
		return moved
	}
	if vm.pinned {
		vm.latlng = vm.pinnedAt
		return false
	}
	raw := ll
	ll = e.snap(vm, ll)
	switch vm {
	case e.center:
		vm.latlng = ll
		e.s.latlng = ll
		e.outer.latlng = e.m.latLngOnCircle(e.s, ll, e.s.radius)
		e.fire(EventCenterPlaced, Event{Marker: vm, LatLng: ll})
	case e.outer:
		if vm.snapped {
			min, max := e.radiusLimits()
			if d := e.m.radiusOf(e.s, ll); min > 0 && d < min || max > 0 && d > max {
				ll = raw
			}
		}
		vm.latlng = e.clampOuter(ll)
		e.s.radius = e.clampRadius(e.m.radiusOf(e.s, vm.latlng))
	}
	e.change()
	e.fire(EventMarkerDrag, Event{Marker: vm, IndexPath: vm.IndexPath(), LatLng: vm.latlng})
	return true
}

// EndVertexDrag closes the drag gesture on vm.
func (e *CircleEditor) EndVertexDrag(vm *VertexMarker) {
	if e.gesture != vm {
		return
	}
	e.gesture = nil
	vm.dragging = false
	vm.snapped = false
	e.snapper.Clear()
	if vm.pinned {
		vm.pinned = false
		return
	}
	if !e.s.latlng.Equals(e.startLatLng) || e.s.radius != e.startRadius {
		e.markEdited()
	}
	e.fire(EventMarkerDragEnd, Event{Marker: vm, IndexPath: vm.IndexPath(), LatLng: vm.latlng})
}

// ClickVertex fires vertexclick for vm.
func (e *CircleEditor) ClickVertex(vm *VertexMarker) {
	if _, ok := e.indexOf(vm); e.enabled && ok && !vm.dragging {
		e.fire(EventVertexClick, Event{Marker: vm, LatLng: vm.latlng})
	}
}

// syncMarkers moves the markers to the current center and radius.
func (e *CircleEditor) syncMarkers() {
	if e.center == nil {
		return
	}
	e.center.latlng = e.s.latlng
	e.outer.latlng = e.m.latLngOnCircle(e.s, e.s.latlng, e.s.radius)
}

// Disable closes the session.
func (e *CircleEditor) Disable() {
	if !e.enabled {
		return
	}
	for _, vm := range []*VertexMarker{e.center, e.outer} {
		if vm != nil {
			vm.owner = orphan{}
		}
	}
	e.center, e.outer, e.gesture = nil, nil, nil
	e.close()
}

// HiddenPolygon returns the 200-sided polygon approximating the outline
// of a circle or circle marker on m.
func (m *Map) HiddenPolygon(s *Shape) []LatLng {
	r := s.radius
	if s.Kind == KindCircleMarker {
		r = m.PxRadiusToMeterRadius(r, s.latlng)
	}
	if m.simple() {
		return GeodesicPolygon(s.latlng, r, hiddenCircleSides, 0, false)
	}
	return GeodesicPolygon(s.latlng, r, hiddenCircleSides, 0, true)
}

var _ Editor = (*CircleEditor)(nil)
