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

// RectangleEditor edits a rectangle through its four corners. Dragging a
// corner keeps the opposite corner in place and the sides at the
// rectangle's angle.
type RectangleEditor struct {
	editSession

	corners  []*VertexMarker
	gesture  *VertexMarker
	opposite LatLng
}

func (m *Map) newRectangleEditor(s *Shape) *RectangleEditor {
	e := &RectangleEditor{editSession: m.newEditSession(s)}
	if s.angle == 0 && len(s.rings) > 0 && len(s.rings[0]) > 1 {
		s.angle = CalcAngle(m.project(s.rings[0][0]), m.project(s.rings[0][1]))
	}
	e.initMarkers()
	return e
}

func (e *RectangleEditor) initMarkers() {
	e.corners = nil
	if len(e.s.rings) == 0 {
		return
	}
	for _, ll := range e.s.rings[0] {
		e.corners = append(e.corners, newVertexMarker(e, ll))
	}
}

// syncMarkers moves the corner markers to the current ring.
func (e *RectangleEditor) syncMarkers() {
	if len(e.s.rings) == 0 || len(e.s.rings[0]) != len(e.corners) {
		e.initMarkers()
		return
	}
	for i, c := range e.corners {
		c.latlng = e.s.rings[0][i]
	}
}

func (e *RectangleEditor) indexOf(vm *VertexMarker) (IndexPath, bool) {
	for i, c := range e.corners {
		if c == vm {
			return IndexPath{Index: i}, true
		}
	}
	return IndexPath{}, false
}

// Markers returns the corner markers in ring order.
func (e *RectangleEditor) Markers() []*VertexMarker {
	return append([]*VertexMarker(nil), e.corners...)
}

// RemoveVertex is refused: a rectangle always keeps four corners.
func (e *RectangleEditor) RemoveVertex(*VertexMarker) bool { return false }

// StartVertexDrag opens a drag gesture on the corner vm.
func (e *RectangleEditor) StartVertexDrag(vm *VertexMarker) bool {
	ip, ok := e.indexOf(vm)
	if !e.enabled || !ok || len(e.corners) != 4 {
		return false
	}
	e.gesture = vm
	vm.dragging = true
	if !e.validate(e.opts().MoveVertexValidation, VertexContext{Marker: vm, Event: EventMarkerDragStart}) {
		vm.pinned = true
		vm.pinnedAt = vm.latlng
		return false
	}
	e.opposite = e.corners[(ip.Index+2)%4].latlng
	vm.snapped = false
	e.fire(EventMarkerDragStart, Event{Marker: vm, IndexPath: ip, LatLng: vm.latlng})
	return true
}

// MoveVertex drags the corner vm to ll and rebuilds the rectangle.
func (e *RectangleEditor) MoveVertex(vm *VertexMarker, ll LatLng) bool {
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
	ip, ok := e.indexOf(vm)
	if !ok {
		return false
	}
	ll = e.snap(vm, ll)
	e.adjust(ip.Index, ll)
	e.fire(EventMarkerDrag, Event{Marker: vm, IndexPath: ip, LatLng: ll})
	e.change()
	return true
}

// adjust rebuilds the rectangle with corner i at ll. The two free corners
// are assigned so that the ring keeps its orientation.
func (e *RectangleEditor) adjust(i int, ll LatLng) {
	c := e.m.rotatedRectangle(ll, e.opposite, e.s.angle)
	old := e.s.rings[0]
	ring := make([]LatLng, 4)
	ring[i] = c[0]
	ring[(i+2)%4] = c[2]
	a, b := c[1], c[3]
	pn := e.m.projectPrecise(old[(i+1)%4])
	if distance(pn, e.m.projectPrecise(b)) < distance(pn, e.m.projectPrecise(a)) {
		a, b = b, a
	}
	ring[(i+1)%4] = a
	ring[(i+3)%4] = b
	e.s.rings[0] = ring
	for j, vm := range e.corners {
		vm.latlng = ring[j]
	}
}

// EndVertexDrag closes the drag gesture on vm.
func (e *RectangleEditor) EndVertexDrag(vm *VertexMarker) {
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
	e.fire(EventMarkerDragEnd, Event{Marker: vm, IndexPath: vm.IndexPath(), LatLng: vm.latlng})
	e.markEdited()
	e.change()
}

// ClickVertex fires vertexclick for the corner vm.
func (e *RectangleEditor) ClickVertex(vm *VertexMarker) {
	if ip, ok := e.indexOf(vm); e.enabled && ok && !vm.dragging {
		e.fire(EventVertexClick, Event{Marker: vm, IndexPath: ip, LatLng: vm.latlng})
	}
}

// Disable closes the session.
func (e *RectangleEditor) Disable() {
	if !e.enabled {
		return
	}
	for _, c := range e.corners {
		c.owner = orphan{}
	}
	e.corners = nil
	e.gesture = nil
	e.close()
}

var _ Editor = (*RectangleEditor)(nil)
