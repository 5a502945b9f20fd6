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

// markerOwner resolves the position of its vertex markers.
type markerOwner interface {
	indexOf(vm *VertexMarker) (IndexPath, bool)
}

// VertexMarker is a draggable handle bound to one coordinate of a shape
// being edited. Its position within the shape is looked up from the
// editor that owns it.
type VertexMarker struct {
	owner  markerOwner
	latlng LatLng

	prevMid, nextMid *MiddleMarker

	dragging bool
	// pinned is set when a move was vetoed at gesture start; pinnedAt is
	// the position every move writes back.
	pinned   bool
	pinnedAt LatLng

	snapped   bool
	orgLatLng LatLng

	disabled bool
}

func newVertexMarker(owner markerOwner, ll LatLng) *VertexMarker {
	return &VertexMarker{owner: owner, latlng: ll}
}

// LatLng returns the position of the marker.
func (vm *VertexMarker) LatLng() LatLng { return vm.latlng }

// IndexPath returns the location of the marker's coordinate in its shape.
func (vm *VertexMarker) IndexPath() IndexPath {
	p, _ := vm.owner.indexOf(vm)
	return p
}

// Attached reports whether the marker still belongs to its editor.
func (vm *VertexMarker) Attached() bool {
	_, ok := vm.owner.indexOf(vm)
	return ok
}

// Snapped reports whether the marker is currently snapped to another
// shape.
func (vm *VertexMarker) Snapped() bool { return vm.snapped }

// Disabled reports whether the marker may not be dragged while its
// shape self-intersects.
func (vm *VertexMarker) Disabled() bool { return vm.disabled }

// MiddleMarker is a handle at the middle of an edge, between two vertex
// markers. Promoting it inserts a new vertex.
type MiddleMarker struct {
	latlng      LatLng
	left, right *VertexMarker
}

// LatLng returns the position of the marker.
func (mm *MiddleMarker) LatLng() LatLng { return mm.latlng }

// Left returns the vertex marker before the edge.
func (mm *MiddleMarker) Left() *VertexMarker { return mm.left }

// Right returns the vertex marker after the edge.
func (mm *MiddleMarker) Right() *VertexMarker { return mm.right }

// live reports whether the marker is still linked between its neighbors.
func (mm *MiddleMarker) live() bool {
	return mm.left != nil && mm.right != nil && mm.left.nextMid == mm && mm.right.prevMid == mm
}

func (m *Map) newMiddleMarker(left, right *VertexMarker) *MiddleMarker {
	if left == nil || right == nil || left == right {
		return nil
	}
	mm := &MiddleMarker{latlng: m.MiddleLatLng(left.latlng, right.latlng), left: left, right: right}
	left.nextMid = mm
	right.prevMid = mm
	return mm
}

// unlink detaches the middle markers of vm from its neighbors.
func (vm *VertexMarker) unlink() {
	if mm := vm.prevMid; mm != nil && mm.left != nil && mm.left.nextMid == mm {
		mm.left.nextMid = nil
	}
	if mm := vm.nextMid; mm != nil && mm.right != nil && mm.right.prevMid == mm {
		mm.right.prevMid = nil
	}
	vm.prevMid, vm.nextMid = nil, nil
}

// syncMiddles moves the middle markers next to vm to their edge centers.
func (m *Map) syncMiddles(vm *VertexMarker) {
	if mm := vm.prevMid; mm != nil && mm.left != nil {
		mm.latlng = m.MiddleLatLng(vm.latlng, mm.left.latlng)
	}
	if mm := vm.nextMid; mm != nil && mm.right != nil {
		mm.latlng = m.MiddleLatLng(vm.latlng, mm.right.latlng)
	}
}
