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

// LineEditor edits the vertices of a line or polygon.
type LineEditor struct {
	editSession

	markers [][]*VertexMarker
	limits  *MarkerLimits

	// gesture is the marker being dragged.
	gesture *VertexMarker
	// snapshot holds the rings at the start of the last mutation, for
	// rolling back self-intersections.
	snapshot [][]LatLng

	cachedColor string
	isRed       bool

	// allowed is the verdict of the crossing-count check for the marker
	// being dragged, when the shape self-intersected at gesture start.
	allowed, allowedSet bool
}

func (m *Map) newLineEditor(s *Shape) *LineEditor {
	e := &LineEditor{editSession: m.newEditSession(s)}
	e.limits = newMarkerLimits(e)
	e.initMarkers()
	if !e.opts().AllowSelfIntersection {
		if s.Style.Color != intersectColor {
			e.cachedColor = s.Style.Color
		} else {
			e.isRed = true
		}
		e.handleLayerStyle(false)
	}
	return e
}

func (e *LineEditor) closed() bool { return e.s.Kind.closed() }

// initMarkers rebuilds every vertex and middle marker from the rings.
func (e *LineEditor) initMarkers() {
	for _, r := range e.markers {
		for _, vm := range r {
			vm.owner = orphan{}
		}
	}
	e.markers = make([][]*VertexMarker, len(e.s.rings))
	for i, r := range e.s.rings {
		ring := make([]*VertexMarker, len(r))
		for j, ll := range r {
			ring[j] = newVertexMarker(e, ll)
		}
		if !e.opts().HideMiddleMarkers {
			for k := range ring {
				next := k + 1
				if e.closed() {
					next %= len(ring)
				}
				if next < len(ring) {
					e.m.newMiddleMarker(ring[k], ring[next])
				}
			}
		}
		e.markers[i] = ring
	}
	e.limits.refresh()
}

// orphan owns markers that were dropped from their editor.
type orphan struct{}

func (orphan) indexOf(*VertexMarker) (IndexPath, bool) { return IndexPath{}, false }

func (e *LineEditor) indexOf(vm *VertexMarker) (IndexPath, bool) {
	for i, r := range e.markers {
		for j, o := range r {
			if o == vm {
				return IndexPath{Ring: i, Index: j}, true
			}
		}
	}
	return IndexPath{}, false
}

// Markers returns the vertex markers, ring by ring.
func (e *LineEditor) Markers() [][]*VertexMarker {
	out := make([][]*VertexMarker, len(e.markers))
	for i, r := range e.markers {
		out[i] = append([]*VertexMarker(nil), r...)
	}
	return out
}

// MiddleMarkers returns the middle markers in ring order.
func (e *LineEditor) MiddleMarkers() []*MiddleMarker {
	var out []*MiddleMarker
	for _, r := range e.markers {
		for _, vm := range r {
			if vm.nextMid != nil && vm.nextMid.live() {
				out = append(out, vm.nextMid)
			}
		}
	}
	return out
}

// VisibleMarkers returns the vertex markers to display for a pointer at
// cursor.
func (e *LineEditor) VisibleMarkers(cursor LatLng) []*VertexMarker {
	return e.limits.Update(cursor)
}

// Disable closes the session and drops every marker.
func (e *LineEditor) Disable() {
	if !e.enabled {
		return
	}
	e.gesture = nil
	for _, r := range e.markers {
		for _, vm := range r {
			vm.owner = orphan{}
		}
	}
	e.markers = nil
	e.close()
}

func (e *LineEditor) saveSnapshot() {
	e.snapshot = cloneRings(e.s.rings)
}

// reset restores the rings saved by saveSnapshot.
func (e *LineEditor) reset() {
	if e.snapshot == nil {
		return
	}
	e.s.rings = cloneRings(e.snapshot)
	e.syncMarkers()
}

// syncMarkers moves the markers to the current rings, rebuilding them
// when the ring structure changed.
func (e *LineEditor) syncMarkers() {
	same := len(e.markers) == len(e.s.rings)
	for i := 0; same && i < len(e.markers); i++ {
		same = len(e.markers[i]) == len(e.s.rings[i])
	}
	if !same {
		e.initMarkers()
		return
	}
	for i, r := range e.markers {
		for j, vm := range r {
			vm.latlng = e.s.rings[i][j]
		}
	}
	for _, r := range e.markers {
		for _, vm := range r {
			e.m.syncMiddles(vm)
		}
	}
}

// handleLayerStyle colors the shape while it self-intersects and
// restores its color afterwards. With flash, an intersection is only
// signalled briefly. It reports whether the shape self-intersects.
func (e *LineEditor) handleLayerStyle(flash bool) bool {
	o := e.opts()
	if o.AllowSelfIntersection {
		return false
	}
	if SelfIntersects(e.s.rings, e.closed()) {
		if o.AllowSelfIntersectionEdit {
			e.updateDisabledMarkers(true)
		}
		if e.isRed {
			return true
		}
		if flash {
			e.m.flash(e.s)
		} else {
			if e.cachedColor == "" {
				e.cachedColor = e.s.Style.Color
			}
			e.s.Style.Color = intersectColor
			e.isRed = true
		}
		e.fire(EventIntersect, Event{Intersection: true})
		return true
	}
	if e.isRed {
		e.s.Style.Color = e.cachedColor
		e.isRed = false
	}
	if o.AllowSelfIntersectionEdit {
		e.updateDisabledMarkers(false)
	}
	return false
}

func (e *LineEditor) updateDisabledMarkers(on bool) {
	for _, r := range e.markers {
		for _, vm := range r {
			vm.disabled = on && !e.allowedToDrag(vm)
		}
	}
}

// allowedToDrag reports whether vm may move while the shape
// self-intersects. This is a heuristic: a vertex counts as part of the
// crossing when one of its edges meets the rings at more than its two
// end points.
func (e *LineEditor) allowedToDrag(vm *VertexMarker) bool {
	ip, ok := e.indexOf(vm)
	if !ok {
		return false
	}
	rings := latLngPoints(e.s.rings)
	ring := e.s.rings[ip.Ring]
	n := len(ring)
	closed := e.closed()
	at := latLngPoint(vm.latlng)
	var prevLen, nextLen int
	if closed || ip.Index > 0 {
		prevLen = edgeCrossings(latLngPoint(ring[(ip.Index+n-1)%n]), at, rings, closed)
	}
	if closed || ip.Index < n-1 {
		nextLen = edgeCrossings(at, latLngPoint(ring[(ip.Index+1)%n]), rings, closed)
	}
	if !closed {
		switch {
		case ip.Index == 0:
			nextLen++
		case ip.Index == n-1:
			prevLen++
		}
	}
	return prevLen > 2 || nextLen > 2
}

// InsertVertex promotes mm to a vertex inserted after its left neighbor
// and returns the new vertex marker. It returns false when the insertion
// is refused.
func (e *LineEditor) InsertVertex(mm *MiddleMarker) (*VertexMarker, bool) {
	if !e.enabled || mm == nil || !mm.live() {
		return nil, false
	}
	o := e.opts()
	if !e.validate(o.AddVertexValidation, VertexContext{Marker: mm.left, Middle: mm, Event: EventVertexAdded}) {
		return nil, false
	}
	ip, ok := e.indexOf(mm.left)
	if !ok {
		return nil, false
	}
	if !o.AllowSelfIntersection {
		e.saveSnapshot()
	}
	left, right := mm.left, mm.right
	ll := mm.latlng
	ring := e.s.rings[ip.Ring]
	e.s.rings[ip.Ring] = insertAt(ring, ip.Index+1, ll)
	vm := newVertexMarker(e, ll)
	markers := e.markers[ip.Ring]
	markers = append(markers, nil)
	copy(markers[ip.Index+2:], markers[ip.Index+1:])
	markers[ip.Index+1] = vm
	e.markers[ip.Ring] = markers
	left.nextMid, right.prevMid = nil, nil
	if !o.HideMiddleMarkers {
		e.m.newMiddleMarker(left, vm)
		e.m.newMiddleMarker(vm, right)
	}
	if !o.AllowSelfIntersection && e.handleLayerStyle(true) {
		e.reset()
		return nil, false
	}
	e.limits.refresh()
	e.markEdited()
	e.change()
	e.fire(EventVertexAdded, Event{Marker: vm, IndexPath: vm.IndexPath(), LatLng: ll})
	return vm, true
}

func insertAt(r []LatLng, i int, ll LatLng) []LatLng {
	r = append(r, LatLng{})
	copy(r[i+1:], r[i:])
	r[i] = ll
	return r
}

// DragMiddleMarker promotes mm to a vertex and drags it to ll.
func (e *LineEditor) DragMiddleMarker(mm *MiddleMarker, ll LatLng) (*VertexMarker, bool) {
	vm, ok := e.InsertVertex(mm)
	if !ok {
		return nil, false
	}
	return vm, e.MoveVertex(vm, ll)
}

// RemoveVertex removes the coordinate of vm. Rings left too small are
// removed, and the shape is taken off the map once it has no coordinates
// left. It returns false when the removal is refused.
func (e *LineEditor) RemoveVertex(vm *VertexMarker) bool {
	if !e.enabled {
		return false
	}
	o := e.opts()
	if o.PreventMarkerRemoval {
		return false
	}
	if !e.validate(o.RemoveVertexValidation, VertexContext{Marker: vm, Event: EventVertexRemoved}) {
		return false
	}
	ip, ok := e.indexOf(vm)
	if !ok {
		return false
	}
	if !o.RemoveLayerBelowMinVertexCount && len(e.s.rings[ip.Ring]) <= e.s.Kind.minRingLen() {
		e.m.flash(e.s)
		return false
	}
	rings := cloneRings(e.s.rings)
	ring := append(rings[ip.Ring][:ip.Index:ip.Index], rings[ip.Ring][ip.Index+1:]...)
	if e.closed() && len(ring) <= 2 {
		ring = ring[:0]
	}
	rings[ip.Ring] = ring
	ringRemoved := len(ring) <= 1
	if ringRemoved {
		rings[ip.Ring] = ring[:0]
		rings = removeEmptyRings(rings)
	}
	if !o.AllowSelfIntersection && SelfIntersects(rings, e.closed()) {
		e.m.flash(e.s)
		e.fire(EventIntersect, Event{Intersection: true})
		return false
	}

	e.s.rings = rings
	if ringRemoved {
		e.initMarkers()
	}
	if !hasValues(e.s.rings) {
		e.m.RemoveShape(e.s)
		e.markEdited()
		e.fire(EventVertexRemoved, Event{Marker: vm, IndexPath: ip, LatLng: vm.latlng})
		e.change()
		return true
	}
	if !ringRemoved {
		e.relink(vm, ip)
	}
	e.limits.refresh()
	e.markEdited()
	e.fire(EventVertexRemoved, Event{Marker: vm, IndexPath: ip, LatLng: vm.latlng})
	e.change()
	return true
}

// relink drops vm from its marker ring and joins its neighbors with a new
// middle marker.
func (e *LineEditor) relink(vm *VertexMarker, ip IndexPath) {
	markers := e.markers[ip.Ring]
	n := len(markers)
	vm.unlink()
	left, right := -1, -1
	if e.closed() {
		left, right = (ip.Index+n-1)%n, (ip.Index+1)%n
	} else {
		if ip.Index > 0 {
			left = ip.Index - 1
		}
		if ip.Index+1 < n {
			right = ip.Index + 1
		}
	}
	if left >= 0 && right >= 0 && left != right && !e.opts().HideMiddleMarkers {
		e.m.newMiddleMarker(markers[left], markers[right])
	}
	e.markers[ip.Ring] = append(markers[:ip.Index:ip.Index], markers[ip.Index+1:]...)
	vm.owner = orphan{}
}

// StartVertexDrag opens a drag gesture on vm. A move validation veto pins
// the marker in place until EndVertexDrag.
func (e *LineEditor) StartVertexDrag(vm *VertexMarker) bool {
	if !e.enabled {
		return false
	}
	ip, ok := e.indexOf(vm)
	if !ok {
		return false
	}
	o := e.opts()
	if e.cachedColor == "" && !e.isRed {
		e.cachedColor = e.s.Style.Color
	}
	e.gesture = vm
	vm.dragging = true
	if !e.validate(o.MoveVertexValidation, VertexContext{Marker: vm, Event: EventMarkerDragStart}) {
		vm.pinned = true
		vm.pinnedAt = vm.latlng
		return false
	}
	e.fire(EventMarkerDragStart, Event{Marker: vm, IndexPath: ip, LatLng: vm.latlng})
	if !o.AllowSelfIntersection {
		e.saveSnapshot()
	}
	e.allowedSet = false
	if !o.AllowSelfIntersection && o.AllowSelfIntersectionEdit && SelfIntersects(e.s.rings, e.closed()) {
		e.allowed = e.allowedToDrag(vm)
		e.allowedSet = true
	}
	return true
}

// MoveVertex drags vm to ll, snapping it when enabled. Without an open
// gesture on vm, it opens and closes one around the move. It returns
// false when the move was refused or rolled back.
func (e *LineEditor) MoveVertex(vm *VertexMarker, ll LatLng) bool {
	if !e.enabled {
		return false
	}
	if e.gesture != vm {
		if !e.StartVertexDrag(vm) {
			e.EndVertexDrag(vm)
			return false
		}
		moved := e.MoveVertex(vm, ll)
		return e.EndVertexDrag(vm) && moved
	}
	if vm.pinned {
		vm.latlng = vm.pinnedAt
		return false
	}
	ip, ok := e.indexOf(vm)
	if !ok {
		return false
	}
	o := e.opts()
	if !o.AllowSelfIntersection && o.AllowSelfIntersectionEdit && e.allowedSet && !e.allowed &&
		SelfIntersects(e.s.rings, e.closed()) {
		e.reset()
		e.handleLayerStyle(false)
		return false
	}
	ll = e.snap(vm, ll)
	vm.latlng = ll
	e.s.rings[ip.Ring][ip.Index] = ll
	e.m.syncMiddles(vm)
	if !o.AllowSelfIntersection {
		if e.handleLayerStyle(false) && !o.AllowSelfIntersectionEdit {
			e.reset()
			e.handleLayerStyle(false)
			e.fire(EventLayerReset, Event{Marker: vm, IndexPath: ip, LatLng: ll})
			return false
		}
	}
	e.fire(EventMarkerDrag, Event{Marker: vm, IndexPath: ip, LatLng: ll})
	e.change()
	return true
}

// EndVertexDrag closes the drag gesture on vm. A shape left
// self-intersecting when that is not allowed is rolled back. It reports
// whether the moves made during the gesture were kept.
func (e *LineEditor) EndVertexDrag(vm *VertexMarker) bool {
	if e.gesture != vm {
		return false
	}
	e.gesture = nil
	vm.dragging = false
	vm.snapped = false
	e.snapper.Clear()
	if vm.pinned {
		vm.pinned = false
		return false
	}
	ip, _ := e.indexOf(vm)
	o := e.opts()
	inter := SelfIntersects(e.s.rings, e.closed())
	if inter && o.AllowSelfIntersectionEdit && e.allowedSet && e.allowed {
		inter = false
	}
	reset := !o.AllowSelfIntersection && inter
	e.fire(EventMarkerDragEnd, Event{Marker: vm, IndexPath: ip, LatLng: vm.latlng, IntersectionReset: reset})
	if reset {
		e.reset()
		e.snapshot = nil
		e.handleLayerStyle(false)
		e.fire(EventLayerReset, Event{Marker: vm, IndexPath: ip})
		return false
	}
	if !o.AllowSelfIntersection && o.AllowSelfIntersectionEdit {
		e.handleLayerStyle(false)
	}
	e.markEdited()
	e.change()
	return true
}

// ClickVertex fires vertexclick for vm.
func (e *LineEditor) ClickVertex(vm *VertexMarker) {
	if !e.enabled || vm.dragging {
		return
	}
	ip, ok := e.indexOf(vm)
	if !ok {
		return
	}
	e.fire(EventVertexClick, Event{Marker: vm, IndexPath: ip, LatLng: vm.latlng})
}

var _ Editor = (*LineEditor)(nil)
