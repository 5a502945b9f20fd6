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
	"reflect"
	"testing"
	"time"
)

func attachLine(t *testing.T, m *Map, s *Shape, opts *Options) *LineEditor {
	e, err := m.Attach(s, opts)
	if err != nil {
		t.Fatal(err)
	}
	le, ok := e.(*LineEditor)
	if !ok {
		t.Fatalf("have editor %T, want *LineEditor", e)
	}
	return le
}

func square() []LatLng {
	return []LatLng{ll(0, 0), ll(10, 0), ll(10, 10), ll(0, 10)}
}

func TestLineEditor_Markers(t *testing.T) {
	m := newTestMap(t)
	line := NewLine([]LatLng{ll(0, 0), ll(10, 0), ll(10, 10)})
	poly := NewPolygon(square())
	mustAdd(t, m, line, poly)

	le := attachLine(t, m, line, nil)
	if n := len(le.Markers()[0]); n != 3 {
		t.Errorf("line markers: have %d, want 3", n)
	}
	if n := len(le.MiddleMarkers()); n != 2 {
		t.Errorf("line middle markers: have %d, want 2", n)
	}
	pe := attachLine(t, m, poly, nil)
	if n := len(pe.MiddleMarkers()); n != 4 {
		t.Errorf("polygon middle markers: have %d, want 4", n)
	}
	last := pe.MiddleMarkers()[3]
	if last.LatLng() != ll(0, 5) {
		t.Errorf("closing middle marker: have %v, want %v", last.LatLng(), ll(0, 5))
	}
	for i, vm := range pe.Markers()[0] {
		if want := (IndexPath{Ring: 0, Index: i}); vm.IndexPath() != want {
			t.Errorf("have %v, want %v", vm.IndexPath(), want)
		}
	}

	o := DefaultOptions()
	o.HideMiddleMarkers = true
	pe = attachLine(t, m, poly, o)
	if n := len(pe.MiddleMarkers()); n != 0 {
		t.Errorf("hidden middle markers: have %d, want 0", n)
	}
}

func TestLineEditor_InsertRemove(t *testing.T) {
	m := newTestMap(t)
	orig := []LatLng{ll(0, 0), ll(10, 0), ll(10, 10)}
	s := NewLine(append([]LatLng(nil), orig...))
	mustAdd(t, m, s)
	e := attachLine(t, m, s, nil)
	r := record(m, s.ID, EventVertexAdded, EventVertexRemoved)

	vm, ok := e.InsertVertex(e.MiddleMarkers()[0])
	if !ok {
		t.Fatal("insertion refused")
	}
	want := []LatLng{ll(0, 0), ll(5, 0), ll(10, 0), ll(10, 10)}
	if !reflect.DeepEqual(s.Rings()[0], want) {
		t.Errorf("have %v, want %v", s.Rings()[0], want)
	}
	if vm.IndexPath() != (IndexPath{Ring: 0, Index: 1}) {
		t.Errorf("have %v, want index 1", vm.IndexPath())
	}
	if n := len(e.MiddleMarkers()); n != 3 {
		t.Errorf("middle markers: have %d, want 3", n)
	}

	if !e.RemoveVertex(vm) {
		t.Fatal("removal refused")
	}
	if !reflect.DeepEqual(s.Rings()[0], orig) {
		t.Errorf("have %v, want %v", s.Rings()[0], orig)
	}
	if vm.Attached() {
		t.Error("removed marker still attached")
	}
	if n := len(e.MiddleMarkers()); n != 2 {
		t.Errorf("middle markers: have %d, want 2", n)
	}
	if !reflect.DeepEqual(r.types(), []EventType{EventVertexAdded, EventVertexRemoved}) {
		t.Errorf("have %v", r.types())
	}
	if !e.Edited() {
		t.Error("editor should report an edit")
	}
}

func TestLineEditor_RemoveLineVertex(t *testing.T) {
	m := newTestMap(t)
	s := NewLine([]LatLng{ll(0, 0), ll(5, 5), ll(10, 10)})
	mustAdd(t, m, s)
	e := attachLine(t, m, s, nil)
	r := record(m, s.ID, EventVertexRemoved)

	if !e.RemoveVertex(e.Markers()[0][1]) {
		t.Fatal("removal refused")
	}
	if want := []LatLng{ll(0, 0), ll(10, 10)}; !reflect.DeepEqual(s.Rings()[0], want) {
		t.Errorf("have %v, want %v", s.Rings()[0], want)
	}
	if len(r.events) != 1 || r.events[0].IndexPath != (IndexPath{Ring: 0, Index: 1}) {
		t.Fatalf("have %+v", r.events)
	}
	mids := e.MiddleMarkers()
	if len(mids) != 1 || mids[0].LatLng() != ll(5, 5) {
		t.Errorf("have middle markers %v", mids)
	}

	// Removing down to one point takes the line off the map.
	e.RemoveVertex(e.Markers()[0][0])
	if m.HasShape(s) {
		t.Error("an empty line should be removed from the map")
	}
	if e.Enabled() {
		t.Error("editor should close with its shape")
	}
}

func TestLineEditor_MinimumVertices(t *testing.T) {
	t.Run("remove layer", func(t *testing.T) {
		m := newTestMap(t)
		s := NewPolygon([]LatLng{ll(0, 0), ll(10, 0), ll(0, 10)})
		mustAdd(t, m, s)
		e := attachLine(t, m, s, nil)
		r := record(m, s.ID, EventRemove)
		if !e.RemoveVertex(e.Markers()[0][2]) {
			t.Fatal("removal refused")
		}
		if m.HasShape(s) || r.count(EventRemove) != 1 {
			t.Error("the polygon should be removed")
		}
		for _, ring := range s.Rings() {
			if len(ring) == 2 {
				t.Errorf("two-point ring left behind: %v", ring)
			}
		}
	})
	t.Run("refuse", func(t *testing.T) {
		o := DefaultOptions()
		o.RemoveLayerBelowMinVertexCount = false
		m := newTestMap(t, WithOptions(o))
		tri := []LatLng{ll(0, 0), ll(10, 0), ll(0, 10)}
		s := NewPolygon(append([]LatLng(nil), tri...))
		mustAdd(t, m, s)
		e := attachLine(t, m, s, nil)
		if e.RemoveVertex(e.Markers()[0][2]) {
			t.Error("removal should be refused")
		}
		if !m.HasShape(s) || !reflect.DeepEqual(s.Rings()[0], tri) {
			t.Errorf("have %v, want %v", s.Rings(), tri)
		}
	})
	t.Run("hole", func(t *testing.T) {
		m := newTestMap(t)
		hole := []LatLng{ll(2, 2), ll(4, 2), ll(2, 4)}
		s := NewPolygon(square(), hole)
		mustAdd(t, m, s)
		e := attachLine(t, m, s, nil)
		if !e.RemoveVertex(e.Markers()[1][0]) {
			t.Fatal("removal refused")
		}
		if len(s.Rings()) != 1 || !reflect.DeepEqual(s.Rings()[0], square()) {
			t.Errorf("have %v, want only the outer ring", s.Rings())
		}
		if len(e.Markers()) != 1 || len(e.Markers()[0]) != 4 {
			t.Errorf("markers not rebuilt: %v", e.Markers())
		}
	})
	t.Run("prevented", func(t *testing.T) {
		o := DefaultOptions()
		o.PreventMarkerRemoval = true
		m := newTestMap(t, WithOptions(o))
		s := NewPolygon(square())
		mustAdd(t, m, s)
		e := attachLine(t, m, s, nil)
		if e.RemoveVertex(e.Markers()[0][0]) || len(s.Rings()[0]) != 4 {
			t.Error("removal should be prevented")
		}
	})
}

func TestLineEditor_SelfIntersectionRollback(t *testing.T) {
	o := DefaultOptions()
	o.AllowSelfIntersection = false
	m := newTestMap(t, WithOptions(o))
	s := NewPolygon(square())
	mustAdd(t, m, s)
	e := attachLine(t, m, s, nil)
	r := record(m, s.ID, EventIntersect, EventLayerReset, EventMarkerDrag)
	vm := e.Markers()[0][1]

	if !e.StartVertexDrag(vm) {
		t.Fatal("drag refused")
	}
	if !e.MoveVertex(vm, ll(12, 2)) {
		t.Error("a simple move should be kept")
	}

	// (10,0) moved above the top edge turns the square into a bowtie,
	// which restores the rings from before the gesture.
	if e.MoveVertex(vm, ll(5, 15)) {
		t.Error("the crossing move should be rolled back")
	}
	if !reflect.DeepEqual(s.Rings(), [][]LatLng{square()}) {
		t.Errorf("have %v, want %v", s.Rings(), square())
	}
	if vm.LatLng() != ll(10, 0) {
		t.Errorf("marker not reset: %v", vm.LatLng())
	}
	if s.Style.Color == intersectColor {
		t.Error("shape left colored as intersecting")
	}
	if !e.EndVertexDrag(vm) {
		t.Error("a gesture ending on a simple ring should be kept")
	}
	want := []EventType{EventMarkerDrag, EventIntersect, EventLayerReset}
	if !reflect.DeepEqual(r.types(), want) {
		t.Errorf("have %v, want %v", r.types(), want)
	}
}

func TestLineEditor_SelfIntersectionRemove(t *testing.T) {
	o := DefaultOptions()
	o.AllowSelfIntersection = false
	m := newTestMap(t, WithOptions(o))
	orig := []LatLng{ll(0, 0), ll(10, 0), ll(10, 10), ll(5, 1), ll(0, 10)}
	s := NewPolygon(append([]LatLng(nil), orig...))
	mustAdd(t, m, s)
	e := attachLine(t, m, s, nil)
	r := record(m, s.ID, EventEdit, EventVertexRemoved, EventChange, EventIntersect, EventUpdate)

	// Without (10,0) the edge from (5,1) to (0,10) crosses the diagonal.
	if e.RemoveVertex(e.Markers()[0][1]) {
		t.Error("a removal creating a kink should be refused")
	}
	if !reflect.DeepEqual(s.Rings(), [][]LatLng{orig}) {
		t.Errorf("have %v, want %v", s.Rings(), orig)
	}
	if n := len(e.Markers()[0]); n != 5 {
		t.Errorf("markers: have %d, want 5", n)
	}
	if e.Edited() {
		t.Error("a refused removal should not mark the shape edited")
	}
	e.Disable()
	want := []EventType{EventIntersect}
	if !reflect.DeepEqual(r.types(), want) {
		t.Errorf("have %v, want %v", r.types(), want)
	}
}

func TestLineEditor_SelfIntersectionInsert(t *testing.T) {
	o := DefaultOptions()
	o.AllowSelfIntersection = false
	m := newTestMap(t, WithOptions(o))
	s := NewPolygon(square())
	mustAdd(t, m, s)
	e := attachLine(t, m, s, nil)

	// The new vertex is kept and its crossing move rolled back.
	vm, ok := e.DragMiddleMarker(e.MiddleMarkers()[0], ll(5, 20))
	if ok {
		t.Error("a crossing middle marker drag should be refused")
	}
	want := []LatLng{ll(0, 0), ll(5, 0), ll(10, 0), ll(10, 10), ll(0, 10)}
	if !reflect.DeepEqual(s.Rings()[0], want) {
		t.Errorf("have %v, want %v", s.Rings()[0], want)
	}
	if vm == nil || vm.LatLng() != ll(5, 0) {
		t.Errorf("have marker %v, want it at %v", vm, ll(5, 0))
	}
}

func TestLineEditor_Gesture(t *testing.T) {
	m := newTestMap(t)
	s := NewLine([]LatLng{ll(0, 0), ll(10, 0)})
	mustAdd(t, m, s)
	e := attachLine(t, m, s, nil)
	r := record(m, s.ID, EventMarkerDragStart, EventMarkerDrag, EventMarkerDragEnd, EventChange, EventEdit,
		EventUpdate, EventDisable, EventVertexClick)

	vm := e.Markers()[0][1]
	if !e.MoveVertex(vm, ll(10, 5)) {
		t.Fatal("move refused")
	}
	if want := []LatLng{ll(0, 0), ll(10, 5)}; !reflect.DeepEqual(s.Rings()[0], want) {
		t.Errorf("have %v, want %v", s.Rings()[0], want)
	}
	if mid := e.MiddleMarkers()[0].LatLng(); mid != ll(5, 2.5) {
		t.Errorf("middle marker: have %v, want %v", mid, ll(5, 2.5))
	}
	e.ClickVertex(vm)
	e.Disable()
	e.Disable()
	want := []EventType{
		EventMarkerDragStart, EventMarkerDrag, EventChange, EventMarkerDragEnd, EventEdit, EventChange,
		EventVertexClick, EventUpdate, EventDisable,
	}
	if !reflect.DeepEqual(r.types(), want) {
		t.Errorf("have %v, want %v", r.types(), want)
	}
	if m.Editor(s) != nil {
		t.Error("editor still registered")
	}
	if e.MoveVertex(vm, ll(0, 0)) {
		t.Error("a closed editor should refuse moves")
	}
}

func TestLineEditor_Validation(t *testing.T) {
	o := DefaultOptions()
	var seen []EventType
	veto := func(ctx VertexContext) bool {
		seen = append(seen, ctx.Event)
		return false
	}
	o.AddVertexValidation = veto
	o.RemoveVertexValidation = veto
	o.MoveVertexValidation = veto
	m := newTestMap(t)
	orig := []LatLng{ll(0, 0), ll(10, 0), ll(10, 10)}
	s := NewLine(append([]LatLng(nil), orig...))
	mustAdd(t, m, s)
	e := attachLine(t, m, s, o)

	if _, ok := e.InsertVertex(e.MiddleMarkers()[0]); ok {
		t.Error("insertion should be vetoed")
	}
	if e.RemoveVertex(e.Markers()[0][0]) {
		t.Error("removal should be vetoed")
	}
	vm := e.Markers()[0][2]
	if e.MoveVertex(vm, ll(20, 20)) {
		t.Error("move should be vetoed")
	}
	if e.StartVertexDrag(vm) {
		t.Error("drag start should be vetoed")
	}
	if e.MoveVertex(vm, ll(20, 20)) || vm.LatLng() != ll(10, 10) {
		t.Errorf("pinned marker moved to %v", vm.LatLng())
	}
	e.EndVertexDrag(vm)
	if !reflect.DeepEqual(s.Rings()[0], orig) {
		t.Errorf("have %v, want %v", s.Rings()[0], orig)
	}
	want := []EventType{EventVertexAdded, EventVertexRemoved, EventMarkerDragStart, EventMarkerDragStart}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("have %v, want %v", seen, want)
	}
}

func TestMarkerLimits(t *testing.T) {
	o := DefaultOptions()
	o.LimitMarkersToCount = 2
	clock := newFakeClock()
	m := newTestMap(t, WithOptions(o), WithClock(clock.now))
	s := NewLine([]LatLng{ll(0, 0), ll(1, 0), ll(2, 0), ll(3, 0), ll(4, 0)})
	mustAdd(t, m, s)
	e := attachLine(t, m, s, nil)

	positions := func(vms []*VertexMarker) []LatLng {
		out := make([]LatLng, len(vms))
		for i, vm := range vms {
			out[i] = vm.LatLng()
		}
		return out
	}
	if have, want := positions(e.VisibleMarkers(ll(4, 0))), []LatLng{ll(4, 0), ll(3, 0)}; !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
	// Updates inside the window keep the previous markers.
	if have, want := positions(e.VisibleMarkers(ll(0, 0))), []LatLng{ll(4, 0), ll(3, 0)}; !reflect.DeepEqual(have, want) {
		t.Errorf("throttled: have %v, want %v", have, want)
	}
	clock.advance(150 * time.Millisecond)
	if have, want := positions(e.VisibleMarkers(ll(0, 0))), []LatLng{ll(0, 0), ll(1, 0)}; !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}

	m.Options.LimitMarkersToCount = -1
	clock.advance(150 * time.Millisecond)
	if n := len(e.VisibleMarkers(ll(0, 0))); n != 5 {
		t.Errorf("unlimited: have %d markers, want 5", n)
	}
}
