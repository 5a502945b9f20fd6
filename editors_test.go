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
	"errors"
	"reflect"
	"testing"
)

func TestAttach(t *testing.T) {
	m := newTestMap(t)
	img := NewImageOverlay(LatLngBounds{SouthWest: ll(0, 0), NorthEast: ll(1, 1)})
	temp := NewMarker(ll(0, 0))
	temp.Temporary = true
	mustAdd(t, m, img, temp)

	tests := []struct {
		name string
		s    *Shape
		opts *Options
		err  error
	}{
		{name: "not on map", s: NewMarker(ll(0, 0)), err: ErrUnknownShape},
		{name: "image overlay", s: img, err: ErrNotEditable},
		{name: "temporary", s: temp, err: ErrEditingDisabled},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := m.Attach(test.s, test.opts); !errors.Is(err, test.err) {
				t.Errorf("have %v, want %v", err, test.err)
			}
		})
	}

	noEdit := DefaultOptions()
	noEdit.AllowEditing = false
	s := NewMarker(ll(1, 1))
	mustAdd(t, m, s)
	if _, err := m.Attach(s, noEdit); !errors.Is(err, ErrEditingDisabled) {
		t.Errorf("have %v, want %v", err, ErrEditingDisabled)
	}
	if s.Options == nil || s.Options == noEdit {
		t.Error("attach options should be copied onto the shape")
	}
}

func TestAttach_Replace(t *testing.T) {
	m := newTestMap(t)
	s := NewPolygon(square())
	mustAdd(t, m, s)
	r := record(m, s.ID, EventEnable, EventDisable)
	first, err := m.Attach(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Attach(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.Enabled() || !second.Enabled() || m.Editor(s) != second {
		t.Error("the second session should replace the first")
	}
	m.Detach(s)
	want := []EventType{EventEnable, EventDisable, EventEnable, EventDisable}
	if !reflect.DeepEqual(r.types(), want) {
		t.Errorf("have %v, want %v", r.types(), want)
	}
}

func TestRectangleEditor(t *testing.T) {
	m := newTestMap(t)
	s := NewRectangle(LatLngBounds{SouthWest: ll(0, 0), NorthEast: ll(10, 10)})
	mustAdd(t, m, s)
	ed, err := m.Attach(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := ed.(*RectangleEditor)
	if absDifferent(s.Angle(), 180, testTolerance) {
		t.Errorf("angle: have %g, want 180", s.Angle())
	}
	corners := e.Markers()
	if len(corners) != 4 {
		t.Fatalf("have %d corners, want 4", len(corners))
	}
	if e.RemoveVertex(corners[0]) {
		t.Error("rectangle corners cannot be removed")
	}

	r := record(m, s.ID, EventMarkerDragStart, EventMarkerDrag, EventMarkerDragEnd, EventEdit)
	if !e.MoveVertex(corners[2], ll(20, 15)) {
		t.Fatal("move refused")
	}
	want := []LatLng{ll(0, 0), ll(0, 15), ll(20, 15), ll(20, 0)}
	if latLngsDifferent(s.Rings()[0], want, 1e-9) {
		t.Errorf("have %v, want %v", s.Rings()[0], want)
	}
	for i, c := range e.Markers() {
		if c.LatLng() != s.Rings()[0][i] {
			t.Errorf("corner %d at %v, ring at %v", i, c.LatLng(), s.Rings()[0][i])
		}
	}
	wantEvents := []EventType{EventMarkerDragStart, EventMarkerDrag, EventMarkerDragEnd, EventEdit}
	if !reflect.DeepEqual(r.types(), wantEvents) {
		t.Errorf("have %v, want %v", r.types(), wantEvents)
	}

	// Dragging past the opposite corner flips the rectangle.
	if !e.MoveVertex(e.Markers()[0], ll(30, 20)) {
		t.Fatal("move refused")
	}
	ring := s.Rings()[0]
	if ring[0] != ll(30, 20) || ring[2] != ll(20, 15) {
		t.Errorf("have %v", ring)
	}
}

func TestCircleEditor(t *testing.T) {
	o := DefaultOptions()
	o.MaxRadiusCircle = 6
	m := newTestMap(t, WithOptions(o))
	s := NewCircle(ll(0, 0), 5)
	mustAdd(t, m, s)
	ed, err := m.Attach(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := ed.(*CircleEditor)
	if e.OuterMarker().LatLng() != ll(5, 0) {
		t.Errorf("outer marker: have %v, want %v", e.OuterMarker().LatLng(), ll(5, 0))
	}

	if !e.MoveVertex(e.OuterMarker(), ll(0, 4)) || absDifferent(s.Radius(), 4, testTolerance) {
		t.Errorf("radius: have %g, want 4", s.Radius())
	}
	e.MoveVertex(e.OuterMarker(), ll(0, 8))
	if absDifferent(s.Radius(), 6, testTolerance) {
		t.Errorf("clamped radius: have %g, want 6", s.Radius())
	}
	if latLngsDifferent([]LatLng{e.OuterMarker().LatLng()}, []LatLng{ll(0, 6)}, testTolerance) {
		t.Errorf("clamped outer marker: have %v, want %v", e.OuterMarker().LatLng(), ll(0, 6))
	}

	r := record(m, s.ID, EventCenterPlaced)
	e.MoveVertex(e.CenterMarker(), ll(1, 1))
	if s.LatLng() != ll(1, 1) || r.count(EventCenterPlaced) != 1 {
		t.Errorf("center: have %v, %d events", s.LatLng(), r.count(EventCenterPlaced))
	}
	if e.OuterMarker().LatLng() != ll(7, 1) {
		t.Errorf("outer marker: have %v, want %v", e.OuterMarker().LatLng(), ll(7, 1))
	}

	cm := NewCircleMarker(ll(0, 0), 10)
	mustAdd(t, m, cm)
	ed, err = m.Attach(cm, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ce := ed.(*CircleEditor); ce.CenterMarker() != nil || ce.OuterMarker() != nil {
		t.Error("circle markers are not resizeable by default")
	}
}

func TestCircleEditor_UnchangedDrag(t *testing.T) {
	m := newTestMap(t)
	s := NewCircle(ll(0, 0), 5)
	mustAdd(t, m, s)
	ed, err := m.Attach(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := ed.(*CircleEditor)
	r := record(m, s.ID, EventEdit, EventMarkerDragEnd)

	outer := e.OuterMarker()
	if !e.StartVertexDrag(outer) {
		t.Fatal("drag refused")
	}
	e.MoveVertex(outer, ll(0, 4))
	e.MoveVertex(outer, ll(5, 0))
	e.EndVertexDrag(outer)
	if absDifferent(s.Radius(), 5, testTolerance) {
		t.Errorf("radius: have %g, want 5", s.Radius())
	}
	if e.Edited() || r.count(EventEdit) != 0 {
		t.Errorf("a drag back to the start should not edit: %v", r.types())
	}
	if r.count(EventMarkerDragEnd) != 1 {
		t.Errorf("have %v, want one markerdragend", r.types())
	}

	e.StartVertexDrag(outer)
	e.MoveVertex(outer, ll(0, 3))
	e.EndVertexDrag(outer)
	if !e.Edited() || r.count(EventEdit) != 1 {
		t.Errorf("a resize should edit: %v", r.types())
	}
}

func TestTextEditor(t *testing.T) {
	o := DefaultOptions()
	o.RemoveIfEmpty = true
	m := newTestMap(t, WithOptions(o))
	s := NewText(ll(0, 0), "hello")
	mustAdd(t, m, s)
	ed, err := m.Attach(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := ed.(*TextEditor)
	r := record(m, s.ID, EventTextFocus, EventTextChange, EventTextBlur, EventEdit, EventUpdate, EventRemove)

	if err := e.Focus(); err != nil {
		t.Fatal(err)
	}
	e.SetText("")
	if err := e.Blur(); err != nil {
		t.Fatal(err)
	}
	if e.HasFocus() || e.Text() != "" {
		t.Errorf("have focus %v, text %q", e.HasFocus(), e.Text())
	}
	e.Disable()
	if m.HasShape(s) {
		t.Error("an empty text should be removed")
	}
	want := []EventType{EventTextFocus, EventTextChange, EventTextBlur, EventEdit, EventUpdate, EventRemove}
	if !reflect.DeepEqual(r.types(), want) {
		t.Errorf("have %v, want %v", r.types(), want)
	}
	if err := e.Focus(); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("have %v, want %v", err, ErrNotEnabled)
	}
}

func TestMarkerEditor(t *testing.T) {
	m := newTestMap(t)
	target := NewMarker(ll(100, 100))
	s := NewMarker(ll(0, 0))
	mustAdd(t, m, target, s)
	ed, err := m.Attach(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := ed.(*MarkerEditor)

	if !e.Drag(ll(3, 4)) || s.LatLng() != ll(3, 4) {
		t.Errorf("have %v, want %v", s.LatLng(), ll(3, 4))
	}
	// Within the snapping distance of the other marker.
	if !e.Drag(ll(99, 99)) || s.LatLng() != ll(100, 100) {
		t.Errorf("have %v, want a snap to %v", s.LatLng(), ll(100, 100))
	}

	s.Options = DefaultOptions()
	s.Options.PreventMarkerRemoval = true
	if e.Remove() || !m.HasShape(s) {
		t.Error("removal should be prevented")
	}
	s.Options.PreventMarkerRemoval = false
	if !e.Remove() || m.HasShape(s) {
		t.Error("the marker should be removed")
	}
}
