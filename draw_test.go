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

func TestDraw_Polygon(t *testing.T) {
	m := newTestMap(t)
	r := record(m, "", EventDrawStart, EventCreate, EventDrawEnd)
	d, err := m.Draw(DrawPolygon, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []LatLng{ll(0, 0), ll(100, 0)} {
		if _, ok := d.AddVertex(p); !ok {
			t.Fatalf("vertex %v refused", p)
		}
	}
	if s, err := d.Finish(); s != nil || err != nil {
		t.Errorf("two vertices: have %v, %v", s, err)
	}
	if !d.Enabled() {
		t.Fatal("the session should stay open")
	}
	d.AddVertex(ll(100, 100))
	s, err := d.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || !m.HasShape(s) || s.Kind != KindPolygon {
		t.Fatalf("have %v", s)
	}
	if want := []LatLng{ll(0, 0), ll(100, 0), ll(100, 100)}; !reflect.DeepEqual(s.Rings()[0], want) {
		t.Errorf("have %v, want %v", s.Rings()[0], want)
	}
	if !reflect.DeepEqual(r.types(), []EventType{EventDrawStart, EventCreate, EventDrawEnd}) {
		t.Errorf("have %v", r.types())
	}
	if r.events[1].Shape != s || r.events[1].Source != SourceDraw {
		t.Errorf("create event: %+v", r.events[1])
	}
	if _, err := d.Finish(); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("have %v, want %v", err, ErrNotEnabled)
	}
}

func TestDraw_Snapping(t *testing.T) {
	m := newTestMap(t)
	mustAdd(t, m, NewMarker(ll(50, 50)))
	d, err := m.Draw(DrawLine, nil)
	if err != nil {
		t.Fatal(err)
	}
	if to, _ := d.AddVertex(ll(52, 49)); to != ll(50, 50) {
		t.Errorf("have %v, want a snap to %v", to, ll(50, 50))
	}
	d.AddVertex(ll(200, 50))
	// Closing onto the line's own first vertex.
	d.AddVertex(ll(200, 200))
	if to, _ := d.AddVertex(ll(51, 52)); to != ll(50, 50) {
		t.Errorf("have %v, want a snap to the first vertex", to)
	}
	if !d.RemoveLastVertex() || len(d.Points()) != 3 {
		t.Errorf("have %v", d.Points())
	}
	s, err := d.Finish()
	if err != nil || s == nil || s.Kind != KindLine {
		t.Fatalf("have %v, %v", s, err)
	}
}

func TestDraw_SelfIntersection(t *testing.T) {
	o := DefaultOptions()
	o.AllowSelfIntersection = false
	o.Snappable = false
	m := newTestMap(t)
	d, err := m.Draw(DrawPolygon, o)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []LatLng{ll(0, 0), ll(100, 0), ll(100, 100)} {
		d.AddVertex(p)
	}
	if _, ok := d.AddVertex(ll(50, -50)); ok {
		t.Error("a crossing vertex should be refused")
	}
	if len(d.Points()) != 3 {
		t.Errorf("have %v", d.Points())
	}
	// The open outline is fine but its closing edge would cross it.
	if _, ok := d.AddVertex(ll(120, 50)); !ok {
		t.Fatal("vertex refused")
	}
	if s, err := d.Finish(); s != nil || err != nil {
		t.Errorf("have %v, %v", s, err)
	}
	d.Cancel()
	if d.Enabled() || len(m.Shapes()) != 0 {
		t.Error("cancel should close the session without adding anything")
	}
}

func TestDraw_Cut(t *testing.T) {
	m := newTestMap(t)
	s := NewPolygon(box(0, 0, 100, 100))
	mustAdd(t, m, s)
	r := record(m, "", EventCreate, EventCut, EventDrawEnd)

	d, err := m.Draw(DrawCut, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range box(30, 30, 60, 60) {
		d.AddVertex(p)
	}
	cutter, err := d.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if cutter == nil || m.HasShape(cutter) {
		t.Fatalf("have cutter %v", cutter)
	}
	res := d.Cut()
	if len(res.Pairs) != 1 || res.Pairs[0].Original != s {
		t.Fatalf("have %+v", res)
	}
	if a := area(res.Pairs[0].Result); absDifferent(a, 100*100-30*30, 1e-9) {
		t.Errorf("area: have %g", a)
	}
	if !reflect.DeepEqual(r.types(), []EventType{EventCut, EventDrawEnd}) {
		t.Errorf("have %v", r.types())
	}
}

func TestDraw_Replace(t *testing.T) {
	m := newTestMap(t)
	first, _ := m.Draw(DrawLine, nil)
	second, _ := m.Draw(DrawPolygon, nil)
	if first.Enabled() || !second.Enabled() {
		t.Error("a new session should cancel the open one")
	}
	if _, err := m.Draw(DrawMode(7), nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("have %v, want %v", err, ErrUnknownKind)
	}
	if second.Mode() != DrawPolygon || second.Mode().String() != "Polygon" {
		t.Errorf("have mode %v", second.Mode())
	}
}
