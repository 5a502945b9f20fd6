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

	"github.com/sirupsen/logrus"
)

// Drag is a gesture moving a whole shape with the pointer.
type Drag struct {
	m *Map
	s *Shape

	start    LatLng
	last     LatLng
	dragging bool

	// snapper is set for point shapes that snap while dragged. org is the
	// position the point would have without snapping.
	snapper *Snapper
	snapped bool
	org     LatLng

	synced []*Drag
}

// BeginDrag starts dragging s with the pointer at at.
func (m *Map) BeginDrag(s *Shape, at LatLng) (*Drag, error) {
	if !m.HasShape(s) {
		return nil, fmt.Errorf("geoman: dragging shape %s: %w", s.ID, ErrUnknownShape)
	}
	if !m.optionsFor(s).Draggable {
		return nil, fmt.Errorf("geoman: dragging shape %s: %w", s.ID, ErrDraggingDisabled)
	}
	d := m.newDrag(s, at)
	if _, editing := m.editors[s.ID]; !editing {
		for _, o := range m.syncedWith(s) {
			d.synced = append(d.synced, m.newDrag(o, at))
		}
	}
	if len(d.synced) == 0 && d.snapsWhileDragged() {
		d.snapper = m.NewSnapper(s)
	}
	return d, nil
}

func (m *Map) newDrag(s *Shape, at LatLng) *Drag {
	return &Drag{m: m, s: s, start: at, last: at}
}

// snapsWhileDragged reports whether the position of the dragged shape is
// snapped. Only point shapes whose center is not a resize handle snap.
func (d *Drag) snapsWhileDragged() bool {
	switch d.s.Kind {
	case KindMarker, KindText:
		return true
	case KindCircle, KindCircleMarker:
		return !d.resizeable()
	}
	return false
}

func (d *Drag) resizeable() bool {
	o := d.m.optionsFor(d.s)
	return (d.s.Kind == KindCircle && o.ResizeableCircle) ||
		(d.s.Kind == KindCircleMarker && o.ResizeableCircleMarker)
}

// syncedWith returns the other draggable shapes that move with s: those
// listed in SyncLayersOnDrag, with groups expanded to their members, and
// with SyncParents every member of the groups containing s.
func (m *Map) syncedWith(s *Shape) []*Shape {
	o := m.optionsFor(s)
	seen := map[string]bool{s.ID: true}
	var out []*Shape
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		if other, ok := m.byID[id]; ok && m.optionsFor(other).Draggable {
			out = append(out, other)
		}
	}
	for _, id := range o.SyncLayersOnDrag {
		if m.groups.exists(id) {
			for _, leaf := range m.groups.leaves(id) {
				add(leaf)
			}
			continue
		}
		add(id)
	}
	if o.SyncParents {
		for _, g := range m.groups.ancestors(s.ID) {
			for _, leaf := range m.groups.leaves(g) {
				add(leaf)
			}
		}
	}
	return out
}

// Shape returns the dragged shape.
func (d *Drag) Shape() *Shape { return d.s }

// Move moves the pointer to at, translating the shape by the distance the
// pointer travelled since the last call.
func (d *Drag) Move(at LatLng) error {
	if !d.m.HasShape(d.s) {
		return fmt.Errorf("geoman: dragging shape %s: %w", d.s.ID, ErrUnknownShape)
	}
	for _, o := range d.synced {
		o.move(at)
	}
	d.move(at)
	return nil
}

func (d *Drag) move(at LatLng) {
	if !d.dragging {
		d.dragging = true
		d.fire(EventDragStart, Event{LatLng: d.last})
	}
	delta := at.Sub(d.last)
	d.last = at
	switch {
	case d.s.Kind == KindLine || d.s.Kind == KindPolygon || d.s.Kind == KindRectangle || d.s.Kind == KindImageOverlay:
		d.s.Translate(delta)
	case d.resizeable():
		d.s.latlng = d.s.latlng.Add(delta)
	default:
		ref := d.s.latlng
		if d.snapped {
			ref = d.org
		}
		ref = ref.Add(delta)
		d.s.latlng = ref
		if d.snapper != nil {
			to, _, ok := d.snapper.Snap(ref, nil)
			d.snapped = ok
			d.org = ref
			d.s.latlng = to
		}
	}
	d.m.syncEditor(d.s)
	d.fire(EventChange, Event{LatLng: d.s.latlng})
	d.fire(EventDrag, Event{LatLng: at})
}

// End finishes the gesture. When the pointer ends away from where it
// started it fires dragend, edit and update.
func (d *Drag) End() error {
	for _, o := range d.synced {
		o.end()
	}
	d.end()
	return nil
}

func (d *Drag) end() {
	if d.snapper != nil {
		d.snapper.Clear()
	}
	if !d.dragging {
		return
	}
	d.dragging = false
	if d.last.Equals(d.start) {
		return
	}
	d.m.Log.WithFields(logrus.Fields{"shape": d.s.ID, "kind": d.s.Kind}).Debug("geoman: shape dragged")
	d.fire(EventDragEnd, Event{})
	d.fire(EventEdit, Event{})
	d.fire(EventUpdate, Event{})
}

func (d *Drag) fire(t EventType, ev Event) {
	ev.Type = t
	ev.Source = SourceEdit
	ev.Shape = d.s
	d.m.fire(ev)
}
