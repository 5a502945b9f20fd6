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

// intersectColor is the color of a shape while it self-intersects.
const intersectColor = "#f00000ff"

// Editor is an editing session on one shape.
type Editor interface {
	// Shape returns the shape being edited.
	Shape() *Shape
	// Enabled reports whether the session is still open.
	Enabled() bool
	// Edited reports whether the shape changed since the session opened.
	Edited() bool
	// Disable closes the session.
	Disable()
}

// Attach opens an editing session on s and returns it. When opts is not
// nil it replaces the options of s. An existing session on s is closed
// first.
func (m *Map) Attach(s *Shape, opts *Options) (Editor, error) {
	if !m.HasShape(s) {
		return nil, fmt.Errorf("geoman: attaching to shape %s: %w", s.ID, ErrUnknownShape)
	}
	if opts != nil {
		s.Options = opts.Clone()
	}
	if !m.editable(s) {
		return nil, fmt.Errorf("geoman: attaching to shape %s: %w", s.ID, ErrEditingDisabled)
	}
	m.Detach(s)
	var e Editor
	switch s.Kind {
	case KindLine, KindPolygon:
		e = m.newLineEditor(s)
	case KindRectangle:
		e = m.newRectangleEditor(s)
	case KindCircle, KindCircleMarker:
		e = m.newCircleEditor(s)
	case KindMarker:
		e = m.newMarkerEditor(s)
	case KindText:
		e = m.newTextEditor(s)
	case KindImageOverlay:
		return nil, fmt.Errorf("geoman: attaching to shape %s: %w", s.ID, ErrNotEditable)
	default:
		return nil, fmt.Errorf("geoman: attaching to shape %s: %w", s.ID, ErrUnknownKind)
	}
	m.editors[s.ID] = e
	m.Log.WithFields(logrus.Fields{"shape": s.ID, "kind": s.Kind}).Debug("geoman: editing enabled")
	m.fire(Event{Type: EventEnable, Source: SourceEdit, Shape: s})
	return e, nil
}

// Detach closes the editing session on s, if any.
func (m *Map) Detach(s *Shape) {
	if e, ok := m.editors[s.ID]; ok {
		e.Disable()
	}
}

// Editor returns the open editing session on s, or nil.
func (m *Map) Editor(s *Shape) Editor {
	return m.editors[s.ID]
}

// editSession holds the state shared by all editors.
type editSession struct {
	m       *Map
	s       *Shape
	enabled bool
	edited  bool
	snapper *Snapper
}

func (m *Map) newEditSession(s *Shape) editSession {
	return editSession{m: m, s: s, enabled: true, snapper: m.NewSnapper(s)}
}

func (e *editSession) Shape() *Shape { return e.s }
func (e *editSession) Enabled() bool { return e.enabled }
func (e *editSession) Edited() bool  { return e.edited }

// Snapper returns the snapping session used for the editor's handles.
func (e *editSession) Snapper() *Snapper { return e.snapper }

func (e *editSession) opts() *Options { return e.m.optionsFor(e.s) }

func (e *editSession) fire(t EventType, ev Event) {
	ev.Type = t
	ev.Source = SourceEdit
	ev.Shape = e.s
	e.m.fire(ev)
}

// markEdited records a finished mutation and fires edit.
func (e *editSession) markEdited() {
	e.edited = true
	e.fire(EventEdit, Event{})
}

func (e *editSession) change() {
	e.fire(EventChange, Event{})
}

// close ends the session, firing update if the shape changed and then
// disable. It reports whether the session was open.
func (e *editSession) close() bool {
	if !e.enabled {
		return false
	}
	e.enabled = false
	e.snapper.Clear()
	if cur, ok := e.m.editors[e.s.ID]; ok && cur.Shape() == e.s {
		delete(e.m.editors, e.s.ID)
	}
	if e.edited {
		e.fire(EventUpdate, Event{})
	}
	e.edited = false
	e.fire(EventDisable, Event{})
	return true
}

// validate runs hook, if set, and reports whether the mutation may go
// ahead.
func (e *editSession) validate(hook VertexValidator, ctx VertexContext) bool {
	if hook == nil {
		return true
	}
	ctx.Shape = e.s
	return hook(ctx)
}

// snap moves a handle dragged to ll onto a nearby shape when snapping is
// enabled.
func (e *editSession) snap(vm *VertexMarker, ll LatLng) LatLng {
	to, _, ok := e.snapper.Snap(ll, vm)
	if vm != nil {
		vm.snapped = ok
		if ok {
			vm.orgLatLng = ll
		}
	}
	return to
}
