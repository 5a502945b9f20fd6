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

import "fmt"

// EventType identifies a notification.
type EventType int

// The notifications fired by the engine.
const (
	EventEnable EventType = iota
	EventDisable
	EventUpdate
	EventEdit
	EventChange
	EventRemove
	EventVertexAdded
	EventVertexRemoved
	EventVertexClick
	EventMarkerDragStart
	EventMarkerDrag
	EventMarkerDragEnd
	EventDragStart
	EventDrag
	EventDragEnd
	EventSnapDrag
	EventSnap
	EventUnsnap
	EventRotationEnable
	EventRotationDisable
	EventRotateStart
	EventRotate
	EventRotateEnd
	EventCut
	EventIntersect
	EventLayerReset
	EventTextChange
	EventTextFocus
	EventTextBlur
	EventCenterPlaced
	EventCreate
	EventDrawStart
	EventDrawEnd
	EventGlobalEditModeToggled
	EventGlobalRemovalModeToggled
	EventGlobalRotateModeToggled
)

var eventNames = [...]string{
	EventEnable:                   "enable",
	EventDisable:                  "disable",
	EventUpdate:                   "update",
	EventEdit:                     "edit",
	EventChange:                   "change",
	EventRemove:                   "remove",
	EventVertexAdded:              "vertexadded",
	EventVertexRemoved:            "vertexremoved",
	EventVertexClick:              "vertexclick",
	EventMarkerDragStart:          "markerdragstart",
	EventMarkerDrag:               "markerdrag",
	EventMarkerDragEnd:            "markerdragend",
	EventDragStart:                "dragstart",
	EventDrag:                     "drag",
	EventDragEnd:                  "dragend",
	EventSnapDrag:                 "snapdrag",
	EventSnap:                     "snap",
	EventUnsnap:                   "unsnap",
	EventRotationEnable:           "rotateenable",
	EventRotationDisable:          "rotatedisable",
	EventRotateStart:              "rotatestart",
	EventRotate:                   "rotate",
	EventRotateEnd:                "rotateend",
	EventCut:                      "cut",
	EventIntersect:                "intersect",
	EventLayerReset:               "layerreset",
	EventTextChange:               "textchange",
	EventTextFocus:                "textfocus",
	EventTextBlur:                 "textblur",
	EventCenterPlaced:             "centerplaced",
	EventCreate:                   "create",
	EventDrawStart:                "drawstart",
	EventDrawEnd:                  "drawend",
	EventGlobalEditModeToggled:    "globaleditmodetoggled",
	EventGlobalRemovalModeToggled: "globalremovalmodetoggled",
	EventGlobalRotateModeToggled:  "globalrotatemodetoggled",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventNames[t]
}

// SourceTag tells which subsystem produced an event.
type SourceTag int

// The event sources.
const (
	SourceEdit SourceTag = iota
	SourceDraw
	SourceSnapping
	SourceRotation
	SourceGlobal
)

func (s SourceTag) String() string {
	switch s {
	case SourceEdit:
		return "Edit"
	case SourceDraw:
		return "Draw"
	case SourceSnapping:
		return "Snapping"
	case SourceRotation:
		return "Rotation"
	case SourceGlobal:
		return "Global"
	}
	return fmt.Sprintf("SourceTag(%d)", int(s))
}

// Event is a notification about a state change. Only the fields relevant
// to the event type are set.
type Event struct {
	Type   EventType
	Source SourceTag

	// Shape is the shape the event concerns. It is nil for map-wide
	// events such as mode toggles.
	Shape *Shape

	// Marker and IndexPath identify the vertex for vertex and marker
	// events.
	Marker    *VertexMarker
	IndexPath IndexPath

	// LatLng is the pointer or vertex position.
	LatLng LatLng

	// SnapLatLng, SnapTarget and Distance describe snap events.
	SnapLatLng LatLng
	SnapTarget *Shape
	Distance   float64

	// Angle is the absolute rotation in degrees and AngleDelta the change
	// since the last rotate event.
	Angle, AngleDelta float64

	// Original is the shape before a cut or rotation. Result is the
	// first shape a cut produced.
	Original, Result *Shape

	// Intersection reports whether a shape self-intersects.
	Intersection bool
	// IntersectionReset reports that a drag was rolled back because it
	// left the shape self-intersecting.
	IntersectionReset bool

	Text string

	// Enabled is the new state of a toggled mode.
	Enabled bool
}

// Handler receives events.
type Handler func(Event)

type subscription struct {
	id  int
	typ EventType
	h   Handler
}

// bus holds subscriptions keyed by the ID of the shape or group they
// listen on. The empty key holds map-wide subscriptions.
type bus struct {
	next int
	subs map[string][]subscription
}

func (b *bus) on(target string, t EventType, h Handler) func() {
	if b.subs == nil {
		b.subs = make(map[string][]subscription)
	}
	b.next++
	id := b.next
	b.subs[target] = append(b.subs[target], subscription{id: id, typ: t, h: h})
	return func() {
		subs := b.subs[target]
		for i, s := range subs {
			if s.id == id {
				b.subs[target] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) emit(target string, e Event) {
	subs := b.subs[target]
	for _, s := range subs {
		if s.typ == e.Type {
			s.h(e)
		}
	}
}

// On subscribes h to events of type t fired on the shape or group with ID
// target. An empty target subscribes to every event of type t on the map.
// The returned function cancels the subscription.
func (m *Map) On(target string, t EventType, h Handler) (cancel func()) {
	return m.events.on(target, t, h)
}

// fire delivers e to the subscribers of its shape, then of every group
// containing the shape, then map-wide.
func (m *Map) fire(e Event) {
	if e.Shape != nil {
		m.events.emit(e.Shape.ID, e)
		for _, g := range m.groups.ancestors(e.Shape.ID) {
			m.events.emit(g, e)
		}
	}
	m.events.emit("", e)
}
