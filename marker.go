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

// MarkerEditor edits a point marker, which can be dragged and removed.
type MarkerEditor struct {
	editSession
}

func (m *Map) newMarkerEditor(s *Shape) *MarkerEditor {
	return &MarkerEditor{editSession: m.newEditSession(s)}
}

// Drag moves the marker to ll in a single gesture, snapping it when
// enabled. It returns false when dragging is not allowed.
func (e *MarkerEditor) Drag(ll LatLng) bool {
	if !e.enabled {
		return false
	}
	d, err := e.m.BeginDrag(e.s, e.s.latlng)
	if err != nil {
		e.m.Log.WithField("shape", e.s.ID).Debug(err)
		return false
	}
	if err := d.Move(ll); err != nil {
		e.m.Log.WithField("shape", e.s.ID).Debug(err)
		return false
	}
	return d.End() == nil
}

// Remove takes the marker off the map unless removal is prevented.
func (e *MarkerEditor) Remove() bool {
	if !e.enabled || e.opts().PreventMarkerRemoval {
		return false
	}
	return e.m.RemoveShape(e.s) == nil
}

// Disable closes the session.
func (e *MarkerEditor) Disable() { e.close() }

var _ Editor = (*MarkerEditor)(nil)
