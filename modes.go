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

import "github.com/sirupsen/logrus"

// SetGlobalEditMode opens editing sessions on every editable shape, or
// closes every session. Shapes added while the mode is on are attached as
// they arrive.
func (m *Map) SetGlobalEditMode(on bool) {
	m.globalEdit = on
	for _, s := range m.Shapes() {
		if !on {
			m.Detach(s)
			continue
		}
		if !m.editable(s) {
			continue
		}
		if _, err := m.Attach(s, nil); err != nil {
			m.Log.WithFields(logrus.Fields{"shape": s.ID, "kind": s.Kind}).Debug(err)
		}
	}
	m.fire(Event{Type: EventGlobalEditModeToggled, Source: SourceGlobal, Enabled: on})
}

// GlobalEditMode reports whether global edit mode is on.
func (m *Map) GlobalEditMode() bool { return m.globalEdit }

// SetGlobalRemovalMode turns click removal on or off.
func (m *Map) SetGlobalRemovalMode(on bool) {
	m.globalRemoval = on
	m.fire(Event{Type: EventGlobalRemovalModeToggled, Source: SourceGlobal, Enabled: on})
}

// GlobalRemovalMode reports whether global removal mode is on.
func (m *Map) GlobalRemovalMode() bool { return m.globalRemoval }

// ClickRemove removes s as a click in removal mode would. It reports
// whether s was removed.
func (m *Map) ClickRemove(s *Shape) bool {
	if !m.globalRemoval || s.Temporary || s.Ignore || !m.optionsFor(s).AllowRemoval {
		return false
	}
	return m.RemoveShape(s) == nil
}

// SetGlobalRotateMode opens rotation sessions on every rotatable shape,
// or closes every session.
func (m *Map) SetGlobalRotateMode(on bool) {
	m.globalRotate = on
	for _, s := range m.Shapes() {
		if !on {
			if r, ok := m.rotations[s.ID]; ok {
				r.Disable()
			}
			continue
		}
		if s.Temporary || s.Ignore || !rotatable(s.Kind) || !m.optionsFor(s).AllowRotation {
			continue
		}
		if _, err := m.EnableRotate(s); err != nil {
			m.Log.WithFields(logrus.Fields{"shape": s.ID, "kind": s.Kind}).Debug(err)
		}
	}
	m.fire(Event{Type: EventGlobalRotateModeToggled, Source: SourceGlobal, Enabled: on})
}

// GlobalRotateMode reports whether global rotate mode is on.
func (m *Map) GlobalRotateMode() bool { return m.globalRotate }
