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

// TextEditor edits the content of a text shape.
type TextEditor struct {
	editSession

	focus     bool
	focusText string
}

func (m *Map) newTextEditor(s *Shape) *TextEditor {
	return &TextEditor{editSession: m.newEditSession(s)}
}

// Text returns the current content.
func (e *TextEditor) Text() string { return e.s.text }

// HasFocus reports whether the text has input focus.
func (e *TextEditor) HasFocus() bool { return e.focus }

// SetText replaces the content and fires textchange.
func (e *TextEditor) SetText(text string) {
	e.s.text = text
	e.fire(EventTextChange, Event{Text: text})
}

// Focus gives the text input focus.
func (e *TextEditor) Focus() error {
	if !e.enabled {
		return fmt.Errorf("geoman: focusing text %s: %w", e.s.ID, ErrNotEnabled)
	}
	e.setFocus(true)
	return nil
}

// Blur removes input focus from the text. A changed text counts as an
// edit.
func (e *TextEditor) Blur() error {
	if !e.enabled {
		return fmt.Errorf("geoman: blurring text %s: %w", e.s.ID, ErrNotEnabled)
	}
	e.setFocus(false)
	return nil
}

func (e *TextEditor) setFocus(focus bool) {
	if e.focus == focus {
		return
	}
	e.focus = focus
	if focus {
		e.focusText = e.s.text
		e.fire(EventTextFocus, Event{Text: e.s.text})
		return
	}
	e.fire(EventTextBlur, Event{Text: e.s.text})
	if e.focusText != e.s.text {
		e.markEdited()
	}
}

// Disable blurs the text and closes the session. With RemoveIfEmpty an
// empty text is then taken off the map.
func (e *TextEditor) Disable() {
	if !e.enabled {
		return
	}
	e.setFocus(false)
	e.close()
	if e.s.text == "" && e.opts().RemoveIfEmpty && e.m.HasShape(e.s) {
		e.m.RemoveShape(e.s)
	}
}

var _ Editor = (*TextEditor)(nil)
