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

import "sort"

// MarkerLimits restricts the vertex markers of a line editor to the ones
// nearest the pointer when Options.LimitMarkersToCount is positive.
// Updates are throttled.
type MarkerLimits struct {
	e        *LineEditor
	throttle *Throttle
	cursor   LatLng
	visible  []*VertexMarker
}

func newMarkerLimits(e *LineEditor) *MarkerLimits {
	return &MarkerLimits{e: e, throttle: NewThrottle(throttleWindow, e.m.now)}
}

// Update records a pointer move to cursor and returns the markers that
// should be displayed.
func (l *MarkerLimits) Update(cursor LatLng) []*VertexMarker {
	l.cursor = cursor
	l.throttle.Do(l.apply)
	return l.Visible()
}

// Visible returns the markers currently displayed.
func (l *MarkerLimits) Visible() []*VertexMarker {
	return append([]*VertexMarker(nil), l.visible...)
}

// refresh applies the limit immediately, after the markers changed.
func (l *MarkerLimits) refresh() { l.apply() }

func (l *MarkerLimits) apply() {
	var all []*VertexMarker
	for _, r := range l.e.markers {
		all = append(all, r...)
	}
	limit := l.e.opts().LimitMarkersToCount
	if limit < 0 || limit >= len(all) {
		l.visible = all
		return
	}
	sort.SliceStable(all, func(i, j int) bool {
		return Distance(all[i].latlng, l.cursor) < Distance(all[j].latlng, l.cursor)
	})
	l.visible = all[:limit]
}
