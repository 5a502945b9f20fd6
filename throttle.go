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
	"time"

	"golang.org/x/time/rate"
)

// throttleWindow is the minimum time between snap list rebuilds and
// marker limit refreshes.
const throttleWindow = 100 * time.Millisecond

// Throttle runs requests at most once per window. A request arriving
// inside the window replaces any earlier pending request; the pending
// request runs at the next call after the window has passed, or on Flush.
type Throttle struct {
	lim     *rate.Limiter
	now     func() time.Time
	pending func()
}

// NewThrottle creates a Throttle that reads the time from now.
func NewThrottle(window time.Duration, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{lim: rate.NewLimiter(rate.Every(window), 1), now: now}
}

// Do runs f if the window allows it and otherwise keeps f pending. It
// reports whether f ran.
func (t *Throttle) Do(f func()) bool {
	if t.lim.AllowN(t.now(), 1) {
		t.pending = nil
		f()
		return true
	}
	t.pending = f
	return false
}

// Poll runs the pending request if the window has passed.
func (t *Throttle) Poll() {
	if t.pending != nil {
		t.Do(t.pending)
	}
}

// Flush runs the pending request immediately.
func (t *Throttle) Flush() {
	if f := t.pending; f != nil {
		t.pending = nil
		f()
	}
}

// Pending reports whether a request is waiting.
func (t *Throttle) Pending() bool { return t.pending != nil }
