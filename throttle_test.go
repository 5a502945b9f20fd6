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
	"testing"
	"time"
)

func TestThrottle(t *testing.T) {
	clock := newFakeClock()
	th := NewThrottle(100*time.Millisecond, clock.now)
	var ran []int
	do := func(i int) bool { return th.Do(func() { ran = append(ran, i) }) }

	if !do(1) {
		t.Fatal("the first request should run")
	}
	clock.advance(30 * time.Millisecond)
	if do(2) {
		t.Error("a request inside the window should wait")
	}
	clock.advance(30 * time.Millisecond)
	do(3)
	if !th.Pending() {
		t.Error("the latest request should be pending")
	}
	th.Poll()
	if len(ran) != 1 {
		t.Errorf("poll inside the window ran a request: %v", ran)
	}
	clock.advance(50 * time.Millisecond)
	th.Poll()
	if len(ran) != 2 || ran[1] != 3 {
		t.Errorf("have %v, want [1 3]", ran)
	}
	if th.Pending() {
		t.Error("nothing should be pending")
	}

	do(4)
	th.Flush()
	if ran[len(ran)-1] != 4 {
		t.Errorf("flush did not run the pending request: %v", ran)
	}
	th.Flush()
	if len(ran) != 3 {
		t.Errorf("a second flush ran again: %v", ran)
	}
}
