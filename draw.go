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

// DrawMode is the kind of outline a draw session builds.
type DrawMode int

// The draw modes. DrawCut builds a polygon that is cut out of the shapes
// below it instead of being added to the map.
const (
	DrawLine DrawMode = iota
	DrawPolygon
	DrawCut
)

func (d DrawMode) String() string {
	switch d {
	case DrawLine:
		return "Line"
	case DrawPolygon:
		return "Polygon"
	case DrawCut:
		return "Cut"
	}
	return fmt.Sprintf("DrawMode(%d)", int(d))
}

// minVertices is the number of vertices Finish requires.
func (d DrawMode) minVertices() int {
	if d == DrawLine {
		return 2
	}
	return 3
}

// drawVertex is a placed vertex and, when it snapped, where it snapped.
type drawVertex struct {
	ll   LatLng
	snap *SnappedVertex
}

// DrawSession places the vertices of a new line or polygon.
type DrawSession struct {
	m    *Map
	mode DrawMode
	opts *Options

	// working is the outline being drawn. It is never on the map.
	working  *Shape
	vertices []drawVertex
	snapper  *Snapper

	enabled bool
	cut     CutResult
}

// Draw starts a draw session. An open session is cancelled first. When
// opts is not nil it is used for the drawn shape and for snapping.
func (m *Map) Draw(mode DrawMode, opts *Options) (*DrawSession, error) {
	kind := KindPolygon
	switch mode {
	case DrawLine:
		kind = KindLine
	case DrawPolygon, DrawCut:
	default:
		return nil, fmt.Errorf("geoman: drawing %v: %w", mode, ErrUnknownKind)
	}
	if m.drawing != nil {
		m.drawing.Cancel()
	}
	d := &DrawSession{m: m, mode: mode, enabled: true}
	if opts != nil {
		d.opts = opts.Clone()
	}
	d.working = newShape(kind)
	d.working.Temporary = true
	d.working.Options = d.opts
	d.snapper = m.NewSnapper(d.working)
	d.snapper.Extra = func() []SnapCandidate {
		if len(d.vertices) < 2 {
			return nil
		}
		c := d.working.SnapCandidates(m)
		for i := range c {
			c[i].Closed = false
		}
		return c
	}
	m.drawing = d
	m.Log.WithFields(logrus.Fields{"mode": mode}).Debug("geoman: drawing started")
	d.fire(EventDrawStart, Event{})
	return d, nil
}

// Mode returns the draw mode.
func (d *DrawSession) Mode() DrawMode { return d.mode }

// Enabled reports whether the session is open.
func (d *DrawSession) Enabled() bool { return d.enabled }

// Points returns the placed vertices.
func (d *DrawSession) Points() []LatLng {
	out := make([]LatLng, len(d.vertices))
	for i, v := range d.vertices {
		out[i] = v.ll
	}
	return out
}

// Cut returns the outcome of a finished DrawCut session.
func (d *DrawSession) Cut() CutResult { return d.cut }

func (d *DrawSession) options() *Options {
	if d.opts != nil {
		return d.opts
	}
	return d.m.Options
}

// AddVertex places a vertex at ll, snapping it when enabled. It returns
// the placed position and false when the vertex was refused because the
// outline would cross itself.
func (d *DrawSession) AddVertex(ll LatLng) (LatLng, bool) {
	if !d.enabled {
		return ll, false
	}
	to, info, ok := d.snapper.Snap(ll, nil)
	pts := append(d.Points(), to)
	if !d.options().AllowSelfIntersection && SelfIntersects([][]LatLng{pts}, false) {
		d.m.flash(d.working)
		return to, false
	}
	v := drawVertex{ll: to}
	if ok {
		v.snap = &SnappedVertex{LatLng: to, Segment: info.Segment, HasSegment: info.HasSegment}
	}
	d.vertices = append(d.vertices, v)
	d.working.rings = [][]LatLng{pts}
	d.snapper.Clear()
	return to, true
}

// RemoveLastVertex takes back the most recent vertex.
func (d *DrawSession) RemoveLastVertex() bool {
	if !d.enabled || len(d.vertices) == 0 {
		return false
	}
	d.vertices = d.vertices[:len(d.vertices)-1]
	d.working.rings = [][]LatLng{d.Points()}
	d.snapper.Clear()
	return true
}

// Finish completes the outline. Lines and polygons are added to the map
// and fire create. A cut outline is cut out of the shapes below it and is
// returned after it has been removed. Finish returns nil when there are
// too few vertices or a polygon would cross itself.
func (d *DrawSession) Finish() (*Shape, error) {
	if !d.enabled {
		return nil, fmt.Errorf("geoman: finishing %v drawing: %w", d.mode, ErrNotEnabled)
	}
	pts := d.Points()
	if len(pts) < d.mode.minVertices() {
		d.m.Log.WithFields(logrus.Fields{"mode": d.mode, "vertices": len(pts)}).Debug("geoman: too few vertices to finish")
		return nil, nil
	}
	if d.mode != DrawLine && !d.options().AllowSelfIntersection && SelfIntersects([][]LatLng{pts}, true) {
		d.m.flash(d.working)
		return nil, nil
	}
	var s *Shape
	if d.mode == DrawLine {
		s = NewLine(pts)
	} else {
		s = NewPolygon(pts)
	}
	if d.opts != nil {
		s.Options = d.opts.Clone()
	}
	if d.mode == DrawCut {
		var snapped []SnappedVertex
		for _, v := range d.vertices {
			if v.snap != nil {
				snapped = append(snapped, *v.snap)
			}
		}
		res, err := d.m.Cut(s, &CutOptions{LayersToCut: d.options().LayersToCut, Snapped: snapped})
		if err != nil {
			return nil, err
		}
		d.cut = res
		d.close()
		return s, nil
	}
	if err := d.m.AddShape(s); err != nil {
		return nil, err
	}
	d.fire(EventCreate, Event{Shape: s})
	d.close()
	return s, nil
}

// Cancel ends the session without creating anything.
func (d *DrawSession) Cancel() {
	d.close()
}

func (d *DrawSession) close() {
	if !d.enabled {
		return
	}
	d.enabled = false
	d.snapper.Clear()
	if d.m.drawing == d {
		d.m.drawing = nil
	}
	d.fire(EventDrawEnd, Event{})
}

func (d *DrawSession) fire(t EventType, ev Event) {
	ev.Type = t
	ev.Source = SourceDraw
	if ev.Shape == nil {
		ev.Shape = d.working
	}
	d.m.fire(ev)
}
