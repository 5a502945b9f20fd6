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
	"math"
	"sort"
	"strings"

	"github.com/ctessum/geom"
)

const (
	// wireframeTag is the snapping order name of wireframe shapes.
	wireframeTag = "Wireframe"

	// snapTieWindow is the distance in plane pixels within which
	// candidates are considered equally near and priority decides.
	snapTieWindow = 5.

	// hiddenCircleSides is the number of vertices of the polygon standing
	// in for a circle outline when snapping.
	hiddenCircleSides = 200
)

var defaultSnappingOrder = []string{"Marker", "CircleMarker", "Circle", "Line", "Polygon", "Rectangle"}

// SnapCandidate is a plane-projected copy of a shape that moving handles
// may snap to.
type SnapCandidate struct {
	// Shape is the shape the candidate was derived from.
	Shape *Shape
	// Kind decides snapping priority. It differs from Shape.Kind for
	// derived outlines such as the polygon around a circle.
	Kind      ShapeKind
	Wireframe bool
	Stamp     int

	// Rings hold the plane coordinates. Point candidates have a single
	// ring with a single point.
	Rings  [][]geom.Point
	Closed bool

	latlngs [][]LatLng
}

// vertexOnly reports whether only the vertices of c may be snapped to.
func (c *SnapCandidate) vertexOnly() bool {
	switch c.Kind {
	case KindMarker, KindCircleMarker, KindCircle, KindText:
		return true
	}
	return false
}

func (c *SnapCandidate) orderName() string {
	if c.Wireframe {
		return wireframeTag
	}
	if c.Kind == KindText {
		return KindMarker.String()
	}
	return c.Kind.String()
}

// SnapOptions configures FindSnapTarget.
type SnapOptions struct {
	// Distance is the snapping threshold.
	Distance float64
	// Segment allows snapping to any point along an edge.
	Segment bool
	// Middle allows snapping to edge midpoints.
	Middle bool
	// Vertex prefers an edge's end point, or its midpoint, when it lies
	// within Distance of the projection onto the edge.
	Vertex bool
	// Order lists kind names, or "Wireframe", that take priority over the
	// default order when candidates are equally near.
	Order []string
	// Wireframe is set when the moving shape is a wireframe.
	Wireframe bool
}

// SnapAlong tells which feature of the target a snap point lies on.
type SnapAlong int

// The snap point features.
const (
	SnapToVertex SnapAlong = iota
	SnapToSegment
	SnapToMiddle
)

var snapAlongNames = [...]string{
	SnapToVertex:  "vertex",
	SnapToSegment: "segment",
	SnapToMiddle:  "middle",
}

func (a SnapAlong) String() string {
	if a < 0 || int(a) >= len(snapAlongNames) {
		return fmt.Sprintf("SnapAlong(%d)", int(a))
	}
	return snapAlongNames[a]
}

// SnapResult describes the nearest snapping target.
type SnapResult struct {
	// Candidate is the index of the target in the candidate list, or -1
	// when there is none.
	Candidate int
	// Point is where the moving point snaps to.
	Point geom.Point
	// Distance is the distance from the moving point to the nearest point
	// of the target.
	Distance float64
	Along    SnapAlong
	// Vertex is the vertex snapped to when Along is SnapToVertex.
	Vertex IndexPath
	// OnSegment is set when the target was measured by its edges. Segment
	// then holds the end points of the nearest edge.
	OnSegment bool
	Segment   [2]IndexPath
}

// FindSnapTarget returns the candidate that a point at moving snaps to
// and reports whether it is close enough to snap. The result describes
// the nearest candidate even when it is too far away, as long as there
// is one.
//
// Candidates within a few pixels of the nearest are treated as ties,
// which are broken by the priority order and then by stamp, so the result
// does not depend on the order of cands.
func FindSnapTarget(moving geom.Point, cands []SnapCandidate, o SnapOptions) (SnapResult, bool) {
	var near []SnapResult
	min := math.Inf(1)
	for i := range cands {
		r, ok := nearestOf(moving, &cands[i], o.Segment)
		if !ok {
			continue
		}
		r.Candidate = i
		near = append(near, r)
		min = math.Min(min, r.Distance)
	}
	if len(near) == 0 {
		return SnapResult{Candidate: -1}, false
	}
	var ties []SnapResult
	for _, r := range near {
		if r.Distance-snapTieWindow <= min {
			ties = append(ties, r)
		}
	}
	prio := snapPriorities(o.Order)
	sort.SliceStable(ties, func(i, j int) bool {
		ci, cj := &cands[ties[i].Candidate], &cands[ties[j].Candidate]
		pi, pj := prio.of(ci), prio.of(cj)
		if pi != pj {
			return pi < pj
		}
		if ci.Stamp != cj.Stamp {
			return ci.Stamp < cj.Stamp
		}
		return ties[i].Distance < ties[j].Distance
	})
	best := ties[0]
	c := &cands[best.Candidate]
	if best.OnSegment {
		best = preferVertex(best, c, o)
	}
	if best.Distance > o.Distance {
		return best, false
	}
	if o.Wireframe && !c.Wireframe {
		return best, false
	}
	return best, true
}

// nearestOf returns the point of c nearest to p.
func nearestOf(p geom.Point, c *SnapCandidate, edges bool) (SnapResult, bool) {
	edges = edges && !c.vertexOnly()
	r := SnapResult{Distance: math.Inf(1)}
	found := false
	for i, ring := range c.Rings {
		n := segmentCount(len(ring), c.Closed)
		if !edges || n == 0 {
			for j, v := range ring {
				if d := distance(p, v); d < r.Distance {
					r = SnapResult{Point: v, Distance: d, Vertex: IndexPath{Ring: i, Index: j}}
					found = true
				}
			}
			continue
		}
		for j := 0; j < n; j++ {
			a, b := segment(ring, j)
			q := ClosestPointOnSegment(p, a, b)
			if d := distance(p, q); d < r.Distance {
				r = SnapResult{
					Point: q, Distance: d, Along: SnapToSegment, OnSegment: true,
					Segment: [2]IndexPath{{Ring: i, Index: j}, {Ring: i, Index: (j + 1) % len(ring)}},
				}
				found = true
			}
		}
	}
	return r, found
}

// preferVertex moves a segment snap to the nearer end point of the
// segment, or to its midpoint, when that lies within the snapping
// distance of the projection.
func preferVertex(r SnapResult, c *SnapCandidate, o SnapOptions) SnapResult {
	if !o.Vertex {
		return r
	}
	ia, ib := r.Segment[0], r.Segment[1]
	a, b := c.Rings[ia.Ring][ia.Index], c.Rings[ib.Ring][ib.Index]
	da, db := distance(a, r.Point), distance(b, r.Point)
	v, idx, short := b, ib, db
	if da < db {
		v, idx, short = a, ia, da
	}
	along := SnapToVertex
	if o.Middle {
		mid := geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		if dm := distance(mid, r.Point); dm < da && dm < db {
			v, short, along = mid, dm, SnapToMiddle
		}
	}
	if short > o.Distance {
		return r
	}
	r.Point = v
	r.Along = along
	r.Vertex = idx
	return r
}

type priorities map[string]int

func snapPriorities(order []string) priorities {
	p := make(priorities)
	for _, name := range append(append([]string(nil), order...), defaultSnappingOrder...) {
		key := strings.ToLower(name)
		if _, ok := p[key]; !ok {
			p[key] = len(p) + 1
		}
	}
	return p
}

func (p priorities) of(c *SnapCandidate) int {
	if v, ok := p[strings.ToLower(c.orderName())]; ok {
		return v
	}
	return math.MaxInt32
}

// Snappable is geometry that handles can snap to.
type Snappable interface {
	SnapCandidates(m *Map) []SnapCandidate
}

var _ Snappable = (*Shape)(nil)

// SnapCandidates returns the snapping targets s offers on m, projected at
// the current zoom. Circles offer their center and their outline.
func (s *Shape) SnapCandidates(m *Map) []SnapCandidate {
	point := func(k ShapeKind, ll LatLng) SnapCandidate {
		return SnapCandidate{
			Shape: s, Kind: k, Wireframe: s.Wireframe, Stamp: s.stamp,
			Rings:   [][]geom.Point{{m.project(ll)}},
			latlngs: [][]LatLng{{ll}},
		}
	}
	rings := func(k ShapeKind, rr [][]LatLng, closed bool) SnapCandidate {
		c := SnapCandidate{
			Shape: s, Kind: k, Wireframe: s.Wireframe, Stamp: s.stamp,
			Closed: closed, latlngs: cloneRings(rr),
		}
		c.Rings = make([][]geom.Point, len(rr))
		for i, r := range rr {
			c.Rings[i] = make([]geom.Point, len(r))
			for j, ll := range r {
				c.Rings[i][j] = m.project(ll)
			}
		}
		return c
	}
	switch s.Kind {
	case KindMarker, KindText:
		return []SnapCandidate{point(s.Kind, s.latlng)}
	case KindCircle, KindCircleMarker:
		return []SnapCandidate{
			rings(KindPolygon, [][]LatLng{m.HiddenPolygon(s)}, true),
			point(s.Kind, s.latlng),
		}
	case KindLine, KindPolygon, KindRectangle:
		if !hasValues(s.rings) {
			return nil
		}
		return []SnapCandidate{rings(s.Kind, s.rings, s.Kind.closed())}
	case KindImageOverlay:
		return []SnapCandidate{rings(KindRectangle, [][]LatLng{s.bounds.Ring()}, true)}
	}
	return nil
}

// SnapInfo describes where a handle snapped to.
type SnapInfo struct {
	LatLng   LatLng
	Target   *Shape
	Distance float64
	Along    SnapAlong
	// Segment is the edge of the target the handle snapped onto, when
	// the target was measured by its edges.
	Segment    [2]LatLng
	HasSegment bool
}

// Snapper snaps the handles of one shape during a gesture. It keeps the
// list of candidates from the first move until Clear, and rebuilds it
// when shapes are added to the map, at most once per throttle window.
type Snapper struct {
	m    *Map
	self *Shape

	list     []SnapCandidate
	built    bool
	throttle *Throttle

	// Extra candidates are added to the list on every build, such as the
	// vertices already placed by a draw session.
	Extra func() []SnapCandidate

	snapped    bool
	snapLatLng LatLng
	target     *Shape
}

// NewSnapper creates a Snapper for the handles of self.
func (m *Map) NewSnapper(self *Shape) *Snapper {
	return &Snapper{m: m, self: self, throttle: NewThrottle(throttleWindow, m.now)}
}

func (sn *Snapper) options() SnapOptions {
	o := sn.m.optionsFor(sn.self)
	return SnapOptions{
		Distance:  o.SnapDistance,
		Segment:   o.SnapSegment,
		Middle:    o.SnapMiddle,
		Vertex:    o.SnapVertex,
		Order:     sn.m.Options.SnappingOrder,
		Wireframe: sn.self.Wireframe,
	}
}

// build collects candidates from every shape on the map except the
// snapping shape itself and shapes excluded from snapping.
func (sn *Snapper) build() {
	sn.list = sn.list[:0]
	for _, s := range sn.m.shapes {
		if s == sn.self || s.Temporary || s.Ignore || s.SnapIgnore {
			continue
		}
		if sn.self != nil && (s.copyOf == sn.self.ID || sn.self.copyOf == s.ID) {
			continue
		}
		sn.list = append(sn.list, s.SnapCandidates(sn.m)...)
	}
	if sn.Extra != nil {
		sn.list = append(sn.list, sn.Extra()...)
	}
	sn.built = true
}

// layerAdded schedules a rebuild of the candidate list.
func (sn *Snapper) layerAdded() {
	if sn.built {
		sn.throttle.Do(sn.build)
	}
}

// layerRemoved drops the candidates of s from the list.
func (sn *Snapper) layerRemoved(s *Shape) {
	list := sn.list[:0]
	for _, c := range sn.list {
		if c.Shape != s {
			list = append(list, c)
		}
	}
	sn.list = list
	if sn.target == s {
		sn.snapped, sn.target = false, nil
	}
}

// Snap returns where a handle of the shape moved to ll ends up, and
// whether it snapped. It fires snapdrag on every call, snap when the snap
// point or target changes and unsnap when the handle leaves a target.
func (sn *Snapper) Snap(ll LatLng, marker *VertexMarker) (LatLng, SnapInfo, bool) {
	if !sn.m.optionsFor(sn.self).Snappable {
		return ll, SnapInfo{}, false
	}
	if !sn.built {
		sn.build()
		sn.m.snappers[sn] = struct{}{}
	} else {
		sn.throttle.Poll()
	}
	o := sn.options()
	res, ok := FindSnapTarget(sn.m.project(ll), sn.list, o)
	if res.Candidate < 0 {
		return ll, SnapInfo{}, false
	}
	c := &sn.list[res.Candidate]
	info := sn.info(ll, c, res)
	ev := Event{
		Source: SourceSnapping, Shape: sn.self, Marker: marker, LatLng: ll,
		SnapLatLng: info.LatLng, SnapTarget: c.Shape, Distance: res.Distance,
	}
	if marker != nil {
		ev.IndexPath = marker.IndexPath()
	}
	ev.Type = EventSnapDrag
	sn.m.fire(ev)
	if !ok {
		sn.unsnap(ev)
		return ll, info, false
	}
	if !sn.snapped || !sn.snapLatLng.Equals(info.LatLng) || sn.target != c.Shape {
		sn.snapped, sn.snapLatLng, sn.target = true, info.LatLng, c.Shape
		ev.Type = EventSnap
		sn.m.fire(ev)
	}
	return info.LatLng, info, true
}

// info converts a plane snap result back to geographic coordinates. A
// projection onto an edge is recomputed at the construction zoom.
func (sn *Snapper) info(ll LatLng, c *SnapCandidate, r SnapResult) SnapInfo {
	info := SnapInfo{Target: c.Shape, Distance: r.Distance, Along: r.Along}
	at := func(p IndexPath) LatLng { return c.latlngs[p.Ring][p.Index] }
	if r.OnSegment {
		info.Segment = [2]LatLng{at(r.Segment[0]), at(r.Segment[1])}
		info.HasSegment = true
	}
	a, b := info.Segment[0], info.Segment[1]
	switch r.Along {
	case SnapToVertex:
		info.LatLng = at(r.Vertex)
	case SnapToMiddle:
		info.LatLng = sn.m.MiddleLatLng(a, b)
	case SnapToSegment:
		pa, pb := sn.m.projectPrecise(a), sn.m.projectPrecise(b)
		info.LatLng = sn.m.unprojectPrecise(ClosestPointOnSegment(sn.m.projectPrecise(ll), pa, pb))
	}
	return info
}

func (sn *Snapper) unsnap(ev Event) {
	if !sn.snapped {
		return
	}
	sn.snapped, sn.target = false, nil
	ev.Type = EventUnsnap
	sn.m.fire(ev)
}

// Snapped reports whether the last Snap call snapped.
func (sn *Snapper) Snapped() bool { return sn.snapped }

// Clear ends the gesture, dropping the candidate list.
func (sn *Snapper) Clear() {
	sn.list = nil
	sn.built = false
	sn.snapped = false
	sn.target = nil
	sn.throttle = NewThrottle(throttleWindow, sn.m.now)
	delete(sn.m.snappers, sn)
}
