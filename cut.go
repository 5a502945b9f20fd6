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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
	"github.com/sirupsen/logrus"
)

// SnappedVertex is a vertex of a cutting polygon that was snapped onto
// another shape while it was drawn.
type SnappedVertex struct {
	LatLng LatLng

	// Segment is the edge the vertex was snapped onto, when HasSegment
	// is set.
	Segment    [2]LatLng
	HasSegment bool
}

// CutOptions restrict and refine a cut.
type CutOptions struct {
	// LayersToCut, when not empty, lists the IDs of the only shapes that
	// may be cut. Shapes that were cut are removed from the list.
	LayersToCut []string

	// Snapped are the cutter vertices to insert into the cut rings.
	Snapped []SnappedVertex
}

// CutPair links an original shape to what replaced it.
type CutPair struct {
	// Result is the replacement when there is exactly one. It is nil when
	// the original was consumed or split into several parts.
	Result *Shape

	// Parts holds every replacement shape. When there is more than one,
	// Group is the ID of the group created to hold them.
	Parts []*Shape
	Group string

	Original *Shape
}

// CutResult is the outcome of Cut.
type CutResult struct {
	Pairs  []CutPair
	Errors []error
}

// cutEntry adapts a shape to the spatial index.
type cutEntry struct {
	b *geom.Bounds
	s *Shape
}

func (e cutEntry) Bounds() *geom.Bounds { return e.b }

// The remaining methods satisfy geom.Geom, which the pinned rtree
// requires of indexed values; only Bounds is used by the index.
func (e cutEntry) Similar(geom.Geom, float64) bool { return false }
func (e cutEntry) Transform(proj.Transformer) (geom.Geom, error) {
	return nil, fmt.Errorf("geoman: cutEntry cannot be transformed")
}
func (e cutEntry) Len() int { return 0 }
func (e cutEntry) Points() func() geom.Point {
	return func() geom.Point { return geom.Point{} }
}

// Cut subtracts cutter from every eligible shape it overlaps. Polygons
// keep what lies outside cutter. Lines are split where they cross cutter
// and keep the pieces outside it. Candidates that cannot be processed are
// reported in the result and do not stop the others.
func (m *Map) Cut(cutter *Shape, o *CutOptions) (CutResult, error) {
	var res CutResult
	if o == nil {
		o = &CutOptions{}
	}
	if !cutter.Kind.closed() || len(cutter.rings) == 0 || len(cutter.rings[0]) < 3 {
		return res, fmt.Errorf("geoman: cutting with %s: %w", cutter.ID, ErrNotCuttable)
	}
	cut := geom.Polygon(toPlane(cutter.rings, true))

	tree := rtree.NewTree(25, 50)
	for _, s := range m.shapes {
		if m.cuttable(s, cutter, o) {
			tree.Insert(cutEntry{b: geom.Polygon(toPlane(s.rings, false)).Bounds(), s: s})
		}
	}
	var hits []*Shape
	for _, sp := range tree.SearchIntersect(cut.Bounds()) {
		hits = append(hits, sp.(cutEntry).s)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].stamp < hits[j].stamp })
	var candidates []*Shape
	for _, s := range hits {
		if !overlaps(s, cut) {
			continue
		}
		if s.Kind.closed() && SelfIntersects(s.rings, true) {
			m.Log.WithFields(logrus.Fields{"shape": s.ID}).Error(ErrSelfIntersection)
			res.Errors = append(res.Errors, &CutError{Shape: s, Err: ErrSelfIntersection})
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		m.Log.WithFields(logrus.Fields{"cutter": cutter.ID}).Debug("geoman: no shapes to cut")
		return res, nil
	}

	for _, s := range candidates {
		parts, err := m.cutShape(s, cut, o.Snapped)
		if err != nil {
			res.Errors = append(res.Errors, &CutError{Shape: s, Err: err})
			continue
		}
		pair := CutPair{Original: s, Parts: parts}
		parents := m.groups.parents(s.ID)
		m.removeShape(s)
		s.Temporary = true
		for _, p := range parts {
			if err := m.AddShape(p); err != nil {
				return res, err
			}
			m.Detach(p)
		}
		switch len(parts) {
		case 0:
		case 1:
			pair.Result = parts[0]
			for _, g := range parents {
				m.groups.add(g, parts[0].ID)
			}
		default:
			pair.Group = m.NewGroup(parts...)
			for _, g := range parents {
				m.groups.add(g, pair.Group)
			}
		}
		o.LayersToCut = removeID(o.LayersToCut, s.ID)
		res.Pairs = append(res.Pairs, pair)
	}
	m.removeShape(cutter)
	cutter.Temporary = true

	for _, p := range res.Pairs {
		var r *Shape
		if len(p.Parts) > 0 {
			r = p.Parts[0]
		}
		m.fire(Event{Type: EventCut, Source: SourceEdit, Shape: p.Original, Original: p.Original, Result: r})
		m.fire(Event{Type: EventEdit, Source: SourceEdit, Shape: p.Original})
	}
	return res, nil
}

// cuttable reports whether s may be cut by cutter.
func (m *Map) cuttable(s, cutter *Shape, o *CutOptions) bool {
	if s == cutter || !s.Kind.isPolyline() || !m.editable(s) || !hasValues(s.rings) {
		return false
	}
	if !m.optionsFor(s).AllowCutting {
		return false
	}
	if len(o.LayersToCut) > 0 {
		for _, id := range o.LayersToCut {
			if id == s.ID {
				return true
			}
		}
		return false
	}
	return true
}

// overlaps reports whether s touches the cutting polygon: its outline
// crosses the cutter boundary or, for areas, one contains the other.
func overlaps(s *Shape, cut geom.Polygon) bool {
	closed := s.Kind.closed()
	rings := toPlane(s.rings, false)
	for _, r := range rings {
		for i := 0; i < segmentCount(len(r), closed); i++ {
			a, b := segment(r, i)
			if len(crossings(a, b, cut)) > 0 {
				return true
			}
		}
	}
	if !closed {
		return false
	}
	poly := geom.Polygon(toPlane(s.rings, true))
	for _, r := range rings {
		for _, p := range r {
			if p.Within(cut) == geom.Inside {
				return true
			}
		}
	}
	for _, r := range cut {
		for _, p := range r {
			if p.Within(poly) == geom.Inside {
				return true
			}
		}
	}
	return false
}

// cutShape computes the replacement shapes for s.
func (m *Map) cutShape(s *Shape, cut geom.Polygon, snapped []SnappedVertex) (parts []*Shape, err error) {
	defer func() {
		if r := recover(); r != nil {
			parts = nil
			err = fmt.Errorf("%w: %v", ErrClipping, r)
		}
	}()
	if s.Kind.closed() {
		rings := m.insertSnapped(s, snapped)
		diff := geom.Polygon(toPlane(rings, true)).Difference(cut)
		for _, p := range disjoint(diff) {
			parts = append(parts, p.copyTo(s))
		}
		return parts, nil
	}
	var pieces [][]LatLng
	for _, r := range s.rings {
		for _, piece := range splitLine(toPlane([][]LatLng{r}, false)[0], cut) {
			pieces = append(pieces, fromPlane(piece))
		}
	}
	if len(pieces) == 0 {
		return nil, nil
	}
	if len(s.rings) > 1 {
		l := s.copyStyle(KindLine)
		l.rings = pieces
		return []*Shape{l}, nil
	}
	for _, piece := range pieces {
		l := s.copyStyle(KindLine)
		l.rings = [][]LatLng{piece}
		parts = append(parts, l)
	}
	return parts, nil
}

// insertSnapped returns the rings of s with the snapped cutter vertices
// inserted into the edges they lie on.
func (m *Map) insertSnapped(s *Shape, snapped []SnappedVertex) [][]LatLng {
	rings := cloneRings(s.rings)
	dist := m.optionsFor(s).SnapDistance
	for _, v := range snapped {
		i, idx := -1, -1
		if v.HasSegment {
			for ri, r := range rings {
				if j := IndexFromSegment(r, v.Segment[0], v.Segment[1]); j >= 0 {
					i, idx = ri, j
					break
				}
			}
		}
		if i < 0 {
			i, idx = m.closestEdge(rings, v.LatLng, dist)
		}
		if i < 0 {
			continue
		}
		r := rings[i]
		r = append(r, LatLng{})
		copy(r[idx+1:], r[idx:])
		r[idx] = v.LatLng
		rings[i] = r
	}
	return rings
}

// closestEdge finds the ring edge nearest ll in the plane. It returns the
// ring and the index a vertex on that edge would take, or -1 when no edge
// is closer than maxDist.
func (m *Map) closestEdge(rings [][]LatLng, ll LatLng, maxDist float64) (ring, index int) {
	ring, index = -1, -1
	best := math.Inf(1)
	p := m.project(ll)
	for i, r := range rings {
		for j := range r {
			a, b := r[j], r[(j+1)%len(r)]
			if d := SegmentDistance(p, m.project(a), m.project(b)); d < best {
				best, ring = d, i
				index = IndexFromSegment(r, a, b)
			}
		}
	}
	if best >= maxDist {
		return -1, -1
	}
	return ring, index
}

// cutPolygon is one disjoint polygon of a clipping result.
type cutPolygon geom.Polygon

// copyTo returns the polygon as a shape carrying the style of s.
func (p cutPolygon) copyTo(s *Shape) *Shape {
	r := s.copyStyle(KindPolygon)
	for _, ring := range p {
		r.rings = append(r.rings, fromPlane(openPath(ring)))
	}
	return r
}

// disjoint splits the rings returned by the clipper into separate
// polygons. A ring nested inside an odd number of other rings is a hole
// of the innermost ring that contains it.
func disjoint(p geom.Polygon) []cutPolygon {
	var rings [][]geom.Point
	for _, r := range p {
		if len(openPath(r)) >= 3 {
			rings = append(rings, r)
		}
	}
	depth := make([]int, len(rings))
	parent := make([]int, len(rings))
	for i, r := range rings {
		parent[i] = -1
		for j, o := range rings {
			if i == j || !inside(r, o) {
				continue
			}
			depth[i]++
			if parent[i] < 0 || inside(o, rings[parent[i]]) {
				parent[i] = j
			}
		}
	}
	var out []cutPolygon
	index := make(map[int]int)
	for i, r := range rings {
		if depth[i]%2 == 0 {
			index[i] = len(out)
			out = append(out, cutPolygon{r})
		}
	}
	for i, r := range rings {
		if depth[i]%2 == 1 && parent[i] >= 0 {
			if k, ok := index[parent[i]]; ok {
				out[k] = append(out[k], r)
			}
		}
	}
	return out
}

// inside reports whether ring r lies within ring o.
func inside(r, o []geom.Point) bool {
	poly := geom.Polygon{o}
	for _, p := range r {
		switch p.Within(poly) {
		case geom.Inside:
			return true
		case geom.Outside:
			return false
		}
	}
	return false
}

// crossings returns the parameters along a→b at which the segment meets
// the boundary of poly.
func crossings(a, b geom.Point, poly geom.Polygon) []float64 {
	var ts []float64
	for _, r := range poly {
		r = openPath(r)
		for i := range r {
			c, d := segment(r, i)
			if x, ok := segmentIntersection(a, b, c, d); ok {
				ts = append(ts, param(a, b, x))
			}
		}
	}
	return ts
}

func param(a, b, p geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if math.Abs(dx) >= math.Abs(dy) {
		return (p.X - a.X) / dx
	}
	return (p.Y - a.Y) / dy
}

// splitLine cuts line at every crossing of the boundary of poly and
// returns the pieces that are not inside poly.
func splitLine(line []geom.Point, poly geom.Polygon) [][]geom.Point {
	if len(line) < 2 {
		return nil
	}
	var pieces [][]geom.Point
	cur := []geom.Point{line[0]}
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		ts := crossings(a, b, poly)
		sort.Float64s(ts)
		for _, t := range ts {
			x := geom.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
			if x.Equals(cur[len(cur)-1]) {
				continue
			}
			cur = append(cur, x)
			pieces = append(pieces, cur)
			cur = []geom.Point{x}
		}
		if !b.Equals(cur[len(cur)-1]) {
			cur = append(cur, b)
		}
	}
	if len(cur) > 1 {
		pieces = append(pieces, cur)
	}
	var out [][]geom.Point
	for _, piece := range pieces {
		mid := geom.Point{X: (piece[0].X + piece[1].X) / 2, Y: (piece[0].Y + piece[1].Y) / 2}
		if mid.Within(poly) != geom.Inside {
			out = append(out, piece)
		}
	}
	return out
}

// toPlane converts rings to the planar x=lng, y=lat form, closing them
// when closed is set.
func toPlane(rings [][]LatLng, closed bool) geom.Polygon {
	pts := latLngPoints(rings)
	out := make(geom.Polygon, len(pts))
	for i, r := range pts {
		out[i] = r
	}
	if closed {
		for i, r := range out {
			out[i] = closePath(r)
		}
	}
	return out
}

func fromPlane(pts []geom.Point) []LatLng {
	out := make([]LatLng, len(pts))
	for i, p := range pts {
		out[i] = LatLng{Lat: p.Y, Lng: p.X}
	}
	return out
}

func removeID(ids []string, id string) []string {
	for i, o := range ids {
		if o == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
