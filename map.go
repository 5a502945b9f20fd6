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
	"time"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// Flasher is implemented by hosts that show brief feedback when a
// mutation is refused.
type Flasher interface {
	Flash(s *Shape)
}

// Map is the editing surface. It holds the displayed shapes in the order
// they were added, the group table, event subscriptions and the state of
// every open editing session.
type Map struct {
	// Options are the global editing options, used for shapes that do not
	// carry their own.
	Options *Options

	// Log receives diagnostics about refused and skipped operations.
	Log logrus.FieldLogger

	proj    Projection
	zoom    float64
	maxZoom float64
	now     func() time.Time
	flasher Flasher

	shapes    []*Shape
	byID      map[string]*Shape
	nextStamp int

	groups groupTable
	events bus

	editors   map[string]Editor
	rotations map[string]*Rotation
	snappers  map[*Snapper]struct{}

	drawing *DrawSession

	globalEdit, globalRemoval, globalRotate bool
}

// MapOption configures a new Map.
type MapOption func(*Map) error

// WithProjection sets the projection between geographic and plane
// coordinates. The default is WebMercator.
func WithProjection(p Projection) MapOption {
	return func(m *Map) error {
		if p == nil {
			return fmt.Errorf("geoman: nil projection")
		}
		m.proj = p
		return nil
	}
}

// WithZoom sets the current zoom level, at which pixel distances such as
// the snapping threshold are measured.
func WithZoom(zoom float64) MapOption {
	return func(m *Map) error {
		m.zoom = zoom
		return nil
	}
}

// WithMaxZoom sets the zoom level used for geometric construction such as
// rotation and segment projection. An infinite value uses the current zoom.
func WithMaxZoom(zoom float64) MapOption {
	return func(m *Map) error {
		m.maxZoom = zoom
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) MapOption {
	return func(m *Map) error {
		m.Log = l
		return nil
	}
}

// WithOptions sets the global editing options.
func WithOptions(o *Options) MapOption {
	return func(m *Map) error {
		m.Options = o
		return nil
	}
}

// WithClock sets the time source used for throttling.
func WithClock(now func() time.Time) MapOption {
	return func(m *Map) error {
		m.now = now
		return nil
	}
}

// WithFlasher sets the receiver of refusal feedback.
func WithFlasher(f Flasher) MapOption {
	return func(m *Map) error {
		m.flasher = f
		return nil
	}
}

// NewMap creates an empty Map.
func NewMap(opts ...MapOption) (*Map, error) {
	m := &Map{
		Options:   DefaultOptions(),
		Log:       logrus.StandardLogger(),
		proj:      WebMercator{},
		maxZoom:   18,
		now:       time.Now,
		byID:      make(map[string]*Shape),
		editors:   make(map[string]Editor),
		rotations: make(map[string]*Rotation),
		snappers:  make(map[*Snapper]struct{}),
	}
	for _, o := range opts {
		if err := o(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Zoom returns the current zoom level.
func (m *Map) Zoom() float64 { return m.zoom }

// SetZoom changes the current zoom level.
func (m *Map) SetZoom(zoom float64) { m.zoom = zoom }

// Projection returns the projection of m.
func (m *Map) Projection() Projection { return m.proj }

// AddShape displays s on the map.
func (m *Map) AddShape(s *Shape) error {
	if _, ok := m.byID[s.ID]; ok {
		return fmt.Errorf("geoman: adding shape %s: %w", s.ID, ErrDuplicateShape)
	}
	m.nextStamp++
	s.stamp = m.nextStamp
	m.shapes = append(m.shapes, s)
	m.byID[s.ID] = s
	for sn := range m.snappers {
		sn.layerAdded()
	}
	if m.globalEdit && m.editable(s) {
		if _, err := m.Attach(s, nil); err != nil {
			m.Log.WithFields(logrus.Fields{"shape": s.ID, "kind": s.Kind}).Debug(err)
		}
	}
	return nil
}

// RemoveShape takes s off the map, ending any editing sessions on it, and
// fires a remove event.
func (m *Map) RemoveShape(s *Shape) error {
	if !m.removeShape(s) {
		return fmt.Errorf("geoman: removing shape %s: %w", s.ID, ErrUnknownShape)
	}
	m.fire(Event{Type: EventRemove, Source: SourceEdit, Shape: s})
	return nil
}

// removeShape takes s off the map without notification and reports
// whether it was on the map. Group membership is kept so that events
// fired on the removed shape still reach its groups.
func (m *Map) removeShape(s *Shape) bool {
	if _, ok := m.byID[s.ID]; !ok {
		return false
	}
	if r, ok := m.rotations[s.ID]; ok {
		r.Disable()
	}
	if e, ok := m.editors[s.ID]; ok {
		e.Disable()
	}
	delete(m.byID, s.ID)
	for i, o := range m.shapes {
		if o == s {
			m.shapes = append(m.shapes[:i:i], m.shapes[i+1:]...)
			break
		}
	}
	for sn := range m.snappers {
		sn.layerRemoved(s)
	}
	return true
}

// HasShape reports whether s is on the map.
func (m *Map) HasShape(s *Shape) bool {
	_, ok := m.byID[s.ID]
	return ok
}

// Shape returns the shape with the given ID, or nil.
func (m *Map) Shape(id string) *Shape {
	return m.byID[id]
}

// Shapes returns the shapes on the map in the order they were added.
func (m *Map) Shapes() []*Shape {
	return append([]*Shape(nil), m.shapes...)
}

// optionsFor returns the options in effect for s.
func (m *Map) optionsFor(s *Shape) *Options {
	if s.Options != nil {
		return s.Options
	}
	return m.Options
}

// editable reports whether s may take part in editing at all.
func (m *Map) editable(s *Shape) bool {
	return !s.Temporary && !s.Ignore && m.optionsFor(s).AllowEditing
}

func (m *Map) flash(s *Shape) {
	m.Log.WithFields(logrus.Fields{"shape": s.ID, "kind": s.Kind}).Debug("geoman: mutation refused")
	if m.flasher != nil {
		m.flasher.Flash(s)
	}
}

// project converts ll to the plane at the current zoom.
func (m *Map) project(ll LatLng) geom.Point {
	return m.proj.Project(ll, m.zoom)
}

func (m *Map) unproject(p geom.Point) LatLng {
	return m.proj.Unproject(p, m.zoom)
}

func (m *Map) preciseZoom() float64 {
	if math.IsInf(m.maxZoom, 0) || math.IsNaN(m.maxZoom) {
		return m.zoom
	}
	return m.maxZoom
}

// projectPrecise converts ll to the plane at the construction zoom.
func (m *Map) projectPrecise(ll LatLng) geom.Point {
	return m.proj.Project(ll, m.preciseZoom())
}

func (m *Map) unprojectPrecise(p geom.Point) LatLng {
	return m.proj.Unproject(p, m.preciseZoom())
}
