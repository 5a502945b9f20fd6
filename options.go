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
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// VertexContext is passed to vertex validation hooks.
type VertexContext struct {
	Shape  *Shape
	Marker *VertexMarker
	// Middle is the middle marker being promoted when a vertex is added.
	Middle *MiddleMarker
	// Event is the mutation being validated: EventVertexAdded,
	// EventVertexRemoved or EventMarkerDragStart.
	Event EventType
}

// VertexValidator decides whether a vertex mutation may proceed.
type VertexValidator func(VertexContext) bool

// Options configures editing behavior. The Map holds a global set and
// shapes may override it with their own.
type Options struct {
	// Snappable enables snapping of dragged handles.
	Snappable bool
	// SnapDistance is the snapping threshold in plane pixels.
	SnapDistance float64
	// SnapSegment allows snapping anywhere along an edge rather than only
	// to vertices.
	SnapSegment bool
	// SnapMiddle allows snapping to edge midpoints.
	SnapMiddle bool
	// SnapVertex prefers a nearby vertex over an edge projection.
	SnapVertex bool
	// SnappingOrder lists shape kind names, and "Wireframe", in the order
	// that breaks snapping ties.
	SnappingOrder []string

	// AllowSelfIntersection permits rings that cross themselves.
	AllowSelfIntersection bool
	// AllowSelfIntersectionEdit lets vertices next to an existing crossing
	// move while the shape is still self-intersecting.
	AllowSelfIntersectionEdit bool

	// PreventMarkerRemoval disables vertex removal.
	PreventMarkerRemoval bool
	// RemoveLayerBelowMinVertexCount removes a ring, or the whole shape,
	// when removing a vertex takes it below its minimum size. When false,
	// such removals are refused.
	RemoveLayerBelowMinVertexCount bool
	// LimitMarkersToCount shows only the given number of vertex markers
	// nearest the pointer. Negative values show all.
	LimitMarkersToCount int
	// HideMiddleMarkers disables middle markers.
	HideMiddleMarkers bool

	Draggable     bool
	AllowEditing  bool
	AllowRemoval  bool
	AllowCutting  bool
	AllowRotation bool

	// ResizeableCircle enables the radius handle for circles.
	ResizeableCircle bool
	// ResizeableCircleMarker enables the radius handle for circle markers.
	ResizeableCircleMarker bool
	// Radius limits in meters for circles and pixels for circle markers.
	// Zero means no limit.
	MinRadiusCircle       float64
	MaxRadiusCircle       float64
	MinRadiusCircleMarker float64
	MaxRadiusCircleMarker float64

	// SyncLayersOnDrag lists IDs of shapes that move with this one.
	SyncLayersOnDrag []string
	// SyncParents moves every other member of the shape's groups with it.
	SyncParents bool

	// LayersToCut restricts cutting to the listed shape IDs when not
	// empty.
	LayersToCut []string

	// RemoveIfEmpty removes a text shape left empty when editing ends.
	RemoveIfEmpty bool

	AddVertexValidation    VertexValidator `toml:"-"`
	RemoveVertexValidation VertexValidator `toml:"-"`
	MoveVertexValidation   VertexValidator `toml:"-"`
}

// DefaultOptions returns the default editing options.
func DefaultOptions() *Options {
	return &Options{
		Snappable:                      true,
		SnapDistance:                   20,
		SnapSegment:                    true,
		SnapVertex:                     true,
		AllowSelfIntersection:          true,
		RemoveLayerBelowMinVertexCount: true,
		LimitMarkersToCount:            -1,
		Draggable:                      true,
		AllowEditing:                   true,
		AllowRemoval:                   true,
		AllowCutting:                   true,
		AllowRotation:                  true,
		ResizeableCircle:               true,
	}
}

// Clone returns a deep copy of o.
func (o *Options) Clone() *Options {
	c := *o
	c.SnappingOrder = append([]string(nil), o.SnappingOrder...)
	c.SyncLayersOnDrag = append([]string(nil), o.SyncLayersOnDrag...)
	c.LayersToCut = append([]string(nil), o.LayersToCut...)
	return &c
}

// DecodeOptions reads TOML-formatted options from r. Settings missing
// from r keep their default values.
func DecodeOptions(r io.Reader) (*Options, error) {
	o := DefaultOptions()
	if _, err := toml.DecodeReader(r, o); err != nil {
		return nil, fmt.Errorf("geoman: problem decoding options: %v", err)
	}
	for _, name := range o.SnappingOrder {
		if name == wireframeTag {
			continue
		}
		if _, err := ParseShapeKind(name); err != nil {
			return nil, fmt.Errorf("geoman: invalid SnappingOrder: %w", err)
		}
	}
	return o, nil
}

// ReadOptionsFile reads TOML-formatted options from the file at path,
// which may contain environment variables.
func ReadOptionsFile(path string) (*Options, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("geoman: problem opening options file: %v", err)
	}
	defer f.Close()
	return DecodeOptions(f)
}
