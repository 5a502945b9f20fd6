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

package geomanutil

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/spatialmodel/geoman"
	"github.com/spf13/cast"
)

// feature is a GeoJSON feature. The "kind" property selects the shape
// kind when the geometry type alone is ambiguous. Circles and text
// labels carry "radius", "text" and "angle" properties.
type feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

type featureCollection struct {
	Type     string     `json:"type"`
	Features []*feature `json:"features"`
}

// Scene is a set of shapes loaded from or written to a file.
type Scene struct {
	Shapes []*geoman.Shape
}

// LoadScene reads shapes from a GeoJSON feature collection or, when the
// file name ends in ".shp", from a shapefile.
func LoadScene(path string) (*Scene, error) {
	path = os.ExpandEnv(path)
	if strings.ToLower(filepath.Ext(path)) == ".shp" {
		return loadShapefile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geomanutil: opening scene file: %w", err)
	}
	defer f.Close()
	return DecodeScene(f)
}

// DecodeScene reads shapes from a GeoJSON feature collection.
func DecodeScene(r io.Reader) (*Scene, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("geomanutil: reading scene: %w", err)
	}
	var fc featureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("geomanutil: decoding scene: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("geomanutil: scene type is %q, want FeatureCollection", fc.Type)
	}
	sc := new(Scene)
	for i, ft := range fc.Features {
		if ft.Geometry == nil {
			return nil, fmt.Errorf("geomanutil: feature %d has no geometry", i)
		}
		g, err := fromGeometry(ft.Geometry)
		if err != nil {
			return nil, fmt.Errorf("geomanutil: feature %d: %w", i, err)
		}
		s, err := shapeFromGeom(g, ft.Properties)
		if err != nil {
			return nil, fmt.Errorf("geomanutil: feature %d: %w", i, err)
		}
		if ft.ID != "" {
			s.ID = ft.ID
		}
		sc.Shapes = append(sc.Shapes, s)
	}
	return sc, nil
}

// fromGeometry decodes g, adding MultiLineString support by decoding
// each part as a LineString.
func fromGeometry(g *geojson.Geometry) (geom.Geom, error) {
	if g.Type != "MultiLineString" {
		return geojson.FromGeoJSON(g)
	}
	parts, ok := g.Coordinates.([]interface{})
	if !ok {
		return nil, geojson.InvalidGeometryError{}
	}
	ml := make(geom.MultiLineString, len(parts))
	for i, p := range parts {
		l, err := geojson.FromGeoJSON(&geojson.Geometry{Type: "LineString", Coordinates: p})
		if err != nil {
			return nil, err
		}
		ml[i] = l.(geom.LineString)
	}
	return ml, nil
}

func latLng(p geom.Point) geoman.LatLng {
	return geoman.LatLng{Lat: p.Y, Lng: p.X}
}

func point(ll geoman.LatLng) geom.Point {
	return geom.Point{X: ll.Lng, Y: ll.Lat}
}

func latLngs(path []geom.Point) []geoman.LatLng {
	o := make([]geoman.LatLng, len(path))
	for i, p := range path {
		o[i] = latLng(p)
	}
	return o
}

func points(ring []geoman.LatLng, closed bool) []geom.Point {
	o := make([]geom.Point, 0, len(ring)+1)
	for _, ll := range ring {
		o = append(o, point(ll))
	}
	if closed && len(ring) > 0 {
		o = append(o, point(ring[0]))
	}
	return o
}

// shapeFromGeom converts a decoded geometry and its properties into a
// shape.
func shapeFromGeom(g geom.Geom, props map[string]interface{}) (*geoman.Shape, error) {
	kindName := cast.ToString(props["kind"])
	var s *geoman.Shape
	switch t := g.(type) {
	case geom.Point:
		ll := latLng(t)
		switch kindName {
		case "", "Marker":
			s = geoman.NewMarker(ll)
		case "Circle":
			s = geoman.NewCircle(ll, cast.ToFloat64(props["radius"]))
		case "CircleMarker":
			s = geoman.NewCircleMarker(ll, cast.ToFloat64(props["radius"]))
		case "Text":
			s = geoman.NewText(ll, cast.ToString(props["text"]))
		default:
			return nil, fmt.Errorf("kind %q does not match a Point geometry", kindName)
		}
	case geom.LineString:
		if kindName != "" && kindName != "Line" {
			return nil, fmt.Errorf("kind %q does not match a LineString geometry", kindName)
		}
		s = geoman.NewLine(latLngs(t))
	case geom.MultiLineString:
		if kindName != "" && kindName != "Line" {
			return nil, fmt.Errorf("kind %q does not match a MultiLineString geometry", kindName)
		}
		parts := make([][]geoman.LatLng, len(t))
		for i, l := range t {
			parts[i] = latLngs(l)
		}
		s = geoman.NewLine(parts...)
	case geom.Polygon:
		rings := make([][]geoman.LatLng, len(t))
		for i, r := range t {
			rings[i] = latLngs(r)
		}
		switch kindName {
		case "", "Polygon":
			s = geoman.NewPolygon(rings...)
		case "Rectangle":
			s = geoman.NewPolygon(rings[0])
			if len(s.Rings()[0]) != 4 {
				return nil, fmt.Errorf("a Rectangle needs 4 corners")
			}
			s.Kind = geoman.KindRectangle
		case "ImageOverlay":
			b := t.Bounds()
			s = geoman.NewImageOverlay(geoman.LatLngBounds{
				SouthWest: latLng(b.Min),
				NorthEast: latLng(b.Max),
			})
		default:
			return nil, fmt.Errorf("kind %q does not match a Polygon geometry", kindName)
		}
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
	if a, ok := props["angle"]; ok {
		s.SetInitAngle(cast.ToFloat64(a))
	}
	return s, nil
}

// loadShapefile reads every record of a shapefile. Geometry is converted to
// geographic coordinates when the shapefile has a .prj file.
func loadShapefile(path string) (*Scene, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("geomanutil: opening shapefile: %w", err)
	}
	defer d.Close()

	var trans proj.Transformer
	if sr, err := d.SR(); err == nil {
		ll, err := proj.Parse(longLatProj)
		if err != nil {
			return nil, err
		}
		if trans, err = sr.NewTransform(ll); err != nil {
			return nil, fmt.Errorf("geomanutil: shapefile projection: %w", err)
		}
	}

	sc := new(Scene)
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		if g == nil {
			continue
		}
		if trans != nil {
			if g, err = g.Transform(trans); err != nil {
				return nil, fmt.Errorf("geomanutil: projecting shapefile geometry: %w", err)
			}
		}
		if mp, ok := g.(geom.MultiPoint); ok {
			for _, p := range mp {
				sc.Shapes = append(sc.Shapes, geoman.NewMarker(latLng(p)))
			}
			continue
		}
		s, err := shapeFromGeom(g, nil)
		if err != nil {
			return nil, fmt.Errorf("geomanutil: shapefile record: %w", err)
		}
		sc.Shapes = append(sc.Shapes, s)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("geomanutil: reading shapefile: %w", err)
	}
	return sc, nil
}

const longLatProj = "+proj=longlat +datum=WGS84 +no_defs"

// toFeature converts a shape into a GeoJSON feature.
func toFeature(s *geoman.Shape) (*feature, error) {
	ft := &feature{
		Type:       "Feature",
		ID:         s.ID,
		Properties: map[string]interface{}{"kind": s.Kind.String()},
	}
	var g geom.Geom
	switch s.Kind {
	case geoman.KindMarker:
		g = point(s.LatLng())
	case geoman.KindCircle, geoman.KindCircleMarker:
		g = point(s.LatLng())
		ft.Properties["radius"] = s.Radius()
	case geoman.KindText:
		g = point(s.LatLng())
		ft.Properties["text"] = s.Text()
	case geoman.KindLine:
		rings := s.Rings()
		if len(rings) != 1 {
			coords := make([][][]float64, len(rings))
			for i, r := range rings {
				for _, ll := range r {
					coords[i] = append(coords[i], []float64{ll.Lng, ll.Lat})
				}
			}
			ft.Geometry = &geojson.Geometry{Type: "MultiLineString", Coordinates: coords}
			return ft, nil
		}
		g = geom.LineString(points(rings[0], false))
	case geoman.KindPolygon, geoman.KindRectangle:
		var p geom.Polygon
		for _, r := range s.Rings() {
			p = append(p, points(r, true))
		}
		g = p
		ft.Properties["angle"] = s.Angle()
	case geoman.KindImageOverlay:
		g = geom.Polygon{points(s.Bounds().Ring(), true)}
	default:
		return nil, fmt.Errorf("geomanutil: cannot encode %v", s.Kind)
	}
	var err error
	if ft.Geometry, err = geojson.ToGeoJSON(g); err != nil {
		return nil, fmt.Errorf("geomanutil: encoding %v %s: %w", s.Kind, s.ID, err)
	}
	return ft, nil
}

// Encode writes the scene as a GeoJSON feature collection.
func (sc *Scene) Encode(w io.Writer) error {
	fc := featureCollection{Type: "FeatureCollection", Features: []*feature{}}
	for _, s := range sc.Shapes {
		ft, err := toFeature(s)
		if err != nil {
			return err
		}
		fc.Features = append(fc.Features, ft)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(fc)
}

// WriteScene writes the scene to path as GeoJSON, or to standard output
// when path is empty.
func WriteScene(sc *Scene, path string, stdout io.Writer) error {
	if path == "" {
		return sc.Encode(stdout)
	}
	path = os.ExpandEnv(path)
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return fmt.Errorf("geomanutil: the output directory doesn't exist: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("geomanutil: creating output file: %w", err)
	}
	if err := sc.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
