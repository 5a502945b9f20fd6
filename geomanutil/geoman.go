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
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geoman"
	"github.com/spf13/cast"
)

// setLogLevel sets the level of the standard logger, which new maps log
// to.
func setLogLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("geoman: invalid loglevel: %v", err)
	}
	logrus.SetLevel(l)
	return nil
}

// newProjection returns the projection named by def.
func newProjection(def string) (geoman.Projection, error) {
	switch strings.ToLower(os.ExpandEnv(def)) {
	case "", "identity", "longlat":
		return geoman.Identity{}, nil
	case "webmercator":
		return geoman.WebMercator{}, nil
	}
	return geoman.NewSRProjection(os.ExpandEnv(def))
}

// EditOptions returns the editing options specified by the "options"
// configuration variable, or the defaults if it is empty.
func EditOptions(cfg *viper.Viper) (*geoman.Options, error) {
	f := cfg.GetString("options")
	if f == "" {
		return geoman.DefaultOptions(), nil
	}
	return geoman.ReadOptionsFile(f)
}

// loadMap creates a map as specified by cfg and adds the shapes of the
// input scene to it.
func loadMap(cfg *viper.Viper) (*geoman.Map, *Scene, error) {
	in := cfg.GetString("input")
	if in == "" {
		return nil, nil, fmt.Errorf("geoman: you need to specify an input file (for example: --input=scene.geojson)")
	}
	p, err := newProjection(cfg.GetString("projection"))
	if err != nil {
		return nil, nil, err
	}
	o, err := EditOptions(cfg)
	if err != nil {
		return nil, nil, err
	}
	m, err := geoman.NewMap(
		geoman.WithProjection(p),
		geoman.WithZoom(cfg.GetFloat64("zoom")),
		geoman.WithOptions(o),
	)
	if err != nil {
		return nil, nil, err
	}
	sc, err := LoadScene(in)
	if err != nil {
		return nil, nil, err
	}
	for _, s := range sc.Shapes {
		if err := m.AddShape(s); err != nil {
			return nil, nil, err
		}
	}
	m.Log.WithFields(logrus.Fields{"file": in, "shapes": len(sc.Shapes)}).Debug("geoman: loaded scene")
	return m, sc, nil
}

// parsePoint parses a longitude and latitude pair.
func parsePoint(s []string) (geoman.LatLng, error) {
	if len(s) != 2 {
		return geoman.LatLng{}, fmt.Errorf("geoman: point needs a longitude and a latitude, got %v", s)
	}
	lng, err := cast.ToFloat64E(strings.TrimSpace(s[0]))
	if err != nil {
		return geoman.LatLng{}, fmt.Errorf("geoman: point longitude: %v", err)
	}
	lat, err := cast.ToFloat64E(strings.TrimSpace(s[1]))
	if err != nil {
		return geoman.LatLng{}, fmt.Errorf("geoman: point latitude: %v", err)
	}
	return geoman.LatLng{Lat: lat, Lng: lng}, nil
}

// Cut cuts the shapes on m with each of cutters in turn. When layers is not
// empty, only the listed shapes and the parts cut from them are cut.
// Shapes that cannot be cut are logged and skipped.
func Cut(m *geoman.Map, cutters []*geoman.Shape, layers []string) error {
	restricted := len(layers) > 0
	for _, c := range cutters {
		if restricted && len(layers) == 0 {
			break
		}
		res, err := m.Cut(c, &geoman.CutOptions{LayersToCut: append([]string(nil), layers...)})
		if err != nil {
			return err
		}
		for _, err := range res.Errors {
			m.Log.WithFields(logrus.Fields{"cutter": c.ID}).Warn(err)
		}
		if !restricted {
			continue
		}
		for _, p := range res.Pairs {
			layers = replaceID(layers, p.Original.ID, p.Parts)
		}
	}
	return nil
}

// replaceID replaces id in ids with the IDs of parts.
func replaceID(ids []string, id string, parts []*geoman.Shape) []string {
	var o []string
	for _, v := range ids {
		if v != id {
			o = append(o, v)
			continue
		}
		for _, p := range parts {
			o = append(o, p.ID)
		}
	}
	return o
}

// Rotate turns shapes on m by deg degrees, or to an angle of deg degrees if
// toAngle is true. When layers is empty every line, polygon and
// rectangle is rotated.
func Rotate(m *geoman.Map, deg float64, toAngle bool, layers []string) error {
	var shapes []*geoman.Shape
	if len(layers) == 0 {
		for _, s := range m.Shapes() {
			switch s.Kind {
			case geoman.KindLine, geoman.KindPolygon, geoman.KindRectangle:
				shapes = append(shapes, s)
			}
		}
	}
	for _, id := range layers {
		s := m.Shape(id)
		if s == nil {
			return fmt.Errorf("geoman: rotating shape %s: %w", id, geoman.ErrUnknownShape)
		}
		shapes = append(shapes, s)
	}
	for _, s := range shapes {
		var err error
		if toAngle {
			err = m.RotateLayerToAngle(s, deg)
		} else {
			err = m.RotateLayer(s, deg)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SnapReport describes where a dragged marker is placed.
type SnapReport struct {
	// Point is the position the marker was dragged to.
	Point geoman.LatLng
	// LatLng is where the marker ends up.
	LatLng  geoman.LatLng
	Snapped bool

	// Target is the nearest shape, which is nil when there are no
	// candidates.
	Target   *geoman.Shape
	Along    geoman.SnapAlong
	Distance float64
}

func (r SnapReport) String() string {
	if r.Target == nil {
		return fmt.Sprintf("%v: no snapping targets", r.Point)
	}
	if !r.Snapped {
		return fmt.Sprintf("%v: not snapped; nearest is %v %s at distance %g",
			r.Point, r.Target.Kind, r.Target.ID, r.Distance)
	}
	return fmt.Sprintf("%v: snapped to %v on the %v of %v %s at distance %g",
		r.Point, r.LatLng, r.Along, r.Target.Kind, r.Target.ID, r.Distance)
}

// Snap drags a new marker to ll and reports where the snapping engine
// places it.
func Snap(m *geoman.Map, ll geoman.LatLng) SnapReport {
	sn := m.NewSnapper(geoman.NewMarker(ll))
	defer sn.Clear()
	p, info, ok := sn.Snap(ll, nil)
	return SnapReport{
		Point:    ll,
		LatLng:   p,
		Snapped:  ok,
		Target:   info.Target,
		Along:    info.Along,
		Distance: info.Distance,
	}
}

// FindKinks returns a scene holding a marker at every point where a line
// or polygon of sc crosses itself. Marker IDs are the ID of the crossing
// shape followed by the kink number.
func FindKinks(sc *Scene) *Scene {
	o := new(Scene)
	for _, s := range sc.Shapes {
		var closed bool
		switch s.Kind {
		case geoman.KindLine:
		case geoman.KindPolygon, geoman.KindRectangle:
			closed = true
		default:
			continue
		}
		var rings [][]geom.Point
		for _, r := range s.Rings() {
			rings = append(rings, points(r, false))
		}
		for i, p := range geoman.Kinks(rings, closed) {
			k := geoman.NewMarker(latLng(p))
			k.ID = fmt.Sprintf("%s.%d", s.ID, i)
			o.Shapes = append(o.Shapes, k)
		}
	}
	return o
}
