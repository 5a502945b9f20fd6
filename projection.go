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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// Projection converts between geographic coordinates and plane points at a
// given zoom level. It is supplied by the host map.
type Projection interface {
	Project(ll LatLng, zoom float64) geom.Point
	Unproject(p geom.Point, zoom float64) LatLng
}

// Identity is a 1:1 projection that maps longitude to X and latitude to Y
// regardless of zoom.
type Identity struct{}

// Project implements Projection.
func (Identity) Project(ll LatLng, _ float64) geom.Point {
	return geom.Point{X: ll.Lng, Y: ll.Lat}
}

// Unproject implements Projection.
func (Identity) Unproject(p geom.Point, _ float64) LatLng {
	return LatLng{Lat: p.Y, Lng: p.X}
}

const (
	mercatorRadius = 6378137.
	maxMercatorLat = 85.0511287798
	tileSize       = 256.
)

// WebMercator is the spherical mercator projection used by web maps,
// scaled to pixels so that the world is 256·2^zoom pixels wide with the
// vertical axis pointing down.
type WebMercator struct{}

// Project implements Projection.
func (WebMercator) Project(ll LatLng, zoom float64) geom.Point {
	lat := math.Max(math.Min(maxMercatorLat, ll.Lat), -maxMercatorLat)
	sin := math.Sin(lat * math.Pi / 180)
	x := mercatorRadius * ll.Lng * math.Pi / 180
	y := mercatorRadius * math.Log((1+sin)/(1-sin)) / 2
	return metersToPixels(x, y, zoom)
}

// Unproject implements Projection.
func (WebMercator) Unproject(p geom.Point, zoom float64) LatLng {
	x, y := pixelsToMeters(p, zoom)
	return LatLng{
		Lat: (2*math.Atan(math.Exp(y/mercatorRadius)) - math.Pi/2) * 180 / math.Pi,
		Lng: x * 180 / math.Pi / mercatorRadius,
	}
}

func metersToPixels(x, y, zoom float64) geom.Point {
	scale := tileSize * math.Pow(2, zoom)
	k := 0.5 / (math.Pi * mercatorRadius)
	return geom.Point{X: scale * (k*x + 0.5), Y: scale * (-k*y + 0.5)}
}

func pixelsToMeters(p geom.Point, zoom float64) (x, y float64) {
	scale := tileSize * math.Pow(2, zoom)
	k := 0.5 / (math.Pi * mercatorRadius)
	return (p.X/scale - 0.5) / k, (p.Y/scale - 0.5) / -k
}

// WebMapProj is the Proj4 definition of the spherical mercator projection.
const WebMapProj = "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs"

const longLatProj = "+proj=longlat +datum=WGS84 +no_defs"

// SRProjection projects through an arbitrary spatial reference. Projected
// coordinates are treated as meters and scaled to pixels the same way as
// WebMercator.
type SRProjection struct {
	forward, inverse proj.Transformer
}

// NewSRProjection creates a projection from a Proj4 or WKT definition.
func NewSRProjection(def string) (*SRProjection, error) {
	src, err := proj.Parse(longLatProj)
	if err != nil {
		return nil, fmt.Errorf("geoman: while parsing geographic projection: %v", err)
	}
	dst, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("geoman: while parsing projection %q: %v", def, err)
	}
	fwd, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("geoman: while creating forward transform: %v", err)
	}
	inv, err := dst.NewTransform(src)
	if err != nil {
		return nil, fmt.Errorf("geoman: while creating inverse transform: %v", err)
	}
	return &SRProjection{forward: fwd, inverse: inv}, nil
}

// Project implements Projection. Coordinates the spatial reference cannot
// represent project to NaN.
func (s *SRProjection) Project(ll LatLng, zoom float64) geom.Point {
	x, y, err := s.forward(ll.Lng, ll.Lat)
	if err != nil {
		return geom.Point{X: math.NaN(), Y: math.NaN()}
	}
	return metersToPixels(x, y, zoom)
}

// Unproject implements Projection.
func (s *SRProjection) Unproject(p geom.Point, zoom float64) LatLng {
	x, y := pixelsToMeters(p, zoom)
	lng, lat, err := s.inverse(x, y)
	if err != nil {
		return LatLng{Lat: math.NaN(), Lng: math.NaN()}
	}
	return LatLng{Lat: lat, Lng: lng}
}
