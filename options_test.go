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
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const testOptions = `
SnapDistance = 30.0
SnapMiddle = true
SnappingOrder = ["Polygon", "Wireframe", "Marker"]
AllowSelfIntersection = false
LimitMarkersToCount = 4
MaxRadiusCircle = 1000.0
LayersToCut = ["a", "b"]
`

func TestDecodeOptions(t *testing.T) {
	o, err := DecodeOptions(strings.NewReader(testOptions))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultOptions()
	want.SnapDistance = 30
	want.SnapMiddle = true
	want.SnappingOrder = []string{"Polygon", "Wireframe", "Marker"}
	want.AllowSelfIntersection = false
	want.LimitMarkersToCount = 4
	want.MaxRadiusCircle = 1000
	want.LayersToCut = []string{"a", "b"}
	if !reflect.DeepEqual(o, want) {
		t.Errorf("have %+v, want %+v", o, want)
	}

	if _, err := DecodeOptions(strings.NewReader(`SnappingOrder = ["Hexagon"]`)); err == nil {
		t.Error("an unknown kind should be rejected")
	}
	if _, err := DecodeOptions(strings.NewReader(`SnapDistance = "far"`)); err == nil {
		t.Error("a malformed value should be rejected")
	}
}

func TestReadOptionsFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "geoman")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	if err := ioutil.WriteFile(filepath.Join(dir, "options.toml"), []byte(testOptions), 0644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("GEOMAN_TEST_DIR", dir)
	defer os.Unsetenv("GEOMAN_TEST_DIR")

	o, err := ReadOptionsFile("${GEOMAN_TEST_DIR}/options.toml")
	if err != nil {
		t.Fatal(err)
	}
	if o.SnapDistance != 30 {
		t.Errorf("have %g, want 30", o.SnapDistance)
	}
	if _, err := ReadOptionsFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("a missing file should be an error")
	}
}

func TestOptions_Clone(t *testing.T) {
	o := DefaultOptions()
	o.SyncLayersOnDrag = []string{"x"}
	c := o.Clone()
	c.SyncLayersOnDrag[0] = "y"
	c.SnapDistance = 1
	if o.SyncLayersOnDrag[0] != "x" || o.SnapDistance != 20 {
		t.Error("clone shares state with the original")
	}
}
