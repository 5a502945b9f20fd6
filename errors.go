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
	"errors"
	"fmt"
)

// Errors returned for calls that can never succeed as made.
var (
	ErrNotEnabled       = errors.New("layer is not enabled")
	ErrDuplicateShape   = errors.New("shape already added")
	ErrUnknownShape     = errors.New("shape is not on the map")
	ErrNotEditable      = errors.New("shape kind cannot be edited")
	ErrEditingDisabled  = errors.New("editing is not allowed for shape")
	ErrNotRotatable     = errors.New("shape kind cannot be rotated")
	ErrRotationDisabled = errors.New("rotation is not allowed for shape")
	ErrDraggingDisabled = errors.New("dragging is not allowed for shape")
	ErrUnknownKind      = errors.New("unknown shape kind")
	ErrNotCuttable      = errors.New("cutting shape must be a polygon with at least 3 vertices")
)

// Errors reported for individual cut candidates.
var (
	ErrSelfIntersection = errors.New("you can't cut polygons with self-intersections")
	ErrClipping         = errors.New("clipping failed")
)

// CutError reports a cut candidate that could not be processed.
type CutError struct {
	Shape *Shape
	Err   error
}

func (e *CutError) Error() string {
	return fmt.Sprintf("geoman: cutting shape %s: %v", e.Shape.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *CutError) Unwrap() error { return e.Err }
