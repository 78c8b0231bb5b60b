/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"math"
	"strings"
)

// Margin is the white border kept on every side of a page.
const Margin = 16.0

// paperSizes holds portrait dimensions. Adding a size only needs a new row here.
var paperSizes = map[PaperCode]PageGeometry{
	A3: {Width: 297, Height: 420},
	A4: {Width: 210, Height: 297},
	A5: {Width: 148, Height: 210},
}

// paperOrder is the display order used by PaperCodes.
var paperOrder = []PaperCode{A3, A4, A5}

// PaperCodes returns the supported paper sizes, largest first.
func PaperCodes() []PaperCode { return append([]PaperCode(nil), paperOrder...) }

// Geometry resolves the page size for a paper code and orientation.
// Landscape is the transpose of portrait.
func Geometry(code PaperCode, o Orientation) PageGeometry {
	g := paperSizes[code]
	if o == Landscape {
		return g.Transpose()
	}
	return g
}

// Transpose swaps width and height.
func (g PageGeometry) Transpose() PageGeometry {
	return PageGeometry{Width: g.Height, Height: g.Width}
}

// ContentBox shrinks the page by margin on all four sides.
// The margin must be a finite, non-negative length.
func (g PageGeometry) ContentBox(margin float64) (Box, error) {
	if !(margin >= 0) || math.IsInf(margin, 1) {
		return Box{}, fmt.Errorf("%w: margin %g mm", ErrInvalidGeometry, margin)
	}
	b := Box{Width: g.Width - 2*margin, Height: g.Height - 2*margin}
	if b.Width <= 0 || b.Height <= 0 {
		return Box{}, fmt.Errorf("%w: page %gx%g mm leaves no room for a %g mm margin", ErrInvalidGeometry, g.Width, g.Height, margin)
	}
	return b, nil
}

// ParsePaperCode accepts a paper code in any letter case, e.g. "a4".
func ParsePaperCode(s string) (PaperCode, error) {
	c := PaperCode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := paperSizes[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaper, s)
	}
	return c, nil
}

// ParseOrientation accepts portrait|p and landscape|l.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait", "p":
		return Portrait, nil
	case "landscape", "l":
		return Landscape, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
	}
}
