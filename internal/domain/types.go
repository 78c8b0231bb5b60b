/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for pagefit: paper settings, the images
// selected for export and the placement computed for each of them.
// All lengths are millimeters unless a field says pixels.

import (
	"bytes"
	"io"
)

// PaperCode names a supported paper size.
type PaperCode string

const (
	A3 PaperCode = "A3"
	A4 PaperCode = "A4"
	A5 PaperCode = "A5"
)

// Orientation selects whether the long side of the paper is vertical or horizontal.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// PageGeometry is the full page box in millimeters.
type PageGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box is a width/height pair used for the content area of a page.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Source yields the raw bytes of an image. Each call to Open starts a fresh read.
type Source interface {
	Open() (io.ReadCloser, error)
}

// BytesSource serves an image that is already held in memory.
type BytesSource []byte

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// ImageAsset is one selected image.
// Ordinal is assigned once when the image is collected and is the only key used
// to order pages. Width and Height are pixel dimensions and stay zero until the
// image has been decoded.
type ImageAsset struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	Source  Source `json:"-"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// PlacedImage is where an image is drawn on its page.
type PlacedImage struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}
