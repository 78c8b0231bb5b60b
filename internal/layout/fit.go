/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout places an image on a page without cropping or distortion.
package layout

import (
	"fmt"
	"math"

	"pagefit/internal/domain"
)

// FitBox scales an image of imgW x imgH pixels to the largest size that fits
// inside box while keeping its aspect ratio. The result touches the box in at
// least one dimension.
func FitBox(box domain.Box, imgW, imgH float64) (w, h float64, err error) {
	if !(box.Width > 0) || !(box.Height > 0) {
		return 0, 0, fmt.Errorf("%w: content box %gx%g", domain.ErrInvalidGeometry, box.Width, box.Height)
	}
	if !positiveFinite(imgW) || !positiveFinite(imgH) {
		return 0, 0, fmt.Errorf("%w: pixel size %gx%g", domain.ErrInvalidImage, imgW, imgH)
	}
	imgRatio := imgW / imgH
	boxRatio := box.Width / box.Height
	if imgRatio > boxRatio {
		// relatively wider: width is the binding side
		return box.Width, box.Width / imgRatio, nil
	}
	return box.Height * imgRatio, box.Height, nil
}

// Fit computes the draw size and offset of an image on a page with the given
// margin. Offsets are measured against the full page so the image is centered
// including the border.
func Fit(page domain.PageGeometry, margin, imgW, imgH float64) (domain.PlacedImage, error) {
	box, err := page.ContentBox(margin)
	if err != nil {
		return domain.PlacedImage{}, err
	}
	w, h, err := FitBox(box, imgW, imgH)
	if err != nil {
		return domain.PlacedImage{}, err
	}
	return domain.PlacedImage{
		Width:  w,
		Height: h,
		X:      (page.Width - w) / 2,
		Y:      (page.Height - h) / 2,
	}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
