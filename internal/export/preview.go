/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"pagefit/internal/domain"
	"pagefit/internal/layout"
)

// PreviewOptions controls RenderPreview.
// WidthPx is the width of the rendered page; the height follows the paper's
// aspect ratio. Zero means 300 px. A zero Margin means domain.Margin.
type PreviewOptions struct {
	Paper       domain.PaperCode
	Orientation domain.Orientation
	Margin      float64
	WidthPx     int
	Border      bool // dashed outline of the page edge
}

// RenderPreview draws one image the way ExportPDF would place it and returns
// the page as PNG.
func RenderPreview(ctx context.Context, a domain.ImageAsset, opt PreviewOptions) ([]byte, error) {
	margin := opt.Margin
	if margin == 0 {
		margin = domain.Margin
	}
	widthPx := opt.WidthPx
	if widthPx <= 0 {
		widthPx = 300
	}
	page := domain.Geometry(opt.Paper, opt.Orientation)
	if _, err := page.ContentBox(margin); err != nil {
		return nil, err
	}
	d, err := decodeAsset(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", a.Name, err)
	}
	w, h := d.size()
	placed, err := layout.Fit(page, margin, float64(w), float64(h))
	if err != nil {
		return nil, err
	}

	scale := float64(widthPx) / page.Width
	pixH := int(math.Round(page.Height * scale))
	canvas := image.NewRGBA(image.Rect(0, 0, widthPx, pixH))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	x0 := int(math.Round(placed.X * scale))
	y0 := int(math.Round(placed.Y * scale))
	x1 := int(math.Round((placed.X + placed.Width) * scale))
	y1 := int(math.Round((placed.Y + placed.Height) * scale))
	if x1 > x0 && y1 > y0 {
		draw.CatmullRom.Scale(canvas, image.Rect(x0, y0, x1, y1), d.img, d.img.Bounds(), draw.Over, nil)
	}
	if opt.Border {
		dashedRect(canvas, 0, 0, widthPx-1, pixH-1, color.RGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}, 4)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// dashedRect draws a 1px rectangle outline inclusive of endpoints, alternating
// dash pixels on and off.
func dashedRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, dash int) {
	on := func(i int) bool { return dash <= 0 || (i/dash)%2 == 0 }
	for x := x0; x <= x1; x++ {
		if on(x - x0) {
			img.SetRGBA(x, y0, col)
			img.SetRGBA(x, y1, col)
		}
	}
	for y := y0; y <= y1; y++ {
		if on(y - y0) {
			img.SetRGBA(x0, y, col)
			img.SetRGBA(x1, y, col)
		}
	}
}
