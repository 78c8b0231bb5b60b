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
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pagefit/internal/domain"
)

// decoded is a fully decoded image together with the bytes it came from.
type decoded struct {
	img    image.Image
	format string // as registered with package image: jpeg, png, gif, webp, bmp, tiff
	raw    []byte
}

func (d *decoded) size() (w, h int) {
	b := d.img.Bounds()
	return b.Dx(), b.Dy()
}

// decodeAsset reads and decodes the whole image so that broken files are
// detected before anything is drawn.
func decodeAsset(ctx context.Context, a domain.ImageAsset) (*decoded, error) {
	if a.Source == nil {
		return nil, fmt.Errorf("%w: no source", domain.ErrInvalidImage)
	}
	rc, err := a.Source.Open()
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", domain.ErrInvalidImage, err)
	}
	d := &decoded{img: img, format: format, raw: data}
	if w, h := d.size(); w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", domain.ErrInvalidImage, w, h)
	}
	return d, nil
}

// pdfStream returns the bytes to embed and their gofpdf image type.
// JPEG data is embedded unchanged. Other formats are stored as an 8-bit
// non-interlaced PNG, the only other raster layout gofpdf embeds reliably.
func (d *decoded) pdfStream() ([]byte, string, error) {
	if d.format == "jpeg" {
		return d.raw, "JPG", nil
	}
	b := d.img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), d.img, b.Min, draw.Src)
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, n); err != nil {
		return nil, "", fmt.Errorf("normalize %s: %w", d.format, err)
	}
	return buf.Bytes(), "PNG", nil
}
