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
	"log/slog"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pagefit/internal/domain"
	"pagefit/internal/layout"
	applog "pagefit/internal/log"
)

// PDFOptions controls PDF export.
// Lengths are millimeters. A zero Margin means domain.Margin.
// A zero CreationDate means the time of the export.
type PDFOptions struct {
	Paper        domain.PaperCode
	Orientation  domain.Orientation
	Margin       float64
	Title        string
	Author       string
	CreationDate time.Time
}

// Document is the result of one export.
// Assets are the inputs in page order with their decoded pixel sizes;
// Placements[i] is where Assets[i] was drawn.
type Document struct {
	Bytes       []byte
	Paper       domain.PaperCode
	Orientation domain.Orientation
	Page        domain.PageGeometry
	Assets      []domain.ImageAsset
	Placements  []domain.PlacedImage
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return len(d.Placements) }

// ExportPDF lays out one image per page, ordered by ordinal, and returns the
// finished PDF. The assets slice is not modified.
//
// Any failure aborts the whole export: no partial document is returned and the
// error wraps domain.ErrAssembly (and domain.ErrInvalidImage for images that
// cannot be decoded).
func ExportPDF(ctx context.Context, assets []domain.ImageAsset, opt PDFOptions) (*Document, error) {
	l := applog.WithOperation(applog.WithComponent("export"), "pdf")
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrAssembly, domain.ErrNoImages)
	}
	margin := opt.Margin
	if margin == 0 {
		margin = domain.Margin
	}
	page := domain.Geometry(opt.Paper, opt.Orientation)
	if _, err := page.ContentBox(margin); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrAssembly, opt.Paper, opt.Orientation, err)
	}

	ordered := append([]domain.ImageAsset(nil), assets...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Ordinal < ordered[j].Ordinal })

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "mm",
		OrientationStr: "P", // Size is already oriented
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	pdf.SetCreator("pagefit", false)
	created := opt.CreationDate
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)

	doc := &Document{
		Paper:       opt.Paper,
		Orientation: opt.Orientation,
		Page:        page,
		Assets:      make([]domain.ImageAsset, 0, len(ordered)),
		Placements:  make([]domain.PlacedImage, 0, len(ordered)),
	}
	l.DebugContext(ctx, "export started",
		slog.Int("images", len(ordered)),
		slog.String("paper", string(opt.Paper)),
		slog.String("orientation", string(opt.Orientation)))

	for _, a := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrAssembly, err)
		}
		placed, w, h, err := addImagePage(ctx, pdf, a, page, margin)
		if err != nil {
			l.ErrorContext(ctx, "export failed", slog.Int("ordinal", a.Ordinal), slog.String("name", a.Name), slog.Any("err", err))
			return nil, fmt.Errorf("%w: image %d (%s): %w", domain.ErrAssembly, a.Ordinal, a.Name, err)
		}
		a.Width, a.Height = w, h
		doc.Assets = append(doc.Assets, a)
		doc.Placements = append(doc.Placements, placed)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: write pdf: %w", domain.ErrAssembly, err)
	}
	doc.Bytes = buf.Bytes()
	l.InfoContext(ctx, "export finished", slog.Int("pages", doc.PageCount()), slog.Int("bytes", len(doc.Bytes)))
	return doc, nil
}

// addImagePage decodes one asset and draws it centered on a new page.
// The decoded pixels are released when it returns.
func addImagePage(ctx context.Context, pdf *gofpdf.Fpdf, a domain.ImageAsset, page domain.PageGeometry, margin float64) (domain.PlacedImage, int, int, error) {
	d, err := decodeAsset(ctx, a)
	if err != nil {
		return domain.PlacedImage{}, 0, 0, err
	}
	w, h := d.size()
	placed, err := layout.Fit(page, margin, float64(w), float64(h))
	if err != nil {
		return domain.PlacedImage{}, 0, 0, err
	}
	stream, imgType, err := d.pdfStream()
	if err != nil {
		return domain.PlacedImage{}, 0, 0, err
	}

	name := fmt.Sprintf("p%d-img-%d", pdf.PageNo()+1, a.Ordinal)
	opt := gofpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(stream))
	if err := pdf.Error(); err != nil {
		return domain.PlacedImage{}, 0, 0, fmt.Errorf("%w: embed: %w", domain.ErrInvalidImage, err)
	}
	pdf.AddPage()
	pdf.ImageOptions(name, placed.X, placed.Y, placed.Width, placed.Height, false, opt, 0, "")
	if err := pdf.Error(); err != nil {
		return domain.PlacedImage{}, 0, 0, fmt.Errorf("draw: %w", err)
	}
	return placed, w, h, nil
}
