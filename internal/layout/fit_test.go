/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"errors"
	"math"
	"testing"

	"pagefit/internal/domain"
)

const eps = 1e-9

func TestFitSquareOnA4Portrait(t *testing.T) {
	page := domain.Geometry(domain.A4, domain.Portrait)
	p, err := Fit(page, domain.Margin, 1000, 1000)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	// content box is 178x265, the square is bound by the width
	if p.Width != 178 || p.Height != 178 {
		t.Fatalf("unexpected size: %+v", p)
	}
	if p.X != 16 || math.Abs(p.Y-59.5) > eps {
		t.Fatalf("square not centered: %+v", p)
	}
}

func TestFitWideAndTall(t *testing.T) {
	page := domain.Geometry(domain.A4, domain.Landscape) // 297x210, content 265x178
	wide, err := Fit(page, domain.Margin, 4000, 1000)
	if err != nil {
		t.Fatalf("Fit wide: %v", err)
	}
	if wide.Width != 265 || math.Abs(wide.Height-66.25) > eps {
		t.Fatalf("wide image: %+v", wide)
	}
	tall, err := Fit(page, domain.Margin, 100, 1000)
	if err != nil {
		t.Fatalf("Fit tall: %v", err)
	}
	if tall.Height != 178 || math.Abs(tall.Width-17.8) > eps {
		t.Fatalf("tall image: %+v", tall)
	}
	if math.Abs(tall.X-(297-17.8)/2) > eps || tall.Y != 16 {
		t.Fatalf("tall image offset: %+v", tall)
	}
}

func TestFitNeverExceedsContentBox(t *testing.T) {
	sizes := [][2]float64{{1, 1}, {1, 10000}, {10000, 1}, {178, 265}, {265, 178}, {3, 7}, {1920, 1080}, {0.5, 0.25}}
	for _, code := range domain.PaperCodes() {
		for _, o := range []domain.Orientation{domain.Portrait, domain.Landscape} {
			page := domain.Geometry(code, o)
			box, _ := page.ContentBox(domain.Margin)
			for _, s := range sizes {
				p, err := Fit(page, domain.Margin, s[0], s[1])
				if err != nil {
					t.Fatalf("%s/%s %v: %v", code, o, s, err)
				}
				if p.Width > box.Width+eps || p.Height > box.Height+eps {
					t.Fatalf("%s/%s %v: %+v exceeds %+v", code, o, s, p, box)
				}
				touches := math.Abs(p.Width-box.Width) < eps || math.Abs(p.Height-box.Height) < eps
				if !touches {
					t.Fatalf("%s/%s %v: %+v does not touch %+v", code, o, s, p, box)
				}
				ratio := s[0] / s[1]
				if math.Abs(p.Width/p.Height-ratio) > 1e-9*math.Max(1, ratio) {
					t.Fatalf("%s/%s %v: aspect ratio changed: %+v", code, o, s, p)
				}
			}
		}
	}
}

func TestFitExactRatioFillsBox(t *testing.T) {
	box := domain.Box{Width: 178, Height: 265}
	w, h, err := FitBox(box, 178, 265)
	if err != nil {
		t.Fatalf("FitBox: %v", err)
	}
	if w != 178 || h != 265 {
		t.Fatalf("expected the box to be filled, got %gx%g", w, h)
	}
}

func TestFitRejectsDegenerateInput(t *testing.T) {
	page := domain.Geometry(domain.A5, domain.Portrait)
	bad := [][2]float64{{0, 10}, {10, 0}, {-1, 10}, {math.NaN(), 10}, {10, math.Inf(1)}}
	for _, s := range bad {
		if _, err := Fit(page, domain.Margin, s[0], s[1]); !errors.Is(err, domain.ErrInvalidImage) {
			t.Fatalf("%v: expected ErrInvalidImage, got %v", s, err)
		}
	}
	if _, err := Fit(page, 80, 10, 10); !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestFitRejectsNegativeMargin(t *testing.T) {
	page := domain.Geometry(domain.A4, domain.Portrait)
	p, err := Fit(page, -16, 100, 100)
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %+v, %v", p, err)
	}
}
