/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pagefit/internal/config"
	"pagefit/internal/domain"
)

func writeImage(t *testing.T, path string, w, h int, asJPEG bool) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	var err error
	if asJPEG {
		err = jpeg.Encode(&buf, img, nil)
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func fixtureTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "photos")
	writeImage(t, filepath.Join(root, "a.png"), 40, 20, false)
	writeImage(t, filepath.Join(root, "b", "c.jpg"), 20, 40, true)
	if err := os.WriteFile(filepath.Join(root, "b", "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestRunExportWritesPDF(t *testing.T) {
	root := fixtureTree(t)
	out := t.TempDir()
	var log bytes.Buffer
	ec := config.ExportConfig{Paper: "a5", Orientation: "landscape"}
	if err := runExport(context.Background(), ec, out, []string{root}, &log); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	ents, err := os.ReadDir(out)
	if err != nil || len(ents) != 1 {
		t.Fatalf("expected one file in out dir, got %v (%v)", ents, err)
	}
	name := ents[0].Name()
	if !strings.HasPrefix(name, "images_A5_") || !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("unexpected file name %s", name)
	}
	b, err := os.ReadFile(filepath.Join(out, name))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if got := bytes.Count(b, []byte("<</Type /Page\n")); got != 2 {
		t.Fatalf("page count = %d, want 2", got)
	}
	if !strings.Contains(log.String(), "Wrote 2 page(s) on A5 landscape") {
		t.Fatalf("summary missing: %q", log.String())
	}
}

func TestRunPreviewWritesOnePNGPerImage(t *testing.T) {
	root := fixtureTree(t)
	out := t.TempDir()
	var log bytes.Buffer
	ec := config.ExportConfig{Paper: "A4", Orientation: "portrait"}
	if err := runPreview(context.Background(), ec, out, []string{root}, &log); err != nil {
		t.Fatalf("runPreview: %v", err)
	}
	for _, n := range []string{"preview-1.png", "preview-2.png"} {
		f, err := os.Open(filepath.Join(out, n))
		if err != nil {
			t.Fatalf("open %s: %v", n, err)
		}
		cfg, err := png.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", n, err)
		}
		if cfg.Width != 300 || cfg.Height != 424 {
			t.Fatalf("%s is %dx%d, want 300x424", n, cfg.Width, cfg.Height)
		}
	}
}

func TestRunExportWithoutImages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := runExport(context.Background(), config.ExportConfig{Paper: "A4", Orientation: "portrait"}, t.TempDir(), []string{dir}, &bytes.Buffer{})
	if !errors.Is(err, domain.ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
}

func TestRunExportReportsMissingPath(t *testing.T) {
	root := fixtureTree(t)
	var log bytes.Buffer
	ec := config.ExportConfig{Paper: "A4", Orientation: "portrait"}
	missing := filepath.Join(t.TempDir(), "gone.png")
	if err := runExport(context.Background(), ec, t.TempDir(), []string{missing, root}, &log); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	if !strings.Contains(log.String(), "warning: skipped gone.png") {
		t.Fatalf("missing path not reported: %q", log.String())
	}
}

func TestRunExportRejectsUnknownPaper(t *testing.T) {
	err := runExport(context.Background(), config.ExportConfig{Paper: "B5", Orientation: "portrait"}, t.TempDir(), []string{"."}, &bytes.Buffer{})
	if !errors.Is(err, domain.ErrUnknownPaper) {
		t.Fatalf("expected ErrUnknownPaper, got %v", err)
	}
}

func TestPrintSizes(t *testing.T) {
	var buf bytes.Buffer
	printSizes(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %q", buf.String())
	}
	if !strings.Contains(lines[2], "210x297") || !strings.Contains(lines[2], "297x210") {
		t.Fatalf("A4 row wrong: %q", lines[2])
	}
}
