/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"pagefit/internal/collect"
	"pagefit/internal/config"
	"pagefit/internal/crash"
	"pagefit/internal/domain"
	"pagefit/internal/export"
	applog "pagefit/internal/log"
	"pagefit/internal/selection"
	"pagefit/internal/storage"
	"pagefit/internal/version"
)

func usage() {
	fmt.Println("pagefit: place images on paper pages and export them as PDF")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pagefit version|-v|--version            Show version")
	fmt.Println("  pagefit sizes                           Print supported paper sizes")
	fmt.Println("  pagefit export <out-dir> <path>...      Export images from files/folders to one PDF")
	fmt.Println("  pagefit preview <out-dir> <path>...     Render a PNG preview page per image")
	fmt.Println()
	fmt.Println("Paper and orientation come from the config file or PAGEFIT_PAPER / PAGEFIT_ORIENTATION.")
	fmt.Println("Use \"-\" as <out-dir> to write to export.out_dir from the config.")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config file ignored", slog.Any("err", cfgErr))
	}
	defer func() { _ = applog.Close() }()
	defer crash.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("pagefit")
			fmt.Println(version.String())
			return
		case "sizes":
			printSizes(os.Stdout)
			return
		case "export", "preview":
			if len(args) < 4 {
				fmt.Printf("%s requires <out-dir> and at least one <path>\n", args[1])
				usage()
				os.Exit(2)
			}
			outDir := args[2]
			if outDir == "-" {
				outDir = cfg.Export.OutDir
			}
			run := runExport
			if args[1] == "preview" {
				run = runPreview
			}
			if err := run(ctx, cfg.Export, outDir, args[3:], os.Stdout); err != nil {
				l.Error(args[1]+" failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// printSizes writes the page geometry of every paper size in both orientations.
func printSizes(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%-6s %-14s %-14s\n", "paper", "portrait mm", "landscape mm")
	for _, code := range domain.PaperCodes() {
		p := domain.Geometry(code, domain.Portrait)
		ls := domain.Geometry(code, domain.Landscape)
		_, _ = fmt.Fprintf(w, "%-6s %-14s %-14s\n", code,
			fmt.Sprintf("%gx%g", p.Width, p.Height),
			fmt.Sprintf("%gx%g", ls.Width, ls.Height))
	}
}

// gather collects image files below the given OS paths into a fresh selection.
// Skipped entries are reported to w.
func gather(ctx context.Context, paths []string, w io.Writer) (*selection.Selection, error) {
	var entries []collect.Entry
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		entries = append(entries, collect.FromFS(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))...)
	}
	res, err := collect.Collect(ctx, entries)
	if err != nil {
		return nil, err
	}
	for _, s := range res.Skipped {
		_, _ = fmt.Fprintf(w, "warning: skipped %s: %v\n", s.Path, s.Err)
	}
	sel := selection.New()
	sel.Add(res.Files...)
	if sel.Len() == 0 {
		return nil, domain.ErrNoImages
	}
	return sel, nil
}

func runExport(ctx context.Context, ec config.ExportConfig, outDir string, paths []string, w io.Writer) error {
	code, orient, err := ec.PaperSettings()
	if err != nil {
		return err
	}
	sel, err := gather(ctx, paths, w)
	if err != nil {
		return err
	}
	now := time.Now()
	ctx = applog.ContextWithExport(ctx, strconv.FormatInt(now.UnixMilli(), 10))
	doc, err := export.ExportPDF(ctx, sel.Snapshot(), export.PDFOptions{
		Paper:        code,
		Orientation:  orient,
		Title:        ec.Title,
		Author:       ec.Author,
		CreationDate: now,
	})
	if err != nil {
		return err
	}
	path, err := storage.SavePDF(outDir, export.SuggestedFilename(code, now), doc.Bytes)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Wrote %d page(s) on %s %s to %s\n", doc.PageCount(), code, orient, path)
	return nil
}

func runPreview(ctx context.Context, ec config.ExportConfig, outDir string, paths []string, w io.Writer) error {
	code, orient, err := ec.PaperSettings()
	if err != nil {
		return err
	}
	sel, err := gather(ctx, paths, w)
	if err != nil {
		return err
	}
	var errs []error
	for i, a := range sel.Snapshot() {
		png, err := export.RenderPreview(ctx, a, export.PreviewOptions{Paper: code, Orientation: orient, Border: true})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, err)
			_, _ = fmt.Fprintf(w, "warning: no preview for %s: %v\n", a.Name, err)
			continue
		}
		path, err := storage.WriteFile(outDir, fmt.Sprintf("preview-%d.png", i+1), png)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s -> %s\n", a.Name, path)
	}
	return errors.Join(errs...)
}
