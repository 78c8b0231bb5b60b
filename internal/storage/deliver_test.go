/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSavePDFWritesAndReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	path, err := SavePDF(dir, "images_A4_1.pdf", []byte("%PDF-1.3 first"))
	if err != nil {
		t.Fatalf("SavePDF: %v", err)
	}
	if path != filepath.Join(dir, "images_A4_1.pdf") {
		t.Fatalf("unexpected path %s", path)
	}
	if _, err := SavePDF(dir, "images_A4_1.pdf", []byte("%PDF-1.3 second")); err != nil {
		t.Fatalf("second SavePDF: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "%PDF-1.3 second" {
		t.Fatalf("file not replaced: %q", b)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range ents {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSavePDFRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	if _, err := SavePDF(dir, "../escape.pdf", []byte("x")); err == nil {
		t.Fatalf("expected error for path in name")
	}
	if _, err := SavePDF(dir, "", []byte("x")); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := SavePDF(dir, "a.pdf", nil); err == nil {
		t.Fatalf("expected error for empty data")
	}
	if _, err := SavePDF(dir, "a.png", []byte("%PDF-1.3")); err == nil {
		t.Fatalf("expected error for non-pdf name")
	}
	if _, err := SavePDF(dir, "a.pdf", []byte("\x89PNG")); err == nil {
		t.Fatalf("expected error for non-pdf data")
	}
}

func TestWriteFileAnyPayload(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, "preview-1.png", []byte("png bytes"))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != int64(len("png bytes")) {
		t.Fatalf("size = %d", info.Size())
	}
}
