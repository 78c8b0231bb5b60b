/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage delivers finished exports to disk.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SavePDF writes a finished PDF to dir/name and returns the final path.
func SavePDF(dir, name string, data []byte) (string, error) {
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return "", fmt.Errorf("invalid file name %q: want .pdf extension", name)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", errors.New("data is not a PDF document")
	}
	return WriteFile(dir, name, data)
}

// WriteFile writes data to dir/name and returns the final path.
// The file is written to a temporary name in the same directory, flushed and
// then renamed, so a reader never sees a half-written file. An existing
// file with the same name is replaced.
func WriteFile(dir, name string, data []byte) (string, error) {
	if strings.TrimSpace(name) == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if len(data) == 0 {
		return "", errors.New("refusing to write an empty file")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure out dir: %w", err)
	}
	target := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := writeSync(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("replace %s: %w", name, err)
	}
	return target, nil
}

// writeSync writes data, flushes it to disk and closes f.
func writeSync(f *os.File, data []byte) (err error) {
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
