/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package collect flattens dropped files and folders into an ordered list of images.
//
// The entry interfaces mirror a drag-and-drop source: a directory hands out a
// reader that returns its children in batches until an empty batch signals the
// end. Adapters exist for io/fs trees (FromFS) and in-memory entries (mem.go).
package collect

import (
	"context"

	"pagefit/internal/domain"
)

// Entry is a node of a dropped tree. Concrete entries implement FileEntry or DirEntry.
type Entry interface {
	Name() string
}

// FileEntry resolves to a readable file. Resolving may fail, e.g. on permission errors.
type FileEntry interface {
	Entry
	File(ctx context.Context) (File, error)
}

// DirEntry can list its children.
type DirEntry interface {
	Entry
	Reader() DirReader
}

// DirReader returns the children of a directory in batches.
// A nil or empty batch with a nil error means the listing is exhausted.
type DirReader interface {
	ReadEntries(ctx context.Context) ([]Entry, error)
}

// File is a collected file handle.
type File struct {
	Name      string
	Path      string // slash separated, relative to the dropped entry
	MediaType string // empty means unknown; Collect detects it
	Size      int64
	Source    domain.Source
}

// Skip records an entry that could not be read.
type Skip struct {
	Path string
	Err  error
}

// Result is the outcome of a collection.
type Result struct {
	Files   []File
	Skipped []Skip
}
