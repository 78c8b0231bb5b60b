/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package collect

import (
	"context"

	"pagefit/internal/domain"
)

// MemFile is an in-memory file entry, e.g. from a file picker that already
// delivered the bytes.
type MemFile struct {
	FileName  string
	MediaType string
	Data      []byte
}

func (m *MemFile) Name() string { return m.FileName }

func (m *MemFile) File(context.Context) (File, error) {
	return File{
		Name:      m.FileName,
		MediaType: m.MediaType,
		Size:      int64(len(m.Data)),
		Source:    domain.BytesSource(m.Data),
	}, nil
}

// MemDir is an in-memory directory. BatchSize limits how many children each
// ReadEntries call returns; zero returns all at once.
type MemDir struct {
	DirName   string
	BatchSize int
	Children  []Entry
}

func (m *MemDir) Name() string { return m.DirName }

func (m *MemDir) Reader() DirReader { return &memReader{rest: m.Children, batch: m.BatchSize} }

type memReader struct {
	rest  []Entry
	batch int
}

func (r *memReader) ReadEntries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := r.batch
	if n <= 0 || n > len(r.rest) {
		n = len(r.rest)
	}
	out := r.rest[:n]
	r.rest = r.rest[n:]
	return out, nil
}

// FromFiles wraps already-loaded files as top-level entries, keeping their order.
func FromFiles(files ...*MemFile) []Entry {
	out := make([]Entry, 0, len(files))
	for _, f := range files {
		out = append(out, f)
	}
	return out
}
