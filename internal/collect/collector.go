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
	"fmt"
	"log/slog"
	"path"

	"pagefit/internal/domain"
	applog "pagefit/internal/log"
)

// frame is one directory being listed.
// pending holds the unread remainder of the current batch.
type frame struct {
	path    string
	reader  DirReader
	pending []Entry
}

// Collect walks entries depth-first and returns every image file in order.
// A directory's images appear before those of the next sibling entry.
//
// Unreadable files and directory listings are skipped and reported in
// Result.Skipped; they never stop the walk. The only error returned is the
// context's, in which case the partial result is returned as well.
func Collect(ctx context.Context, entries []Entry) (Result, error) {
	l := applog.WithOperation(applog.WithComponent("collect"), "collect")
	var res Result

	// explicit stack instead of recursion; the root frame has no reader
	stack := []*frame{{pending: entries}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		top := stack[len(stack)-1]
		if len(top.pending) == 0 {
			if top.reader == nil {
				stack = stack[:len(stack)-1]
				continue
			}
			batch, err := top.reader.ReadEntries(ctx)
			if err != nil {
				res.skip(l, top.path, err)
				stack = stack[:len(stack)-1]
				continue
			}
			if len(batch) == 0 {
				stack = stack[:len(stack)-1]
				continue
			}
			top.pending = batch
			continue
		}

		e := top.pending[0]
		top.pending = top.pending[1:]
		if e == nil {
			continue
		}
		p := path.Join(top.path, e.Name())
		switch v := e.(type) {
		case DirEntry:
			stack = append(stack, &frame{path: p, reader: v.Reader()})
		case FileEntry:
			f, err := v.File(ctx)
			if err != nil {
				res.skip(l, p, err)
				continue
			}
			if f.Name == "" {
				f.Name = e.Name()
			}
			f.Path = p
			if f.MediaType == "" {
				mt, err := DetectMediaType(f.Name, f.Source)
				if err != nil {
					res.skip(l, p, err)
					continue
				}
				f.MediaType = mt
			}
			if !IsImage(f.MediaType) {
				l.Debug("not an image", slog.String("path", p), slog.String("type", f.MediaType))
				continue
			}
			res.Files = append(res.Files, f)
		}
	}
	l.Debug("collected", slog.Int("files", len(res.Files)), slog.Int("skipped", len(res.Skipped)))
	return res, nil
}

func (r *Result) skip(l *slog.Logger, p string, err error) {
	err = fmt.Errorf("%w: %s: %w", domain.ErrTraversalRead, p, err)
	l.Warn("entry skipped", slog.String("path", p), slog.Any("err", err))
	r.Skipped = append(r.Skipped, Skip{Path: p, Err: err})
}
