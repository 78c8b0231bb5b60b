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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
)

// DefaultBatchSize is how many children an io/fs directory reader hands out per call.
const DefaultBatchSize = 100

// errLinkCycle marks a symlinked folder that points back to one of its own parents.
var errLinkCycle = errors.New("symlink cycle")

// FromFS returns one entry per path in fsys, in the given order.
// Paths that cannot be inspected still produce an entry; reading it fails and
// the collector skips it.
func FromFS(fsys fs.FS, paths ...string) []Entry {
	out := make([]Entry, 0, len(paths))
	for _, p := range paths {
		p = path.Clean(p)
		info, err := fs.Stat(fsys, p)
		switch {
		case err != nil:
			out = append(out, &fsFile{fsys: fsys, path: p, statErr: err})
		case info.IsDir():
			out = append(out, &fsDir{fsys: fsys, path: p, batch: DefaultBatchSize, info: info})
		default:
			out = append(out, &fsFile{fsys: fsys, path: p})
		}
	}
	return out
}

type fsFile struct {
	fsys    fs.FS
	path    string
	statErr error
}

func (f *fsFile) Name() string { return path.Base(f.path) }

func (f *fsFile) File(ctx context.Context) (File, error) {
	if f.statErr != nil {
		return File{}, f.statErr
	}
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	info, err := fs.Stat(f.fsys, f.path)
	if err != nil {
		return File{}, err
	}
	if !info.Mode().IsRegular() {
		return File{}, &fs.PathError{Op: "open", Path: f.path, Err: fs.ErrInvalid}
	}
	return File{Name: info.Name(), Size: info.Size(), Source: fsSource{fsys: f.fsys, path: f.path}}, nil
}

type fsDir struct {
	fsys   fs.FS
	path   string
	batch  int
	info   fs.FileInfo // of the directory itself, following links
	parent *fsDir
}

// loops reports whether target is this directory or one of its parents.
func (d *fsDir) loops(target fs.FileInfo) bool {
	for a := d; a != nil; a = a.parent {
		if a.info != nil && os.SameFile(a.info, target) {
			return true
		}
	}
	return false
}

func (d *fsDir) Name() string { return path.Base(d.path) }

func (d *fsDir) Reader() DirReader {
	return &fsDirReader{dir: d}
}

// fsDirReader serves a directory listing in batches. The listing is sorted by
// name because operating systems report directory order arbitrarily.
type fsDirReader struct {
	dir    *fsDir
	loaded bool
	rest   []fs.DirEntry
}

func (r *fsDirReader) ReadEntries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.loaded {
		ents, err := fs.ReadDir(r.dir.fsys, r.dir.path)
		if err != nil {
			return nil, err
		}
		r.rest = ents
		r.loaded = true
	}
	n := r.dir.batch
	if n <= 0 || n > len(r.rest) {
		n = len(r.rest)
	}
	batch := r.rest[:n]
	r.rest = r.rest[n:]

	out := make([]Entry, 0, len(batch))
	for _, de := range batch {
		out = append(out, r.dir.child(de))
	}
	return out, nil
}

// child turns a listing entry into a collector entry. Symlinks are resolved
// so that a linked folder is walked like a real one; a link back into the
// current chain of folders is reported as unreadable instead.
func (d *fsDir) child(de fs.DirEntry) Entry {
	p := path.Join(d.path, de.Name())
	switch {
	case de.IsDir():
		info, _ := de.Info()
		return &fsDir{fsys: d.fsys, path: p, batch: d.batch, info: info, parent: d}
	case de.Type()&fs.ModeSymlink != 0:
		info, err := fs.Stat(d.fsys, p)
		if err != nil {
			return &fsFile{fsys: d.fsys, path: p, statErr: err}
		}
		if !info.IsDir() {
			return &fsFile{fsys: d.fsys, path: p}
		}
		if d.loops(info) {
			return &fsFile{fsys: d.fsys, path: p, statErr: fmt.Errorf("%w: %s", errLinkCycle, p)}
		}
		return &fsDir{fsys: d.fsys, path: p, batch: d.batch, info: info, parent: d}
	default:
		return &fsFile{fsys: d.fsys, path: p}
	}
}

type fsSource struct {
	fsys fs.FS
	path string
}

func (s fsSource) Open() (io.ReadCloser, error) { return s.fsys.Open(s.path) }
