/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package selection keeps the images picked for export in insertion order.
package selection

import (
	"sort"
	"sync"

	"pagefit/internal/collect"
	"pagefit/internal/domain"
)

// Selection is the caller-owned list of images awaiting export.
// Ordinals grow monotonically and are never reused, so removing an image
// leaves the relative order of the others untouched.
// It is safe for concurrent use.
type Selection struct {
	mu    sync.Mutex
	items []domain.ImageAsset
	next  int
}

// New returns an empty selection.
func New() *Selection { return &Selection{} }

// Add appends collected files after anything already selected and returns
// the new assets with their ordinals.
func (s *Selection) Add(files ...collect.File) []domain.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := make([]domain.ImageAsset, 0, len(files))
	for _, f := range files {
		a := domain.ImageAsset{Ordinal: s.next, Name: f.Name, Source: f.Source}
		s.next++
		s.items = append(s.items, a)
		added = append(added, a)
	}
	return added
}

// Remove drops the asset with the given ordinal. It reports whether it was present.
func (s *Selection) Remove(ordinal int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.items {
		if a.Ordinal == ordinal {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of selected images.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns a copy of the selection ordered by ordinal. Later changes to
// the selection do not affect the copy.
func (s *Selection) Snapshot() []domain.ImageAsset {
	s.mu.Lock()
	out := append([]domain.ImageAsset(nil), s.items...)
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

// Reset clears the selection and restarts ordinals at zero.
func (s *Selection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.next = 0
}
