/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package selection

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pagefit/internal/collect"
)

func files(names ...string) []collect.File {
	out := make([]collect.File, len(names))
	for i, n := range names {
		out[i] = collect.File{Name: n}
	}
	return out
}

func ordinals(s *Selection) []int {
	var out []int
	for _, a := range s.Snapshot() {
		out = append(out, a.Ordinal)
	}
	return out
}

func TestAddAppendsAfterPendingSelection(t *testing.T) {
	s := New()
	first := s.Add(files("a.png", "b.png")...)
	second := s.Add(files("c.png")...)
	if first[0].Ordinal != 0 || first[1].Ordinal != 1 || second[0].Ordinal != 2 {
		t.Fatalf("unexpected ordinals: %+v %+v", first, second)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
}

func TestRemoveDoesNotRenumber(t *testing.T) {
	s := New()
	s.Add(files("a", "b", "c", "d")...)
	if !s.Remove(1) {
		t.Fatalf("Remove(1) reported missing")
	}
	if s.Remove(1) {
		t.Fatalf("second Remove(1) should report missing")
	}
	added := s.Add(files("e")...)
	if added[0].Ordinal != 4 {
		t.Fatalf("ordinal reused after removal: %d", added[0].Ordinal)
	}
	if diff := cmp.Diff([]int{0, 2, 3, 4}, ordinals(s)); diff != "" {
		t.Fatalf("ordinals (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New()
	s.Add(files("a", "b")...)
	snap := s.Snapshot()
	s.Remove(0)
	s.Add(files("c")...)
	if len(snap) != 2 || snap[0].Name != "a" || snap[1].Name != "b" {
		t.Fatalf("snapshot changed: %+v", snap)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Add(files("a", "b")...)
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Reset left %d items", s.Len())
	}
	if got := s.Add(files("x")...)[0].Ordinal; got != 0 {
		t.Fatalf("ordinals should restart at 0 after Reset, got %d", got)
	}
}

func TestConcurrentAddKeepsOrdinalsUnique(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Add(files("x.png")...)
			}
		}()
	}
	wg.Wait()
	got := ordinals(s)
	if len(got) != 400 {
		t.Fatalf("len = %d, want 400", len(got))
	}
	for i, o := range got {
		if o != i {
			t.Fatalf("ordinal %d at index %d; ordinals must be unique and dense", o, i)
		}
	}
}
