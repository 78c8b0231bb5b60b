/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "errors"

var (
	// ErrInvalidGeometry means the page is too small for the margin.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidImage means an image has degenerate dimensions or cannot be decoded.
	ErrInvalidImage = errors.New("invalid image")
	// ErrTraversalRead marks a single entry that could not be read while collecting.
	// It is logged and skipped, never returned from a collection.
	ErrTraversalRead = errors.New("traversal read error")
	// ErrAssembly wraps any failure while building a document.
	ErrAssembly = errors.New("assembly failure")
	ErrNoImages = errors.New("no images selected")

	ErrUnknownPaper       = errors.New("unknown paper size")
	ErrUnknownOrientation = errors.New("unknown orientation")
)
