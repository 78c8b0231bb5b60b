/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package collect

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"pagefit/internal/domain"
)

// sniffLen is the number of bytes http.DetectContentType looks at.
const sniffLen = 512

// imageExtensions covers decodable formats missing from Go's built-in
// extension table, so detection does not depend on the host's mime.types.
var imageExtensions = map[string]string{
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

func init() {
	for ext, mt := range imageExtensions {
		if err := mime.AddExtensionType(ext, mt); err != nil {
			panic(err)
		}
	}
}

// IsImage reports whether a media type denotes an image.
func IsImage(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(mediaType), "image/")
}

// DetectMediaType guesses a media type from the file extension and falls back
// to sniffing the first bytes of src.
func DetectMediaType(name string, src domain.Source) (string, error) {
	if ext := path.Ext(name); ext != "" {
		if mt := mime.TypeByExtension(strings.ToLower(ext)); mt != "" {
			if base, _, err := mime.ParseMediaType(mt); err == nil {
				return base, nil
			}
			return mt, nil
		}
	}
	if src == nil {
		return "", nil
	}
	rc, err := src.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if isTIFF(buf[:n]) {
		return "image/tiff", nil
	}
	mt := http.DetectContentType(buf[:n])
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base, nil
	}
	return mt, nil
}

// isTIFF checks the little- and big-endian TIFF signatures, which
// http.DetectContentType does not know.
func isTIFF(b []byte) bool {
	return bytes.HasPrefix(b, []byte("II*\x00")) || bytes.HasPrefix(b, []byte("MM\x00*"))
}
