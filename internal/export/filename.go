/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"time"

	"pagefit/internal/domain"
)

// SuggestedFilename names an export after its paper size and the export time,
// e.g. images_A4_1700000000000.pdf.
func SuggestedFilename(code domain.PaperCode, t time.Time) string {
	return fmt.Sprintf("images_%s_%d.pdf", code, t.UnixMilli())
}
