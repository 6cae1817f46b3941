// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package folding implements text transformers used when decoding legacy
// table data.
package folding

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// ASCII is a [transform.Transformer] that performs lossy ASCII decoding. Bytes
// outside of the 7-bit ASCII range are dropped rather than reported as errors.
type ASCII struct {
	transform.NopResetter

	// DropNUL drops NUL bytes in addition to non-ASCII bytes.
	DropNUL bool
}

// Transform implements [transform.Transformer.Transform].
func (a ASCII) Transform(dst, src []byte, _ bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c := src[nSrc]
		if c >= utf8.RuneSelf || (a.DropNUL && c == 0) {
			nSrc++
			continue
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}

	return nDst, nSrc, nil
}
