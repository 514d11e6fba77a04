/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package compressor_test

import (
	"testing"

	compressor "github.com/joaogasparp/compressor-system"
	"github.com/joaogasparp/compressor-system/hybrid"
	"github.com/joaogasparp/compressor-system/huffman"
	"github.com/joaogasparp/compressor-system/lz77"
	"github.com/joaogasparp/compressor-system/rle"
)

// TestCrossCodecMagicIsolation feeds each codec's own compressed output into
// every other codec's Decompress and expects BadMagic rather than a silent
// misread. rle is excluded as a decoder target: its header-less simple
// framing has no magic byte by design (required by S1/S2), a known gap
// documented in DESIGN.md and exercised directly in
// rle/codec_test.go's TestSimpleFramingMisidentifiesAHuffmanFrameInsteadOfRejectingIt.
func TestCrossCodecMagicIsolation(t *testing.T) {
	codecs := map[string]compressor.Codec{
		"rle":     rle.New(),
		"huffman": huffman.New(),
		"lz77":    lz77.New(),
		"hybrid":  hybrid.New(),
	}

	data := []byte("the quick brown fox jumps over the lazy dog, repeated for body")
	cfg := compressor.DefaultConfig()

	frames := make(map[string][]byte, len(codecs))

	for name, c := range codecs {
		res := c.Compress(data, cfg)
		if !res.Ok() {
			t.Fatalf("%s: Compress failed: %v", name, res.Err)
		}

		frames[name] = res.Data
	}

	for srcName, frame := range frames {
		for dstName, dst := range codecs {
			if srcName == dstName || dstName == "rle" {
				continue
			}

			res := dst.Decompress(frame, cfg)
			if res.Ok() {
				t.Fatalf("%s frame fed into %s.Decompress unexpectedly succeeded", srcName, dstName)
			}

			ce, ok := res.Err.(*compressor.CodecError)
			if !ok || ce.Kind != compressor.BadMagic {
				t.Fatalf("%s frame fed into %s.Decompress: got %v, want BadMagic", srcName, dstName, res.Err)
			}
		}
	}
}
