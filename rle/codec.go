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

// Package rle implements run-length encoding with two framings chosen by
// the input's Shannon entropy: a header-less simple framing for
// high-entropy data and a magic-prefixed enhanced framing for low-entropy
// data, where short runs are cheaper to absorb into literal groups than to
// escape individually.
package rle

import (
	"math"
	"time"

	compressor "github.com/joaogasparp/compressor-system"
)

func init() {
	compressor.Register("rle", func() compressor.Codec { return New() })
}

const (
	_ESCAPE      = 0xFF
	_ENHANCED    = 0xE1
	_ENTROPY_CUT = 0.5

	// _MIN_ENTROPY_SAMPLE is the smallest input the entropy-based framing
	// choice trusts. A handful of bytes produces an entropy estimate with no
	// statistical weight behind it (any five-byte input scores at most
	// log2(5)/8 ~ 0.29, below the 0.5 cut, however varied its bytes), and
	// the per-run escape overhead of simple framing is already negligible at this size, so
	// below this threshold simple framing is used unconditionally.
	_MIN_ENTROPY_SAMPLE = 1024
)

// Codec implements compressor.Codec with the dual simple/enhanced RLE
// framing described in the codec contract.
type Codec struct{}

// New creates a ready-to-use RLE codec.
func New() *Codec {
	return &Codec{}
}

// Info returns static metadata about this codec.
func (this *Codec) Info() compressor.AlgorithmInfo {
	return compressor.AlgorithmInfo{
		Name:             "rle",
		Description:      "Run-length encoding: efficient for data with many consecutive identical bytes",
		SupportsParallel: false,
		MinBlockSize:     1024,
	}
}

// Compress picks the enhanced framing when the input is large enough for
// its normalized Shannon entropy to be meaningful and that entropy is below
// 0.5; the simple framing otherwise.
func (this *Codec) Compress(src []byte, cfg compressor.Config) compressor.Result {
	if len(src) == 0 {
		return compressor.Result{Err: compressor.NewError(compressor.EmptyInput, "rle: empty input")}
	}

	start := time.Now()
	compressor.Notify(cfg, compressor.EvtCompressionStart, "rle compress", int64(len(src)))

	var out []byte

	if len(src) >= _MIN_ENTROPY_SAMPLE && entropy(src) < _ENTROPY_CUT {
		out = encodeEnhanced(src)
	} else {
		out = encodeSimple(src)
	}

	stats := compressor.Stats{
		OriginalSize:      len(src),
		CompressedSize:    len(out),
		CompressionTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		ThreadsUsed:       1,
	}

	if cfg.VerifyIntegrity {
		stats.Checksum = compressor.CRC32Of(src)
	}

	compressor.Notify(cfg, compressor.EvtCompressionEnd, "rle compress", int64(len(out)))
	return compressor.Result{Data: out, Stats: stats}
}

// Decompress self-identifies the framing from the leading byte: 0xE1 means
// enhanced, anything else means simple.
func (this *Codec) Decompress(src []byte, cfg compressor.Config) compressor.Result {
	if len(src) == 0 {
		return compressor.Result{Err: compressor.NewError(compressor.EmptyInput, "rle: empty input")}
	}

	start := time.Now()
	compressor.Notify(cfg, compressor.EvtDecompressionStart, "rle decompress", int64(len(src)))

	var out []byte
	var err error

	if src[0] == _ENHANCED {
		out, err = decodeEnhanced(src)
	} else {
		out, err = decodeSimple(src)
	}

	if err != nil {
		return compressor.Result{Err: err}
	}

	stats := compressor.Stats{
		OriginalSize:        len(out),
		CompressedSize:      len(src),
		DecompressionTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		ThreadsUsed:         1,
	}

	if cfg.VerifyIntegrity {
		stats.Checksum = compressor.CRC32Of(out)
	}

	compressor.Notify(cfg, compressor.EvtDecompressionEnd, "rle decompress", int64(len(out)))
	return compressor.Result{Data: out, Stats: stats}
}

// EstimateRatio returns min(1, 2.5*runs/n) where runs counts maximal
// equal-byte runs.
func (this *Codec) EstimateRatio(src []byte) float64 {
	if len(src) == 0 {
		return 1.0
	}

	runs := 1

	for i := 1; i < len(src); i++ {
		if src[i] != src[i-1] {
			runs++
		}
	}

	ratio := 2.5 * float64(runs) / float64(len(src))

	if ratio > 1 {
		return 1
	}

	return ratio
}

// OptimalBlockSize reports this codec's preferred minimum block size.
func (this *Codec) OptimalBlockSize(n int) int {
	if n < 1024 {
		return n
	}

	return 1024
}

// entropy computes normalized Shannon entropy over byte frequencies,
// scaled into [0, 1] by dividing by 8 (the max bits per symbol).
func entropy(src []byte) float64 {
	var freq [256]int

	for _, b := range src {
		freq[b]++
	}

	n := float64(len(src))
	h := 0.0

	for _, f := range freq {
		if f == 0 {
			continue
		}

		p := float64(f) / n
		h -= p * math.Log2(p)
	}

	return h / 8.0
}

func encodeSimple(src []byte) []byte {
	out := make([]byte, 0, len(src))

	for i := 0; i < len(src); {
		b := src[i]
		run := 1

		for i+run < len(src) && src[i+run] == b && run < 255 {
			run++
		}

		// A literal 0xE1 at the very start would read as the enhanced
		// magic, so it is written as an escaped run even when shorter than 3.
		if run >= 3 || (i == 0 && b == _ENHANCED) {
			out = append(out, _ESCAPE, byte(run), b)
		} else {
			for j := 0; j < run; j++ {
				if b == _ESCAPE {
					out = append(out, _ESCAPE, 0x00)
				} else {
					out = append(out, b)
				}
			}
		}

		i += run
	}

	return out
}

func decodeSimple(src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src)*2)

	for i := 0; i < len(src); {
		if src[i] == _ESCAPE {
			if i+1 >= len(src) {
				return nil, compressor.NewError(compressor.CorruptStream, "rle: truncated escape sequence")
			}

			if src[i+1] == 0x00 {
				out = append(out, _ESCAPE)
				i += 2
				continue
			}

			if i+2 >= len(src) {
				return nil, compressor.NewError(compressor.CorruptStream, "rle: truncated run sequence")
			}

			run := src[i+1]
			value := src[i+2]

			for j := byte(0); j < run; j++ {
				out = append(out, value)
			}

			i += 3
			continue
		}

		out = append(out, src[i])
		i++
	}

	return out, nil
}

func encodeEnhanced(src []byte) []byte {
	out := make([]byte, 0, len(src)+1)
	out = append(out, _ENHANCED)

	for i := 0; i < len(src); {
		b := src[i]
		run := 1

		for i+run < len(src) && src[i+run] == b && run < 127 {
			run++
		}

		if run >= 4 {
			out = append(out, 0x80|byte(run), b)
			i += run
			continue
		}

		// Look ahead for a literal run, stopping as soon as a 4-byte (or
		// longer) run is about to start.
		litStart := i
		litLen := 0
		j := i

		for j < len(src) && litLen < 127 {
			nextRun := 1

			for j+nextRun < len(src) && src[j+nextRun] == src[j] && nextRun < 4 {
				nextRun++
			}

			if nextRun >= 4 || litLen+nextRun > 127 {
				break
			}

			litLen += nextRun
			j += nextRun
		}

		out = append(out, byte(litLen))
		out = append(out, src[litStart:litStart+litLen]...)
		i += litLen
	}

	return out
}

func decodeEnhanced(src []byte) ([]byte, error) {
	if len(src) == 0 || src[0] != _ENHANCED {
		return nil, compressor.NewError(compressor.BadMagic, "rle: missing enhanced magic byte")
	}

	out := make([]byte, 0, len(src)*3)

	for i := 1; i < len(src); {
		control := src[i]
		i++

		if control&0x80 != 0 {
			runLen := control & 0x7F

			if i >= len(src) {
				return nil, compressor.NewError(compressor.CorruptStream, "rle: missing run value byte")
			}

			value := src[i]
			i++

			for j := byte(0); j < runLen; j++ {
				out = append(out, value)
			}

			continue
		}

		litLen := int(control)

		if i+litLen > len(src) {
			return nil, compressor.NewError(compressor.TruncatedFrame, "rle: literal group of length %d overruns frame", litLen)
		}

		out = append(out, src[i:i+litLen]...)
		i += litLen
	}

	return out, nil
}
