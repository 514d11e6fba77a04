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

// Package compressor defines the top level types and interfaces shared by
// every codec implementation in this module.
//
// The codecs themselves live in sub-packages (rle, huffman, lz77, hybrid).
// This package holds the contract they all satisfy (Codec), the envelope
// they all fill in (Stats, Result), the config they all accept, and the
// CRC-32 and registry plumbing used to glue them together.
package compressor

// Config holds the options the core recognizes. Unrecognized options have
// no effect; no option changes the on-the-wire format of any codec.
type Config struct {
	// BlockSize is a block size hint. No codec in this module reads it; the
	// hybrid codec sizes its blocks from the input length alone.
	BlockSize int

	// NumThreads is informational. No codec reads it or parallelizes its
	// work, and Stats.ThreadsUsed is always 1 rather than this value.
	NumThreads int

	// VerifyIntegrity, when true, records the CRC-32 of the uncompressed
	// data in Stats on both the compress and decompress legs.
	VerifyIntegrity bool

	// Verbose, when true, causes codecs to emit progress Events to Listener
	// (if non-nil).
	Verbose bool

	// Listener receives progress Events when Verbose is true. May be nil.
	Listener Listener
}

// DefaultConfig returns a Config with the defaults described in the codec
// contract: a 64 KiB block size hint, one thread, integrity verification
// enabled and no progress reporting.
func DefaultConfig() Config {
	return Config{
		BlockSize:       64 * 1024,
		NumThreads:      1,
		VerifyIntegrity: true,
		Verbose:         false,
	}
}

// Stats is the read-only envelope of measurements produced by a single
// Compress or Decompress call. Fields not relevant to the direction of the
// call (e.g. DecompressionTimeMs on a Compress result) are left zero.
type Stats struct {
	OriginalSize       int
	CompressedSize     int
	CompressionTimeMs  float64
	DecompressionTimeMs float64
	Checksum           uint32
	ThreadsUsed        int
}

// Ratio returns CompressedSize/OriginalSize. It is undefined (returns 0)
// when OriginalSize is zero.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// Result is the outcome of a Compress or Decompress call. A nil Err means
// success; Data is then owned by the caller. A non-nil Err means Data is
// nil and Stats is the zero value.
type Result struct {
	Data  []byte
	Stats Stats
	Err   error
}

// Ok reports whether the operation succeeded.
func (r Result) Ok() bool {
	return r.Err == nil
}

// AlgorithmInfo is the static metadata a codec reports about itself.
type AlgorithmInfo struct {
	Name            string
	Description     string
	SupportsParallel bool
	MinBlockSize    int
}

// Codec is the contract every compression algorithm in this module
// satisfies. A Codec instance may be reused across sequential calls but
// must not be shared across concurrent calls (codecs that maintain
// scratch buffers, such as lz77's hash chains, are not safe for concurrent
// reuse).
type Codec interface {
	// Info returns static metadata about this codec.
	Info() AlgorithmInfo

	// Compress compresses src and returns the framed, self-describing
	// output. Returns Err(EmptyInput) if src is empty.
	Compress(src []byte, cfg Config) Result

	// Decompress reverses Compress. Returns Err(EmptyInput) if src is
	// empty, Err(BadMagic) if src was not produced by this codec. The rle
	// codec is the exception: its simple framing has no magic byte, so
	// foreign input that does not start with 0xE1 is decoded as simple
	// framing rather than rejected.
	Decompress(src []byte, cfg Config) Result

	// EstimateRatio returns a cheap, approximate compressed/original size
	// ratio without performing a full compression pass.
	EstimateRatio(src []byte) float64

	// OptimalBlockSize returns this codec's preferred block size for an
	// input of the given size. Advisory only.
	OptimalBlockSize(n int) int
}
