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

// Package lz77 implements a sliding-window dictionary codec: a 12-bit
// hash of each 3-byte prefix feeds a bounded hash chain, searched newest
// to oldest so ties favor the shortest (most recent) distance.
package lz77

import (
	"encoding/binary"
	"time"

	compressor "github.com/joaogasparp/compressor-system"
)

func init() {
	compressor.Register("lz77", func() compressor.Codec { return New() })
}

const (
	_WINDOW_SIZE    = 4096
	_LOOKAHEAD_SIZE = 18
	_MIN_MATCH      = 3
	_MAX_MATCH      = 255
	_HASH_BITS      = 12
	_HASH_SIZE      = 1 << _HASH_BITS
	_HASH_MASK      = _HASH_SIZE - 1
	_MAX_CHAIN      = 16

	_LITERAL = 0x00
	_MATCH   = 0x01
)

var _MAGIC = [4]byte{'L', 'Z', '7', '7'}

// token is either a literal byte or a back-reference plus the literal byte
// that immediately follows it (0 at end of input).
type token struct {
	isMatch  bool
	distance uint16
	length   uint8
	nextChar byte
}

// Codec implements compressor.Codec with the LZ77 hash-chain codec
// described in the codec contract.
type Codec struct{}

// New creates a ready-to-use LZ77 codec. The returned codec's hash chains
// are scratch state local to a single Compress call; a Codec value is safe
// to reuse sequentially but not concurrently.
func New() *Codec {
	return &Codec{}
}

// Info returns static metadata about this codec.
func (this *Codec) Info() compressor.AlgorithmInfo {
	return compressor.AlgorithmInfo{
		Name:             "lz77",
		Description:      "LZ77 dictionary compression: efficient for files with repeated patterns",
		SupportsParallel: false,
		MinBlockSize:     8192,
	}
}

// Compress greedily parses src into literal and back-reference tokens
// using a hash-chained sliding window, then frames them.
func (this *Codec) Compress(src []byte, cfg compressor.Config) compressor.Result {
	if len(src) == 0 {
		return compressor.Result{Err: compressor.NewError(compressor.EmptyInput, "lz77: empty input")}
	}

	start := time.Now()
	compressor.Notify(cfg, compressor.EvtCompressionStart, "lz77 compress", int64(len(src)))

	tokens := parse(src)
	out := encode(tokens)

	stats := compressor.Stats{
		OriginalSize:      len(src),
		CompressedSize:    len(out),
		CompressionTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		ThreadsUsed:       1,
	}

	if cfg.VerifyIntegrity {
		stats.Checksum = compressor.CRC32Of(src)
	}

	compressor.Notify(cfg, compressor.EvtCompressionEnd, "lz77 compress", int64(len(out)))
	return compressor.Result{Data: out, Stats: stats}
}

// Decompress reverses Compress, replaying literal and back-reference
// tokens to reconstruct the original bytes. Back-references are allowed
// to self-overlap (distance smaller than length).
func (this *Codec) Decompress(src []byte, cfg compressor.Config) (result compressor.Result) {
	if len(src) == 0 {
		return compressor.Result{Err: compressor.NewError(compressor.EmptyInput, "lz77: empty input")}
	}

	start := time.Now()
	compressor.Notify(cfg, compressor.EvtDecompressionStart, "lz77 decompress", int64(len(src)))

	defer func() {
		if r := recover(); r != nil {
			result = compressor.Result{Err: compressor.NewError(compressor.TruncatedFrame, "lz77: %v", r)}
		}
	}()

	out, err := decode(src)
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

	compressor.Notify(cfg, compressor.EvtDecompressionEnd, "lz77 decompress", int64(len(out)))
	return compressor.Result{Data: out, Stats: stats}
}

// EstimateRatio performs a cheap 3-byte-prefix scan over a short trailing
// window rather than a full parse.
func (this *Codec) EstimateRatio(src []byte) float64 {
	if len(src) == 0 {
		return 1.0
	}

	matches := 0

	for i := _MIN_MATCH; i < len(src)-2; i++ {
		windowStart := 0
		if i >= _WINDOW_SIZE {
			windowStart = i - _WINDOW_SIZE
		}

		for j := windowStart; j < i-_MIN_MATCH+1; j++ {
			if src[i] == src[j] && src[i+1] == src[j+1] && src[i+2] == src[j+2] {
				matches++
				break
			}
		}
	}

	ratio := 1.0 - 2.5*float64(matches)/float64(len(src))

	if ratio < 0.1 {
		return 0.1
	}

	return ratio
}

// OptimalBlockSize reports this codec's preferred minimum block size.
func (this *Codec) OptimalBlockSize(n int) int {
	if n < 8192 {
		return n
	}

	return 8192
}

// hashChains holds, per 12-bit hash bucket, the most recent _MAX_CHAIN
// positions whose 3-byte prefix hashed there, oldest first.
type hashChains [_HASH_SIZE][]int

func hash3(a, b, c byte) int {
	return ((int(a) << 16) | (int(b) << 8) | int(c)) & _HASH_MASK
}

func (h *hashChains) update(src []byte, pos int) {
	if pos+2 >= len(src) {
		return
	}

	idx := hash3(src[pos], src[pos+1], src[pos+2])
	chain := h[idx]
	chain = append(chain, pos)

	if len(chain) > _MAX_CHAIN {
		chain = chain[1:]
	}

	h[idx] = chain
}

// findMatch searches the chain for position newest to oldest, stopping
// once distance exceeds the window. Ties favor the shortest distance
// because the chain is walked from the end (most recent) first.
func (h *hashChains) findMatch(src []byte, pos int) (distance int, length int) {
	if pos+_MIN_MATCH > len(src) {
		return 0, 0
	}

	idx := hash3(src[pos], src[pos+1], src[pos+2])
	chain := h[idx]

	maxLen := _LOOKAHEAD_SIZE
	if len(src)-pos < maxLen {
		maxLen = len(src) - pos
	}

	bestLen := 0
	bestDist := 0

	for i := len(chain) - 1; i >= 0; i-- {
		cand := chain[i]

		if cand >= pos {
			continue
		}

		dist := pos - cand

		if dist > _WINDOW_SIZE {
			break
		}

		matchLen := 0

		for matchLen < maxLen && src[cand+matchLen] == src[pos+matchLen] {
			matchLen++
		}

		if matchLen > bestLen {
			bestLen = matchLen
			bestDist = dist
		}
	}

	if bestLen >= _MIN_MATCH {
		return bestDist, bestLen
	}

	return 0, 0
}

func parse(src []byte) []token {
	tokens := make([]token, 0, len(src)/4+1)
	var chains hashChains

	for i := 0; i < len(src); {
		if i >= 2 {
			chains.update(src, i-2)
		}

		dist, length := chains.findMatch(src, i)

		if length == 0 {
			tokens = append(tokens, token{nextChar: src[i]})
			i++
			continue
		}

		if length > _MAX_MATCH {
			length = _MAX_MATCH
		}

		var next byte

		if i+length < len(src) {
			next = src[i+length]
		}

		// A match followed by a real 0x00 as the very last input byte would
		// be the final token with next_literal 0, which decode reads as the
		// end-of-input placeholder. Shorten the match by one so that the
		// trailing 0x00 travels as its own literal token instead.
		if i+length+1 == len(src) && next == 0 {
			if length-1 < _MIN_MATCH {
				tokens = append(tokens, token{nextChar: src[i]})
				i++
				continue
			}

			length--
			next = src[i+length]
		}

		tokens = append(tokens, token{isMatch: true, distance: uint16(dist), length: uint8(length), nextChar: next})

		for j := 0; j < length && i+j+2 < len(src); j++ {
			chains.update(src, i+j)
		}

		i += length + 1
	}

	return tokens
}

func encode(tokens []token) []byte {
	out := make([]byte, 0, len(tokens)*4+8)
	out = append(out, _MAGIC[:]...)

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(tokens)))
	out = append(out, countBuf[:]...)

	for _, t := range tokens {
		if !t.isMatch {
			out = append(out, _LITERAL, t.nextChar)
			continue
		}

		var distBuf [2]byte
		binary.BigEndian.PutUint16(distBuf[:], t.distance)
		out = append(out, _MATCH, distBuf[0], distBuf[1], t.length, t.nextChar)
	}

	return out
}

func decode(src []byte) ([]byte, error) {
	if len(src) < 4 || src[0] != _MAGIC[0] || src[1] != _MAGIC[1] || src[2] != _MAGIC[2] || src[3] != _MAGIC[3] {
		return nil, compressor.NewError(compressor.BadMagic, "lz77: missing LZ77 signature")
	}

	if len(src) < 8 {
		return nil, compressor.NewError(compressor.TruncatedFrame, "lz77: frame shorter than header")
	}

	count := binary.BigEndian.Uint32(src[4:8])
	out := make([]byte, 0, len(src)*3)
	pos := 8

	for i := uint32(0); i < count; i++ {
		isLastToken := i == count-1
		if pos >= len(src) {
			return nil, compressor.NewError(compressor.TruncatedFrame, "lz77: token stream ends before declared count")
		}

		marker := src[pos]
		pos++

		if marker == _LITERAL {
			if pos >= len(src) {
				return nil, compressor.NewError(compressor.TruncatedFrame, "lz77: incomplete literal token")
			}

			out = append(out, src[pos])
			pos++
			continue
		}

		if marker != _MATCH {
			return nil, compressor.NewError(compressor.CorruptStream, "lz77: invalid token marker 0x%02X", marker)
		}

		if pos+4 > len(src) {
			return nil, compressor.NewError(compressor.TruncatedFrame, "lz77: incomplete match token")
		}

		distance := int(binary.BigEndian.Uint16(src[pos : pos+2]))
		length := int(src[pos+2])
		next := src[pos+3]
		pos += 4

		if distance == 0 || distance > len(out) {
			return nil, compressor.NewError(compressor.CorruptStream, "lz77: back-reference distance %d invalid for %d bytes produced so far", distance, len(out))
		}

		if length < _MIN_MATCH {
			return nil, compressor.NewError(compressor.CorruptStream, "lz77: back-reference length %d below minimum match", length)
		}

		start := len(out) - distance

		for j := 0; j < length; j++ {
			out = append(out, out[start+j])
		}

		// The encoder fills next_literal with a 0x00 placeholder only when
		// the match is the final token and consumed every remaining byte
		// (no real literal follows). Any other next_literal, including a
		// genuine trailing 0x00 byte, must be appended; only the
		// EOF-placeholder case on the last token is skipped.
		if !isLastToken || next != 0 {
			out = append(out, next)
		}
	}

	return out, nil
}
