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

// Package huffman implements a tree-based Huffman codec: the tree itself
// travels with the frame (pre-order serialized), so the decoder never
// needs a side channel beyond the frame bytes.
package huffman

import (
	"container/heap"
	"encoding/binary"
	"math"
	"time"

	compressor "github.com/joaogasparp/compressor-system"
	"github.com/joaogasparp/compressor-system/bitio"
)

func init() {
	compressor.Register("huffman", func() compressor.Codec { return New() })
}

const (
	_TAG_SINGLE = 0x01
	_TAG_NORMAL = 0x02

	_NODE_INTERNAL = 0
	_NODE_LEAF     = 1
)

// node is either a leaf (holding one byte value) or an internal node with
// exactly two children. frequency is scratch state used only while
// building the tree; it is never serialized.
type node struct {
	value       byte
	frequency   int
	left, right *node
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// code is a depth-first assigned (bits, length) pair, length in [1, 32].
type code struct {
	bits   uint32
	length uint
}

// Codec implements compressor.Codec with the frame format described in the
// codec contract: a dedicated six-byte frame for single-symbol input, and a
// tagged, self-describing tree-plus-bit-body frame otherwise.
type Codec struct{}

// New creates a ready-to-use Huffman codec.
func New() *Codec {
	return &Codec{}
}

// Info returns static metadata about this codec.
func (this *Codec) Info() compressor.AlgorithmInfo {
	return compressor.AlgorithmInfo{
		Name:             "huffman",
		Description:      "Huffman coding: optimal prefix coding for symbol compression",
		SupportsParallel: false,
		MinBlockSize:     4096,
	}
}

// Compress builds a frequency table, a Huffman tree, and emits either the
// degenerate single-symbol frame or the normal tree-plus-body frame.
func (this *Codec) Compress(src []byte, cfg compressor.Config) compressor.Result {
	if len(src) == 0 {
		return compressor.Result{Err: compressor.NewError(compressor.EmptyInput, "huffman: empty input")}
	}

	start := time.Now()
	compressor.Notify(cfg, compressor.EvtCompressionStart, "huffman compress", int64(len(src)))

	var freq [256]int
	for _, b := range src {
		freq[b]++
	}

	distinct := 0
	var only byte

	for v, f := range freq {
		if f > 0 {
			distinct++
			only = byte(v)
		}
	}

	var out []byte

	if distinct == 1 {
		out = encodeSingleSymbol(only, len(src))
	} else {
		root := buildTree(freq[:])
		codes := make([]code, 256)
		assignCodes(root, 0, 0, codes)

		for _, c := range codes {
			if c.length > 32 {
				return compressor.Result{Err: compressor.NewError(compressor.HuffmanOverflow, "huffman: code length %d exceeds 32 bits", c.length)}
			}
		}

		out = encodeNormal(root, codes, src)
	}

	stats := compressor.Stats{
		OriginalSize:       len(src),
		CompressedSize:     len(out),
		CompressionTimeMs:  float64(time.Since(start).Microseconds()) / 1000.0,
		ThreadsUsed:        1,
	}

	if cfg.VerifyIntegrity {
		stats.Checksum = compressor.CRC32Of(src)
	}

	compressor.Notify(cfg, compressor.EvtCompressionEnd, "huffman compress", int64(len(out)))
	return compressor.Result{Data: out, Stats: stats}
}

// Decompress reverses Compress, dispatching on the leading tag byte.
func (this *Codec) Decompress(src []byte, cfg compressor.Config) compressor.Result {
	if len(src) == 0 {
		return compressor.Result{Err: compressor.NewError(compressor.EmptyInput, "huffman: empty input")}
	}

	start := time.Now()
	compressor.Notify(cfg, compressor.EvtDecompressionStart, "huffman decompress", int64(len(src)))

	var out []byte
	var err error

	switch src[0] {
	case _TAG_SINGLE:
		out, err = decodeSingleSymbol(src)
	case _TAG_NORMAL:
		out, err = decodeNormal(src)
	default:
		return compressor.Result{Err: compressor.NewError(compressor.BadMagic, "huffman: unrecognized tag byte 0x%02X", src[0])}
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

	compressor.Notify(cfg, compressor.EvtDecompressionEnd, "huffman decompress", int64(len(out)))
	return compressor.Result{Data: out, Stats: stats}
}

// EstimateRatio returns (H*n*8 + 9*|alphabet|) / (8*n), clamped to [0, 1].
func (this *Codec) EstimateRatio(src []byte) float64 {
	if len(src) == 0 {
		return 1.0
	}

	var freq [256]int
	for _, b := range src {
		freq[b]++
	}

	n := float64(len(src))
	entropy := 0.0
	alphabet := 0

	for _, f := range freq {
		if f == 0 {
			continue
		}

		alphabet++
		p := float64(f) / n
		entropy -= p * math.Log2(p)
	}

	ratio := (entropy*n + 9*float64(alphabet)) / (8 * n)

	if ratio < 0 {
		return 0
	}

	if ratio > 1 {
		return 1
	}

	return ratio
}

// OptimalBlockSize reports this codec's minimum useful block size; below
// it frequency analysis has too little signal to beat raw storage.
func (this *Codec) OptimalBlockSize(n int) int {
	if n < 4096 {
		return n
	}

	return 4096
}

func encodeSingleSymbol(value byte, count int) []byte {
	out := make([]byte, 6)
	out[0] = _TAG_SINGLE
	out[1] = value
	binary.BigEndian.PutUint32(out[2:6], uint32(count))
	return out
}

func decodeSingleSymbol(src []byte) ([]byte, error) {
	if len(src) < 6 {
		return nil, compressor.NewError(compressor.TruncatedFrame, "huffman: single-symbol frame too short (%d bytes)", len(src))
	}

	value := src[1]
	count := binary.BigEndian.Uint32(src[2:6])
	out := make([]byte, count)

	for i := range out {
		out[i] = value
	}

	return out, nil
}

func encodeNormal(root *node, codes []code, src []byte) []byte {
	tree := serializeTree(root)

	w := bitio.NewWriter(len(src))

	for _, b := range src {
		c := codes[b]
		w.WriteBits(uint64(c.bits), c.length)
	}

	body := w.Bytes()

	out := make([]byte, 0, 1+2+len(tree)+4+len(body))
	out = append(out, _TAG_NORMAL)

	var sizeBuf [2]byte
	binary.BigEndian.PutUint16(sizeBuf[:], uint16(len(tree)))
	out = append(out, sizeBuf[:]...)
	out = append(out, tree...)

	var origBuf [4]byte
	binary.BigEndian.PutUint32(origBuf[:], uint32(len(src)))
	out = append(out, origBuf[:]...)
	out = append(out, body...)

	return out
}

func decodeNormal(src []byte) (out []byte, err error) {
	if len(src) < 7 {
		return nil, compressor.NewError(compressor.TruncatedFrame, "huffman: normal frame header too short (%d bytes)", len(src))
	}

	treeSize := int(binary.BigEndian.Uint16(src[1:3]))

	if 3+treeSize+4 > len(src) {
		return nil, compressor.NewError(compressor.TruncatedFrame, "huffman: tree size %d overruns frame", treeSize)
	}

	pos := 3
	root, newPos, derr := deserializeTree(src, pos)
	if derr != nil {
		return nil, derr
	}

	if newPos != 3+treeSize {
		return nil, compressor.NewError(compressor.CorruptStream, "huffman: tree size field disagrees with serialized tree")
	}

	originalSize := int(binary.BigEndian.Uint32(src[newPos : newPos+4]))
	body := src[newPos+4:]

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = compressor.NewError(compressor.UnexpectedEndOfStream, "huffman: bit stream exhausted before %d symbols decoded", originalSize)
		}
	}()

	r := bitio.NewReader(body)
	decoded := make([]byte, originalSize)

	for i := 0; i < originalSize; i++ {
		cur := root

		for !cur.isLeaf() {
			bit := r.ReadBit()

			if bit == 0 {
				cur = cur.left
			} else {
				cur = cur.right
			}

			if cur == nil {
				return nil, compressor.NewError(compressor.CorruptStream, "huffman: tree walk hit a null child")
			}
		}

		decoded[i] = cur.value
	}

	return decoded, nil
}

// nodeHeap is a min-heap over (frequency, is_leaf?): equal frequencies sort
// leaves before internal nodes so canonical-ish codes favor shallow leaves.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].frequency != h[j].frequency {
		return h[i].frequency < h[j].frequency
	}

	return h[i].isLeaf() && !h[j].isLeaf()
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(*node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// buildTree pops the two smallest nodes repeatedly, combining them into an
// internal node whose frequency is the sum, until one node remains. The
// first pop becomes the right child, the second the left child.
func buildTree(freq []int) *node {
	h := make(nodeHeap, 0, 256)

	for v, f := range freq {
		if f > 0 {
			h = append(h, &node{value: byte(v), frequency: f})
		}
	}

	heap.Init(&h)

	for h.Len() > 1 {
		right := heap.Pop(&h).(*node)
		left := heap.Pop(&h).(*node)
		heap.Push(&h, &node{frequency: left.frequency + right.frequency, left: left, right: right})
	}

	return h[0]
}

// assignCodes walks depth-first, appending 0 on a left move and 1 on a
// right move. A lone root (single leaf after buildTree, only possible when
// the caller mistakenly calls this with one symbol) gets code "0".
func assignCodes(n *node, bits uint32, length uint, codes []code) {
	if n.isLeaf() {
		l := length
		if l == 0 {
			l = 1
		}

		codes[n.value] = code{bits: bits, length: l}
		return
	}

	assignCodes(n.left, bits<<1, length+1, codes)
	assignCodes(n.right, (bits<<1)|1, length+1, codes)
}

func serializeTree(n *node) []byte {
	if n.isLeaf() {
		return []byte{_NODE_LEAF, n.value}
	}

	out := []byte{_NODE_INTERNAL}
	out = append(out, serializeTree(n.left)...)
	out = append(out, serializeTree(n.right)...)
	return out
}

func deserializeTree(data []byte, pos int) (*node, int, error) {
	if pos >= len(data) {
		return nil, pos, compressor.NewError(compressor.CorruptStream, "huffman: corrupted tree data")
	}

	marker := data[pos]
	pos++

	if marker == _NODE_LEAF {
		if pos >= len(data) {
			return nil, pos, compressor.NewError(compressor.CorruptStream, "huffman: corrupted leaf node data")
		}

		value := data[pos]
		pos++
		return &node{value: value}, pos, nil
	}

	left, pos, err := deserializeTree(data, pos)
	if err != nil {
		return nil, pos, err
	}

	right, pos, err := deserializeTree(data, pos)
	if err != nil {
		return nil, pos, err
	}

	return &node{left: left, right: right}, pos, nil
}
