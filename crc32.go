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

package compressor

import "sync"

const _CRC32_POLY = uint32(0xEDB88320)

var (
	_crc32Table     [256]uint32
	_crc32TableOnce sync.Once
)

func crc32Table() *[256]uint32 {
	_crc32TableOnce.Do(func() {
		for i := uint32(0); i < 256; i++ {
			crc := i

			for j := 0; j < 8; j++ {
				if crc&1 != 0 {
					crc = (crc >> 1) ^ _CRC32_POLY
				} else {
					crc >>= 1
				}
			}

			_crc32Table[i] = crc
		}
	})

	return &_crc32Table
}

// CRC32 computes an IEEE 802.3 CRC-32 incrementally. The zero value is
// ready to use via Reset.
type CRC32 struct {
	crc uint32
}

// NewCRC32 creates a CRC32 accumulator, already reset to its initial
// register value.
func NewCRC32() *CRC32 {
	this := &CRC32{}
	this.Reset()
	return this
}

// Reset restores the initial register value 0xFFFFFFFF.
func (this *CRC32) Reset() {
	this.crc = 0xFFFFFFFF
}

// Update consumes buf, byte at a time, LSB-first through the table.
func (this *CRC32) Update(buf []byte) {
	table := crc32Table()
	crc := this.crc

	for _, b := range buf {
		crc = table[byte(crc)^b] ^ (crc >> 8)
	}

	this.crc = crc
}

// Finalize returns the CRC-32 of everything consumed so far, XORed with
// the final mask, without mutating the accumulator.
func (this *CRC32) Finalize() uint32 {
	return this.crc ^ 0xFFFFFFFF
}

// CRC32Of is the one-shot convenience form: CRC32Of(buf) == a fresh
// CRC32, Update(buf), Finalize().
func CRC32Of(buf []byte) uint32 {
	c := NewCRC32()
	c.Update(buf)
	return c.Finalize()
}
