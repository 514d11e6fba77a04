package bitio

import "testing"

func TestWriteReadBitsRoundTrip(t *testing.T) {
	w := NewWriter(16)
	values := []struct {
		v uint64
		n uint
	}{
		{0x1, 1},
		{0x0, 1},
		{0x7F, 7},
		{0xDEAD, 16},
		{0x3, 2},
		{0xFFFFFFFF, 32},
	}

	for _, tc := range values {
		w.WriteBits(tc.v, tc.n)
	}

	buf := w.Bytes()
	r := NewReader(buf)

	for _, tc := range values {
		got := r.ReadBits(tc.n)
		want := tc.v & ((uint64(1) << tc.n) - 1)

		if tc.n == 64 {
			want = tc.v
		}

		if got != want {
			t.Fatalf("ReadBits(%d) = %#x, want %#x", tc.n, got, want)
		}
	}
}

func TestWriteBitReadBit(t *testing.T) {
	w := NewWriter(4)
	bits := []int{1, 0, 1, 1, 0, 0, 0, 1, 1, 1}

	for _, b := range bits {
		w.WriteBit(b)
	}

	r := NewReader(w.Bytes())

	for i, want := range bits {
		if got := r.ReadBit(); got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
}

func TestBytesDoesNotAppendPaddingWhenAlignedToByteBoundary(t *testing.T) {
	w := NewWriter(8)

	for i := 0; i < 8; i++ {
		w.WriteBits(0xAB, 8)
	}

	buf := w.Bytes()

	if len(buf) != 8 {
		t.Fatalf("expected exactly 8 bytes for 8 aligned byte-writes, got %d", len(buf))
	}
}

func TestBytesPadsPartialTrailingByte(t *testing.T) {
	w := NewWriter(4)
	w.WriteBits(0x5, 3) // 101

	buf := w.Bytes()

	if len(buf) != 1 {
		t.Fatalf("expected 1 padded byte, got %d", len(buf))
	}

	// 101 followed by 5 zero-padding bits => 0xA0
	if buf[0] != 0xA0 {
		t.Fatalf("got %#x, want %#x", buf[0], 0xA0)
	}
}

func TestHasMoreReflectsRemainingBits(t *testing.T) {
	w := NewWriter(4)
	w.WriteBits(0xA5, 8) // one full byte, no trailing padding bits
	r := NewReader(w.Bytes())

	if !r.HasMore() {
		t.Fatal("expected HasMore to be true before any bits are read")
	}

	for i := 0; i < 7; i++ {
		r.ReadBit()

		if !r.HasMore() {
			t.Fatalf("expected HasMore to be true with %d bit(s) still unread", 7-i)
		}
	}

	r.ReadBit()

	if r.HasMore() {
		t.Fatal("expected HasMore to be false once every written bit has been read")
	}
}

func TestHasMoreIsFalseForEmptyBuffer(t *testing.T) {
	r := NewReader(nil)

	if r.HasMore() {
		t.Fatal("expected HasMore to be false for an empty buffer")
	}
}

func TestReadPastEndPanics(t *testing.T) {
	r := NewReader([]byte{0xFF})
	r.ReadBits(8)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading past end of buffer")
		}
	}()

	r.ReadBit()
}

func TestWriteBitsZeroCountIsNoOp(t *testing.T) {
	w := NewWriter(4)
	w.WriteBits(0xFF, 8)
	before := w.BitsWritten()
	w.WriteBits(0x1, 0)

	if w.BitsWritten() != before {
		t.Fatalf("WriteBits with count=0 should not advance the bit count")
	}
}
