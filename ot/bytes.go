package ot

import (
	"encoding/binary"
	"errors"
)

// Reading and writing bytes of a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data.
// We use it throughout this module to navigate the font's binary data.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// --- Writing ---------------------------------------------------------------

// binaryWriter appends big-endian values to a growing buffer.
type binaryWriter struct {
	buf []byte
}

func newBinaryWriter(capacity int) *binaryWriter {
	return &binaryWriter{buf: make([]byte, 0, capacity)}
}

func (w *binaryWriter) Len() int {
	return len(w.buf)
}

func (w *binaryWriter) Bytes() []byte {
	return w.buf
}

func (w *binaryWriter) writeU16(n uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, n)
}

func (w *binaryWriter) writeU32(n uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, n)
}

func (w *binaryWriter) writeBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// pad4 appends zero bytes until the buffer length is a multiple of 4.
func (w *binaryWriter) pad4() {
	for len(w.buf)&3 != 0 {
		w.buf = append(w.buf, 0)
	}
}

// checksum calculates the OpenType table checksum of b: the sum of all
// big-endian uint32 words, with a trailing partial word zero-padded.
func checksum(b []byte) uint32 {
	var sum uint32
	n := len(b) &^ 3
	for i := 0; i < n; i += 4 {
		sum += u32(b[i:])
	}
	if rest := len(b) - n; rest > 0 {
		var last [4]byte
		copy(last[:], b[n:])
		sum += u32(last[:])
	}
	return sum
}
