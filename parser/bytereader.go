// This file contains Reader, a cursor over an in-memory byte slice used
// throughout the replay decoder.
//
// Grounded on repparser/slicereader.go's sliceReader, generalized to
// return an error on a short read instead of panicking on an
// out-of-range slice index, and extended with the float32/float64 reads
// the osu! wire format needs that SC:BW's never did.

package parser

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader is a little-endian cursor over a byte slice.
type Reader struct {
	b   []byte
	pos int
}

// NewReader creates a Reader positioned at the start of b. b is not
// copied; the caller must not mutate it while the Reader is in use.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Rewind resets the cursor to the start of the buffer, for the "consume
// the same buffer twice" need of hashing a beatmap's raw bytes and then
// parsing it.
func (r *Reader) Rewind() {
	r.pos = 0
}

// Pos returns the current read offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.b) - r.pos
}

func (r *Reader) need(n int) error {
	if r.Len() < n {
		return fmt.Errorf("parser: %w: need %d bytes, have %d", io.ErrUnexpectedEOF, n, r.Len())
	}
	return nil
}

// ReadExact returns the next n bytes as a freshly allocated slice.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.b[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v, nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v, nil
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.b[r.pos:])
	r.pos += 8
	return v, nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// F32 reads a little-endian IEEE-754 float32.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// F64 reads a little-endian IEEE-754 float64.
func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
