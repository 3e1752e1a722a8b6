// This file implements the ULEB128 codec used by the replay container's
// variable-length integers and strings.

package parser

import (
	"unicode/utf8"

	"github.com/Corsace/corsace-parser/osu"
)

const (
	leb128HighOrderBit = 1 << 7
)

// ULEB128 decodes an unsigned 64-bit integer by consuming bytes until one
// with the high bit clear. ErrLEB128Overflow is returned if a 10th
// continuation byte arrives with value > 1 (i.e. it would shift bits past
// bit 63). ErrBufferOverflow is returned on premature EOF.
func (r *Reader) ULEB128() (uint64, error) {
	var result uint64
	var shift uint

	for {
		b, err := r.U8()
		if err != nil {
			return 0, osu.ErrBufferOverflow
		}

		if shift == 63 && b > 1 {
			return 0, osu.ErrLEB128Overflow
		}

		result |= uint64(b&^leb128HighOrderBit) << shift

		if b&leb128HighOrderBit == 0 {
			return result, nil
		}

		shift += 7
	}
}

// ULEB128String reads a one-byte tag followed by the tag-dependent
// payload:
//
//	0x00 -> empty string, no payload.
//	0x0B -> a ULEB128 length L, then L bytes decoded as UTF-8 (L == 0 is
//	        the empty string with no further bytes).
//	other -> ULEBStringError.
func (r *Reader) ULEB128String() (string, error) {
	tag, err := r.U8()
	if err != nil {
		return "", err
	}

	switch tag {
	case 0x00:
		return "", nil
	case 0x0B:
		length, err := r.ULEB128()
		if err != nil {
			return "", err
		}
		if length == 0 {
			return "", nil
		}
		buf, err := r.ReadExact(int(length))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(buf) {
			return "", &utf8Error{}
		}
		return string(buf), nil
	default:
		return "", &osu.ULEBStringError{Tag: tag}
	}
}

// utf8Error reports that a byte run failed to decode as UTF-8.
type utf8Error struct{}

func (e *utf8Error) Error() string {
	return "parser: invalid utf-8"
}
