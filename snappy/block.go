// Package snappy writes an LZ77 parse in the snappy block and framing
// formats.
package snappy

import "github.com/rgbpack/pack"

// A BlockEncoder implements the pack.Encoder interface, writing a single
// block in the raw snappy format. The whole input must be passed in one
// call.
type BlockEncoder struct{}

func (BlockEncoder) Reset() {}

func (BlockEncoder) Encode(dst []byte, src []byte, matches []pack.Match, lastBlock bool) []byte {
	return appendBlock(dst, src, matches)
}

// appendBlock appends src to dst in the raw snappy format. Matches that
// reach back before the start of src are written as literals.
func appendBlock(dst []byte, src []byte, matches []pack.Match) []byte {
	dst = appendUvarint(dst, uint64(len(src)))

	pos := 0
	nextEmit := 0
	for _, m := range matches {
		pos += m.Unmatched
		if m.Length == 0 {
			continue
		}
		if m.Distance <= 0 || m.Distance > pos {
			pos += m.Length
			continue
		}
		if nextEmit < pos {
			dst = appendLiteral(dst, src[nextEmit:pos])
		}
		dst = appendCopy(dst, m.Length, m.Distance)
		pos += m.Length
		nextEmit = pos
	}
	if nextEmit < len(src) {
		dst = appendLiteral(dst, src[nextEmit:])
	}
	return dst
}

const (
	tagLiteral = 0x00
	tagCopy1   = 0x01
	tagCopy2   = 0x02
	tagCopy4   = 0x03
)

func appendLiteral(dst, lit []byte) []byte {
	n := len(lit) - 1
	switch {
	case n < 60:
		dst = append(dst, byte(n)<<2|tagLiteral)
	case n < 1<<8:
		dst = append(dst, 60<<2|tagLiteral, byte(n))
	case n < 1<<16:
		dst = append(dst, 61<<2|tagLiteral, byte(n), byte(n>>8))
	case n < 1<<24:
		dst = append(dst, 62<<2|tagLiteral, byte(n), byte(n>>8), byte(n>>16))
	default:
		dst = append(dst, 63<<2|tagLiteral, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}
	return append(dst, lit...)
}

func appendCopy(dst []byte, length, offset int) []byte {
	if offset >= 1<<16 {
		// Only the 4-byte form can reach this far back.
		for length > 0 {
			l := length
			if l > 64 {
				l = 64
			}
			dst = append(dst,
				byte(l-1)<<2|tagCopy4,
				byte(offset),
				byte(offset>>8),
				byte(offset>>16),
				byte(offset>>24),
			)
			length -= l
		}
		return dst
	}

	// The maximum length for a single tagCopy1 or tagCopy2 op is 64 bytes. The
	// threshold for this loop is a little higher (at 68 = 64 + 4), and the
	// length emitted down below is a little lower (at 60 = 64 - 4), because
	// it's shorter to encode a length 67 copy as a length 60 tagCopy2 followed
	// by a length 7 tagCopy1 (which encodes as 3+2 bytes) than to encode it as
	// a length 64 tagCopy2 followed by a length 3 tagCopy2 (which encodes as
	// 3+3 bytes).
	for length >= 68 {
		// Emit a length 64 copy, encoded as 3 bytes.
		dst = append(dst,
			63<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
		length -= 64
	}
	if length > 64 {
		// Emit a length 60 copy, encoded as 3 bytes.
		dst = append(dst,
			59<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
		length -= 60
	}
	if length < 4 || length >= 12 || offset >= 2048 {
		// Emit the remaining copy, encoded as 3 bytes. tagCopy1 can't hold
		// lengths under 4, which the window encoder produces all the time.
		return append(dst,
			byte(length-1)<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
	}
	// Emit the remaining copy, encoded as 2 bytes.
	return append(dst,
		byte(offset>>8)<<5|byte(length-4)<<2|tagCopy1,
		byte(offset),
	)
}

// appendUvarint appends x to dst in varint format.
func appendUvarint(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}
