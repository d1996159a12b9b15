package lz4

import (
	"encoding/binary"
	"hash"

	"github.com/pierrec/xxHash/xxHash32"
	"github.com/rgbpack/pack"
)

// maxBlockSize matches the 4 MiB block size announced in the frame header.
const maxBlockSize = 4 << 20

// A FrameEncoder implements the pack.Encoder interface,
// writing in the LZ4 frame format. Blocks are linked, so matches may reach
// back into earlier blocks, up to the 64 KiB LZ4 limit.
type FrameEncoder struct {
	hasher      hash.Hash32
	blockBuffer []byte
	written     int
	head        []pack.Match
	cache       []pack.Match
}

func (f *FrameEncoder) Reset() {
	f.hasher = nil
	f.written = 0
}

func (f *FrameEncoder) Encode(dst []byte, src []byte, matches []pack.Match, lastBlock bool) []byte {
	if f.hasher == nil {
		f.hasher = xxHash32.New(0)
		dst = binary.LittleEndian.AppendUint32(dst, 0x184D2204)
		// Frame header for content checksum enabled, and 4-MB blocks.
		dst = append(dst, 0x44, 0x70, 0x1d)
	}

	for len(src) > 0 {
		n := len(src)
		if n > maxBlockSize {
			n = maxBlockSize
		}
		f.head, matches = pack.SplitMatches(f.head[:0], matches, n)
		f.cache = usable(f.cache[:0], f.head, f.written)
		f.blockBuffer = appendBlock(f.blockBuffer[:0], src[:n], f.cache)

		if len(f.blockBuffer) >= n {
			// Store the block uncompressed.
			dst = binary.LittleEndian.AppendUint32(dst, uint32(n)|0x80000000)
			dst = append(dst, src[:n]...)
		} else {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.blockBuffer)))
			dst = append(dst, f.blockBuffer...)
		}

		f.hasher.Write(src[:n])
		f.written += n
		src = src[n:]
	}

	if lastBlock {
		dst = append(dst, 0, 0, 0, 0)
		dst = binary.LittleEndian.AppendUint32(dst, f.hasher.Sum32())
	}

	return dst
}
