package snappy

import (
	"hash/crc32"
	"io"

	"github.com/rgbpack/pack"
)

// maxChunk is the most uncompressed data a framed chunk may hold.
const maxChunk = 65536

// A FrameEncoder implements the pack.Encoder interface, writing the snappy
// framing format. The input is cut into 64 KiB chunks, and since chunks
// are decoded independently, matches that cross into an earlier chunk are
// written as literals.
type FrameEncoder struct {
	wroteHeader bool
	head        []pack.Match
}

var magicChunk = []byte("\xff\x06\x00\x00sNaPpY")

var crcTable = crc32.MakeTable(crc32.Castagnoli)

// crc implements the checksum specified in section 3 of
// https://github.com/google/snappy/blob/master/framing_format.txt
func crc(b []byte) uint32 {
	c := crc32.Update(0, crcTable, b)
	return uint32(c>>15|c<<17) + 0xa282ead8
}

func (e *FrameEncoder) Reset() {
	e.wroteHeader = false
}

func (e *FrameEncoder) Encode(dst []byte, src []byte, matches []pack.Match, lastBlock bool) []byte {
	if !e.wroteHeader {
		dst = append(dst, magicChunk...)
		e.wroteHeader = true
	}

	for len(src) > 0 {
		n := len(src)
		if n > maxChunk {
			n = maxChunk
		}
		e.head, matches = pack.SplitMatches(e.head[:0], matches, n)
		dst = appendChunk(dst, src[:n], e.head)
		src = src[n:]
	}
	return dst
}

func appendChunk(dst []byte, src []byte, matches []pack.Match) []byte {
	start := len(dst)
	checksum := crc(src)

	dst = append(dst,
		0,       // chunk type: compressed data
		0, 0, 0, // placeholder for compressed length
		byte(checksum), byte(checksum>>8), byte(checksum>>16), byte(checksum>>24),
	)
	dataStart := len(dst)

	dst = appendBlock(dst, src, matches)

	dataLen := len(dst) - dataStart
	if dataLen >= len(src)-len(src)/8 {
		// The compression isn't saving even 12.5%.
		// Just do an uncompressed chunk.
		dst = append(dst[:dataStart], src...)
		dst[start] = 1 // chunk type: uncompressed data
		dataLen = len(src)
	}

	chunkLen := dataLen + 4
	dst[start+1] = byte(chunkLen)
	dst[start+2] = byte(chunkLen >> 8)
	dst[start+3] = byte(chunkLen >> 16)

	return dst
}

// NewWriter returns a writer that encodes everything written to it with
// a WindowEncoder and writes it to w in the snappy framing format when it
// is closed.
func NewWriter(w io.Writer, windowSize int) io.WriteCloser {
	return &writer{
		dst: w,
		mf:  &pack.WindowEncoder{WindowSize: windowSize},
	}
}

type writer struct {
	dst io.Writer
	mf  pack.MatchFinder
	buf []byte
}

func (w *writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *writer) Close() error {
	w.mf.Reset()
	matches := w.mf.FindMatches(nil, w.buf)
	var e FrameEncoder
	_, err := w.dst.Write(e.Encode(nil, w.buf, matches, true))
	return err
}
