// Package tokenfile stores an encoded image: its shape and the token
// stream produced by a pack.WindowEncoder.
//
// The default Text codec writes the human-readable format
//
//	height,width,channels
//	(None, None, '255')
//	(0, 2, '17')
//	(3, 1, '')
//
// with one tuple per token in emission order. Msgpack and CBOR codecs hold
// the same data in binary form, and any of them can be wrapped in gzip,
// zstd or brotli compression.
package tokenfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgbpack/pack"
)

var (
	ErrHeader      = errors.New("tokenfile: bad header")
	ErrTooLarge    = errors.New("tokenfile: payload too large")
	ErrUnknownName = errors.New("tokenfile: unknown name")
)

// File is the content of an encoded image file.
type File struct {
	Shape      pack.Shape
	Addressing pack.Addressing
	Tokens     []pack.Token
}

// Decode reconstructs the symbols and checks them against the shape.
func (f File) Decode() ([]byte, error) {
	return pack.DecodeShape(f.Tokens, f.Addressing, f.Shape)
}

// Codec converts a File to and from bytes.
type Codec interface {
	Encode(File) ([]byte, error)
	Decode([]byte) (File, error)
}

// ParseCodec returns the codec called name: "text", "msgpack" or "cbor".
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "text", "txt":
		return Text{}, nil
	case "msgpack", "mp":
		return Msgpack{}, nil
	case "cbor":
		return NewCBOR(true)
	}
	return nil, fmt.Errorf("%w: codec %q", ErrUnknownName, name)
}

// A SyntaxError describes a line of a text file that could not be parsed.
type SyntaxError struct {
	Line int // 1-based; the header is line 1
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("tokenfile: line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
