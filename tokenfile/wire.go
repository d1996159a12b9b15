package tokenfile

import (
	"fmt"

	"github.com/rgbpack/pack"
)

// wireFile is the shape of a File in the binary codecs.
type wireFile struct {
	Height     int         `msgpack:"h" cbor:"1,keyasint"`
	Width      int         `msgpack:"w" cbor:"2,keyasint"`
	Channels   int         `msgpack:"c" cbor:"3,keyasint"`
	Addressing uint8       `msgpack:"a" cbor:"4,keyasint"`
	Tokens     []wireToken `msgpack:"t" cbor:"5,keyasint"`
}

// wireToken is written as a five-element array rather than a map.
type wireToken struct {
	_msgpack struct{} `msgpack:",as_array"`
	_        struct{} `cbor:",toarray"`

	Kind       uint8
	Offset     int
	Length     int
	Literal    uint8
	HasLiteral bool
}

func toWire(f File) wireFile {
	w := wireFile{
		Height:     f.Shape.Height,
		Width:      f.Shape.Width,
		Channels:   f.Shape.Channels,
		Addressing: uint8(f.Addressing),
		Tokens:     make([]wireToken, len(f.Tokens)),
	}
	for i, t := range f.Tokens {
		w.Tokens[i] = wireToken{
			Kind:       uint8(t.Kind),
			Offset:     t.Offset,
			Length:     t.Length,
			Literal:    t.Literal,
			HasLiteral: t.HasLiteral,
		}
	}
	return w
}

func fromWire(w wireFile) (File, error) {
	f := File{
		Shape:      pack.Shape{Height: w.Height, Width: w.Width, Channels: w.Channels},
		Addressing: pack.Addressing(w.Addressing),
		Tokens:     make([]pack.Token, len(w.Tokens)),
	}
	if !f.Shape.Valid() {
		return File{}, fmt.Errorf("%w: shape %v", ErrHeader, f.Shape)
	}
	if f.Addressing != pack.Absolute && f.Addressing != pack.Relative {
		return File{}, fmt.Errorf("%w: addressing %d", ErrHeader, w.Addressing)
	}
	for i, t := range w.Tokens {
		k := pack.Kind(t.Kind)
		if k != pack.LiteralToken && k != pack.MatchToken {
			return File{}, fmt.Errorf("tokenfile: token %d: unknown kind %d", i, t.Kind)
		}
		f.Tokens[i] = pack.Token{
			Kind:       k,
			Offset:     t.Offset,
			Length:     t.Length,
			Literal:    t.Literal,
			HasLiteral: t.HasLiteral,
		}
	}
	return f, nil
}
