package pack

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestDecodeOverlappingCopy(t *testing.T) {
	want := []byte{7, 7, 7, 7, 7, 7, 9}

	got, err := Decode(nil, []Token{Literal(7), NewMatch(0, 5, 9)}, Absolute)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("absolute: got %v, want %v", got, want)
	}

	got, err = Decode(nil, []Token{Literal(7), NewMatch(1, 5, 9)}, Relative)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("relative: got %v, want %v", got, want)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		mode   Addressing
	}{
		{"match first", []Token{FinalMatch(0, 1)}, Absolute},
		{"absolute past end", []Token{Literal(1), FinalMatch(1, 2)}, Absolute},
		{"absolute negative", []Token{Literal(1), FinalMatch(-1, 1)}, Absolute},
		{"relative before start", []Token{Literal(1), NewMatch(2, 1, 0)}, Relative},
		{"relative zero", []Token{Literal(1), NewMatch(0, 1, 0)}, Relative},
	}

	for _, tt := range tests {
		dst := []byte{}
		out, err := Decode(dst, tt.tokens, tt.mode)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%s: want ErrOutOfRange, got %v", tt.name, err)
		}
		var oe *OutOfRangeError
		if !errors.As(err, &oe) {
			t.Fatalf("%s: error is %T, not *OutOfRangeError", tt.name, err)
		}
		if oe.Token != len(tt.tokens)-1 {
			t.Fatalf("%s: error names token %d, want %d", tt.name, oe.Token, len(tt.tokens)-1)
		}
		if len(out) != 0 {
			t.Fatalf("%s: got partial output %v", tt.name, out)
		}
	}
}

func TestDecodeContinuesStream(t *testing.T) {
	// Absolute offsets count from the start of dst.
	got, err := Decode([]byte{5, 6}, []Token{NewMatch(0, 2, 7)}, Absolute)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{5, 6, 5, 6, 7}; !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDecodeEmptyComponents(t *testing.T) {
	// A token with neither a match nor a literal adds nothing.
	got, err := Decode(nil, []Token{Literal(3), {Kind: LiteralToken}, Literal(4)}, Absolute)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{3, 4}; !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDecodeShape(t *testing.T) {
	src := pixels(2 * 4 * 3)
	tokens, _ := Encode(src, 20)
	shape := Shape{Height: 2, Width: 4, Channels: 3}

	out, err := DecodeShape(tokens, Absolute, shape)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, src) {
		t.Fatal("decoded output doesn't match")
	}

	_, err = DecodeShape(tokens, Absolute, Shape{Height: 3, Width: 4, Channels: 3})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}
	var se *ShapeError
	if !errors.As(err, &se) || se.Got != len(src) {
		t.Fatalf("bad shape error: %v", err)
	}
}

func TestDecodeShapeChecksLengthFirst(t *testing.T) {
	tokens := []Token{Literal(1), FinalMatch(0, 1000000000000)}
	_, err := DecodeShape(tokens, Absolute, Shape{Height: 1, Width: 2, Channels: 1})
	var se *ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("want *ShapeError, got %v", err)
	}
	if se.Got != 3 {
		t.Fatalf("Got = %d, want 3 (counting stops past the shape)", se.Got)
	}

	for _, shape := range []Shape{
		{Height: 3000000, Width: 3000000, Channels: 3000000},
		{Height: 100000, Width: 100000, Channels: 100000},
		{Height: 0, Width: 4, Channels: 3},
	} {
		if _, err := DecodeShape([]Token{Literal(1)}, Absolute, shape); !errors.Is(err, ErrShapeMismatch) {
			t.Fatalf("%v: want ErrShapeMismatch, got %v", shape, err)
		}
	}
}

func TestDecodeRejectsHugeMatch(t *testing.T) {
	_, err := Decode(nil, []Token{Literal(1), FinalMatch(0, math.MaxInt)}, Absolute)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
}

func TestShapeValid(t *testing.T) {
	tests := []struct {
		shape Shape
		want  bool
	}{
		{Shape{Height: 2, Width: 4, Channels: 3}, true},
		{Shape{Height: 1, Width: MaxSize, Channels: 1}, true},
		{Shape{Height: 2, Width: MaxSize, Channels: 1}, false},
		{Shape{Height: 3000000, Width: 3000000, Channels: 3000000}, false},
		{Shape{Height: -1, Width: -1, Channels: 3}, false},
	}
	for _, tt := range tests {
		if got := tt.shape.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestLiterals(t *testing.T) {
	tokens := []Token{Literal(1), NewMatch(0, 1, 2), FinalMatch(0, 2)}
	if got := Literals(nil, tokens); !bytes.Equal(got, []byte{1, 2}) {
		t.Fatalf("got %v", got)
	}
	if n := Coverage(tokens); n != 5 {
		t.Fatalf("coverage %d, want 5", n)
	}
}
