package pack

import "fmt"

// Decode replays tokens and appends the reconstructed symbols to dst. Any
// symbols already in dst are treated as earlier output of the same stream,
// so Absolute offsets count from dst[0].
//
// Match copies go one symbol at a time, and each source index is checked
// against the output as it grows. A match may therefore read symbols it has
// just written itself, which expands runs.
//
// If a match points before the start of the output, or at or past its end,
// or is longer than MaxSize, Decode returns dst unchanged and an
// *OutOfRangeError.
func Decode(dst []byte, tokens []Token, mode Addressing) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, 0, coverageUpTo(tokens, 1<<20))
	}
	out := dst

	for i, t := range tokens {
		if t.Kind == MatchToken {
			start := t.Offset
			if mode == Relative {
				start = len(out) - t.Offset
			}
			if start < 0 || start >= len(out) || t.Length < 0 || t.Length > MaxSize {
				return dst, &OutOfRangeError{
					Token:     i,
					Offset:    t.Offset,
					Length:    t.Length,
					OutputLen: len(out),
				}
			}
			for k := 0; k < t.Length; k++ {
				out = append(out, out[start+k])
			}
		}
		if t.HasLiteral {
			out = append(out, t.Literal)
		}
	}

	return out, nil
}

// DecodeShape decodes tokens into a new slice and checks that the result
// exactly fills shape. The token lengths are checked against the shape
// before anything is allocated.
func DecodeShape(tokens []Token, mode Addressing, shape Shape) ([]byte, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("%w: invalid shape %v", ErrShapeMismatch, shape)
	}
	if n := coverageUpTo(tokens, shape.Size()); n != shape.Size() {
		return nil, &ShapeError{Shape: shape, Got: n}
	}
	out, err := Decode(make([]byte, 0, shape.Size()), tokens, mode)
	if err != nil {
		return nil, err
	}
	if len(out) != shape.Size() {
		return nil, &ShapeError{Shape: shape, Got: len(out)}
	}
	return out, nil
}

// coverageUpTo is Coverage, except that it stops counting at limit+1 and
// treats negative lengths as zero, so it cannot overflow.
func coverageUpTo(tokens []Token, limit int) int {
	n := 0
	for _, t := range tokens {
		c := t.Covered()
		if c < 0 {
			continue
		}
		if c > limit-n {
			return limit + 1
		}
		n += c
	}
	return n
}
