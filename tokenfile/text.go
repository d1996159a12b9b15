package tokenfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgbpack/pack"
)

var (
	errTuple   = errors.New("malformed token tuple")
	errField   = errors.New("bad field")
	errLiteral = errors.New("bad literal")
)

// Text is the line-oriented text codec. Tokens are written as tuple
// literals, so files can also be read by tools that evaluate each line.
// Relative addressing is recorded as a fourth header field.
type Text struct{}

func (Text) Encode(f File) ([]byte, error) {
	if !f.Shape.Valid() {
		return nil, fmt.Errorf("%w: shape %v", ErrHeader, f.Shape)
	}
	dst := make([]byte, 0, 16+len(f.Tokens)*16)
	dst = append(dst, f.Shape.String()...)
	if f.Addressing == pack.Relative {
		dst = append(dst, ",relative"...)
	}
	dst = append(dst, '\n')
	for _, t := range f.Tokens {
		dst = AppendTuple(dst, t)
		dst = append(dst, '\n')
	}
	return dst, nil
}

func (Text) Decode(b []byte) (File, error) {
	var f File
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64), 1<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return f, err
		}
		return f, fmt.Errorf("%w: empty file", ErrHeader)
	}
	shape, mode, err := parseHeader(sc.Text())
	if err != nil {
		return f, &SyntaxError{Line: 1, Text: sc.Text(), Err: err}
	}
	f.Shape = shape
	f.Addressing = mode

	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		t, err := ParseTuple(text)
		if err != nil {
			return File{}, &SyntaxError{Line: line, Text: text, Err: err}
		}
		f.Tokens = append(f.Tokens, t)
	}
	if err := sc.Err(); err != nil {
		return File{}, err
	}
	return f, nil
}

func parseHeader(s string) (pack.Shape, pack.Addressing, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	if len(fields) != 3 && len(fields) != 4 {
		return pack.Shape{}, 0, ErrHeader
	}
	var dims [3]int
	for i := range dims {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil || n <= 0 {
			return pack.Shape{}, 0, ErrHeader
		}
		dims[i] = n
	}
	mode := pack.Absolute
	if len(fields) == 4 {
		var err error
		if mode, err = pack.ParseAddressing(fields[3]); err != nil {
			return pack.Shape{}, 0, fmt.Errorf("%w: %v", ErrHeader, err)
		}
	}
	shape := pack.Shape{Height: dims[0], Width: dims[1], Channels: dims[2]}
	if !shape.Valid() {
		return pack.Shape{}, 0, fmt.Errorf("%w: shape %v holds more than %d symbols", ErrHeader, shape, pack.MaxSize)
	}
	return shape, mode, nil
}

// AppendTuple appends the text form of t to dst:
// (None, None, 'v') for a literal, (offset, length, 'v') for a match, and
// (offset, length, '') for a match with no trailing literal.
func AppendTuple(dst []byte, t pack.Token) []byte {
	dst = append(dst, '(')
	if t.IsMatch() {
		dst = strconv.AppendInt(dst, int64(t.Offset), 10)
		dst = append(dst, ", "...)
		dst = strconv.AppendInt(dst, int64(t.Length), 10)
	} else {
		dst = append(dst, "None, None"...)
	}
	dst = append(dst, ", "...)
	switch {
	case t.HasLiteral:
		dst = append(dst, '\'')
		dst = strconv.AppendUint(dst, uint64(t.Literal), 10)
		dst = append(dst, '\'')
	case t.IsMatch():
		dst = append(dst, "''"...)
	default:
		dst = append(dst, "None"...)
	}
	return append(dst, ')')
}

// ParseTuple parses one token in the form written by AppendTuple. Spaces
// around fields are optional and either quote style is accepted.
func ParseTuple(s string) (pack.Token, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return pack.Token{}, errTuple
	}
	fields := strings.Split(s[1:len(s)-1], ",")
	if len(fields) != 3 {
		return pack.Token{}, errTuple
	}

	offset, hasOffset, err := parseInt(fields[0])
	if err != nil {
		return pack.Token{}, err
	}
	length, hasLength, err := parseInt(fields[1])
	if err != nil {
		return pack.Token{}, err
	}
	if hasOffset != hasLength {
		return pack.Token{}, fmt.Errorf("%w: offset and length must both be present or both None", errField)
	}
	lit, hasLit, err := parseLiteral(fields[2])
	if err != nil {
		return pack.Token{}, err
	}

	if !hasOffset {
		return pack.Token{Kind: pack.LiteralToken, Literal: lit, HasLiteral: hasLit}, nil
	}
	return pack.Token{
		Kind:       pack.MatchToken,
		Offset:     offset,
		Length:     length,
		Literal:    lit,
		HasLiteral: hasLit,
	}, nil
}

func parseInt(s string) (int, bool, error) {
	s = strings.TrimSpace(s)
	if s == "None" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false, fmt.Errorf("%w: %q", errField, s)
	}
	return n, true, nil
}

func parseLiteral(s string) (byte, bool, error) {
	s = strings.TrimSpace(s)
	if s == "None" {
		return 0, false, nil
	}
	if len(s) < 2 || (s[0] != '\'' && s[0] != '"') || s[len(s)-1] != s[0] {
		return 0, false, fmt.Errorf("%w: %q", errLiteral, s)
	}
	s = s[1 : len(s)-1]
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", errLiteral, s)
	}
	return byte(n), true, nil
}
