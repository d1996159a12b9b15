package pack

import "fmt"

// Kind tells which variant a Token holds.
type Kind uint8

const (
	// LiteralToken carries a single symbol and no back-reference.
	LiteralToken Kind = iota
	// MatchToken copies Length symbols from the dictionary, optionally
	// followed by a trailing literal.
	MatchToken
)

func (k Kind) String() string {
	switch k {
	case LiteralToken:
		return "literal"
	case MatchToken:
		return "match"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// A Token is one unit of the compressed stream.
type Token struct {
	Kind Kind

	// Offset is where the copied run starts. With Absolute addressing it is
	// an index into the dictionary; with Relative addressing it is the
	// distance back from the end of the output. Unused for literals.
	Offset int

	// Length is the number of symbols copied. Unused for literals.
	Length int

	// Literal is the symbol emitted after the copy (or on its own for a
	// literal token). It is only meaningful when HasLiteral is true.
	Literal    byte
	HasLiteral bool
}

// Literal returns a literal token carrying b.
func Literal(b byte) Token {
	return Token{Kind: LiteralToken, Literal: b, HasLiteral: true}
}

// NewMatch returns a match token with a trailing literal.
func NewMatch(offset, length int, next byte) Token {
	return Token{Kind: MatchToken, Offset: offset, Length: length, Literal: next, HasLiteral: true}
}

// FinalMatch returns a match token without a trailing literal. The encoder
// only produces one when the match reaches the end of the input.
func FinalMatch(offset, length int) Token {
	return Token{Kind: MatchToken, Offset: offset, Length: length}
}

// IsMatch reports whether t copies from earlier output.
func (t Token) IsMatch() bool {
	return t.Kind == MatchToken
}

// Covered returns the number of symbols t adds to the decoded output.
func (t Token) Covered() int {
	n := 0
	if t.Kind == MatchToken {
		n = t.Length
	}
	if t.HasLiteral {
		n++
	}
	return n
}

func (t Token) String() string {
	switch {
	case t.Kind == LiteralToken && t.HasLiteral:
		return fmt.Sprintf("lit(%d)", t.Literal)
	case t.Kind == MatchToken && t.HasLiteral:
		return fmt.Sprintf("match(%d,%d,%d)", t.Offset, t.Length, t.Literal)
	case t.Kind == MatchToken:
		return fmt.Sprintf("match(%d,%d)", t.Offset, t.Length)
	default:
		return "empty"
	}
}

// Coverage returns the total number of symbols the tokens decode to.
func Coverage(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		n += t.Covered()
	}
	return n
}

// Literals appends the literal symbol of every token that carries one to dst.
// Match fields are skipped.
func Literals(dst []byte, tokens []Token) []byte {
	for _, t := range tokens {
		if t.HasLiteral {
			dst = append(dst, t.Literal)
		}
	}
	return dst
}
