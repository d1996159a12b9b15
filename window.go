package pack

import (
	"context"
	"fmt"
	"strings"
)

// DefaultWindowSize is the window size used when WindowEncoder.WindowSize is
// zero.
const DefaultWindowSize = 20

const (
	minHistory = 1 << 16
	maxHistory = 1 << 18
)

// Addressing selects how a match token's Offset is numbered.
type Addressing uint8

const (
	// Absolute offsets are indexes into the dictionary: the position in the
	// stream where the copied run starts. The dictionary is never trimmed.
	Absolute Addressing = iota

	// Relative offsets are distances back from the current position, as in
	// classic LZ77. They never exceed the window size, and the encoder only
	// keeps a bounded amount of history.
	Relative
)

func (a Addressing) String() string {
	switch a {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("Addressing(%d)", uint8(a))
	}
}

// ParseAddressing converts "absolute" or "relative" to an Addressing.
func ParseAddressing(s string) (Addressing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute", "abs":
		return Absolute, nil
	case "relative", "rel":
		return Relative, nil
	}
	return Absolute, fmt.Errorf("pack: unknown addressing %q", s)
}

// A WindowEncoder finds matches by comparing the lookahead buffer against
// every start position in the last WindowSize symbols of the dictionary.
// There is no hashing; the worst case is O(n·w²).
//
// Successive calls to Encode continue the same stream, so later calls can
// refer back to symbols from earlier ones. Call Reset to start over.
type WindowEncoder struct {
	// WindowSize bounds both the range of candidate start positions and the
	// length of the lookahead buffer. It does not bound the dictionary.
	// The default is DefaultWindowSize.
	WindowSize int

	Addressing Addressing

	Parser GreedyParser

	history []byte

	// base is the stream position of history[0]. It only moves in Relative
	// mode, when old history is dropped.
	base int

	tokenCache []Token
}

// Validate reports whether the configuration is usable.
func (e *WindowEncoder) Validate() error {
	if e.WindowSize < 0 {
		return fmt.Errorf("%w: %d", ErrWindowSize, e.WindowSize)
	}
	switch e.Addressing {
	case Absolute, Relative:
	default:
		return fmt.Errorf("pack: unknown addressing %d", e.Addressing)
	}
	return nil
}

func (e *WindowEncoder) Reset() {
	e.history = e.history[:0]
	e.base = 0
}

// Encode encodes src and appends the tokens to dst.
func (e *WindowEncoder) Encode(dst []Token, src []byte) []Token {
	dst, _ = e.EncodeContext(context.Background(), dst, src)
	return dst
}

// EncodeContext is like Encode, but it checks ctx between tokens. If ctx is
// done, it returns dst unchanged and ctx.Err(); the stream must then be
// Reset before it is used again.
func (e *WindowEncoder) EncodeContext(ctx context.Context, dst []Token, src []byte) ([]Token, error) {
	if err := e.Validate(); err != nil {
		panic(err)
	}
	if e.WindowSize == 0 {
		e.WindowSize = DefaultWindowSize
	}

	if e.Addressing == Relative && len(e.history) > maxHistory {
		// Trim down the history buffer. Relative offsets don't depend on
		// where history starts, so only the window needs to survive.
		keep := minHistory
		if keep < e.WindowSize {
			keep = e.WindowSize
		}
		delta := len(e.history) - keep
		copy(e.history, e.history[delta:])
		e.history = e.history[:keep]
		e.base += delta
	}

	// Append src to the history buffer.
	nextEmit := len(e.history)
	e.history = append(e.history, src...)

	switch e.Addressing {
	case Relative:
		e.Parser.Offset = func(m AbsoluteMatch) int { return m.Start - m.Match }
	default:
		e.Parser.Offset = func(m AbsoluteMatch) int { return e.base + m.Match }
	}

	n := len(dst)
	dst, err := e.Parser.parse(ctx, dst, e, e.history, nextEmit, len(e.history), e.WindowSize)
	if err != nil {
		return dst[:n], err
	}
	return dst, nil
}

// Search implements the Searcher interface. Candidate starts are the last
// WindowSize positions before pos; a match may run up to pos, but never
// past the end of the dictionary. Matches are appended in order of
// increasing start, and only when they are strictly longer than the
// previous one, so the earliest of the longest matches wins.
func (e *WindowEncoder) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	src := e.history
	first := pos - e.WindowSize
	if first < 0 {
		first = 0
	}

	var length int
	for j := first; j < pos; j++ {
		l := 0
		for pos+l < max && j+l < pos && src[j+l] == src[pos+l] {
			l++
		}
		if l > length {
			dst = append(dst, AbsoluteMatch{
				Start: pos,
				End:   pos + l,
				Match: j,
			})
			length = l
		}
	}

	return dst
}

// FindMatches implements the MatchFinder interface, so a WindowEncoder can
// feed the block encoders directly. Matches that need a Relative distance
// beyond 65535 are emitted as literals.
func (e *WindowEncoder) FindMatches(dst []Match, src []byte) []Match {
	start := e.base + len(e.history)
	e.tokenCache = e.Encode(e.tokenCache[:0], src)
	return ToMatches(dst, e.tokenCache, MatchOptions{
		Addressing: e.Addressing,
		Start:      start,
	})
}

// Encode encodes src with a fresh WindowEncoder using the given window size
// and Absolute addressing.
func Encode(src []byte, windowSize int) ([]Token, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrWindowSize, windowSize)
	}
	e := WindowEncoder{WindowSize: windowSize}
	return e.Encode(nil, src), nil
}
