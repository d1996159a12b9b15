package pack

import "fmt"

// MatchOptions controls how tokens are converted to Matches.
type MatchOptions struct {
	// Addressing is how the tokens' offsets are numbered.
	Addressing Addressing

	// Start is the stream position of the first token. It only matters for
	// Absolute addressing, when the tokens continue an earlier stream.
	Start int

	// MinLength is the shortest match to keep. Shorter matches become
	// literals. The default is 1.
	MinLength int

	// MaxDistance is the farthest back a match may reach. Matches beyond it
	// become literals. The default is 65535.
	MaxDistance int
}

// ToMatches converts tokens to the Match representation used by the block
// encoders, appends them to dst, and returns dst. A token's trailing literal
// counts toward the Unmatched bytes of the following Match.
func ToMatches(dst []Match, tokens []Token, opt MatchOptions) []Match {
	if opt.MinLength == 0 {
		opt.MinLength = 1
	}
	if opt.MaxDistance == 0 {
		opt.MaxDistance = 65535
	}

	pos := opt.Start
	unmatched := 0
	for _, t := range tokens {
		if t.Kind == MatchToken && t.Length > 0 {
			distance := t.Offset
			if opt.Addressing == Absolute {
				distance = pos - t.Offset
			}
			if t.Length >= opt.MinLength && distance > 0 && distance <= opt.MaxDistance {
				dst = append(dst, Match{
					Unmatched: unmatched,
					Length:    t.Length,
					Distance:  distance,
				})
				unmatched = 0
			} else {
				unmatched += t.Length
			}
			pos += t.Length
		}
		if t.HasLiteral {
			unmatched++
			pos++
		}
	}

	if unmatched > 0 {
		dst = append(dst, Match{
			Unmatched: unmatched,
		})
	}
	return dst
}

// Export writes the parse in tokens, which must cover all of src, in the
// format implemented by enc. It appends the result to dst.
func Export(dst []byte, src []byte, tokens []Token, enc Encoder, opt MatchOptions) ([]byte, error) {
	if n := Coverage(tokens); n != len(src) {
		return dst, fmt.Errorf("pack: tokens cover %d symbols, source has %d", n, len(src))
	}
	matches := ToMatches(nil, tokens, opt)
	enc.Reset()
	return enc.Encode(dst, src, matches, true), nil
}

// SplitMatches appends the matches covering the first n bytes to head, and
// returns them along with the matches for the rest of the input. A match
// that straddles the boundary is cut in two.
func SplitMatches(head, matches []Match, n int) ([]Match, []Match) {
	pos := 0
	for i, m := range matches {
		if pos+m.Unmatched+m.Length <= n {
			head = append(head, m)
			pos += m.Unmatched + m.Length
			if pos == n {
				return head, matches[i+1:]
			}
			continue
		}

		rest := m
		if pos+m.Unmatched >= n {
			lit := n - pos
			head = append(head, Match{Unmatched: lit})
			rest.Unmatched -= lit
		} else {
			l := n - pos - m.Unmatched
			head = append(head, Match{Unmatched: m.Unmatched, Length: l, Distance: m.Distance})
			rest = Match{Length: m.Length - l, Distance: m.Distance}
		}
		tail := make([]Match, 0, len(matches)-i)
		tail = append(tail, rest)
		return head, append(tail, matches[i+1:]...)
	}
	return head, nil
}
