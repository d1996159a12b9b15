package pack

import "context"

// An AbsoluteMatch is like a Match, but it stores indexes into the symbol
// history instead of lengths.
type AbsoluteMatch struct {
	// Start is the index of the first symbol.
	Start int

	// End is the index of the symbol after the last symbol
	// (so that End - Start = Length).
	End int

	// Match is the index of the earlier data that matches
	// (Start - Match = Distance).
	Match int
}

// A Searcher is the source of matches for a Parser. It looks for matches at
// one position at a time.
type Searcher interface {
	// Search looks for matches at pos and appends them to dst.
	// In each match, Start and End must fall within the interval [min,max),
	// and Match < Start < End.
	Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch
}

// A GreedyParser turns the matches from a Searcher into Tokens. At each
// position it takes the longest match, then the symbol right after it as a
// trailing literal. Where there is no match it emits a single literal.
type GreedyParser struct {
	// Offset converts the chosen match into a token offset. If it is nil,
	// the index of the matched data (AbsoluteMatch.Match) is used.
	Offset func(AbsoluteMatch) int

	matchCache []AbsoluteMatch
}

// Parse parses data[start:end] and appends the tokens to dst. No match may
// be longer than lookahead.
func (p *GreedyParser) Parse(dst []Token, src Searcher, data []byte, start, end, lookahead int) []Token {
	dst, _ = p.parse(context.Background(), dst, src, data, start, end, lookahead)
	return dst
}

func (p *GreedyParser) parse(ctx context.Context, dst []Token, src Searcher, data []byte, start, end, lookahead int) ([]Token, error) {
	matches := p.matchCache[:0]
	s := start

	for s < end {
		if err := ctx.Err(); err != nil {
			p.matchCache = matches[:0]
			return dst, err
		}

		max := s + lookahead
		if max > end {
			max = end
		}
		matches = src.Search(matches[:0], s, s, max)
		m := longestMatch(matches)

		if m.End <= m.Start {
			dst = append(dst, Literal(data[s]))
			s++
			continue
		}

		offset := m.Match
		if p.Offset != nil {
			offset = p.Offset(m)
		}
		if m.End < end {
			dst = append(dst, NewMatch(offset, m.End-m.Start, data[m.End]))
			s = m.End + 1
		} else {
			dst = append(dst, FinalMatch(offset, m.End-m.Start))
			s = m.End
		}
	}

	p.matchCache = matches[:0]
	return dst, nil
}

// longestMatch returns the longest of matches. Ties go to the one found
// first.
func longestMatch(matches []AbsoluteMatch) AbsoluteMatch {
	var longest AbsoluteMatch

	for _, m := range matches {
		if m.End-m.Start > longest.End-longest.Start {
			longest = m
		}
	}

	return longest
}
