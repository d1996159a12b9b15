// Package pack implements a windowed LZ77 codec for byte streams such as
// flattened RGB pixel data.
//
// Compression has two halves:
//   - A WindowEncoder scans the input and emits Tokens: literals, and matches
//     that point back into the dictionary of symbols already consumed.
//   - Decode replays the Tokens and rebuilds the input exactly.
//
// Tokens can also be converted into the Match intermediate representation
// (see ToMatches), which lets the snappy and lz4 sub-packages write the same
// parse in those formats.
package pack

// A Match is the basic unit of LZ77 compression in the block formats.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used with
	// a new stream.
	Reset()
}

// An Encoder encodes the data in its final format.
type Encoder interface {
	// Encode appends the encoded format of src to dst, using the match
	// information from matches.
	Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte

	// Reset clears any internal state, preparing the Encoder to be used with
	// a new stream.
	Reset()
}
