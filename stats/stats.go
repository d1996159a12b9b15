// Package stats measures how well a token stream compresses its input.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rgbpack/pack"
)

// Entropy returns the Shannon entropy of symbols in bits per symbol. It is
// zero for an empty slice.
func Entropy(symbols []byte) float64 {
	if len(symbols) == 0 {
		return 0
	}
	var counts [256]int
	for _, b := range symbols {
		counts[b]++
	}
	total := float64(len(symbols))
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// LiteralEntropy returns the entropy of the literal symbols carried by
// tokens. Offsets and lengths are not counted.
func LiteralEntropy(tokens []pack.Token) float64 {
	return Entropy(pack.Literals(nil, tokens))
}

// FileSize returns the size of the named file, or 0 if it can't be read.
func FileSize(name string) int64 {
	fi, err := os.Stat(name)
	if err != nil {
		return 0
	}
	return fi.Size()
}

// Report collects the figures printed after an image is encoded.
type Report struct {
	OriginalSize    int64 // bytes in the source image file
	EncodedSize     int64 // bytes in the token file
	OriginalEntropy float64
	EncodedEntropy  float64

	Tokens   int
	Matches  int
	Literals int // tokens carrying a literal, including matches with one
}

// NewReport computes a Report for symbols encoded as tokens.
func NewReport(symbols []byte, tokens []pack.Token, originalSize, encodedSize int64) Report {
	r := Report{
		OriginalSize:    originalSize,
		EncodedSize:     encodedSize,
		OriginalEntropy: Entropy(symbols),
		EncodedEntropy:  LiteralEntropy(tokens),
		Tokens:          len(tokens),
	}
	for _, t := range tokens {
		if t.IsMatch() {
			r.Matches++
		}
		if t.HasLiteral {
			r.Literals++
		}
	}
	return r
}

// Ratio returns OriginalSize / EncodedSize, or 0 if nothing was encoded.
func (r Report) Ratio() float64 {
	if r.EncodedSize == 0 {
		return 0
	}
	return float64(r.OriginalSize) / float64(r.EncodedSize)
}

// Redundancy returns (1 - EncodedEntropy/OriginalEntropy) * 100.
func (r Report) Redundancy() float64 {
	if r.OriginalEntropy == 0 {
		return 0
	}
	return (1 - r.EncodedEntropy/r.OriginalEntropy) * 100
}

// Fields returns the report as key/value pairs for structured logging.
func (r Report) Fields() map[string]any {
	return map[string]any{
		"original_size":    r.OriginalSize,
		"encoded_size":     r.EncodedSize,
		"original_entropy": r.OriginalEntropy,
		"encoded_entropy":  r.EncodedEntropy,
		"ratio":            r.Ratio(),
		"redundancy":       r.Redundancy(),
		"tokens":           r.Tokens,
		"matches":          r.Matches,
	}
}

// WriteTo prints the report in a human-readable form.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "Original image size: %d bytes\n"+
		"Encoded file size: %d bytes\n"+
		"Original entropy: %.4f\n"+
		"Encoded entropy: %.4f\n"+
		"Compression ratio: %.2f\n"+
		"Redundancy: %.2f%%\n",
		r.OriginalSize, r.EncodedSize, r.OriginalEntropy, r.EncodedEntropy, r.Ratio(), r.Redundancy())
	return int64(n), err
}
