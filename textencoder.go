package pack

import "strconv"

// A TextEncoder is an Encoder that produces a human-readable representation
// of the LZ77 parse. Literal symbols are written as decimal numbers, and
// matches as <Length,Distance>, all separated by spaces.
type TextEncoder struct{}

func (t TextEncoder) Reset() {}

func (t TextEncoder) Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte {
	pos := 0
	for _, m := range matches {
		for _, b := range src[pos : pos+m.Unmatched] {
			dst = appendSep(dst)
			dst = strconv.AppendUint(dst, uint64(b), 10)
		}
		pos += m.Unmatched
		if m.Length > 0 {
			dst = appendSep(dst)
			dst = append(dst, '<')
			dst = strconv.AppendInt(dst, int64(m.Length), 10)
			dst = append(dst, ',')
			dst = strconv.AppendInt(dst, int64(m.Distance), 10)
			dst = append(dst, '>')
			pos += m.Length
		}
	}
	for _, b := range src[pos:] {
		dst = appendSep(dst)
		dst = strconv.AppendUint(dst, uint64(b), 10)
	}
	if lastBlock && len(dst) > 0 {
		dst = append(dst, '\n')
	}
	return dst
}

func appendSep(dst []byte) []byte {
	if len(dst) > 0 && dst[len(dst)-1] != '\n' {
		dst = append(dst, ' ')
	}
	return dst
}
