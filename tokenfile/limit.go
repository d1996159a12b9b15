package tokenfile

import "fmt"

// LimitCodec wraps another codec to enforce a maximum payload size at
// Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
type LimitCodec struct {
	Inner     Codec
	MaxDecode int
}

func (c LimitCodec) Encode(f File) ([]byte, error) { return c.Inner.Encode(f) }

func (c LimitCodec) Decode(b []byte) (File, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return File{}, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
