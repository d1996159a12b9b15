package tokenfile

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes files using vmihailenco/msgpack/v5.
// The zero value is ready to use.
type Msgpack struct{}

func (Msgpack) Encode(f File) ([]byte, error) {
	return msgpack.Marshal(toWire(f))
}

func (Msgpack) Decode(b []byte) (File, error) {
	var w wireFile
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return File{}, err
	}
	return fromWire(w)
}
