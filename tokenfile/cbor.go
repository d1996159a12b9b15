package tokenfile

import "github.com/fxamacker/cbor/v2"

// CBOR is a Codec that serializes files using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec = CBOR{}

// NewCBOR constructs a CBOR codec. With deterministic set it uses the
// RFC 8949 core deterministic encoding, so equal files encode to equal
// bytes.
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

func (c CBOR) Encode(f File) ([]byte, error) {
	return c.enc.Marshal(toWire(f))
}

func (c CBOR) Decode(b []byte) (File, error) {
	var w wireFile
	if err := c.dec.Unmarshal(b, &w); err != nil {
		return File{}, err
	}
	return fromWire(w)
}
