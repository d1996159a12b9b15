package tokenfile

import (
	"bufio"
	"io"
	"os"
)

// Write encodes f with codec, compresses it with comp, and writes it to w.
func Write(w io.Writer, f File, codec Codec, comp Compression) error {
	b, err := codec.Encode(f)
	if err != nil {
		return err
	}
	cw, err := comp.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := cw.Write(b); err != nil {
		cw.Close()
		return err
	}
	return cw.Close()
}

// Read is the inverse of Write.
func Read(r io.Reader, codec Codec, comp Compression) (File, error) {
	cr, err := comp.NewReader(r)
	if err != nil {
		return File{}, err
	}
	defer cr.Close()

	var src io.Reader = cr
	if lc, ok := codec.(LimitCodec); ok && lc.MaxDecode > 0 {
		// Stop a compressed stream from expanding far past the limit.
		src = io.LimitReader(cr, int64(lc.MaxDecode)+1)
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return File{}, err
	}
	return codec.Decode(b)
}

// WriteFile writes f to the named file, creating or truncating it.
func WriteFile(name string, f File, codec Codec, comp Compression) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	if err := Write(bw, f, codec, comp); err != nil {
		fh.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// ReadFile reads a file written by WriteFile.
func ReadFile(name string, codec Codec, comp Compression) (File, error) {
	fh, err := os.Open(name)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Read(bufio.NewReader(fh), codec, comp)
}
