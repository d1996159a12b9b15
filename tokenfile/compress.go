package tokenfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression is an optional outer layer around an encoded file.
type Compression uint8

const (
	None Compression = iota
	Gzip
	Zstd
	Brotli
)

var compressionNames = [...]string{
	None:   "none",
	Gzip:   "gzip",
	Zstd:   "zstd",
	Brotli: "brotli",
}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// Ext returns the file name suffix conventionally used for c.
func (c Compression) Ext() string {
	switch c {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case Brotli:
		return ".br"
	}
	return ""
}

// ParseCompression converts a name such as "gzip" or "zst" to a
// Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "brotli", "br":
		return Brotli, nil
	}
	return None, fmt.Errorf("%w: compression %q", ErrUnknownName, name)
}

// NewWriter returns a writer that compresses into w. The caller must Close
// it to flush the stream; closing does not close w.
func (c Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case Brotli:
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	}
	return nil, fmt.Errorf("%w: compression %d", ErrUnknownName, c)
}

// NewReader returns a reader that decompresses r.
func (c Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	}
	return nil, fmt.Errorf("%w: compression %d", ErrUnknownName, c)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
