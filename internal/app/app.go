// Package app holds the operations behind the rgbpack command: encoding an
// image to a token file, decoding it back, and exporting the parse in
// other formats.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rgbpack/pack"
	"github.com/rgbpack/pack/internal/imageio"
	"github.com/rgbpack/pack/internal/logging"
	"github.com/rgbpack/pack/lz4"
	"github.com/rgbpack/pack/snappy"
	"github.com/rgbpack/pack/stats"
	"github.com/rgbpack/pack/tokenfile"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel  = "RGBPACK_LOG_LEVEL"
	EnvWindow    = "RGBPACK_WINDOW"
	EnvMaxDecode = "RGBPACK_MAX_DECODE"
)

// DefaultMaxDecode is the largest token file payload DecodeImage accepts,
// after decompression.
const DefaultMaxDecode = 256 << 20

var ErrUnknownFormat = errors.New("app: unknown export format")

// Config holds the settings shared by all commands.
type Config struct {
	WindowSize  int
	Addressing  pack.Addressing
	Codec       tokenfile.Codec
	Compression tokenfile.Compression

	// MaxDecode limits the size of a token file payload read by
	// DecodeImage. Zero or less means no limit.
	MaxDecode int

	Log    logging.Logger
	Stdout io.Writer
}

// DefaultConfig returns the settings used when nothing is overridden: the
// default window, absolute offsets, and an uncompressed text file.
func DefaultConfig() Config {
	return Config{
		WindowSize: pack.DefaultWindowSize,
		Codec:      tokenfile.Text{},
		MaxDecode:  DefaultMaxDecode,
		Log:        logging.Nop{},
		Stdout:     os.Stdout,
	}
}

// ConfigFromEnv applies RGBPACK_WINDOW and RGBPACK_MAX_DECODE on top of
// DefaultConfig.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if v := getenv(EnvWindow); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w < 1 {
			return cfg, fmt.Errorf("%s=%q: %w", EnvWindow, v, pack.ErrWindowSize)
		}
		cfg.WindowSize = w
	}
	if v := getenv(EnvMaxDecode); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", EnvMaxDecode, v, err)
		}
		cfg.MaxDecode = n
	}
	return cfg, nil
}

// CompressionFromName picks the compression from the extension of a token
// file name, such as .gz or .zst. Unknown extensions mean no compression.
func CompressionFromName(name string) tokenfile.Compression {
	c, err := tokenfile.ParseCompression(filepath.Ext(name))
	if err != nil {
		return tokenfile.None
	}
	return c
}

func (c Config) encode(ctx context.Context, pix []byte) ([]pack.Token, error) {
	e := &pack.WindowEncoder{WindowSize: c.WindowSize, Addressing: c.Addressing}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e.EncodeContext(ctx, nil, pix)
}

// EncodeImage finds the image called base (trying each extension), encodes
// it, and writes the token file to out. If out is empty the name is
// base-encode.txt, plus the compression suffix. If chart is not empty, a
// histogram of match lengths is written there as SVG.
func EncodeImage(ctx context.Context, cfg Config, base, out, chart string) (stats.Report, error) {
	src, err := imageio.Find(base)
	if err != nil {
		return stats.Report{}, err
	}
	pix, shape, err := imageio.Load(src)
	if err != nil {
		return stats.Report{}, err
	}
	cfg.Log.Debug("image loaded", logging.Fields{"file": src, "shape": shape.String()})

	tokens, err := cfg.encode(ctx, pix)
	if err != nil {
		return stats.Report{}, err
	}

	if out == "" {
		out = imageio.EncodedName(base) + cfg.Compression.Ext()
	}
	f := tokenfile.File{Shape: shape, Addressing: cfg.Addressing, Tokens: tokens}
	if err := tokenfile.WriteFile(out, f, cfg.Codec, cfg.Compression); err != nil {
		return stats.Report{}, err
	}

	r := stats.NewReport(pix, tokens, stats.FileSize(src), stats.FileSize(out))
	cfg.Log.Info("image encoded", logging.Fields(r.Fields()))
	if _, err := r.WriteTo(cfg.Stdout); err != nil {
		return r, err
	}
	fmt.Fprintf(cfg.Stdout, "Image %s encoded and saved as %s.\n", base, out)

	if chart != "" {
		if err := writeChart(chart, tokens); err != nil {
			cfg.Log.Warn("chart not written", logging.Fields{"file": chart, "error": err.Error()})
		}
	}
	return r, nil
}

// StatsImage encodes the image called base in memory and prints the report
// without writing a token file. The encoded size is that of the file the
// configured codec would produce, before compression.
func StatsImage(ctx context.Context, cfg Config, base, chart string) (stats.Report, error) {
	src, err := imageio.Find(base)
	if err != nil {
		return stats.Report{}, err
	}
	pix, shape, err := imageio.Load(src)
	if err != nil {
		return stats.Report{}, err
	}
	tokens, err := cfg.encode(ctx, pix)
	if err != nil {
		return stats.Report{}, err
	}
	b, err := cfg.Codec.Encode(tokenfile.File{Shape: shape, Addressing: cfg.Addressing, Tokens: tokens})
	if err != nil {
		return stats.Report{}, err
	}
	r := stats.NewReport(pix, tokens, stats.FileSize(src), int64(len(b)))
	if _, err := r.WriteTo(cfg.Stdout); err != nil {
		return r, err
	}
	if chart != "" {
		if err := writeChart(chart, tokens); err != nil {
			return r, err
		}
	}
	return r, nil
}

func writeChart(name string, tokens []pack.Token) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := stats.WriteChart(fh, stats.Histogram(tokens)); err != nil {
		fh.Close()
		os.Remove(name)
		return err
	}
	return fh.Close()
}

// DecodeImage reads a token file and writes the reconstructed image to
// out. If out is empty the name comes from imageio.DecodedName. It returns
// the name written.
func DecodeImage(cfg Config, encoded, out string) (string, error) {
	codec := cfg.Codec
	if cfg.MaxDecode > 0 {
		codec = tokenfile.LimitCodec{Inner: codec, MaxDecode: cfg.MaxDecode}
	}
	f, err := tokenfile.ReadFile(encoded, codec, cfg.Compression)
	if err != nil {
		return "", err
	}
	pix, err := f.Decode()
	if err != nil {
		return "", err
	}
	if out == "" {
		out = imageio.DecodedName(encoded)
	}
	if err := imageio.Save(out, pix, f.Shape); err != nil {
		return "", err
	}
	cfg.Log.Info("image decoded", logging.Fields{"file": encoded, "out": out, "tokens": len(f.Tokens)})
	fmt.Fprintf(cfg.Stdout, "Decoded image saved as %s.\n", out)
	return out, nil
}

// Export formats, by name.
var exportFormats = map[string]struct {
	ext string
	enc func() pack.Encoder
}{
	"text":         {".lz.txt", func() pack.Encoder { return pack.TextEncoder{} }},
	"snappy":       {".snappy", func() pack.Encoder { return snappy.BlockEncoder{} }},
	"snappy-frame": {".sz", func() pack.Encoder { return &snappy.FrameEncoder{} }},
	"lz4":          {".lz4", func() pack.Encoder { return &lz4.FrameEncoder{} }},
	"lz4-block":    {".lz4b", func() pack.Encoder { return &lz4.BlockEncoder{} }},
}

// ExportFormats returns the names accepted by ExportImage.
func ExportFormats() []string {
	return []string{"text", "snappy", "snappy-frame", "lz4", "lz4-block"}
}

// ExportImage encodes the image called base and writes the parse in one of
// the block formats. It returns the name written.
func ExportImage(ctx context.Context, cfg Config, base, format, out string) (string, error) {
	ef, ok := exportFormats[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	src, err := imageio.Find(base)
	if err != nil {
		return "", err
	}
	pix, _, err := imageio.Load(src)
	if err != nil {
		return "", err
	}
	tokens, err := cfg.encode(ctx, pix)
	if err != nil {
		return "", err
	}
	b, err := pack.Export(nil, pix, tokens, ef.enc(), pack.MatchOptions{Addressing: cfg.Addressing})
	if err != nil {
		return "", err
	}
	if out == "" {
		out = base + ef.ext
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return "", err
	}
	cfg.Log.Info("image exported", logging.Fields{"format": format, "out": out, "size": len(b), "pixels": len(pix)})
	return out, nil
}

// Menu runs the interactive prompt: 1 encodes an image, 2 decodes a file.
func Menu(ctx context.Context, cfg Config, in io.Reader) error {
	r := bufio.NewReader(in)
	w := cfg.Stdout
	fmt.Fprintln(w, "1. Encode image")
	fmt.Fprintln(w, "2. Decode image")
	fmt.Fprint(w, "Choose 1 to encode or 2 to decode: ")
	choice, err := readLine(r)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		fmt.Fprint(w, "Image name without extension: ")
		name, err := readLine(r)
		if err != nil {
			return err
		}
		_, err = EncodeImage(ctx, cfg, name, "", "")
		return err
	case "2":
		fmt.Fprint(w, "Encoded file name: ")
		name, err := readLine(r)
		if err != nil {
			return err
		}
		cfg.Compression = CompressionFromName(name)
		_, err = DecodeImage(cfg, name, "")
		return err
	}
	return fmt.Errorf("app: invalid choice %q; enter 1 or 2", choice)
}

func readLine(r *bufio.Reader) (string, error) {
	s, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
