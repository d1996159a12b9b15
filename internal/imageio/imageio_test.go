package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgbpack/pack"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 80), B: 7, A: 0xff})
		}
	}
	return img
}

func writePNG(t *testing.T, name string, img image.Image) {
	t.Helper()
	fh, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	if err := png.Encode(fh, img); err != nil {
		t.Fatal(err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "cat")

	if _, err := Find(base); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	writePNG(t, base+".bmp", testImage())
	writePNG(t, base+".jpg", testImage())
	got, err := Find(base)
	if err != nil {
		t.Fatal(err)
	}
	if got != base+".jpg" {
		t.Fatalf("got %s, want the .jpg", got)
	}
}

func TestLoadFlattens(t *testing.T) {
	name := filepath.Join(t.TempDir(), "img.png")
	writePNG(t, name, testImage())

	pix, shape, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if shape != (pack.Shape{Height: 3, Width: 5, Channels: 3}) {
		t.Fatalf("shape %v", shape)
	}
	// Row 1, column 2.
	i := (1*5 + 2) * 3
	if want := []byte{100, 80, 7}; !bytes.Equal(pix[i:i+3], want) {
		t.Fatalf("pixel (2,1) = %v, want %v", pix[i:i+3], want)
	}
}

func TestSaveLoadLossless(t *testing.T) {
	pix, shape := Flatten(testImage())
	for _, ext := range []string{".png", ".bmp"} {
		name := filepath.Join(t.TempDir(), "out"+ext)
		if err := Save(name, pix, shape); err != nil {
			t.Fatalf("%s: %v", ext, err)
		}
		got, gotShape, err := Load(name)
		if err != nil {
			t.Fatalf("%s: %v", ext, err)
		}
		if gotShape != shape || !bytes.Equal(got, pix) {
			t.Fatalf("%s: image doesn't round-trip", ext)
		}
	}
}

func TestSaveJPEG(t *testing.T) {
	pix, shape := Flatten(testImage())
	name := filepath.Join(t.TempDir(), "out.jpg")
	if err := Save(name, pix, shape); err != nil {
		t.Fatal(err)
	}
	_, gotShape, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if gotShape != shape {
		t.Fatalf("shape %v, want %v", gotShape, shape)
	}
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	shape := pack.Shape{Height: 2, Width: 2, Channels: 3}
	if err := Save(filepath.Join(dir, "a.png"), make([]byte, 11), shape); !errors.Is(err, ErrPixelLength) {
		t.Fatalf("want ErrPixelLength, got %v", err)
	}
	if err := Save(filepath.Join(dir, "a.gif"), make([]byte, 12), shape); !errors.Is(err, ErrFormat) {
		t.Fatalf("want ErrFormat, got %v", err)
	}
	if err := Save(filepath.Join(dir, "a.png"), make([]byte, 8), pack.Shape{Height: 2, Width: 2, Channels: 2}); !errors.Is(err, ErrShape) {
		t.Fatalf("want ErrShape, got %v", err)
	}
}

func TestNames(t *testing.T) {
	if got := EncodedName("photos/cat"); got != "photos/cat-encode.txt" {
		t.Fatalf("EncodedName: %s", got)
	}
	if got := DecodedName(filepath.Join("my-photos", "cat-encode.txt")); got != filepath.Join("my-photos", "cat-decoded_image.jpg") {
		t.Fatalf("DecodedName: %s", got)
	}
}
