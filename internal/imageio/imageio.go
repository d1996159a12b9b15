// Package imageio moves images in and out of the flat, row-major symbol
// streams the codec works on.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgbpack/pack"
	"golang.org/x/image/bmp"
)

// Extensions are tried in this order by Find.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

var (
	ErrNotFound    = errors.New("imageio: no image file found")
	ErrFormat      = errors.New("imageio: unsupported output format")
	ErrShape       = errors.New("imageio: unsupported channel count")
	ErrPixelLength = errors.New("imageio: pixel data does not match shape")
)

// Find returns the first of base+ext, for ext in Extensions, that exists.
func Find(base string) (string, error) {
	for _, ext := range Extensions {
		name := base + ext
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s{%s}", ErrNotFound, base, strings.Join(Extensions, ","))
}

// Load decodes the named image and returns its pixels as row-major RGB
// triples, with alpha dropped.
func Load(name string) ([]byte, pack.Shape, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, pack.Shape{}, err
	}
	defer fh.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bmp":
		img, err = bmp.Decode(fh)
	case ".png":
		img, err = png.Decode(fh)
	default:
		img, err = jpeg.Decode(fh)
	}
	if err != nil {
		return nil, pack.Shape{}, fmt.Errorf("imageio: %s: %w", name, err)
	}
	pix, shape := Flatten(img)
	return pix, shape, nil
}

// Flatten converts img to row-major RGB.
func Flatten(img image.Image) ([]byte, pack.Shape) {
	b := img.Bounds()
	shape := pack.Shape{Height: b.Dy(), Width: b.Dx(), Channels: 3}
	pix := make([]byte, 0, shape.Size())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B)
		}
	}
	return pix, shape
}

// Reshape builds an image from row-major pixel data. One channel gives a
// gray image, three RGB, and four RGBA.
func Reshape(pix []byte, shape pack.Shape) (image.Image, error) {
	if len(pix) != shape.Size() || !shape.Valid() {
		return nil, fmt.Errorf("%w: %d bytes for %v", ErrPixelLength, len(pix), shape)
	}
	r := image.Rect(0, 0, shape.Width, shape.Height)
	switch shape.Channels {
	case 1:
		img := image.NewGray(r)
		copy(img.Pix, pix)
		return img, nil
	case 3:
		img := image.NewNRGBA(r)
		for i, j := 0, 0; i < len(pix); i, j = i+3, j+4 {
			img.Pix[j] = pix[i]
			img.Pix[j+1] = pix[i+1]
			img.Pix[j+2] = pix[i+2]
			img.Pix[j+3] = 0xff
		}
		return img, nil
	case 4:
		img := image.NewNRGBA(r)
		copy(img.Pix, pix)
		return img, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrShape, shape.Channels)
}

// Save writes pix as an image. The format follows the extension of name:
// .jpg or .jpeg, .png, or .bmp.
func Save(name string, pix []byte, shape pack.Shape) error {
	img, err := Reshape(pix, shape)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".bmp":
	default:
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	switch ext {
	case ".png":
		err = png.Encode(fh, img)
	case ".bmp":
		err = bmp.Encode(fh, img)
	default:
		err = jpeg.Encode(fh, img, &jpeg.Options{Quality: 75})
	}
	if err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// EncodedName returns the token file name for an image base name.
func EncodedName(base string) string {
	return base + "-encode.txt"
}

// DecodedName returns the name of the image rebuilt from an encoded file:
// everything in the file name before the first '-', plus
// "-decoded_image.jpg".
func DecodedName(encoded string) string {
	dir, file := filepath.Split(encoded)
	stem, _, _ := strings.Cut(file, "-")
	return filepath.Join(dir, stem+"-decoded_image.jpg")
}
