package pack

import "fmt"

// Shape is the (height, width, channels) layout a flat symbol stream came
// from.
type Shape struct {
	Height   int
	Width    int
	Channels int
}

// MaxSize is the largest number of symbols a valid Shape may hold.
const MaxSize = 1<<31 - 1

// Size returns the number of symbols an image of this shape holds.
func (s Shape) Size() int {
	return s.Height * s.Width * s.Channels
}

// Valid reports whether every dimension is positive and Size is at most
// MaxSize.
func (s Shape) Valid() bool {
	if s.Height <= 0 || s.Width <= 0 || s.Channels <= 0 {
		return false
	}
	return s.Height <= MaxSize/s.Width && s.Height*s.Width <= MaxSize/s.Channels
}

func (s Shape) String() string {
	return fmt.Sprintf("%d,%d,%d", s.Height, s.Width, s.Channels)
}
