package pack

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange    = errors.New("pack: back-reference out of range")
	ErrShapeMismatch = errors.New("pack: decoded length does not match shape")
	ErrWindowSize    = errors.New("pack: window size must be positive")
)

// An OutOfRangeError reports a match token that points before the start of
// the output, or past what has been decoded so far.
type OutOfRangeError struct {
	Token     int // index of the offending token
	Offset    int
	Length    int
	OutputLen int // decoded length when the token was reached
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("pack: token %d: offset %d (length %d) out of range for %d decoded symbols",
		e.Token, e.Offset, e.Length, e.OutputLen)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// A ShapeError reports a decoded stream whose length does not fill the
// declared shape.
type ShapeError struct {
	Shape Shape
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("pack: decoded %d symbols, shape %v needs %d", e.Got, e.Shape, e.Shape.Size())
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }
