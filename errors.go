package pixely

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSource is returned when a config is built without a source.
	ErrMissingSource = errors.New("pixely: source parameter required")
	// ErrEmptySource is wrapped in a DecodeError when the source holds no bytes.
	ErrEmptySource = errors.New("pixely: empty source")
	// ErrUnsupportedShape means a decoded buffer has neither 3 nor 4 axes.
	ErrUnsupportedShape = errors.New("pixely: unsupported image shape")
	// ErrEmptyFrame means a frame has zero rows or zero columns.
	ErrEmptyFrame = errors.New("pixely: empty frame")
	// ErrRaggedFrame means the rows of a frame differ in length.
	ErrRaggedFrame = errors.New("pixely: frame rows differ in length")
	// ErrEmptyStyleSheet means there was no frame to derive styles from.
	ErrEmptyStyleSheet = errors.New("pixely: no frames to style")
	ErrInvalidScale    = errors.New("pixely: scale must be positive")
	ErrInvalidDuration = errors.New("pixely: animation duration must be positive")
	// ErrInvalidClassName means a scoping class name is not a plain CSS identifier.
	ErrInvalidClassName = errors.New("pixely: invalid class name")
)

// DecodeError reports a failure of the underlying image codec.
type DecodeError struct {
	Format string // Format sniffed from the header, if any
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("pixely: decoding %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("pixely: decoding image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
