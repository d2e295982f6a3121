//go:build !cgo

package doodle

import (
	"fmt"
	"image"
	"io"
)

func encodeWebp(io.Writer, image.Image, int) error {
	return fmt.Errorf("webp encoding requires cgo: %w", ErrUnsupportedFormat)
}
