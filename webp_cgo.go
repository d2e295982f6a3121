//go:build cgo

package doodle

import (
	"fmt"
	"image"
	"io"

	"github.com/kolesa-team/go-webp/encoder"
)

func encodeWebp(w io.Writer, img image.Image, quality int) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return fmt.Errorf("invalid webp options: %w", err)
	}
	enc, err := encoder.NewEncoder(img, opts)
	if err != nil {
		return fmt.Errorf("could not create the webp encoder: %w", err)
	}
	return enc.Encode(w)
}
