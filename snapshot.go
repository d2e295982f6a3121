package doodle

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrCorruptSnapshot is returned when a snapshot cannot be decoded or painted back.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is an immutable, fully rendered copy of the surface together with
// the page color it was drawn on. Restoring it brings that page color back.
type Snapshot struct {
	ID         uuid.UUID
	Background color.NRGBA

	img *image.NRGBA
}

// NewSnapshot captures the current surface pixels.
func NewSnapshot(s *Surface) *Snapshot {
	return &Snapshot{
		ID:         uuid.New(),
		Background: s.Background(),
		img:        imaging.Clone(s.Image()),
	}
}

// Image returns a copy of the captured pixels.
func (s *Snapshot) Image() *image.NRGBA {
	if s.img == nil {
		return nil
	}
	return imaging.Clone(s.img)
}

// Bounds returns the captured surface bounds.
func (s *Snapshot) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Encode writes the snapshot as a PNG image.
func (s *Snapshot) Encode(w io.Writer) error {
	if err := s.validate(); err != nil {
		return err
	}
	return imaging.Encode(w, s.img, imaging.PNG)
}

// DecodeSnapshot reads back a snapshot written by Encode.
func DecodeSnapshot(r io.Reader, bg color.NRGBA) (*Snapshot, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &Snapshot{
		ID:         uuid.New(),
		Background: bg,
		img:        imgToNRGBA(img),
	}, nil
}

func (s *Snapshot) validate() error {
	if s == nil || s.img == nil {
		return fmt.Errorf("%w: missing pixel data", ErrCorruptSnapshot)
	}
	b := s.img.Bounds()
	if b.Empty() || len(s.img.Pix) < s.img.PixOffset(b.Max.X-1, b.Max.Y-1)+4 {
		return fmt.Errorf("%w: truncated pixel data", ErrCorruptSnapshot)
	}
	return nil
}
