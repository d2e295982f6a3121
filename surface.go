package doodle

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/doodle/imop"
)

// Surface is the fixed size raster buffer holding the current drawing.
// The origin is always at (0, 0).
type Surface struct {
	img *image.NRGBA
	bg  color.NRGBA

	fill *imop.Composite
	over *imop.Composite
}

// NewSurface creates a new surface of the provided size filled with the background color.
func NewSurface(width, height int, bg color.NRGBA) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	fill := imop.InitOp()
	if err := fill.Set(imop.Copy); err != nil {
		return nil, err
	}
	s := &Surface{
		img:  image.NewNRGBA(image.Rect(0, 0, width, height)),
		bg:   bg,
		fill: fill,
		over: imop.InitOp(),
	}
	s.Clear()

	return s, nil
}

// Image returns the live pixel buffer. It should be treated as read only,
// the surface is modified only through the stroke renderer and the history.
func (s *Surface) Image() *image.NRGBA {
	return s.img
}

// Bounds returns the surface bounds.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Background returns the page color the surface is cleared and erased with.
func (s *Surface) Background() color.NRGBA {
	return s.bg
}

// SetBackground changes the background color without touching the pixels.
func (s *Surface) SetBackground(c color.NRGBA) {
	s.bg = c
}

// Fill replaces every pixel with c.
func (s *Surface) Fill(c color.NRGBA) {
	s.fill.DrawMask(s.img, s.img.Bounds(), c, nil, image.Point{})
}

// Clear fills the surface with the background color.
func (s *Surface) Clear() {
	s.Fill(s.bg)
}

// DrawImage composites src over the surface with its top-left corner placed at pt.
// The parts falling outside of the surface are clipped.
func (s *Surface) DrawImage(src *image.NRGBA, pt image.Point) {
	r := image.Rectangle{Min: pt, Max: pt.Add(src.Bounds().Size())}
	s.over.DrawImage(s.img, r, src, src.Bounds().Min)
}

// drawMask paints the uniform color c through the coverage mask placed at r.
func (s *Surface) drawMask(r image.Rectangle, c color.NRGBA, mask *image.Alpha) {
	s.over.DrawMask(s.img, r, c, mask, mask.Bounds().Min)
}

// Restore replaces the surface contents with the snapshot. The surface is filled
// with the background color first, then the snapshot pixels are copied at the origin,
// clipped to the surface bounds. A corrupt snapshot leaves the background only.
func (s *Surface) Restore(snap *Snapshot) error {
	s.Clear()
	if err := snap.validate(); err != nil {
		return err
	}
	// Copy instead of compositing, so that translucent pixels come back unchanged.
	s.fill.DrawImage(s.img, snap.img.Bounds(), snap.img, image.Point{})

	return nil
}
