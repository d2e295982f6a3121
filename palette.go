package doodle

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

const (
	// BrushSizeStep is the brush size change of a single grow or shrink action.
	BrushSizeStep = 2
	// OpacityStep is the opacity change of a single increase or decrease action.
	OpacityStep = 0.1
)

// ErrUnknownPreset is returned when selecting a color outside of the palette.
var ErrUnknownPreset = errors.New("unknown color preset")

// Palette holds the preset brush colors, in the order they are bound to the number keys 1 to 9 and 0.
var Palette = []color.NRGBA{
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff}, // black
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	{R: 0x00, G: 0xff, B: 0x00, A: 0xff}, // green
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	{R: 0xff, G: 0xff, B: 0x00, A: 0xff}, // yellow
	{R: 0xff, G: 0x00, B: 0xff, A: 0xff}, // magenta
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // cyan
	{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, // orange
	{R: 0x80, G: 0x00, B: 0x80, A: 0xff}, // purple
}

// BackgroundPalette holds the page colors cycled by the background action.
var BackgroundPalette = []color.NRGBA{
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0xf5, G: 0xf0, B: 0xe1, A: 0xff},
	{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
	{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
}

// SetBrushSize changes the brush width, clamped to [MinBrushSize, MaxBrushSize].
func (s *Session) SetBrushSize(size float64) error {
	return s.SetConfig(s.config.WithBrushSize(size))
}

// SetOpacity changes the brush opacity, clamped to [0, 1].
func (s *Session) SetOpacity(opacity float64) error {
	// Round away the drift of repeated steps.
	return s.SetConfig(s.config.WithOpacity(math.Round(opacity*100) / 100))
}

// SetPrimary changes the color the tools paint with.
func (s *Session) SetPrimary(c color.NRGBA) error {
	return s.SetConfig(s.config.WithPrimary(c))
}

// SetSecondary changes the alternative color.
func (s *Session) SetSecondary(c color.NRGBA) error {
	return s.SetConfig(s.config.WithSecondary(c))
}

// SelectPreset makes the i-th palette color the primary color.
func (s *Session) SelectPreset(i int) error {
	if i < 0 || i >= len(Palette) {
		return fmt.Errorf("%d: %w", i, ErrUnknownPreset)
	}
	return s.SetPrimary(Palette[i])
}

// NextBackground switches the page to the color following the current one in BackgroundPalette.
// Like SetBackground, it fills the whole surface and captures the result.
func (s *Session) NextBackground() {
	next := BackgroundPalette[0]
	for i, c := range BackgroundPalette {
		if c == s.config.Background {
			next = BackgroundPalette[(i+1)%len(BackgroundPalette)]
			break
		}
	}
	s.SetBackground(next)
}
