package doodle

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/esimov/doodle/utils"
)

// Tool identifies the drawing instrument applied by the stroke renderer.
type Tool string

const (
	Pen    Tool = "pen"
	Marker Tool = "marker"
	Spray  Tool = "spray"
	Eraser Tool = "eraser"
)

// Brush width and opacity limits.
const (
	MinBrushSize = 1
	MaxBrushSize = 100
)

var (
	// ErrUnsupportedTool is returned when the requested tool is not one of the known tools.
	ErrUnsupportedTool = errors.New("unsupported tool")
	// ErrInvalidSize is returned for a non positive canvas dimension.
	ErrInvalidSize = errors.New("invalid canvas size")
)

var tools = []Tool{Pen, Marker, Spray, Eraser}

// ParseTool converts a tool name into a Tool.
func ParseTool(name string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(name)))
	if !utils.Contains(tools, t) {
		return "", fmt.Errorf("%q: %w", name, ErrUnsupportedTool)
	}
	return t, nil
}

// Style holds the paint parameters of a single stroke segment.
type Style struct {
	Color   color.NRGBA
	Width   float64
	Opacity float64
}

// DrawingConfig is the immutable set of drawing options in effect.
// The With* methods return a modified copy, leaving the receiver untouched.
type DrawingConfig struct {
	Tool       Tool
	Primary    color.NRGBA
	Secondary  color.NRGBA
	Background color.NRGBA
	BrushSize  float64
	Opacity    float64
}

// DefaultConfig returns the initial drawing options: black pen of size 10 on a white canvas.
func DefaultConfig() DrawingConfig {
	return DrawingConfig{
		Tool:       Pen,
		Primary:    color.NRGBA{A: 0xff},
		Secondary:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		BrushSize:  10,
		Opacity:    1,
	}
}

func (c DrawingConfig) WithTool(t Tool) DrawingConfig {
	c.Tool = t
	return c
}

func (c DrawingConfig) WithPrimary(col color.NRGBA) DrawingConfig {
	c.Primary = col
	return c
}

func (c DrawingConfig) WithSecondary(col color.NRGBA) DrawingConfig {
	c.Secondary = col
	return c
}

func (c DrawingConfig) WithBackground(col color.NRGBA) DrawingConfig {
	c.Background = col
	return c
}

// WithBrushSize sets the brush width, clamped to [MinBrushSize, MaxBrushSize].
func (c DrawingConfig) WithBrushSize(size float64) DrawingConfig {
	c.BrushSize = utils.Clamp(size, MinBrushSize, MaxBrushSize)
	return c
}

// WithOpacity sets the brush opacity, clamped to [0, 1].
func (c DrawingConfig) WithOpacity(opacity float64) DrawingConfig {
	c.Opacity = utils.Clamp(opacity, 0, 1)
	return c
}

// SwapColors exchanges the primary and the secondary color.
func (c DrawingConfig) SwapColors() DrawingConfig {
	c.Primary, c.Secondary = c.Secondary, c.Primary
	return c
}

// Style returns the stroke style derived from the configuration.
func (c DrawingConfig) Style() Style {
	return Style{
		Color:   c.Primary,
		Width:   c.BrushSize,
		Opacity: c.Opacity,
	}
}

// Validate checks the configuration values, which could have been set directly on the struct fields.
func (c DrawingConfig) Validate() error {
	if !utils.Contains(tools, c.Tool) {
		return fmt.Errorf("%q: %w", c.Tool, ErrUnsupportedTool)
	}
	if c.BrushSize < MinBrushSize || c.BrushSize > MaxBrushSize {
		return fmt.Errorf("brush size should be between %d and %d, got %v", MinBrushSize, MaxBrushSize, c.BrushSize)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity should be between 0 and 1, got %v", c.Opacity)
	}
	return nil
}
