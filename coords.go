package doodle

import (
	"image"
	"math"

	"github.com/esimov/doodle/utils"
)

// Zoom limits and steps of the viewport.
const (
	MinZoom = 0.05
	MaxZoom = 20

	zoomInFactor  = 1.2
	zoomOutFactor = 0.8
)

// Point is a position in surface or viewport space.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point    { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point  { return Point{p.X * k, p.Y * k} }
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Round returns the nearest integer pixel position.
func (p Point) Round() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// ToSurfaceCoords maps a raw viewport position into surface space.
// The zoom factor should be positive.
func ToSurfaceCoords(raw, offset Point, zoom float64) Point {
	return Point{
		X: (raw.X - offset.X) / zoom,
		Y: (raw.Y - offset.Y) / zoom,
	}
}

// ToViewportCoords is the inverse of ToSurfaceCoords.
func ToViewportCoords(p, offset Point, zoom float64) Point {
	return Point{
		X: p.X*zoom + offset.X,
		Y: p.Y*zoom + offset.Y,
	}
}

// Viewport describes how the surface is placed on screen.
type Viewport struct {
	Offset Point
	Zoom   float64
}

// NewViewport returns a viewport with no offset and a zoom factor of 1.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ZoomIn enlarges the view by 20%, up to MaxZoom.
func (v *Viewport) ZoomIn() {
	v.setZoom(v.Zoom * zoomInFactor)
}

// ZoomOut shrinks the view by 20%, down to MinZoom.
func (v *Viewport) ZoomOut() {
	v.setZoom(v.Zoom * zoomOutFactor)
}

// ResetZoom restores the 100% zoom level.
func (v *Viewport) ResetZoom() {
	v.Zoom = 1
}

func (v *Viewport) setZoom(z float64) {
	v.Zoom = utils.Clamp(z, MinZoom, MaxZoom)
}

// Percent returns the zoom factor as a rounded percentage, as shown on the status bar.
func (v Viewport) Percent() int {
	return int(math.Round(v.Zoom * 100))
}

// ToSurface maps a raw pointer position into surface space.
func (v Viewport) ToSurface(raw Point) Point {
	return ToSurfaceCoords(raw, v.Offset, v.zoom())
}

// ToViewport maps a surface position back into viewport space.
func (v Viewport) ToViewport(p Point) Point {
	return ToViewportCoords(p, v.Offset, v.zoom())
}

// CursorPosition returns the surface position under the pointer rounded to whole pixels.
func (v Viewport) CursorPosition(raw Point) image.Point {
	return v.ToSurface(raw).Round()
}

// zoom guards against the zero value of Viewport.
func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}
