package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_Basic(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())

	assert.NoError(op.Set(Copy))
	assert.Equal(Copy, op.Get())

	assert.Error(op.Set("unsupported_composite_operation"))
	assert.Equal(Copy, op.Get())
}

func TestComp_SrcOverOpaque(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	dst := image.NewNRGBA(rect)
	draw.Draw(dst, rect, &image.Uniform{white}, image.Point{}, draw.Src)

	op.DrawMask(dst, image.Rect(0, 4, 6, 10), cyan, nil, image.Point{})

	assert.EqualValues(white, dst.NRGBAAt(9, 0))
	assert.EqualValues(cyan, dst.NRGBAAt(0, 9))
	assert.EqualValues(cyan, dst.NRGBAAt(5, 5))
	assert.EqualValues(white, dst.NRGBAAt(6, 5))
}

func TestComp_SrcOverTranslucent(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	rect := image.Rect(0, 0, 1, 1)
	dst := image.NewNRGBA(rect)
	draw.Draw(dst, rect, &image.Uniform{color.White}, image.Point{}, draw.Src)

	half := color.NRGBA{A: 128}
	op.DrawMask(dst, rect, half, nil, image.Point{})
	first := dst.NRGBAAt(0, 0)
	assert.EqualValues(0xff, first.A, "painting over an opaque backdrop keeps it opaque")
	assert.InDelta(127, int(first.R), 1)

	// A second pass over the same pixel must darken it further.
	op.DrawMask(dst, rect, half, nil, image.Point{})
	second := dst.NRGBAAt(0, 0)
	assert.Less(second.R, first.R)
	assert.InDelta(63, int(second.R), 1)
}

func TestComp_SrcOverTransparentBackdrop(t *testing.T) {
	op := InitOp()

	rect := image.Rect(0, 0, 1, 1)
	dst := image.NewNRGBA(rect)

	op.DrawMask(dst, rect, color.NRGBA{R: 200, G: 100, B: 50, A: 100}, nil, image.Point{})
	assert.EqualValues(t, color.NRGBA{R: 200, G: 100, B: 50, A: 100}, dst.NRGBAAt(0, 0))
}

func TestComp_DrawMaskCoverage(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	rect := image.Rect(0, 0, 3, 1)
	dst := image.NewNRGBA(rect)
	draw.Draw(dst, rect, &image.Uniform{color.White}, image.Point{}, draw.Src)

	mask := image.NewAlpha(image.Rect(0, 0, 3, 1))
	mask.SetAlpha(0, 0, color.Alpha{A: 0})
	mask.SetAlpha(1, 0, color.Alpha{A: 128})
	mask.SetAlpha(2, 0, color.Alpha{A: 255})

	black := color.NRGBA{A: 0xff}
	op.DrawMask(dst, rect, black, mask, image.Point{})

	assert.EqualValues(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, dst.NRGBAAt(0, 0))
	assert.InDelta(127, int(dst.NRGBAAt(1, 0).R), 1)
	assert.EqualValues(black, dst.NRGBAAt(2, 0))
}

func TestComp_DrawMaskClipped(t *testing.T) {
	op := InitOp()
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	red := color.NRGBA{R: 0xff, A: 0xff}

	// Partially outside of the destination: only the overlapping pixels are touched.
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	draw.Draw(mask, mask.Bounds(), image.Opaque, image.Point{}, draw.Src)
	op.DrawMask(dst, image.Rect(-2, -2, 2, 2), red, mask, image.Point{})

	assert.EqualValues(t, red, dst.NRGBAAt(0, 0))
	assert.EqualValues(t, red, dst.NRGBAAt(1, 1))
	assert.EqualValues(t, color.NRGBA{}, dst.NRGBAAt(2, 2))
}

func TestComp_DrawImage(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(src, image.Rect(0, 0, 2, 4), &image.Uniform{magenta}, image.Point{}, draw.Src)

	op.DrawImage(dst, dst.Bounds(), src, image.Point{})

	assert.EqualValues(magenta, dst.NRGBAAt(0, 0))
	assert.EqualValues(magenta, dst.NRGBAAt(1, 3))
	// Transparent source pixels leave the backdrop untouched.
	assert.EqualValues(white, dst.NRGBAAt(3, 3))
	// Outside of the source bounds nothing changes.
	assert.EqualValues(white, dst.NRGBAAt(5, 5))

	assert.NoError(op.Set(Copy))
	op.DrawImage(dst, dst.Bounds(), src, image.Point{})
	assert.EqualValues(color.NRGBA{}, dst.NRGBAAt(3, 3))
	assert.EqualValues(white, dst.NRGBAAt(5, 5))
}
