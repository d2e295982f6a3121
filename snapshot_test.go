package doodle

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_ShouldRestorePixelIdentical(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 30, 20)
	r := NewRenderer(nil)
	assert.NoError(r.ApplySegment(s, Pen, Style{Color: red, Width: 5, Opacity: 0.7}, Point{X: 2, Y: 3}, Point{X: 25, Y: 17}))
	assert.NoError(r.ApplySegment(s, Marker, Style{Color: black, Width: 3, Opacity: 1}, Point{X: 25, Y: 2}, Point{X: 2, Y: 17}))
	want := pixels(s)

	snap := NewSnapshot(s)
	s.Fill(color.NRGBA{B: 0xff, A: 0xff})
	assert.NotEqual(want, pixels(s))

	assert.NoError(s.Restore(snap))
	assert.Equal(want, pixels(s))
}

func TestSnapshot_ShouldBeImmutable(t *testing.T) {
	s := newTestSurface(t, 4, 4)
	snap := NewSnapshot(s)

	s.Fill(red)
	assert.EqualValues(t, white, snap.Image().NRGBAAt(0, 0))

	img := snap.Image()
	img.SetNRGBA(0, 0, red)
	assert.EqualValues(t, white, snap.Image().NRGBAAt(0, 0))
}

func TestSnapshot_EncodeDecode(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 12, 9)
	r := NewRenderer(nil)
	assert.NoError(r.ApplySegment(s, Pen, Style{Color: red, Width: 3, Opacity: 0.4}, Point{X: 1, Y: 1}, Point{X: 10, Y: 8}))
	snap := NewSnapshot(s)

	var buf bytes.Buffer
	assert.NoError(snap.Encode(&buf))

	decoded, err := DecodeSnapshot(&buf, white)
	assert.NoError(err)
	assert.NotEqual(snap.ID, decoded.ID)
	assert.Equal(snap.Image().Pix, decoded.Image().Pix)
}

func TestSnapshot_CorruptShouldLeaveBackground(t *testing.T) {
	assert := assert.New(t)

	s := newTestSurface(t, 8, 8)
	s.Fill(red)

	err := s.Restore(&Snapshot{})
	assert.ErrorIs(err, ErrCorruptSnapshot)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.EqualValues(white, s.Image().NRGBAAt(x, y))
		}
	}

	truncated := &Snapshot{img: &image.NRGBA{Rect: image.Rect(0, 0, 8, 8), Stride: 32, Pix: make([]uint8, 10)}}
	assert.ErrorIs(s.Restore(truncated), ErrCorruptSnapshot)

	_, err = DecodeSnapshot(bytes.NewReader([]byte{0x89, 'P', 'N', 'G', 0, 1, 2}), white)
	assert.ErrorIs(err, ErrCorruptSnapshot)
}

func TestSnapshot_RestoreClipsLargerSnapshot(t *testing.T) {
	assert := assert.New(t)

	big := newTestSurface(t, 20, 20)
	big.Fill(red)
	snap := NewSnapshot(big)

	small := newTestSurface(t, 5, 5)
	assert.NoError(small.Restore(snap))
	assert.EqualValues(red, small.Image().NRGBAAt(4, 4))
}
