package utils

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtils_HexToNRGBA(t *testing.T) {
	testCases := []struct {
		hex  string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{A: 0xff}},
		{"#ffffff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"ff0000", color.NRGBA{R: 0xff, A: 0xff}},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}},
		{"#3366ff80", color.NRGBA{R: 0x33, G: 0x66, B: 0xff, A: 0x80}},
	}

	for _, tc := range testCases {
		t.Run(tc.hex, func(t *testing.T) {
			got, err := HexToNRGBA(tc.hex)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUtils_HexToNRGBAInvalid(t *testing.T) {
	for _, hex := range []string{"", "#12", "#12345", "#gggggg", "rgb(1,2,3)"} {
		_, err := HexToNRGBA(hex)
		assert.Error(t, err, hex)
	}
}

func TestUtils_NRGBAToHex(t *testing.T) {
	assert.Equal(t, "#ff8000", NRGBAToHex(color.NRGBA{R: 0xff, G: 0x80, A: 0xff}))
	assert.Equal(t, "#ff800040", NRGBAToHex(color.NRGBA{R: 0xff, G: 0x80, A: 0x40}))

	c, err := HexToNRGBA(NRGBAToHex(color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}))
	assert.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, c)
}

func TestUtils_MinMaxClamp(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 2.5, Max(2.5, -1.0))
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 10.0, Clamp(12.0, 1, 10))
	assert.Equal(t, 1.0, Clamp(-4.0, 1, 10))
	assert.Equal(t, 5.0, Clamp(5.0, 1, 10))
	assert.True(t, Contains([]string{"pen", "marker"}, "marker"))
	assert.False(t, Contains([]string{"pen", "marker"}, "brush"))
}
