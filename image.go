package doodle

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Format is an export file format.
type Format int

const (
	PNG Format = iota
	JPEG
	WEBP
	BMP
	PDF
)

// DefaultQuality is used for the lossy formats when no valid quality is given.
const DefaultQuality = 90

var (
	// ErrUnsupportedFormat is returned for an unknown or unavailable file format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrNotImage is returned when the imported content is not a decodable image.
	ErrNotImage = errors.New("not an image")
)

var formats = map[string]Format{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"webp": WEBP,
	"bmp":  BMP,
	"pdf":  PDF,
}

// ParseFormat returns the format matching the name, which is case insensitive and may contain a leading dot.
func ParseFormat(name string) (Format, error) {
	f, ok := formats[strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")]
	if !ok {
		return PNG, fmt.Errorf("%q: %w", name, ErrUnsupportedFormat)
	}
	return f, nil
}

// FormatFromPath derives the format from the file extension. A path without extension defaults to PNG.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return PNG, nil
	}
	return ParseFormat(ext)
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case WEBP:
		return "WEBP"
	case BMP:
		return "BMP"
	case PDF:
		return "PDF"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension, without the leading dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return "jpg"
	case WEBP:
		return "webp"
	case BMP:
		return "bmp"
	case PDF:
		return "pdf"
	}
	return "png"
}

func (f Format) MimeType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case WEBP:
		return "image/webp"
	case BMP:
		return "image/bmp"
	case PDF:
		return "application/pdf"
	}
	return "image/png"
}

// Encode writes the image to w in the requested format.
// The quality is used by the lossy formats and should be between 1 and 100.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	switch f {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case BMP:
		return imaging.Encode(w, img, imaging.BMP)
	case WEBP:
		return encodeWebp(w, img, quality)
	case PDF:
		return encodePDF(w, img)
	}
	return fmt.Errorf("%v: %w", f, ErrUnsupportedFormat)
}

// Decode reads an image in any of the supported input formats.
// It returns a nil image and no error when the reader holds no data at all.
func Decode(r io.Reader) (*image.NRGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read the image: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
		}
		return nil, fmt.Errorf("could not decode the image: %w", err)
	}

	return imgToNRGBA(img), nil
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
