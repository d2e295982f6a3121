package doodle

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// encodePDF writes a single page document sized to the image, one point per pixel,
// carrying the image as a lossless PNG raster.
func encodePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("%dx%d: %w", b.Dx(), b.Dy(), ErrInvalidSize)
	}
	width, height := float64(b.Dx()), float64(b.Dy())

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("drawing", opts, &buf)
	pdf.ImageOptions("drawing", 0, 0, width, height, false, opts, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("could not create the pdf document: %w", err)
	}
	return pdf.Output(w)
}
