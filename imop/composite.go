// Package imop implements the Porter-Duff composition operations
// used for painting a brush onto the drawing surface.
//
// The image/draw core package composites in premultiplied 16-bit space and
// rounds differently depending on the destination type. The drawing surface
// is stored as non-premultiplied NRGBA, so the operations below work directly
// on 8-bit non-premultiplied samples. An opaque source composited over any
// backdrop therefore reproduces the source bytes exactly, which is what the
// snapshot restore relies on.
package imop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/doodle/utils"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
)

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp initializes a new Composite with source-over as the active operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Copy,
			SrcOver,
		},
	}
}

// Set activates one of the supported composition operations.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// DrawMask composites the uniform color c onto dst inside r.
// The mask acts as per pixel coverage: mask point mp is aligned with r.Min.
// A nil mask means full coverage.
func (op *Composite) DrawMask(dst *image.NRGBA, r image.Rectangle, c color.NRGBA, mask *image.Alpha, mp image.Point) {
	clip := r.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	mp = mp.Add(clip.Min.Sub(r.Min))

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		di := dst.PixOffset(clip.Min.X, y)
		for x := clip.Min.X; x < clip.Max.X; x++ {
			sa := uint32(c.A)
			if mask != nil {
				m := uint32(mask.AlphaAt(mp.X+x-clip.Min.X, mp.Y+y-clip.Min.Y).A)
				sa = (sa*m + 127) / 255
			}
			op.blend(dst.Pix[di:di+4:di+4], uint32(c.R), uint32(c.G), uint32(c.B), sa)
			di += 4
		}
	}
}

// DrawImage composites src onto dst inside r, with the source point sp aligned with r.Min.
func (op *Composite) DrawImage(dst *image.NRGBA, r image.Rectangle, src *image.NRGBA, sp image.Point) {
	clip := r.Intersect(dst.Bounds())
	// Restrict the rectangle to the part covered by the source.
	srcRect := src.Bounds().Sub(sp).Add(r.Min)
	clip = clip.Intersect(srcRect)
	if clip.Empty() {
		return
	}
	sp = sp.Add(clip.Min.Sub(r.Min))

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		di := dst.PixOffset(clip.Min.X, y)
		si := src.PixOffset(sp.X, sp.Y+y-clip.Min.Y)
		for x := clip.Min.X; x < clip.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			op.blend(dst.Pix[di:di+4:di+4], uint32(s[0]), uint32(s[1]), uint32(s[2]), uint32(s[3]))
			di += 4
			si += 4
		}
	}
}

// blend applies the active operation to a single non-premultiplied destination pixel.
func (op *Composite) blend(d []uint8, sr, sg, sb, sa uint32) {
	switch op.current {
	case Copy:
		d[0], d[1], d[2], d[3] = uint8(sr), uint8(sg), uint8(sb), uint8(sa)
	case SrcOver:
		if sa == 0 {
			return
		}
		if sa == 0xff {
			d[0], d[1], d[2], d[3] = uint8(sr), uint8(sg), uint8(sb), 0xff
			return
		}
		da := uint32(d[3])
		// All the intermediate values are scaled by 255*255.
		dw := da * (0xff - sa)
		outA := sa*0xff + dw
		if outA == 0 {
			d[0], d[1], d[2], d[3] = 0, 0, 0, 0
			return
		}
		half := outA / 2
		d[0] = uint8((sr*sa*0xff + uint32(d[0])*dw + half) / outA)
		d[1] = uint8((sg*sa*0xff + uint32(d[1])*dw + half) / outA)
		d[2] = uint8((sb*sa*0xff + uint32(d[2])*dw + half) / outA)
		d[3] = uint8((outA + 127) / 0xff)
	}
}
