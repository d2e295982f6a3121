package doodle

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"
	"time"

	"github.com/esimov/doodle/utils"
	"golang.org/x/image/vector"
)

// kappa is the control point distance of a cubic Bézier curve approximating a quarter circle.
const kappa = 0.5522847498

const (
	markerWidthFactor   = 2
	markerOpacityFactor = 0.3
	sprayDotRadius      = 1
)

// Renderer turns stroke segments into pixel modifications of a surface.
// The only state it holds is the random source used by the spray tool,
// a reusable rasterizer and its coverage mask, so it must not be shared between goroutines.
type Renderer struct {
	rng  *rand.Rand
	ras  *vector.Rasterizer
	mask *image.Alpha
}

// NewRenderer creates a new stroke renderer. A nil source is replaced by a time seeded one.
func NewRenderer(src rand.Source) *Renderer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Renderer{
		rng:  rand.New(src),
		ras:  vector.NewRasterizer(0, 0),
		mask: image.NewAlpha(image.Rectangle{}),
	}
}

// ApplySegment renders the segment going from prev to curr with the provided tool and style.
// A segment where prev equals curr produces a round dot. For an unknown tool
// the surface is left untouched and ErrUnsupportedTool is returned.
func (r *Renderer) ApplySegment(s *Surface, tool Tool, style Style, prev, curr Point) error {
	if !utils.Contains(tools, tool) {
		return fmt.Errorf("%q: %w", tool, ErrUnsupportedTool)
	}
	if style.Width <= 0 {
		return nil
	}

	switch tool {
	case Pen:
		r.stroke(s, prev, curr, style.Width, paintColor(style.Color, style.Opacity))
	case Marker:
		r.stroke(s, prev, curr, style.Width*markerWidthFactor,
			paintColor(style.Color, style.Opacity*markerOpacityFactor))
	case Spray:
		col := paintColor(style.Color, style.Opacity)
		for _, dot := range sprayDots(r.rng, curr, style.Width) {
			r.stroke(s, dot, dot, sprayDotRadius*2, col)
		}
	case Eraser:
		// The eraser paints with the page color instead of punching through the alpha channel.
		r.stroke(s, prev, curr, style.Width, paintColor(s.Background(), style.Opacity))
	}
	return nil
}

// stroke paints a round capped line of the given width between p0 and p1.
func (r *Renderer) stroke(s *Surface, p0, p1 Point, width float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	radius := width / 2
	rect := segmentBounds(p0, p1, radius).Intersect(s.Bounds())
	if rect.Empty() {
		return
	}
	// Keep the path coordinates small enough for the float32 rasterizer.
	margin := radius + 1
	p0, p1, ok := clipSegment(p0, p1,
		Point{X: float64(rect.Min.X) - margin, Y: float64(rect.Min.Y) - margin},
		Point{X: float64(rect.Max.X) + margin, Y: float64(rect.Max.Y) + margin},
	)
	if !ok {
		return
	}
	w, h := rect.Dx(), rect.Dy()

	r.ras.Reset(w, h)
	r.ras.DrawOp = draw.Src

	origin := Point{X: float64(rect.Min.X), Y: float64(rect.Min.Y)}
	capsule(r.ras, p0.Sub(origin), p1.Sub(origin), radius)

	mask := r.coverage(w, h)
	r.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	s.drawMask(rect, col, mask)
}

// coverage returns the renderer's mask resized to w x h, growing its buffer only when needed.
// The rasterizer overwrites every mask pixel, so the previous content is left as is.
func (r *Renderer) coverage(w, h int) *image.Alpha {
	n := w * h
	if cap(r.mask.Pix) < n {
		r.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return r.mask
	}
	r.mask.Pix = r.mask.Pix[:n]
	r.mask.Stride = w
	r.mask.Rect = image.Rect(0, 0, w, h)

	return r.mask
}

// clipSegment cuts the segment to the part lying inside the box spanned by lo and hi
// (Liang-Barsky). It returns false if the segment misses the box.
func clipSegment(p0, p1, lo, hi Point) (Point, Point, bool) {
	d := p1.Sub(p0)
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-d.X, p0.X - lo.X},
		{d.X, hi.X - p0.X},
		{-d.Y, p0.Y - lo.Y},
		{d.Y, hi.Y - p0.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p0, p1, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return p0, p1, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return p0, p1, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return p0.Add(d.Mul(t0)), p0.Add(d.Mul(t1)), true
}

// sprayDots returns width*2 points scattered uniformly by angle and distance
// inside the circle of radius width/2 centered on the anchor.
func sprayDots(rng *rand.Rand, anchor Point, width float64) []Point {
	n := int(math.Round(width * 2))
	radius := width / 2

	dots := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * radius
		dots = append(dots, Point{
			X: anchor.X + math.Cos(angle)*dist,
			Y: anchor.Y + math.Sin(angle)*dist,
		})
	}
	return dots
}

// paintColor returns c with its alpha scaled by the opacity.
func paintColor(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = utils.Clamp(opacity, 0, 1)
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

// segmentBounds returns the pixel rectangle enclosing the capsule around the segment.
func segmentBounds(p0, p1 Point, radius float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(math.Min(p0.X, p1.X)-radius))-1,
		int(math.Floor(math.Min(p0.Y, p1.Y)-radius))-1,
		int(math.Ceil(math.Max(p0.X, p1.X)+radius))+1,
		int(math.Ceil(math.Max(p0.Y, p1.Y)+radius))+1,
	)
}

// capsule adds the outline of a rectangle closed by two half circles to the rasterizer.
// A zero length segment degenerates into a full circle.
func capsule(ras *vector.Rasterizer, p0, p1 Point, radius float64) {
	d := p1.Sub(p0)
	length := math.Hypot(d.X, d.Y)
	if length < 1e-6 {
		circle(ras, p0, radius)
		return
	}
	d = d.Mul(1 / length)
	n := Point{X: -d.Y, Y: d.X}

	moveTo(ras, p0.Add(n.Mul(radius)))
	lineTo(ras, p1.Add(n.Mul(radius)))
	quarterArc(ras, p1, n, d, radius)
	quarterArc(ras, p1, d, n.Mul(-1), radius)
	lineTo(ras, p0.Sub(n.Mul(radius)))
	quarterArc(ras, p0, n.Mul(-1), d.Mul(-1), radius)
	quarterArc(ras, p0, d.Mul(-1), n, radius)
	ras.ClosePath()
}

// circle adds a closed circle outline made of four quarter arcs.
func circle(ras *vector.Rasterizer, c Point, radius float64) {
	ux, uy := Point{X: 1}, Point{Y: 1}

	moveTo(ras, c.Add(ux.Mul(radius)))
	quarterArc(ras, c, ux, uy, radius)
	quarterArc(ras, c, uy, ux.Mul(-1), radius)
	quarterArc(ras, c, ux.Mul(-1), uy.Mul(-1), radius)
	quarterArc(ras, c, uy.Mul(-1), ux, radius)
	ras.ClosePath()
}

// quarterArc continues the path from c+u*radius to c+v*radius, where u and v are
// perpendicular unit vectors.
func quarterArc(ras *vector.Rasterizer, c, u, v Point, radius float64) {
	a := c.Add(u.Mul(radius))
	b := c.Add(v.Mul(radius))
	c1 := a.Add(v.Mul(kappa * radius))
	c2 := b.Add(u.Mul(kappa * radius))

	ras.CubeTo(
		float32(c1.X), float32(c1.Y),
		float32(c2.X), float32(c2.Y),
		float32(b.X), float32(b.Y),
	)
}

func moveTo(ras *vector.Rasterizer, p Point) {
	ras.MoveTo(float32(p.X), float32(p.Y))
}

func lineTo(ras *vector.Rasterizer, p Point) {
	ras.LineTo(float32(p.X), float32(p.Y))
}
