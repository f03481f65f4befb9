package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

type pt struct{ x, y float32 }

// shape is a set of closed polygons filled together with the non-zero rule.
// Keeping each fill's mask clipped to the shape bounds keeps per-fill cost
// proportional to the shape, not the frame.
type shape struct {
	polys [][]pt
}

func (s *shape) add(poly []pt) {
	if len(poly) >= 3 {
		s.polys = append(s.polys, poly)
	}
}

// segment adds a stroke of width w from a to b. Every segment quad winds the
// same way, so overlapping segments never cancel.
func (s *shape) segment(a, b pt, w float32) {
	dx, dy := b.x-a.x, b.y-a.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	s.add([]pt{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	})
}

func (s *shape) polyline(pts []pt, w float32) {
	for i := 1; i < len(pts); i++ {
		s.segment(pts[i-1], pts[i], w)
	}
}

func circlePoly(cx, cy, r float32, reverse bool) []pt {
	n := int(math.Max(24, math.Min(256, float64(r))))
	poly := make([]pt, n)
	for i := range poly {
		a := 2 * math.Pi * float64(i) / float64(n)
		if reverse {
			a = -a
		}
		poly[i] = pt{cx + r*float32(math.Cos(a)), cy + r*float32(math.Sin(a))}
	}
	return poly
}

func (s *shape) disc(cx, cy, r float32) {
	s.add(circlePoly(cx, cy, r, false))
}

// ring adds a circle outline of stroke width w as an outer disc minus an
// inner disc wound the other way.
func (s *shape) ring(cx, cy, r, w float32) {
	s.add(circlePoly(cx, cy, r+w/2, false))
	if inner := r - w/2; inner > 0 {
		s.add(circlePoly(cx, cy, inner, true))
	}
}

func (s *shape) bounds() image.Rectangle {
	if len(s.polys) == 0 {
		return image.Rectangle{}
	}
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, poly := range s.polys {
		for _, p := range poly {
			minX = min(minX, p.x)
			minY = min(minY, p.y)
			maxX = max(maxX, p.x)
			maxY = max(maxY, p.y)
		}
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// fill composites the shape onto dst in the given premultiplied color.
func (s *shape) fill(z *vector.Rasterizer, dst *image.RGBA, c color.RGBA) {
	r := s.bounds().Intersect(dst.Bounds())
	if r.Empty() || c.A == 0 {
		return
	}
	// the rasterizer mask covers r, so paths are shifted into its origin
	z.Reset(r.Dx(), r.Dy())
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	for _, poly := range s.polys {
		z.MoveTo(poly[0].x-ox, poly[0].y-oy)
		for _, p := range poly[1:] {
			z.LineTo(p.x-ox, p.y-oy)
		}
		z.ClosePath()
	}
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}
