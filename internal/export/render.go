// Package export renders the scene without a window, producing the PNG
// frames that make up the animation.
package export

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/iburimskiy/circle-trajectory/internal/config"
	"github.com/iburimskiy/circle-trajectory/internal/kinematics"
	"github.com/iburimskiy/circle-trajectory/internal/scene"
)

// Renderer rasterizes scene frames into images of a fixed size.
type Renderer struct {
	Width, Height int

	face font.Face
	z    *vector.Rasterizer
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:  width,
		Height: height,
		face:   basicfont.Face7x13,
		z:      &vector.Rasterizer{},
	}
}

func (r *Renderer) project(s *scene.Scene, p kinematics.Vec2) pt {
	x, y := s.Camera.WorldToScreen(p, r.Width, r.Height)
	return pt{float32(x), float32(y)}
}

// RenderFrame draws the current state of s.
func (r *Renderer) RenderFrame(s *scene.Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(scene.Background()), image.Point{}, draw.Src)

	r.drawAxes(img, s)
	r.drawTraces(img, s)

	ppu := float32(s.Camera.PixelsPerUnit(r.Height))
	for _, c := range s.Circles {
		if c.Hidden {
			continue
		}
		var ring, marker shape
		p := r.project(s, c.Position())
		ring.ring(p.x, p.y, float32(c.Radius)*ppu, config.CircleStroke)
		ring.fill(r.z, img, c.Color.RGBA(1))
		// filled apart from the ring so opposite windings cannot cancel
		in, out := c.Marker()
		marker.segment(r.project(s, in), r.project(s, out), config.CircleStroke)
		marker.fill(r.z, img, c.Color.RGBA(1))
	}
	for _, d := range s.Dots {
		var sh shape
		p := r.project(s, d.Position())
		sh.disc(p.x, p.y, config.DotRadius*ppu)
		sh.fill(r.z, img, d.Color.RGBA(1))
	}
	for _, l := range s.Labels {
		if l.Opacity <= 0 {
			continue
		}
		r.drawLabel(img, s, l)
	}
	return img
}

func (r *Renderer) drawAxes(img *image.RGBA, s *scene.Scene) {
	a := s.Axes
	col := scene.AxisColor()

	var sh shape
	sh.segment(r.project(s, kinematics.Vec2{X: a.XMin}), r.project(s, kinematics.Vec2{X: a.XMax}), config.AxisStroke)
	sh.segment(r.project(s, kinematics.Vec2{Y: a.YMin}), r.project(s, kinematics.Vec2{Y: a.YMax}), config.AxisStroke)

	const tick = 0.1
	for _, t := range a.Ticks() {
		p := t.Pos
		if t.Axis == scene.AxisX {
			sh.segment(r.project(s, kinematics.Vec2{X: p.X, Y: -tick}), r.project(s, kinematics.Vec2{X: p.X, Y: tick}), config.AxisStroke)
			q := r.project(s, kinematics.Vec2{X: p.X, Y: -2 * tick})
			r.text(img, t.Label, q.x, q.y, alignCenter, alignTop, col)
		} else {
			sh.segment(r.project(s, kinematics.Vec2{X: -tick, Y: p.Y}), r.project(s, kinematics.Vec2{X: tick, Y: p.Y}), config.AxisStroke)
			q := r.project(s, kinematics.Vec2{X: -2 * tick, Y: p.Y})
			r.text(img, t.Label, q.x, q.y, alignEnd, alignMiddle, col)
		}
	}
	sh.fill(r.z, img, col)

	x := r.project(s, kinematics.Vec2{X: a.XMax})
	r.text(img, "x", x.x+6, x.y, alignStart, alignMiddle, col)
	y := r.project(s, kinematics.Vec2{Y: a.YMax})
	r.text(img, "y", y.x, y.y-6, alignCenter, alignBottom, col)
}

// drawTraces groups each path into age bands so a band is one fill.
func (r *Renderer) drawTraces(img *image.RGBA, s *scene.Scene) {
	now := s.Elapsed()
	for _, tr := range s.Traces {
		pts := tr.Points()
		if len(pts) < 2 {
			continue
		}
		bands := make([]shape, scene.TraceBands)
		for i := 1; i < len(pts); i++ {
			b := scene.TraceBand(now - pts[i].T)
			bands[b].segment(r.project(s, pts[i-1].Pos), r.project(s, pts[i].Pos), config.TraceStroke)
		}
		for b := range bands {
			bands[b].fill(r.z, img, scene.TraceColor(tr.Color, b))
		}
	}
}

func (r *Renderer) drawLabel(img *image.RGBA, s *scene.Scene, l *scene.Label) {
	p := r.project(s, l.Position())
	const buff = 8
	c := l.Color.RGBA(l.Opacity)
	switch l.Anchor {
	case scene.AnchorBelow:
		r.text(img, l.Text, p.x, p.y+buff, alignCenter, alignTop, c)
	default:
		r.text(img, l.Text, p.x+buff, p.y, alignStart, alignMiddle, c)
	}
}

type align int

const (
	alignStart align = iota
	alignCenter
	alignEnd
	alignTop    = alignStart
	alignMiddle = alignCenter
	alignBottom = alignEnd
)

func (r *Renderer) text(img *image.RGBA, s string, x, y float32, h, v align, c color.RGBA) {
	w := font.MeasureString(r.face, s)
	m := r.face.Metrics()
	height := m.Ascent + m.Descent

	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	switch h {
	case alignCenter:
		dot.X -= w / 2
	case alignEnd:
		dot.X -= w
	}
	switch v {
	case alignTop:
		dot.Y += m.Ascent
	case alignMiddle:
		dot.Y += m.Ascent - height/2
	case alignBottom:
		dot.Y -= m.Descent
	}
	d := font.Drawer{Dst: img, Src: image.NewUniform(c), Face: r.face, Dot: dot}
	d.DrawString(s)
}
