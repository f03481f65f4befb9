package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/circle-trajectory/internal/config"
	"github.com/iburimskiy/circle-trajectory/internal/kinematics"
	"github.com/iburimskiy/circle-trajectory/internal/scene"
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(scene.Background())

	g.drawAxes(screen)
	g.drawTraces(screen)
	g.drawObjects(screen)
	g.drawButton(screen)
	g.drawProgressBar(screen)

	status := fmt.Sprintf("%s  %s / %s  turns %d",
		g.scene.Phase(), formatClock(g.scene.Elapsed()), formatClock(g.scene.Duration()), g.scene.Revolutions())
	if g.paused {
		status += "  [paused]"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	if !g.progressBarHovered && !g.buttonHovered {
		mx, my := ebiten.CursorPosition()
		at := cursorLabel(g.scene.Camera, mx, my)
		ebitenutil.DebugPrintAt(screen, at, config.WindowWidth-len(at)*6-12, 12)
	}
}

func (g *Game) project(p kinematics.Vec2) (float32, float32) {
	x, y := g.scene.Camera.WorldToScreen(p, config.WindowWidth, config.WindowHeight)
	return float32(x), float32(y)
}

func (g *Game) line(screen *ebiten.Image, a, b kinematics.Vec2, width float32, c color.Color) {
	x1, y1 := g.project(a)
	x2, y2 := g.project(b)
	vector.StrokeLine(screen, x1, y1, x2, y2, width, c, true)
}

func (g *Game) drawAxes(screen *ebiten.Image) {
	a := g.scene.Axes
	c := scene.AxisColor()
	g.line(screen, kinematics.Vec2{X: a.XMin}, kinematics.Vec2{X: a.XMax}, config.AxisStroke, c)
	g.line(screen, kinematics.Vec2{Y: a.YMin}, kinematics.Vec2{Y: a.YMax}, config.AxisStroke, c)

	const tick = 0.1
	for _, t := range a.Ticks() {
		p := t.Pos
		if t.Axis == scene.AxisX {
			g.line(screen, kinematics.Vec2{X: p.X, Y: -tick}, kinematics.Vec2{X: p.X, Y: tick}, config.AxisStroke, c)
			x, y := g.project(kinematics.Vec2{X: p.X, Y: -2 * tick})
			g.text(screen, t.Label, x, y, text.AlignCenter, text.AlignStart, c)
		} else {
			g.line(screen, kinematics.Vec2{X: -tick, Y: p.Y}, kinematics.Vec2{X: tick, Y: p.Y}, config.AxisStroke, c)
			x, y := g.project(kinematics.Vec2{X: -2 * tick, Y: p.Y})
			g.text(screen, t.Label, x, y, text.AlignEnd, text.AlignCenter, c)
		}
	}
	x, y := g.project(kinematics.Vec2{X: a.XMax})
	g.text(screen, "x", x+6, y, text.AlignStart, text.AlignCenter, c)
	x, y = g.project(kinematics.Vec2{Y: a.YMax})
	g.text(screen, "y", x, y-6, text.AlignCenter, text.AlignEnd, c)
}

func (g *Game) drawTraces(screen *ebiten.Image) {
	now := g.scene.Elapsed()
	for _, tr := range g.scene.Traces {
		pts := tr.Points()
		for i := 1; i < len(pts); i++ {
			c := scene.TraceColor(tr.Color, scene.TraceBand(now-pts[i].T))
			g.line(screen, pts[i-1].Pos, pts[i].Pos, config.TraceStroke, c)
		}
	}
}

func (g *Game) drawObjects(screen *ebiten.Image) {
	ppu := float32(g.scene.Camera.PixelsPerUnit(config.WindowHeight))
	for _, c := range g.scene.Circles {
		if c.Hidden {
			continue
		}
		x, y := g.project(c.Position())
		vector.StrokeCircle(screen, x, y, float32(c.Radius)*ppu, config.CircleStroke, c.Color.RGBA(1), true)
		in, out := c.Marker()
		g.line(screen, in, out, config.CircleStroke, c.Color.RGBA(1))
	}
	for _, d := range g.scene.Dots {
		x, y := g.project(d.Position())
		vector.DrawFilledCircle(screen, x, y, config.DotRadius*ppu, d.Color.RGBA(1), true)
	}
	const buff = 8
	for _, l := range g.scene.Labels {
		if l.Opacity <= 0 {
			continue
		}
		x, y := g.project(l.Position())
		c := l.Color.RGBA(l.Opacity)
		if l.Anchor == scene.AnchorBelow {
			g.text(screen, l.Text, x, y+buff, text.AlignCenter, text.AlignStart, c)
		} else {
			g.text(screen, l.Text, x+buff, y, text.AlignStart, text.AlignCenter, c)
		}
	}
}

func (g *Game) text(screen *ebiten.Image, s string, x, y float32, h, v text.Align, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = h
	op.SecondaryAlign = v
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	fill, border := buttonColors(g.buttonPressed, g.buttonHovered)
	vector.DrawFilledRect(screen, buttonX, buttonY, buttonWidth, buttonHeight, fill, false)
	vector.StrokeRect(screen, buttonX, buttonY, buttonWidth, buttonHeight, 2, border, false)
	g.text(screen, "Save Frame", buttonX+buttonWidth/2, buttonY+buttonHeight/2, text.AlignCenter, text.AlignCenter, color.White)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	barX, barY, barWidth, barH := barRect()
	progress := clamp01(g.scene.Elapsed() / g.scene.Duration())

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barH), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barH), 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	// shade the motion window so the phases are visible on the bar
	tl := g.scene.Timeline()
	motionStart := (tl.IntroWait + tl.LabelFade) / tl.Total()
	motionEnd := (tl.IntroWait + tl.LabelFade + tl.Motion) / tl.Total()
	vector.DrawFilledRect(screen, float32(barX)+float32(motionStart)*float32(barWidth), float32(barY),
		float32(motionEnd-motionStart)*float32(barWidth), float32(barH), color.RGBA{R: 40, G: 50, B: 70, A: 200}, false)

	if progress > 0 {
		fill := scene.Blue.RGBA(0.7)
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(progress)*float32(barWidth), float32(barH), fill, false)
	}

	indicatorX := float32(barX) + float32(progress)*float32(barWidth)
	vector.DrawFilledCircle(screen, indicatorX, float32(barY+barH/2), 7, color.White, true)

	ebitenutil.DebugPrintAt(screen, formatClock(g.scene.Elapsed()), barX, barY-18)

	if g.progressBarHovered {
		mouseX, _ := ebiten.CursorPosition()
		at := clamp01(float64(mouseX-barX)/float64(barWidth)) * g.scene.Duration()
		tooltip := formatClock(at)
		tooltipX := min(max(mouseX-len(tooltip)*3, 0), config.WindowWidth-len(tooltip)*6)
		ebitenutil.DebugPrintAt(screen, tooltip, tooltipX, barY-18)
	}
}
