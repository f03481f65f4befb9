package scene

import (
	"strconv"

	"github.com/iburimskiy/circle-trajectory/internal/kinematics"
)

// Camera maps world coordinates to pixels. FrameHeight world units span the
// full output height; width follows the output aspect ratio.
type Camera struct {
	Center      kinematics.Vec2
	FrameHeight float64
}

func (c *Camera) MoveTo(p kinematics.Vec2) { c.Center = p }

func (c Camera) PixelsPerUnit(h int) float64 {
	return float64(h) / c.FrameHeight
}

func (c Camera) WorldToScreen(p kinematics.Vec2, w, h int) (float64, float64) {
	ppu := c.PixelsPerUnit(h)
	return float64(w)/2 + (p.X-c.Center.X)*ppu, float64(h)/2 - (p.Y-c.Center.Y)*ppu
}

func (c Camera) ScreenToWorld(x, y float64, w, h int) kinematics.Vec2 {
	ppu := c.PixelsPerUnit(h)
	return kinematics.Vec2{
		X: c.Center.X + (x-float64(w)/2)/ppu,
		Y: c.Center.Y - (y-float64(h)/2)/ppu,
	}
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

type Tick struct {
	Axis  Axis
	Pos   kinematics.Vec2
	Label string
}

// Axes is a fixed pair of numbered axes through the world origin.
type Axes struct {
	XMin, XMax float64
	YMin, YMax float64
	Step       float64
}

func DefaultAxes() Axes {
	return Axes{XMin: -6, XMax: 6, YMin: -4, YMax: 4, Step: 1}
}

// Ticks lists the numbered ticks of both axes. The origin is not numbered.
func (a Axes) Ticks() []Tick {
	if !(a.Step > 0) {
		return nil
	}
	var ticks []Tick
	for i := 0; ; i++ {
		x := a.XMin + float64(i)*a.Step
		if x > a.XMax+1e-9 {
			break
		}
		if x > -1e-9 && x < 1e-9 {
			continue
		}
		ticks = append(ticks, Tick{Axis: AxisX, Pos: kinematics.Vec2{X: x}, Label: formatTick(x)})
	}
	for i := 0; ; i++ {
		y := a.YMin + float64(i)*a.Step
		if y > a.YMax+1e-9 {
			break
		}
		if y > -1e-9 && y < 1e-9 {
			continue
		}
		ticks = append(ticks, Tick{Axis: AxisY, Pos: kinematics.Vec2{Y: y}, Label: formatTick(y)})
	}
	return ticks
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
