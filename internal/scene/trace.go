package scene

import "github.com/iburimskiy/circle-trajectory/internal/kinematics"

type TracePoint struct {
	Pos kinematics.Vec2
	T   float64
}

// TracedPath records the positions a target has visited.
type TracedPath struct {
	Target     Renderable
	Color      Color
	MinSpacing float64

	points []TracePoint
}

func NewTracedPath(target Renderable, c Color, minSpacing float64) *TracedPath {
	return &TracedPath{Target: target, Color: c, MinSpacing: minSpacing}
}

// Sample appends the target's current position unless it is within
// MinSpacing of the last recorded one.
func (p *TracedPath) Sample(t float64) bool {
	pos := p.Target.Position()
	if n := len(p.points); n > 0 && pos.Dist(p.points[n-1].Pos) < p.MinSpacing {
		return false
	}
	p.points = append(p.points, TracePoint{Pos: pos, T: t})
	return true
}

// Points returns the recorded samples, oldest first. The slice must not be modified.
func (p *TracedPath) Points() []TracePoint {
	return p.points[:len(p.points):len(p.points)]
}

func (p *TracedPath) Reset() { p.points = nil }
