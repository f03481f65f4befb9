package scene

import (
	"math"

	"github.com/iburimskiy/circle-trajectory/internal/kinematics"
)

// Renderable is any scene object a renderer can place.
type Renderable interface {
	Position() kinematics.Vec2
	SetPosition(p kinematics.Vec2)
}

type Circle struct {
	Name   string
	Color  Color
	Radius float64 // scaled
	// Rotation is the spin of the outline in radians, shown by its marker.
	Rotation float64
	Hidden   bool

	center kinematics.Vec2
}

func (c *Circle) Position() kinematics.Vec2     { return c.center }
func (c *Circle) SetPosition(p kinematics.Vec2) { c.center = p }

// markerLength is the marker tick length as a fraction of the radius.
const markerLength = 0.2

// Marker returns the ends of the radial tick drawn on the outline opposite
// the tracked point, turning with Rotation.
func (c *Circle) Marker() (inner, outer kinematics.Vec2) {
	outer = kinematics.OrbitPosition(c.center, c.Radius, c.Rotation+math.Pi)
	inner = c.center.Add(outer.Sub(c.center).Scale(1 - markerLength))
	return inner, outer
}

// Dot is the tracked point carried by a circle.
type Dot struct {
	Color Color

	center kinematics.Vec2
}

func (d *Dot) Position() kinematics.Vec2     { return d.center }
func (d *Dot) SetPosition(p kinematics.Vec2) { d.center = p }

type Anchor int

const (
	AnchorRight Anchor = iota
	AnchorBelow
)

// Label is a text tag placed next to a point. Its position is the point it
// annotates; renderers offset the text according to Anchor.
type Label struct {
	Text    string
	Color   Color
	Anchor  Anchor
	Opacity float64

	at kinematics.Vec2
}

func (l *Label) Position() kinematics.Vec2     { return l.at }
func (l *Label) SetPosition(p kinematics.Vec2) { l.at = p }
