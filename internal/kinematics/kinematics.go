// Package kinematics computes the per-frame motion of the circle system:
// a rigid rightward translation of every circle center plus a point on
// each circle whose phase is locked to the scene clock.
package kinematics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned when the motion parameters cannot
// describe a drawable system.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Params holds the immutable motion constants.
type Params struct {
	// MovementSpeed is the horizontal speed in units per second.
	MovementSpeed float64
	// RotationSpeed is the angular speed in radians per second. Negative is clockwise.
	RotationSpeed float64
	// Radii are the scaled radii, one per circle.
	Radii []float64
}

func NewParams(movementSpeed, rotationSpeed float64, radii []float64) (Params, error) {
	if len(radii) == 0 {
		return Params{}, fmt.Errorf("%w: no circles", ErrInvalidConfiguration)
	}
	for i, r := range radii {
		if !(r > 0) || math.IsInf(r, 0) {
			return Params{}, fmt.Errorf("%w: radius %d is %v, must be > 0", ErrInvalidConfiguration, i, r)
		}
	}
	if !finite(movementSpeed) || !finite(rotationSpeed) {
		return Params{}, fmt.Errorf("%w: speeds must be finite, got %v and %v", ErrInvalidConfiguration, movementSpeed, rotationSpeed)
	}
	return Params{
		MovementSpeed: movementSpeed,
		RotationSpeed: rotationSpeed,
		Radii:         append([]float64(nil), radii...),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// State is the mutable simulation state, rewritten by every Step.
type State struct {
	Time      float64
	Centers   []Vec2
	Points    []Vec2
	Rotations []float64
	Camera    Vec2
}

// NewState places every circle at origin with its point directly below the center.
func NewState(p Params, origin Vec2) *State {
	s := &State{
		Centers:   make([]Vec2, len(p.Radii)),
		Points:    make([]Vec2, len(p.Radii)),
		Rotations: make([]float64, len(p.Radii)),
		Camera:    origin,
	}
	for i, r := range p.Radii {
		s.Centers[i] = origin
		s.Points[i] = OrbitPosition(origin, r, 0)
	}
	return s
}

// Angle returns the shared orbital angle at scene time t.
func Angle(rotationSpeed, t float64) float64 {
	return t * rotationSpeed
}

// OrbitPosition returns the point at radius r around center for the given
// angle. Angle 0 is directly below the center; decreasing angles move clockwise.
func OrbitPosition(center Vec2, r, angle float64) Vec2 {
	return Vec2{
		X: center.X + r*math.Sin(angle),
		Y: center.Y - r*math.Cos(angle),
	}
}

// Displacement returns the horizontal shift applied over dt.
func Displacement(movementSpeed, dt float64) Vec2 {
	return Vec2{X: movementSpeed * dt}
}

// Revolutions returns how many full turns the orbital angle has completed by t.
func Revolutions(rotationSpeed, t float64) int {
	return int(math.Floor(math.Abs(Angle(rotationSpeed, t)) / (2 * math.Pi)))
}

// Step advances s by one frame of length dt ending at time t. A frame with
// dt <= 0 leaves s untouched and reports false.
func Step(p Params, s *State, dt, t float64) bool {
	if !(dt > 0) {
		return false
	}

	d := Displacement(p.MovementSpeed, dt)
	for i := range s.Centers {
		s.Centers[i] = s.Centers[i].Add(d)
	}

	angle := Angle(p.RotationSpeed, t)
	for i, r := range p.Radii {
		s.Points[i] = OrbitPosition(s.Centers[i], r, angle)
		s.Rotations[i] = angle
	}

	// centers stay coincident, so any of them is the shared center
	if len(s.Centers) > 0 {
		s.Camera = s.Centers[0]
	}
	s.Time = t
	return true
}
