package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func defaultParams(t *testing.T) Params {
	t.Helper()
	p, err := NewParams(0.8, -1, []float64{1.0, 0.5, 2.0})
	require.NoError(t, err)
	return p
}

func TestNewParamsRejectsBadRadii(t *testing.T) {
	tests := []struct {
		name  string
		radii []float64
	}{
		{"empty", nil},
		{"zero", []float64{1, 0, 2}},
		{"negative", []float64{-1}},
		{"nan", []float64{math.NaN()}},
		{"inf", []float64{math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParams(0.8, -1, tt.radii)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestNewParamsRejectsNonFiniteSpeeds(t *testing.T) {
	tests := []struct {
		name           string
		movement, spin float64
	}{
		{"nan movement", math.NaN(), -1},
		{"inf movement", math.Inf(1), -1},
		{"nan rotation", 0.8, math.NaN()},
		{"inf rotation", 0.8, math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParams(tt.movement, tt.spin, []float64{1})
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestNewParamsCopiesRadii(t *testing.T) {
	radii := []float64{1, 2}
	p, err := NewParams(1, 1, radii)
	require.NoError(t, err)
	radii[0] = 99
	assert.Equal(t, 1.0, p.Radii[0])
}

func TestNewState(t *testing.T) {
	p := defaultParams(t)
	s := NewState(p, Vec2{})
	for i, r := range p.Radii {
		assert.Equal(t, Vec2{}, s.Centers[i])
		assert.InDelta(t, 0, s.Points[i].X, tol)
		assert.InDelta(t, -r, s.Points[i].Y, tol)
	}
	assert.Equal(t, Vec2{}, s.Camera)
}

func TestOrbitRadiusIsExact(t *testing.T) {
	p := defaultParams(t)
	s := NewState(p, Vec2{})
	dt := 1.0 / 60
	for frame := 1; frame <= 30*60; frame++ {
		require.True(t, Step(p, s, dt, float64(frame)*dt))
		for i, r := range p.Radii {
			assert.InDelta(t, r, s.Points[i].Dist(s.Centers[i]), tol)
		}
	}
}

func TestPointPhaseIsPathIndependent(t *testing.T) {
	p := defaultParams(t)

	one := NewState(p, Vec2{})
	Step(p, one, 3, 3)

	many := NewState(p, Vec2{})
	for i := 1; i <= 300; i++ {
		Step(p, many, 0.01, float64(i)*0.01)
	}

	for i := range p.Radii {
		assert.InDelta(t, one.Points[i].X, many.Points[i].X, tol)
		assert.InDelta(t, one.Points[i].Y, many.Points[i].Y, tol)
		assert.InDelta(t, one.Rotations[i], many.Rotations[i], tol)
	}
}

func TestCameraFollowsSharedCenter(t *testing.T) {
	p := defaultParams(t)
	s := NewState(p, Vec2{X: -1, Y: 0.5})
	for i := 1; i <= 500; i++ {
		Step(p, s, 0.02, float64(i)*0.02)
		for _, c := range s.Centers {
			assert.Equal(t, s.Centers[0], c)
		}
		assert.Equal(t, s.Centers[0], s.Camera)
	}
}

func TestPointAboveCenterAtPi(t *testing.T) {
	p := defaultParams(t)
	s := NewState(p, Vec2{})
	Step(p, s, math.Pi, math.Pi)

	c := s.Centers[0]
	assert.InDelta(t, c.X, s.Points[0].X, tol)
	assert.InDelta(t, c.Y+1.0, s.Points[0].Y, tol)
}

func TestTenSecondsShiftsEightUnits(t *testing.T) {
	p := defaultParams(t)
	s := NewState(p, Vec2{})
	for i := 1; i <= 1000; i++ {
		Step(p, s, 0.01, float64(i)*0.01)
	}
	for _, c := range s.Centers {
		assert.InDelta(t, 8.0, c.X, tol)
		assert.InDelta(t, 0.0, c.Y, tol)
	}
	assert.InDelta(t, 10.0, s.Time, tol)
}

func TestZeroDtIsNoOp(t *testing.T) {
	p := defaultParams(t)
	s := NewState(p, Vec2{})
	Step(p, s, 0.5, 0.5)

	before := *s
	before.Centers = append([]Vec2(nil), s.Centers...)
	before.Points = append([]Vec2(nil), s.Points...)

	for _, dt := range []float64{0, -0.1, math.NaN()} {
		assert.False(t, Step(p, s, dt, 4))
	}
	assert.Equal(t, before.Centers, s.Centers)
	assert.Equal(t, before.Points, s.Points)
	assert.Equal(t, before.Time, s.Time)
}

func TestClockwiseDirection(t *testing.T) {
	// starting below the center, a clockwise turn heads left first
	p := OrbitPosition(Vec2{}, 1, Angle(-1, 0.1))
	assert.Less(t, p.X, 0.0)
	assert.Less(t, p.Y, 0.0)
}

func TestRevolutions(t *testing.T) {
	tests := []struct {
		t    float64
		want int
	}{
		{0, 0},
		{math.Pi, 0},
		{2*math.Pi + 0.01, 1},
		{30, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Revolutions(-1, tt.t), "t=%v", tt.t)
	}
}
