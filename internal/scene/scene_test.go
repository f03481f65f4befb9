package scene

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/circle-trajectory/internal/config"
	"github.com/iburimskiy/circle-trajectory/internal/kinematics"
)

const tol = 1e-9

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newScene(t *testing.T, cfg config.Config) *Scene {
	t.Helper()
	s, err := New(cfg, quietLogger())
	require.NoError(t, err)
	return s
}

func run(s *Scene, dt float64, n int) {
	for i := 0; i < n; i++ {
		s.Step(dt)
	}
}

func TestNewSceneInitialLayout(t *testing.T) {
	s := newScene(t, config.Default())

	require.Len(t, s.Circles, 3)
	assert.Equal(t, []Color{Red, Green, Blue}, []Color{s.Circles[0].Color, s.Circles[1].Color, s.Circles[2].Color})
	assert.Equal(t, []string{"(0,-2)", "(0,-1)", "(0,-4)"}, []string{s.Labels[0].Text, s.Labels[1].Text, s.Labels[2].Text})
	assert.Equal(t, AnchorRight, s.Labels[0].Anchor)
	assert.Equal(t, AnchorBelow, s.Labels[2].Anchor)

	want := []float64{-1, -0.5, -2}
	for i, d := range s.Dots {
		assert.InDelta(t, 0, d.Position().X, tol)
		assert.InDelta(t, want[i], d.Position().Y, tol)
		assert.Equal(t, d.Position(), s.Labels[i].Position())
		assert.Len(t, s.Traces[i].Points(), 1)
	}
	assert.Equal(t, PhaseIntro, s.Phase())
	assert.Equal(t, 38.0, s.Duration())
}

func TestNewSceneRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Circles[0].Radius = 0
	_, err := New(cfg, quietLogger())
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)

	cfg = config.Default()
	cfg.Circles[1].Color = "purple"
	_, err = New(cfg, quietLogger())
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)

	cfg = config.Default()
	cfg.RotationSpeed = math.Inf(1)
	_, err = New(cfg, quietLogger())
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)

	cfg = config.Default()
	cfg.Duration = math.Inf(1)
	_, err = New(cfg, quietLogger())
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestGreenCircleRevealedWithMotion(t *testing.T) {
	s := newScene(t, config.Default())
	assert.Equal(t, []bool{false, true, false},
		[]bool{s.Circles[0].Hidden, s.Circles[1].Hidden, s.Circles[2].Hidden})

	run(s, 0.5, 13) // 6.5s, still fading labels
	assert.True(t, s.Circles[1].Hidden)

	run(s, 0.5, 2)
	assert.Equal(t, PhaseMotion, s.Phase())
	assert.False(t, s.Circles[1].Hidden)

	s.Reset()
	assert.True(t, s.Circles[1].Hidden)
}

func TestRevealedFromStartWithoutWaits(t *testing.T) {
	cfg := config.Default()
	cfg.IntroWait, cfg.LabelFade = 0, 0
	s := newScene(t, cfg)
	for _, c := range s.Circles {
		assert.False(t, c.Hidden, c.Name)
	}
}

func TestCircleMarkerTurnsWithRotation(t *testing.T) {
	s := newScene(t, config.Default())
	run(s, 0.5, 14)
	s.Step(math.Pi)

	for i, c := range s.Circles {
		in, out := c.Marker()
		assert.InDelta(t, c.Radius, out.Dist(c.Position()), tol)
		assert.InDelta(t, c.Radius*0.8, in.Dist(c.Position()), tol)
		// the marker sits opposite the tracked point
		assert.InDelta(t, 2*c.Radius, out.Dist(s.Dots[i].Position()), 1e-9)
	}
}

func TestIntroKeepsObjectsStill(t *testing.T) {
	s := newScene(t, config.Default())
	start := s.Dots[0].Position()
	run(s, 0.1, 40)

	assert.InDelta(t, 4.0, s.Elapsed(), tol)
	assert.Equal(t, start, s.Dots[0].Position())
	assert.Equal(t, 1.0, s.Labels[0].Opacity)
	assert.Empty(t, s.sched.Registered())
}

func TestLabelsFadeOut(t *testing.T) {
	s := newScene(t, config.Default())
	run(s, 0.5, 12) // 6s, halfway through the fade

	assert.Equal(t, PhaseLabelFade, s.Phase())
	assert.InDelta(t, 0.5, s.Labels[1].Opacity, tol)

	run(s, 0.5, 2)
	assert.Equal(t, PhaseMotion, s.Phase())
	assert.Equal(t, 0.0, s.Labels[1].Opacity)
}

func TestMotionRunsForConfiguredDuration(t *testing.T) {
	s := newScene(t, config.Default())
	// 7s of intro and fade, then motion
	run(s, 1.0/60, 60*7)
	assert.Equal(t, PhaseMotion, s.Phase())
	assert.Equal(t, []string{"motion"}, s.sched.Registered())

	run(s, 1.0/60, 60*40)
	assert.True(t, s.Done())
	assert.Empty(t, s.sched.Registered())

	st := s.State()
	for _, c := range st.Centers {
		assert.InDelta(t, 0.8*30, c.X, 1e-6)
	}
	assert.InDelta(t, 30, st.Time, 1e-6)
	assert.Equal(t, st.Centers[0], s.Camera.Center)
	assert.InDelta(t, s.Duration(), s.Elapsed(), 1e-6)
}

func TestOrbitInvariantThroughScene(t *testing.T) {
	s := newScene(t, config.Default())
	for !s.Done() {
		s.Step(1.0 / 30)
		for i, c := range s.Circles {
			assert.InDelta(t, c.Radius, s.Dots[i].Position().Dist(c.Position()), tol)
			assert.Equal(t, s.Circles[0].Position(), c.Position())
		}
		assert.Equal(t, s.Circles[0].Position(), s.Camera.Center)
	}
}

func TestMotionStartsBelowCenter(t *testing.T) {
	s := newScene(t, config.Default())
	run(s, 0.5, 14)
	s.Step(0.001)

	c := s.Circles[2].Position()
	d := s.Dots[2].Position()
	assert.InDelta(t, c.Y-2, d.Y, 1e-5)
	assert.InDelta(t, c.X, d.X, 1e-2)
}

func TestStepIsIndependentOfFrameSplit(t *testing.T) {
	coarse := newScene(t, config.Default())
	run(coarse, 0.25, 4*20)

	fine := newScene(t, config.Default())
	run(fine, 0.01, 100*20)

	for i := range coarse.Dots {
		assert.InDelta(t, coarse.Dots[i].Position().X, fine.Dots[i].Position().X, 1e-9)
		assert.InDelta(t, coarse.Dots[i].Position().Y, fine.Dots[i].Position().Y, 1e-9)
	}
}

func TestZeroStepIsNoOp(t *testing.T) {
	s := newScene(t, config.Default())
	run(s, 0.5, 20)
	before := s.Dots[0].Position()
	n := len(s.Traces[0].Points())

	s.Step(0)
	s.Step(-1)

	assert.Equal(t, before, s.Dots[0].Position())
	assert.Equal(t, 10.0, s.Elapsed())
	assert.Len(t, s.Traces[0].Points(), n)
}

func TestStepAfterDoneIsNoOp(t *testing.T) {
	s := newScene(t, config.Default())
	s.Step(100)
	require.True(t, s.Done())
	at := s.Circles[0].Position()

	s.Step(1)
	assert.Equal(t, at, s.Circles[0].Position())
	assert.InDelta(t, 38.0, s.Elapsed(), tol)
}

func TestRevolutions(t *testing.T) {
	s := newScene(t, config.Default())
	assert.Equal(t, 0, s.Revolutions())
	s.Step(7 + 2*math.Pi + 0.1)
	assert.Equal(t, 1, s.Revolutions())
}

func TestReset(t *testing.T) {
	s := newScene(t, config.Default())
	run(s, 0.5, 30)
	s.Reset()

	assert.Equal(t, 0.0, s.Elapsed())
	assert.Equal(t, kinematics.Vec2{}, s.Circles[0].Position())
	assert.Len(t, s.Traces[0].Points(), 1)
	assert.Equal(t, 1.0, s.Labels[0].Opacity)

	run(s, 0.5, 16)
	assert.Equal(t, []string{"motion"}, s.sched.Registered())
}

func TestSceneWithoutWaits(t *testing.T) {
	cfg := config.Default()
	cfg.IntroWait, cfg.LabelFade, cfg.OutroWait = 0, 0, 0
	cfg.Duration = 1
	s := newScene(t, cfg)
	assert.Equal(t, PhaseMotion, s.Phase())

	s.Step(0.5)
	assert.Equal(t, 0.0, s.Labels[0].Opacity)
	assert.InDelta(t, 0.4, s.Circles[0].Position().X, tol)

	s.Step(0.5)
	assert.True(t, s.Done())
}

func TestSeekMatchesPlayback(t *testing.T) {
	played := newScene(t, config.Default())
	run(played, 0.05, 400)

	sought := newScene(t, config.Default())
	run(sought, 0.05, 700)
	sought.Seek(20, 0.05)

	assert.InDelta(t, played.Elapsed(), sought.Elapsed(), 1e-9)
	assert.InDelta(t, played.Dots[1].Position().X, sought.Dots[1].Position().X, 1e-9)
	assert.InDelta(t, played.Dots[1].Position().Y, sought.Dots[1].Position().Y, 1e-9)
	assert.Len(t, sought.Traces[1].Points(), len(played.Traces[1].Points()))

	sought.Seek(1000, 1)
	assert.True(t, sought.Done())
	sought.Seek(-3, 0)
	assert.Equal(t, 0.0, sought.Elapsed())
}
