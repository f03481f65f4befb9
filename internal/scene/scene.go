// Package scene assembles the animated circle system: the objects a
// renderer draws, the scheduler that moves them and the timeline that
// decides when motion runs.
package scene

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/iburimskiy/circle-trajectory/internal/config"
	"github.com/iburimskiy/circle-trajectory/internal/kinematics"
)

// Scene is not safe for concurrent use; a single render loop drives it.
type Scene struct {
	cfg      config.Config
	params   kinematics.Params
	state    *kinematics.State
	timeline Timeline
	sched    *FrameScheduler
	log      *slog.Logger

	motionID     UpdateID
	motionActive bool
	motionDone   bool

	Circles []*Circle
	Dots    []*Dot
	Labels  []*Label
	Traces  []*TracedPath
	Camera  Camera
	Axes    Axes
}

// New builds the scene at time zero. It fails with
// config.ErrInvalidConfiguration when cfg cannot be animated.
func New(cfg config.Config, log *slog.Logger) (*Scene, error) {
	if log == nil {
		log = slog.Default()
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	colors := make([]Color, len(cfg.Circles))
	for i, c := range cfg.Circles {
		if colors[i], err = ParseColor(c.Color); err != nil {
			return nil, fmt.Errorf("%w: circle %q: %v", config.ErrInvalidConfiguration, c.Name, err)
		}
	}

	s := &Scene{
		cfg:    cfg,
		params: params,
		timeline: Timeline{
			IntroWait: cfg.IntroWait,
			LabelFade: cfg.LabelFade,
			Motion:    cfg.Duration,
			OutroWait: cfg.OutroWait,
		},
		log:  log,
		Axes: DefaultAxes(),
	}
	s.build(colors)
	return s, nil
}

func (s *Scene) build(colors []Color) {
	s.state = kinematics.NewState(s.params, kinematics.Vec2{})
	s.sched = NewFrameScheduler()
	s.motionActive, s.motionDone = false, false
	s.Camera = Camera{Center: s.state.Camera, FrameHeight: s.cfg.FrameHeight}

	largest := 0
	for i, c := range s.cfg.Circles {
		if c.Radius > s.cfg.Circles[largest].Radius {
			largest = i
		}
	}

	s.Circles = make([]*Circle, len(colors))
	s.Dots = make([]*Dot, len(colors))
	s.Labels = make([]*Label, len(colors))
	s.Traces = make([]*TracedPath, len(colors))
	for i, c := range s.cfg.Circles {
		s.Circles[i] = &Circle{
			Name:   c.Name,
			Color:  colors[i],
			Radius: s.params.Radii[i],
			Hidden: c.RevealAtMotion && s.timeline.IntroWait+s.timeline.LabelFade > 0,
		}
		s.Dots[i] = &Dot{Color: colors[i]}

		anchor := AnchorRight
		if i == largest {
			anchor = AnchorBelow
		}
		s.Labels[i] = &Label{
			Text:    fmt.Sprintf("(0,-%s)", formatTick(c.Radius)),
			Color:   colors[i],
			Anchor:  anchor,
			Opacity: 1,
		}
		s.Traces[i] = NewTracedPath(s.Dots[i], colors[i], s.cfg.TraceMinSpacing)
	}
	s.sync()
	for i, l := range s.Labels {
		l.SetPosition(s.Dots[i].Position())
	}
	s.sampleTraces()
}

// Reset rewinds the scene to time zero.
func (s *Scene) Reset() {
	colors := make([]Color, len(s.Circles))
	for i, c := range s.Circles {
		colors[i] = c.Color
	}
	s.build(colors)
	s.log.Debug("scene reset")
}

// Seek rewinds and replays the scene up to time t in steps of at most
// maxDT, so traces come out as if the scene had played normally.
func (s *Scene) Seek(t, maxDT float64) {
	s.Reset()
	t = math.Min(math.Max(t, 0), s.Duration())
	if !(maxDT > 0) {
		maxDT = t
	}
	for s.Elapsed() < t-phaseEpsilon {
		s.Step(math.Min(maxDT, t-s.Elapsed()))
	}
}

func (s *Scene) Elapsed() float64        { return s.sched.Time() }
func (s *Scene) Duration() float64       { return s.timeline.Total() }
func (s *Scene) Timeline() Timeline      { return s.timeline }
func (s *Scene) Done() bool              { return s.Phase() == PhaseDone }
func (s *Scene) State() kinematics.State { return *s.state }

func (s *Scene) Phase() Phase {
	p, _, _ := s.timeline.Phase(s.sched.Time())
	return p
}

// Revolutions is the number of full turns the tracked points have made.
func (s *Scene) Revolutions() int {
	return kinematics.Revolutions(s.params.RotationSpeed, s.state.Time)
}

// Step advances the scene by dt seconds. A step that crosses a phase
// boundary is split so motion runs for exactly the configured duration.
func (s *Scene) Step(dt float64) {
	if !(dt > 0) {
		return
	}
	for dt > 0 {
		p, _, end := s.timeline.Phase(s.sched.Time())
		s.enter(p)
		if p == PhaseDone {
			break
		}
		chunk := math.Min(dt, end-s.sched.Time())
		s.sched.Tick(chunk)
		dt -= chunk
	}
	// land exactly on a boundary so the next step sees the new phase
	p, _, _ := s.timeline.Phase(s.sched.Time())
	s.enter(p)

	s.fadeLabels()
	s.sampleTraces()
}

// enter registers the motion update while the motion phase runs and
// removes it afterwards.
func (s *Scene) enter(p Phase) {
	switch {
	case p == PhaseMotion && !s.motionActive && !s.motionDone:
		s.motionID = s.sched.Register("motion", s.updateMotion)
		s.motionActive = true
		for _, c := range s.Circles {
			c.Hidden = false
		}
		s.log.Debug("motion started", "t", s.sched.Time())
	case p != PhaseMotion && s.motionActive:
		s.sched.Unregister(s.motionID)
		s.motionActive = false
		s.motionDone = true
		s.log.Debug("motion stopped", "t", s.sched.Time(), "center", s.state.Camera)
	}
}

func (s *Scene) updateMotion(f Frame) {
	if kinematics.Step(s.params, s.state, f.DT, f.LocalTime) {
		s.sync()
	}
}

// sync copies the kinematic state onto the renderables.
func (s *Scene) sync() {
	for i, c := range s.Circles {
		c.SetPosition(s.state.Centers[i])
		c.Rotation = s.state.Rotations[i]
	}
	for i, d := range s.Dots {
		d.SetPosition(s.state.Points[i])
	}
	s.Camera.MoveTo(s.state.Camera)
}

func (s *Scene) fadeLabels() {
	t := s.sched.Time()
	var opacity float64
	switch p, _, _ := s.timeline.Phase(t); p {
	case PhaseIntro:
		opacity = 1
	case PhaseLabelFade:
		opacity = 1 - smooth(s.timeline.Progress(t))
	}
	for _, l := range s.Labels {
		l.Opacity = opacity
	}
}

func (s *Scene) sampleTraces() {
	t := s.sched.Time()
	for _, tr := range s.Traces {
		tr.Sample(t)
	}
}
