package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/iburimskiy/circle-trajectory/internal/kinematics"
)

const (
	WindowWidth  = 1024
	WindowHeight = 576

	// Stroke widths in pixels
	CircleStroke = 2
	TraceStroke  = 3
	AxisStroke   = 1.5

	// Dot radius in world units
	DotRadius = 0.08

	// Export defaults
	ExportFPS    = 30
	ExportWidth  = 1280
	ExportHeight = 720

	// Trace samples older than this fade to TraceFadeFloor
	TraceFadeSeconds = 20.0
	TraceFadeFloor   = 0.35

	// Revolution chime
	ChimeFrequency = 880.0
	ChimeSeconds   = 0.25
	SampleRate     = 44100
)

// ErrInvalidConfiguration reports a configuration that cannot be animated.
var ErrInvalidConfiguration = kinematics.ErrInvalidConfiguration

// Circle describes one circle of the system by its nominal, unscaled radius.
// A circle with RevealAtMotion is only drawn once motion starts; its point
// is visible throughout.
type Circle struct {
	Name           string  `toml:"name"`
	Color          string  `toml:"color"`
	Radius         float64 `toml:"radius"`
	RevealAtMotion bool    `toml:"reveal_at_motion"`
}

// Config holds every script-time constant of the animation. Times are seconds.
type Config struct {
	Circles         []Circle `toml:"circle"`
	ScaleFactor     float64  `toml:"scale_factor"`
	Duration        float64  `toml:"duration"`
	RotationSpeed   float64  `toml:"rotation_speed"`
	MovementSpeed   float64  `toml:"movement_speed"`
	IntroWait       float64  `toml:"intro_wait"`
	LabelFade       float64  `toml:"label_fade"`
	OutroWait       float64  `toml:"outro_wait"`
	TraceMinSpacing float64  `toml:"trace_min_spacing"`
	FrameHeight     float64  `toml:"frame_height"`
}

func Default() Config {
	return Config{
		Circles: []Circle{
			{Name: "red", Color: "red", Radius: 2},
			{Name: "green", Color: "green", Radius: 1, RevealAtMotion: true},
			{Name: "blue", Color: "blue", Radius: 4},
		},
		ScaleFactor:     0.5,
		Duration:        30,
		RotationSpeed:   -1,
		MovementSpeed:   0.8,
		IntroWait:       5,
		LabelFade:       2,
		OutroWait:       1,
		TraceMinSpacing: 0.01,
		FrameHeight:     8,
	}
}

// Load reads a TOML file on top of Default. Keys absent from the file keep
// their default value; unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	// a [[circle]] list in the file replaces the defaults instead of extending them
	defaults := cfg.Circles
	cfg.Circles = nil
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfiguration, strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Circles == nil {
		cfg.Circles = defaults
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on any value that would make the scene degenerate.
func (c Config) Validate() error {
	if len(c.Circles) == 0 {
		return fmt.Errorf("%w: no circles configured", ErrInvalidConfiguration)
	}
	for _, ci := range c.Circles {
		if !(ci.Radius > 0) || math.IsInf(ci.Radius, 0) {
			return fmt.Errorf("%w: circle %q radius %v must be > 0", ErrInvalidConfiguration, ci.Name, ci.Radius)
		}
	}
	for _, f := range []struct {
		key string
		v   float64
	}{
		{"scale_factor", c.ScaleFactor},
		{"duration", c.Duration},
		{"rotation_speed", c.RotationSpeed},
		{"movement_speed", c.MovementSpeed},
		{"intro_wait", c.IntroWait},
		{"label_fade", c.LabelFade},
		{"outro_wait", c.OutroWait},
		{"trace_min_spacing", c.TraceMinSpacing},
		{"frame_height", c.FrameHeight},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfiguration, f.key, f.v)
		}
	}
	if !(c.ScaleFactor > 0) {
		return fmt.Errorf("%w: scale_factor %v must be > 0", ErrInvalidConfiguration, c.ScaleFactor)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration %v must be > 0", ErrInvalidConfiguration, c.Duration)
	}
	if c.IntroWait < 0 || c.LabelFade < 0 || c.OutroWait < 0 {
		return fmt.Errorf("%w: waits must not be negative", ErrInvalidConfiguration)
	}
	if c.TraceMinSpacing < 0 {
		return fmt.Errorf("%w: trace_min_spacing must not be negative", ErrInvalidConfiguration)
	}
	if !(c.FrameHeight > 0) {
		return fmt.Errorf("%w: frame_height %v must be > 0", ErrInvalidConfiguration, c.FrameHeight)
	}
	return nil
}

// ScaledRadii returns each circle radius multiplied by the scale factor.
func (c Config) ScaledRadii() []float64 {
	out := make([]float64, len(c.Circles))
	for i, ci := range c.Circles {
		out[i] = ci.Radius * c.ScaleFactor
	}
	return out
}

func (c Config) Params() (kinematics.Params, error) {
	if err := c.Validate(); err != nil {
		return kinematics.Params{}, err
	}
	return kinematics.NewParams(c.MovementSpeed, c.RotationSpeed, c.ScaledRadii())
}
