package scene

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/circle-trajectory/internal/config"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
)

var palette = [...]colorful.Color{
	Red:   mustHex("#FC6255"),
	Green: mustHex("#83C167"),
	Blue:  mustHex("#58C4DD"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Colorful returns the display color in a form suitable for blending.
func (c Color) Colorful() colorful.Color {
	if c < Red || c > Blue {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return palette[c]
}

// RGBA returns the display color with the given opacity in [0, 1].
func (c Color) RGBA(opacity float64) color.RGBA {
	return WithOpacity(c.Colorful(), opacity)
}

// WithOpacity converts a colorful.Color to a premultiplied color.RGBA.
func WithOpacity(c colorful.Color, opacity float64) color.RGBA {
	c = c.Clamped()
	a := clamp01(opacity)
	return color.RGBA{
		R: uint8(c.R*a*255 + 0.5),
		G: uint8(c.G*a*255 + 0.5),
		B: uint8(c.B*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var (
	background = mustHex("#000000")
	axisColor  = mustHex("#58C4DD")
)

func Background() color.RGBA { return WithOpacity(background, 1) }

func AxisColor() color.RGBA { return WithOpacity(axisColor, 0.8) }

// Shade is c blended toward the background by k in [0, 1].
func Shade(c Color, k float64) color.RGBA {
	return WithOpacity(c.Colorful().BlendLab(background, clamp01(k)), 1)
}

// TraceBands is the number of discrete shades a traced path fades through.
const TraceBands = 8

// TraceBand maps the age of a trace sample in seconds to its shade, 0 being
// the freshest.
func TraceBand(age float64) int {
	b := int(clamp01(age/config.TraceFadeSeconds) * (TraceBands - 1))
	return min(max(b, 0), TraceBands-1)
}

// TraceColor is c blended toward the background for the given band, down to
// config.TraceFadeFloor of its strength.
func TraceColor(c Color, band int) color.RGBA {
	return Shade(c, float64(band)/(TraceBands-1)*(1-config.TraceFadeFloor))
}
