package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/iburimskiy/circle-trajectory/internal/config"
	"github.com/iburimskiy/circle-trajectory/internal/scene"
)

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// formatClock formats scene seconds as MM:SS.t
func formatClock(s float64) string {
	tenths := int(math.Max(0, s)*10 + 0.5)
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

// buttonColors shades the accent color toward the background, darker the
// further the button is pushed.
func buttonColors(pressed, hovered bool) (fill, border color.RGBA) {
	k := 0.55
	switch {
	case pressed:
		k = 0.75
	case hovered:
		k = 0.65
	}
	fill = scene.Shade(scene.Blue, k)
	return fill, scene.AxisColor()
}

// cursorLabel reports the world coordinates under a window pixel.
func cursorLabel(cam scene.Camera, x, y int) string {
	p := cam.ScreenToWorld(float64(x), float64(y), config.WindowWidth, config.WindowHeight)
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
