package game

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/ncruces/zenity"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/circle-trajectory/internal/audio"
	"github.com/iburimskiy/circle-trajectory/internal/config"
	"github.com/iburimskiy/circle-trajectory/internal/export"
	"github.com/iburimskiy/circle-trajectory/internal/scene"
)

const (
	// Button dimensions
	buttonWidth  = 120
	buttonHeight = 40
	buttonX      = 20
	buttonY      = 50

	// Progress bar
	barHeight = 16
	barMargin = 20

	// seekStep keeps replayed traces as dense as live playback
	seekStep     = 1.0 / 60
	seekCooldown = 50 * time.Millisecond
)

type Options struct {
	Sound bool
	Log   *slog.Logger
}

// Game is the interactive preview of the scene.
type Game struct {
	scene    *scene.Scene
	exporter *export.Renderer
	log      *slog.Logger
	face     text.Face

	// audio
	chime       *audio.Chime
	revolutions int

	// progress bar
	progressBarHovered  bool
	progressBarDragging bool
	lastSeekTime        time.Time

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	// state
	paused  bool
	lastErr error
}

func New(cfg config.Config, opts Options) (*Game, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	s, err := scene.New(cfg, log)
	if err != nil {
		return nil, err
	}
	g := &Game{
		scene:    s,
		exporter: export.NewRenderer(config.ExportWidth, config.ExportHeight),
		log:      log,
		face:     text.NewGoXFace(basicfont.Face7x13),
		prevKey:  map[ebiten.Key]bool{},
	}
	if opts.Sound {
		if err := g.initSound(); err != nil {
			// the preview is still useful without audio
			log.Warn("sound disabled", "err", err)
		}
	}
	return g, nil
}

func (g *Game) initSound() error {
	sr := beep.SampleRate(config.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return err
	}
	g.chime = audio.NewChime(sr, config.ChimeFrequency, time.Duration(config.ChimeSeconds*float64(time.Second)))
	speaker.Play(g.chime)
	return nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= buttonX && mouseX <= buttonX+buttonWidth &&
		mouseY >= buttonY && mouseY <= buttonY+buttonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.lastErr = g.saveSnapshotDialog()
		}
		g.buttonPressed = false
	}

	g.updateProgressBar(mouseX, mouseY)

	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyR) {
		g.scene.Reset()
		g.revolutions = 0
	}
	if justPressed(ebiten.KeyS) {
		g.lastErr = g.saveSnapshotDialog()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if !g.paused && !g.progressBarDragging {
		g.scene.Step(1 / float64(ebiten.TPS()))
	}
	g.updateChime()
	return nil
}

// updateChime strikes once per completed revolution of the tracked points.
func (g *Game) updateChime() {
	rev := g.scene.Revolutions()
	if rev > g.revolutions && g.chime != nil {
		g.chime.Strike()
	}
	g.revolutions = rev
}

func barRect() (x, y, w, h int) {
	return barMargin, config.WindowHeight - barHeight - barMargin, config.WindowWidth - 2*barMargin, barHeight
}

func (g *Game) updateProgressBar(mouseX, mouseY int) {
	barX, barY, barWidth, barH := barRect()
	g.progressBarHovered = mouseX >= barX && mouseX <= barX+barWidth &&
		mouseY >= barY && mouseY <= barY+barH

	if g.progressBarHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.progressBarDragging = true
		g.seekToPosition(float64(mouseX-barX)/float64(barWidth), false)
	}
	if !g.progressBarDragging {
		return
	}
	mouseProgress := clamp01(float64(mouseX-barX) / float64(barWidth))
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		// the cooldown may have swallowed the last moves of the drag
		g.progressBarDragging = false
		g.seekToPosition(mouseProgress, true)
		return
	}
	currentProgress := g.scene.Elapsed() / g.scene.Duration()
	if math.Abs(mouseProgress-currentProgress) > 0.01 {
		g.seekToPosition(mouseProgress, false)
	}
}

// seekToPosition jumps to pos in [0, 1] of the scene. Unless force is set,
// seeks closer than seekCooldown to the previous one are dropped.
func (g *Game) seekToPosition(pos float64, force bool) {
	// replaying is cheap but not free; drag events come every tick
	if !force && time.Since(g.lastSeekTime) < seekCooldown {
		return
	}
	g.scene.Seek(clamp01(pos)*g.scene.Duration(), seekStep)
	g.revolutions = g.scene.Revolutions()
	g.lastSeekTime = time.Now()
}

func (g *Game) saveSnapshotDialog() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Frame"),
		zenity.Filename("trajectory.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if err := export.WritePNG(filename, g.exporter.RenderFrame(g.scene)); err != nil {
		return err
	}
	g.log.Info("saved frame", "path", filename, "t", g.scene.Elapsed())
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Run opens the preview window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Circle Trajectory - Space: Pause, R: Restart, S: Save frame, Esc/Q: Quit")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
