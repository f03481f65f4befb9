package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iburimskiy/circle-trajectory/internal/scene"
)

type SequenceOptions struct {
	Dir string
	FPS int
	// Every writes one frame out of Every; the rest are stepped but not encoded.
	Every int
}

// WriteSequence plays s to the end at opts.FPS, writing frame_NNNNN.png files
// and a final.png with the complete traces. It returns the number of frame
// files written.
func (r *Renderer) WriteSequence(ctx context.Context, s *scene.Scene, opts SequenceOptions, log *slog.Logger) (int, error) {
	if opts.FPS <= 0 {
		return 0, fmt.Errorf("fps must be > 0, got %d", opts.FPS)
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return 0, err
	}

	dt := 1 / float64(opts.FPS)
	written := 0
	for frame := 0; ; frame++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if frame%opts.Every == 0 {
			path := filepath.Join(opts.Dir, fmt.Sprintf("frame_%05d.png", frame))
			if err := WritePNG(path, r.RenderFrame(s)); err != nil {
				return written, err
			}
			written++
			if written%100 == 0 {
				log.Info("rendering", "frame", frame, "t", s.Elapsed(), "phase", s.Phase())
			}
		}
		if s.Done() {
			break
		}
		s.Step(dt)
	}

	if err := WritePNG(filepath.Join(opts.Dir, "final.png"), r.RenderFrame(s)); err != nil {
		return written, err
	}
	log.Info("render finished", "frames", written, "dir", opts.Dir)
	return written, nil
}

func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return png.Encode(f, img)
}
