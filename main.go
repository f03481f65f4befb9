package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/circle-trajectory/internal/config"
	"github.com/iburimskiy/circle-trajectory/internal/export"
	"github.com/iburimskiy/circle-trajectory/internal/game"
	"github.com/iburimskiy/circle-trajectory/internal/scene"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func (f *rootFlags) load() (config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if f.configPath == "" {
		return config.Default(), log, nil
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, log, err
	}
	log.Debug("loaded config", "path", f.configPath)
	return cfg, log, nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var sound bool

	preview := func(cmd *cobra.Command, args []string) error {
		cfg, log, err := flags.load()
		if err != nil {
			return err
		}
		g, err := game.New(cfg, game.Options{Sound: sound, Log: log})
		if err != nil {
			return err
		}
		return game.Run(g)
	}

	root := &cobra.Command{
		Use:           "circle-trajectory",
		Short:         "Three rolling circles and the paths traced by points on them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          preview,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "TOML file overriding the scene constants")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Play the animation in a window",
		RunE:  preview,
	}
	for _, c := range []*cobra.Command{root, previewCmd} {
		c.Flags().BoolVar(&sound, "sound", false, "chime on every full turn")
	}

	root.AddCommand(previewCmd, newRenderCmd(flags))
	return root
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := export.SequenceOptions{}
	var width, height int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the animation to PNG frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("frame size must be positive, got %dx%d", width, height)
			}
			cfg, log, err := flags.load()
			if err != nil {
				return err
			}
			s, err := scene.New(cfg, log)
			if err != nil {
				return err
			}
			log.Info("rendering", "dir", opts.Dir, "fps", opts.FPS, "size", []int{width, height}, "duration", s.Duration())
			_, err = export.NewRenderer(width, height).WriteSequence(cmd.Context(), s, opts, log)
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.Dir, "out", "o", "frames", "output directory")
	cmd.Flags().IntVar(&opts.FPS, "fps", config.ExportFPS, "frames per second of scene time")
	cmd.Flags().IntVar(&opts.Every, "every", 1, "write one frame out of every N")
	cmd.Flags().IntVar(&width, "width", config.ExportWidth, "frame width in pixels")
	cmd.Flags().IntVar(&height, "height", config.ExportHeight, "frame height in pixels")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
