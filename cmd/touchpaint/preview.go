package main

import (
	"flag"
	"fmt"

	"github.com/example/touchpaint/internal/engine"
	"github.com/example/touchpaint/internal/preview"
	"github.com/example/touchpaint/internal/surface"
)

type previewCmd struct {
	*root
	fs      *flag.FlagSet
	width   int
	height  int
	scale   float64
	saveDir string
}

func (p *previewCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePreviewCmd(args []string, r *root) (*previewCmd, error) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	c := &previewCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	w, h := r.config.Size()
	fs.IntVar(&c.width, "width", w, "surface width in pixels")
	fs.IntVar(&c.height, "height", h, "surface height in pixels")
	fs.Float64Var(&c.scale, "scale", r.config.Preview.Scale, "window zoom, 0 fits the primary monitor")
	fs.StringVar(&c.saveDir, "save-dir", r.config.Preview.SaveDir, "directory for Ctrl+S snapshots")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.width <= 0 || c.height <= 0 || c.scale < 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (p *previewCmd) Run() error {
	buf, err := surface.New(p.width, p.height)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	cfg := *p.config
	cfg.Width, cfg.Height = p.width, p.height
	e, err := engine.New(&cfg, buf, engine.WithModeListener(p.announceMode))
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	e.Start()
	defer e.Close()

	w := preview.New(e, p.width, p.height,
		preview.WithScale(p.scale),
		preview.WithSaveDir(p.saveDir),
		preview.WithNotifier(p.notifier),
	)
	return w.Run()
}
