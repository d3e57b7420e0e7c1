package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/touchpaint/internal/engine"
	"github.com/example/touchpaint/internal/framebuffer"
	"github.com/example/touchpaint/internal/input"
	"github.com/example/touchpaint/internal/surface"
)

// fbDevice is the part of a framebuffer the commands use.
type fbDevice interface {
	Info() framebuffer.Info
	Buffer() *surface.Buffer
	Surface(width, height int) (*surface.Buffer, error)
	Close() error
}

// openFramebuffer is replaced in tests.
var openFramebuffer = func(path string) (fbDevice, error) {
	return framebuffer.Open(path)
}

// serveInput is replaced in tests.
var serveInput = input.Serve

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type runCmd struct {
	*root
	fs      *flag.FlagSet
	device  string
	devices stringList
	grab    bool
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	c := &runCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.device, "fb", r.config.Framebuffer.Device, "framebuffer device to draw on")
	fs.Var(&c.devices, "input", "input event device (repeatable)")
	fs.BoolVar(&c.grab, "grab", r.config.Input.Grab, "take exclusive access to the input devices")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if len(c.devices) == 0 {
		c.devices = append(c.devices, r.config.Input.Devices...)
	}
	c.devices = append(c.devices, fs.Args()...)
	if len(c.devices) == 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *runCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx)
}

func (c *runCmd) run(ctx context.Context) error {
	fb, err := openFramebuffer(c.device)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer fb.Close()
	log.Printf("framebuffer %s", fb.Info())

	buf, err := fb.Surface(c.config.Width, c.config.Height)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	e, err := engine.New(c.config, buf, engine.WithModeListener(c.announceMode))
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	e.Start()

	serveErr := serveInput(ctx, e, c.devices, c.grab)
	if err := e.Close(); err != nil {
		log.Printf("stop engine: %v", err)
	}
	if serveErr != nil {
		return fmt.Errorf("run: %w", serveErr)
	}
	return nil
}
