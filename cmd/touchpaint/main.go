package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/mode"
	"github.com/example/touchpaint/internal/notify"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	stdout   io.Writer
	config   *config.Config
	notifier *notify.Notifier

	configPath string
	modeName   string
	brush      int
	followBox  int
	clearDelay int
	notifyMode bool
	notifySave bool
	notifyCopy bool
	debug      bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	defaults := config.New()
	r := &root{
		fs:       flag.NewFlagSet("touchpaint", flag.ExitOnError),
		program:  "touchpaint",
		stdout:   os.Stdout,
		notifier: notify.New(notify.LoadPreferences()),
	}
	r.fs.StringVar(&r.configPath, "config", "", "configuration file to load")
	r.fs.StringVar(&r.modeName, "mode", "", "initial mode: paint, fill, box or follow")
	r.fs.IntVar(&r.brush, "brush", defaults.BrushSize, "brush size in pixels for paint mode")
	r.fs.IntVar(&r.followBox, "follow-box", defaults.FollowBoxSize, "square size in pixels for follow mode")
	r.fs.IntVar(&r.clearDelay, "clear-delay", defaults.PaintClearDelay, "paint clear delay in ms: 0 clears on next touch, negative never clears")
	r.fs.BoolVar(&r.notifyMode, "notify-mode", defaults.Notify.Mode, "show a desktop notification when the mode changes")
	r.fs.BoolVar(&r.notifySave, "notify-save", defaults.Notify.Save, "show a desktop notification after saving a snapshot")
	r.fs.BoolVar(&r.notifyCopy, "notify-copy", defaults.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.debug, "debug", false, "log with timestamps and source locations")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig applies configuration in order of precedence:
// CLI > Env > Config file > Default.
func (r *root) loadConfig() error {
	path := r.configPath
	if path == "" {
		path = configPathOverride
	}
	cfg, err := config.NewLoader(version, path).Load()
	if err != nil {
		if r.configPath != "" {
			return fmt.Errorf("load config %s: %w", r.configPath, err)
		}
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	if v := strings.TrimSpace(os.Getenv("TOUCHPAINT_MODE")); v != "" && r.modeName == "" {
		r.modeName = v
	}
	if r.modeName != "" {
		m, err := mode.Parse(r.modeName)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}

	r.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "brush":
			cfg.BrushSize = r.brush
		case "follow-box":
			cfg.FollowBoxSize = r.followBox
		case "clear-delay":
			cfg.PaintClearDelay = r.clearDelay
		case "notify-mode":
			cfg.Notify.Mode = r.notifyMode
		case "notify-save":
			cfg.Notify.Save = r.notifySave
		case "notify-copy":
			cfg.Notify.Copy = r.notifyCopy
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.config = cfg
	return nil
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	if err := r.loadConfig(); err != nil {
		return err
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventMode, r.config.Notify.Mode)
		r.notifier.Enable(notify.EventSave, r.config.Notify.Save)
		r.notifier.Enable(notify.EventCopy, r.config.Notify.Copy)
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "run":
		cmd, err = parseRunCmd(subArgs, r)
	case "preview":
		cmd, err = parsePreviewCmd(subArgs, r)
	case "snapshot":
		cmd, err = parseSnapshotCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) announceMode(m mode.Mode) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Mode(m.String())
}

func (r *root) announceSave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}
