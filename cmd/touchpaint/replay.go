package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/example/touchpaint/internal/engine"
	"github.com/example/touchpaint/internal/input"
	"github.com/example/touchpaint/internal/preview"
	"github.com/example/touchpaint/internal/surface"
)

type replayCmd struct {
	*root
	fs       *flag.FlagSet
	input    string
	output   string
	raw      bool
	realtime bool
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.input, "input", "", "event script (JSON) or raw event recording with -raw")
	fs.StringVar(&c.output, "output", "", "output PNG file")
	fs.BoolVar(&c.raw, "raw", false, "input is a binary input_event recording")
	fs.BoolVar(&c.realtime, "realtime", false, "sleep between raw events using their timestamps")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.input == "" || c.output == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// Script is a scripted input session rendered headlessly.
type Script struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Steps  []ScriptStep `json:"steps"`
}

// ScriptStep is one frame-protocol operation. Op is one of select, x, y,
// down, lift, commit, cycle or wait; wait takes milliseconds.
type ScriptStep struct {
	Op    string `json:"op"`
	Value int    `json:"value"`
}

func (s ScriptStep) event() (input.Event, error) {
	switch s.Op {
	case "select":
		return input.Event{Type: input.EV_ABS, Code: input.ABS_MT_SLOT, Value: int32(s.Value)}, nil
	case "x":
		return input.Event{Type: input.EV_ABS, Code: input.ABS_MT_POSITION_X, Value: int32(s.Value)}, nil
	case "y":
		return input.Event{Type: input.EV_ABS, Code: input.ABS_MT_POSITION_Y, Value: int32(s.Value)}, nil
	case "down":
		return input.Event{Type: input.EV_ABS, Code: input.ABS_MT_TRACKING_ID, Value: int32(s.Value)}, nil
	case "lift":
		return input.Event{Type: input.EV_ABS, Code: input.ABS_MT_TRACKING_ID, Value: -1}, nil
	case "commit":
		return input.Event{Type: input.EV_SYN, Code: input.SYN_REPORT}, nil
	case "cycle":
		return input.Event{Type: input.EV_KEY, Code: input.KEY_VOLUMEUP, Value: 1}, nil
	}
	return input.Event{}, fmt.Errorf("unknown op %q", s.Op)
}

func (c *replayCmd) Run() error {
	f, err := os.Open(c.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var script Script
	if !c.raw {
		if err := json.NewDecoder(f).Decode(&script); err != nil {
			return fmt.Errorf("decode input: %w", err)
		}
	}

	cfg := *c.config
	if script.Width > 0 {
		cfg.Width = script.Width
	}
	if script.Height > 0 {
		cfg.Height = script.Height
	}
	cfg.Width, cfg.Height = cfg.Size()
	buf, err := surface.New(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	e, err := engine.New(&cfg, buf)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	e.Start()
	defer e.Close()

	if c.raw {
		err = replayRaw(e, f, c.realtime)
	} else {
		err = replayScript(e, script)
	}
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if err := preview.WritePNG(c.output, e.Snapshot()); err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	return nil
}

func replayScript(sink input.Sink, script Script) error {
	for i, step := range script.Steps {
		if step.Op == "wait" {
			time.Sleep(time.Duration(step.Value) * time.Millisecond)
			continue
		}
		ev, err := step.event()
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err := input.Dispatch(sink, ev); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func replayRaw(sink input.Sink, r io.Reader, realtime bool) error {
	dec := input.NewDecoder(r)
	var last time.Duration
	for n := 0; ; n++ {
		ev, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("event %d: %w", n, err)
		}
		if realtime && n > 0 && ev.Time > last {
			time.Sleep(ev.Time - last)
		}
		last = ev.Time
		if err := input.Dispatch(sink, ev); err != nil {
			return fmt.Errorf("event %d: %w", n, err)
		}
	}
}
