package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/touchpaint/internal/mode"
)

func TestParse(t *testing.T) {
	input := `
# phone panel
width = 1080
height = 2340
brush_size = 5
follow_box_size: 101
paint_clear_delay = 750
mode = follow
box_foreground = #FF0000

[framebuffer]
device = /dev/fb1

[input]
devices = /dev/input/event2, /dev/input/event4
grab = true

[notify]
mode = true
save = false
copy = true

[preview]
scale = 0.25
save_dir = "/tmp/paint"
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Width != 1080 || cfg.Height != 2340 {
		t.Errorf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.BrushSize != 5 || cfg.FollowBoxSize != 101 {
		t.Errorf("unexpected sizes brush=%d follow=%d", cfg.BrushSize, cfg.FollowBoxSize)
	}
	if cfg.BoxSize != 301 {
		t.Errorf("box_size default lost: %d", cfg.BoxSize)
	}
	if cfg.Mode != mode.Follow {
		t.Errorf("expected follow mode, got %v", cfg.Mode)
	}
	if cfg.BoxForeground != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("unexpected box foreground %+v", cfg.BoxForeground)
	}
	if cfg.Framebuffer.Device != "/dev/fb1" {
		t.Errorf("unexpected device %q", cfg.Framebuffer.Device)
	}
	if len(cfg.Input.Devices) != 2 || cfg.Input.Devices[1] != "/dev/input/event4" || !cfg.Input.Grab {
		t.Errorf("unexpected input %+v", cfg.Input)
	}
	if !cfg.Notify.Mode || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("unexpected notify %+v", cfg.Notify)
	}
	if cfg.Preview.Scale != 0.25 || cfg.Preview.SaveDir != "/tmp/paint" {
		t.Errorf("unexpected preview %+v", cfg.Preview)
	}
	if got := cfg.Settings().PaintClearDelay; got != 750*time.Millisecond {
		t.Errorf("unexpected clear delay %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"brush_size = big":           "root section",
		"mode = spray":               "unknown mode",
		"box_background = 400080":    "must start with #",
		"[notify]\nmode = sometimes": "[notify]",
		"[input]\ngrab = maybe":      "[input]",
		"[preview]\nscale = -1":      "invalid scale",
	}
	for in, want := range cases {
		_, err := Parse(strings.NewReader(in))
		if err == nil {
			t.Errorf("%q: expected error", in)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q: error %q does not mention %q", in, err, want)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `width = 720
height = 1280
brush_size = 3
paint_clear_delay = -1
mode = box
box_background = #10203040

[input]
devices = /dev/input/event1
grab = true

[notify]
mode = true
save = true
copy = false

[preview]
scale = 0.5
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.String() != cfg2.String() {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", cfg, cfg2)
	}
	if cfg2.Mode != mode.Box || cfg2.PaintClearDelay != -1 {
		t.Errorf("unexpected values after round trip: %+v", cfg2)
	}
	if cfg2.BoxBackground != (color.RGBA{0x10, 0x20, 0x30, 0x40}) {
		t.Errorf("alpha lost in round trip: %+v", cfg2.BoxBackground)
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	cfg.BrushSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero brush")
	}
}

func TestSizeDefaults(t *testing.T) {
	cfg := New()
	w, h := cfg.Size()
	if w != DefaultWidth || h != DefaultHeight {
		t.Fatalf("unexpected default size %dx%d", w, h)
	}
}

func TestLoaderOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("brush_size = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	t.Setenv("TOUCHPAINT_CONFIG", "")

	cfg, err := NewLoader("1.0.0", path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BrushSize != 9 {
		t.Fatalf("override not loaded, brush=%d", cfg.BrushSize)
	}
}

func TestLoaderEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.rc")
	if err := os.WriteFile(path, []byte("mode = fill\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	t.Setenv("TOUCHPAINT_CONFIG", path)

	l := NewLoader("1.0.0", "")
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}
}
