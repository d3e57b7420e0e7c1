package config

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/example/touchpaint/internal/mode"
)

// Fallback surface geometry used when neither the config nor a device
// provides one.
const (
	DefaultWidth  = 1080
	DefaultHeight = 2340
)

// Framebuffer selects the display device used by the run command.
type Framebuffer struct {
	Device string
}

// Input lists the event devices read by the run command.
type Input struct {
	Devices []string
	Grab    bool
}

// Notify holds notification settings.
type Notify struct {
	Mode bool
	Save bool
	Copy bool
}

// Preview configures the desktop preview window.
type Preview struct {
	Scale   float64 // 0 fits the primary monitor
	SaveDir string
}

// Config holds the application configuration.
type Config struct {
	// Width and Height of 0 use the device geometry (or the defaults in
	// preview mode).
	Width  int
	Height int

	BrushSize     int
	FollowBoxSize int
	BoxSize       int
	// PaintClearDelay in milliseconds: 0 clears on the next contact,
	// negative never clears.
	PaintClearDelay int
	Mode            mode.Mode

	BoxForeground color.RGBA
	BoxBackground color.RGBA

	Framebuffer Framebuffer
	Input       Input
	Notify      Notify
	Preview     Preview
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		BrushSize:     2,
		FollowBoxSize: 301,
		BoxSize:       301,
		Mode:          mode.Paint,
		BoxForeground: color.RGBA{255, 255, 0, 255},
		BoxBackground: color.RGBA{64, 0, 128, 255},
		Framebuffer:   Framebuffer{Device: "/dev/fb0"},
	}
}

// Validate reports settings the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("invalid surface size %dx%d", c.Width, c.Height)
	case c.BrushSize < 1:
		return fmt.Errorf("brush_size must be at least 1, got %d", c.BrushSize)
	case c.FollowBoxSize < 1:
		return fmt.Errorf("follow_box_size must be at least 1, got %d", c.FollowBoxSize)
	case c.BoxSize < 1:
		return fmt.Errorf("box_size must be at least 1, got %d", c.BoxSize)
	case !c.Mode.Valid():
		return fmt.Errorf("invalid mode %v", c.Mode)
	}
	return nil
}

// Settings converts the drawing parameters for the mode controller.
func (c *Config) Settings() mode.Settings {
	return mode.Settings{
		BrushSize:       c.BrushSize,
		FollowBoxSize:   c.FollowBoxSize,
		PaintClearDelay: time.Duration(c.PaintClearDelay) * time.Millisecond,
		Initial:         c.Mode,
	}
}

// Size returns the configured geometry, substituting the defaults for
// unset dimensions.
func (c *Config) Size() (width, height int) {
	width, height = c.Width, c.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	return width, height
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Width != 0 {
		fmt.Fprintf(&sb, "width = %d\n", c.Width)
	}
	if c.Height != 0 {
		fmt.Fprintf(&sb, "height = %d\n", c.Height)
	}
	fmt.Fprintf(&sb, "brush_size = %d\n", c.BrushSize)
	fmt.Fprintf(&sb, "follow_box_size = %d\n", c.FollowBoxSize)
	fmt.Fprintf(&sb, "box_size = %d\n", c.BoxSize)
	fmt.Fprintf(&sb, "paint_clear_delay = %d\n", c.PaintClearDelay)
	fmt.Fprintf(&sb, "mode = %s\n", c.Mode)
	fmt.Fprintf(&sb, "box_foreground = %s\n", toHex(c.BoxForeground))
	fmt.Fprintf(&sb, "box_background = %s\n", toHex(c.BoxBackground))
	sb.WriteString("\n")

	sb.WriteString("[framebuffer]\n")
	fmt.Fprintf(&sb, "device = %s\n", c.Framebuffer.Device)
	sb.WriteString("\n")

	sb.WriteString("[input]\n")
	if len(c.Input.Devices) > 0 {
		fmt.Fprintf(&sb, "devices = %s\n", strings.Join(c.Input.Devices, ", "))
	}
	fmt.Fprintf(&sb, "grab = %v\n", c.Input.Grab)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "mode = %v\n", c.Notify.Mode)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[preview]\n")
	if c.Preview.Scale != 0 {
		fmt.Fprintf(&sb, "scale = %g\n", c.Preview.Scale)
	}
	if c.Preview.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.Preview.SaveDir)
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
