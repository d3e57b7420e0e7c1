package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/touchpaint/internal/mode"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "framebuffer":
			err = setFramebufferField(&cfg.Framebuffer, key, value)
		case "input":
			err = setInputField(&cfg.Input, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case "preview":
			err = setPreviewField(&cfg.Preview, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch key {
	case "width":
		cfg.Width, err = parseInt(key, value)
	case "height":
		cfg.Height, err = parseInt(key, value)
	case "brush_size":
		cfg.BrushSize, err = parseInt(key, value)
	case "follow_box_size":
		cfg.FollowBoxSize, err = parseInt(key, value)
	case "box_size":
		cfg.BoxSize, err = parseInt(key, value)
	case "paint_clear_delay":
		cfg.PaintClearDelay, err = parseInt(key, value)
	case "mode":
		var m mode.Mode
		if m, err = mode.Parse(value); err == nil {
			cfg.Mode = m
		}
	case "box_foreground":
		cfg.BoxForeground, err = parseColorKey(key, value)
	case "box_background":
		cfg.BoxBackground, err = parseColorKey(key, value)
	}
	return err
}

func setFramebufferField(fb *Framebuffer, key, value string) error {
	if key == "device" {
		fb.Device = value
	}
	return nil
}

func setInputField(in *Input, key, value string) error {
	switch key {
	case "devices", "device":
		in.Devices = nil
		for _, d := range strings.Split(value, ",") {
			if d = strings.TrimSpace(d); d != "" {
				in.Devices = append(in.Devices, d)
			}
		}
	case "grab":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		in.Grab = b
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "mode":
		n.Mode = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setPreviewField(p *Preview, key, value string) error {
	switch key {
	case "scale":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid scale %q", value)
		}
		p.Scale = f
	case "save_dir":
		p.SaveDir = value
	}
	return nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	return n, nil
}

func parseColorKey(key, value string) (color.RGBA, error) {
	c, err := parseColor(value)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	return c, nil
}

// parseColor parses a #RRGGBB or #RRGGBBAA hex color string.
func parseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}
