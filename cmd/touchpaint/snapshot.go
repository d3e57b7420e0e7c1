package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/example/touchpaint/internal/clipboard"
	"github.com/example/touchpaint/internal/preview"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteImage

type snapshotCmd struct {
	*root
	fs          *flag.FlagSet
	device      string
	output      string
	stdout      bool
	toClipboard bool
	out         io.Writer
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	s := &snapshotCmd{root: r, fs: fs, out: r.stdout}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.device, "fb", r.config.Framebuffer.Device, "framebuffer device to read")
	fs.StringVar(&s.output, "output", "touchpaint.png", "write the snapshot to this file path")
	fs.StringVar(&s.output, "o", "touchpaint.png", "write the snapshot to this file path (alias)")
	fs.BoolVar(&s.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the snapshot to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if s.toClipboard && s.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	return s, nil
}

func (s *snapshotCmd) Run() error {
	fb, err := openFramebuffer(s.device)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", s.device, err)
	}
	img := opaque(fb.Buffer().RGBA())
	if err := fb.Close(); err != nil {
		return fmt.Errorf("snapshot %s: %w", s.device, err)
	}

	switch {
	case s.stdout:
		return png.Encode(s.out, img)
	case s.toClipboard:
		if err := copyToClipboard(img); err != nil {
			return fmt.Errorf("snapshot: copy to clipboard: %w", err)
		}
		if s.notifier != nil {
			s.notifier.Copy(s.device, img)
		}
		return nil
	}
	if err := preview.WritePNG(s.output, img); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", s.output)
	s.announceSave(s.output)
	return nil
}

// opaque forces full alpha; XRGB framebuffers leave the top byte unset.
func opaque(img *image.RGBA) *image.RGBA {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}
