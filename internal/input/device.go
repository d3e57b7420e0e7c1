package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/sync/errgroup"
)

// ErrGrabUnsupported is returned when exclusive access is requested on a
// platform without EVIOCGRAB.
var ErrGrabUnsupported = errors.New("exclusive device grab not supported on this platform")

// Device is an open evdev node.
type Device struct {
	Path string
	f    *os.File
}

// Open opens path for reading. With grab set, other readers of the device
// stop receiving its events until the device is closed.
func Open(path string, grab bool) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	if grab {
		if err := grabDevice(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("grab %s: %w", path, err)
		}
	}
	return &Device{Path: path, f: f}, nil
}

// Close releases the device.
func (d *Device) Close() error {
	return d.f.Close()
}

// Run decodes events and dispatches them to sink until ctx is cancelled or
// the device fails. Cancellation closes the device and returns nil.
func (d *Device) Run(ctx context.Context, sink Sink) error {
	stop := context.AfterFunc(ctx, func() { d.f.Close() })
	defer stop()
	return serve(ctx, d.Path, NewDecoder(d.f), sink)
}

func serve(ctx context.Context, name string, dec *Decoder, sink Sink) error {
	for {
		ev, err := dec.Decode()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := Dispatch(sink, ev); err != nil {
			log.Printf("input %s: %v: %v", name, ev, err)
		}
	}
}

// Serve opens every path and feeds all of them into sink until ctx is
// cancelled or one device fails.
func Serve(ctx context.Context, sink Sink, paths []string, grab bool) error {
	if len(paths) == 0 {
		return errors.New("no input devices configured")
	}
	devices := make([]*Device, 0, len(paths))
	for _, p := range paths {
		d, err := Open(p, grab)
		if err != nil {
			for _, open := range devices {
				open.Close()
			}
			return err
		}
		devices = append(devices, d)
	}

	sink = Serialize(sink)
	g, ctx := errgroup.WithContext(ctx)
	for _, d := range devices {
		d := d
		g.Go(func() error {
			defer d.Close()
			log.Printf("reading input from %s", d.Path)
			return d.Run(ctx, sink)
		})
	}
	return g.Wait()
}
