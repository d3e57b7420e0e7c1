//go:build linux

package framebuffer

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/example/touchpaint/internal/surface"
)

const (
	fbiogetVScreenInfo = 0x4600
	fbiogetFScreenInfo = 0x4602
)

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// Open maps the framebuffer at path.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}

	var v varScreenInfo
	var fix fixScreenInfo
	if err := ioctl(f.Fd(), fbiogetVScreenInfo, unsafe.Pointer(&v)); err != nil {
		f.Close()
		return nil, fmt.Errorf("FBIOGET_VSCREENINFO %s: %w", path, err)
	}
	if err := ioctl(f.Fd(), fbiogetFScreenInfo, unsafe.Pointer(&fix)); err != nil {
		f.Close()
		return nil, fmt.Errorf("FBIOGET_FSCREENINFO %s: %w", path, err)
	}
	info, err := newInfo(v, fix)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	size := int(fix.LineLength) * info.Height
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	pix := unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(mem))), len(mem)/4)
	buf, err := surface.Wrap(pix, info.Width, info.Height, info.Stride)
	if err != nil {
		unix.Munmap(mem)
		f.Close()
		return nil, err
	}
	buf.Order = info.Order
	return &Device{Path: path, info: info, buf: buf, f: f, mem: mem}, nil
}

// Close unmaps the screen memory and closes the device. The buffer must not
// be used afterwards.
func (d *Device) Close() error {
	err := unix.Munmap(d.mem)
	d.mem = nil
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}
