//go:build !linux

package framebuffer

// Open reports ErrUnsupported.
func Open(path string) (*Device, error) {
	return nil, ErrUnsupported
}

// Close is a no-op.
func (d *Device) Close() error { return nil }
