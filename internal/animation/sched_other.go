//go:build !linux

package animation

func setRealtime() error { return nil }
