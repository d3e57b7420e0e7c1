//go:build !linux

package input

import "os"

func grabDevice(*os.File) error {
	return ErrGrabUnsupported
}
