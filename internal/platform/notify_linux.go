//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const appName = "touchpaint"

// Notify sends a desktop notification over the org.freedesktop.Notifications
// interface and returns the id assigned by the notification server.
func Notify(title, body string, opts Options) (uint32, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 5000
	}
	hints := map[string]dbus.Variant{
		"category": dbus.MakeVariant("device"),
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName, opts.Replaces, opts.IconPath, title, body, []string{}, hints, timeout)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}
