//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest = "org.freedesktop.Notifications"
	notifyPath = "/org/freedesktop/Notifications"
)

// hints builds the freedesktop hint map for opts.
func hints(opts Options) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"category": dbus.MakeVariant(opts.category()),
	}
	if opts.IconPath != "" {
		h["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	if opts.Sound {
		h["sound-name"] = dbus.MakeVariant("complete")
	} else {
		h["suppress-sound"] = dbus.MakeVariant(true)
	}
	return h
}

// Notify sends a notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(notifyDest, notifyPath).Call(notifyDest+".Notify", 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints(opts), opts.timeout())
	return call.Err
}
