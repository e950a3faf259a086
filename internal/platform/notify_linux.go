//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"
	notificationsCall = notificationsName + ".Notify"
	categoryTransfer  = "transfer.complete"
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(notificationsName, notificationsPath)
	if err := obj.Call(notificationsCall, 0, notifyArgs(title, body, opts)...).Err; err != nil {
		return fmt.Errorf("%s: %w", notificationsCall, err)
	}
	return nil
}

// notifyArgs builds the Notify arguments: app name, replaces id, icon,
// summary, body, actions, hints and timeout.
func notifyArgs(title, body string, opts Options) []interface{} {
	hints := map[string]dbus.Variant{
		"category":      dbus.MakeVariant(categoryTransfer),
		"desktop-entry": dbus.MakeVariant(opts.appName()),
	}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	return []interface{}{
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints, opts.timeout(),
	}
}
