// Package platform dispatches desktop notifications through the host OS.
package platform

// DefaultAppName is reported to notification servers that track senders.
const DefaultAppName = "drawg"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender. DefaultAppName is used when empty.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMillis is how long the notification stays visible. Zero uses 5000.
	TimeoutMillis int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}
