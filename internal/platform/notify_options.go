package platform

import "errors"

// DefaultAppName identifies the sender on platforms that show one.
const DefaultAppName = "ColorFill"

// ErrUnsupported is returned where no notification service is known.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// AppName overrides DefaultAppName.
	AppName string
	// Category is a freedesktop notification category. Ignored elsewhere.
	Category string
	// Sound asks for the platform's notification sound.
	Sound bool
	// TimeoutMillis is how long the notification stays visible where the
	// platform lets the sender choose. Zero means five seconds.
	TimeoutMillis int32
}

func (o Options) appName() string {
	if o.AppName != "" {
		return o.AppName
	}
	return DefaultAppName
}

func (o Options) category() string {
	if o.Category != "" {
		return o.Category
	}
	return "transfer.complete"
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis > 0 {
		return o.TimeoutMillis
	}
	return 5000
}
