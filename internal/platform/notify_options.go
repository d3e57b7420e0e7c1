package platform

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Replaces is the id of an earlier notification this one supersedes.
	// Zero always opens a new notification.
	Replaces uint32
	// Timeout in milliseconds; zero uses 5000.
	Timeout int32
}
