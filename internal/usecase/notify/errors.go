package notify

import "errors"

// Sentinel errors for notify use case operations.
var (
	// ErrChannelDisabled indicates that Send() was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidMessage indicates that the message is nil or missing a subject.
	ErrInvalidMessage = errors.New("invalid notification message")

	// ErrNotificationDropped indicates that a notification was dropped due to
	// worker pool saturation. Non-critical, used for observability.
	ErrNotificationDropped = errors.New("notification dropped due to pool saturation")
)
