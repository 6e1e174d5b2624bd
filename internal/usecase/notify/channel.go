// Package notify provides use cases for dispatching publication
// notifications across multiple channels. Notifications are sent
// asynchronously; channel failures are logged and counted but never
// propagate to the publishing flow.
package notify

import "context"

// Message is a channel-agnostic notification about a publication event.
type Message struct {
	// Kind identifies the event: "article", "newsletter" or "digest".
	Kind string
	// Subject is a short one-line summary, used as the email subject and
	// the social post lead.
	Subject string
	// Body carries the long-form text. Channels truncate as needed.
	Body string
	// Recipients holds the email addresses of subscribers to deliver to.
	// Channels without per-recipient delivery (social posts) ignore it.
	Recipients []string
}

// Channel represents a notification delivery channel (email, social post).
//
// Implementations must be safe for concurrent use, respect context
// cancellation, and apply their own rate limiting. Errors returned from
// Send are counted against the channel's circuit breaker.
type Channel interface {
	// Name returns the channel identifier (lowercase, alphanumeric),
	// used for logging, metrics and health reporting.
	Name() string

	// IsEnabled reports whether the channel is enabled via configuration.
	// Disabled channels are skipped during dispatch.
	IsEnabled() bool

	// Send delivers one message to this channel.
	Send(ctx context.Context, msg *Message) error
}
