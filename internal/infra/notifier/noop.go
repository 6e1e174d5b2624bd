package notifier

import (
	"context"

	"newsroom/internal/usecase/notify"
)

// NoopChannel is a no-operation channel used when notifications are
// disabled, so callers never have to nil-check their channel list.
type NoopChannel struct{}

// NewNoopChannel creates a new NoopChannel instance.
func NewNoopChannel() *NoopChannel {
	return &NoopChannel{}
}

func (n *NoopChannel) Name() string { return "noop" }

func (n *NoopChannel) IsEnabled() bool { return true }

// Send does nothing and returns nil immediately.
func (n *NoopChannel) Send(ctx context.Context, msg *notify.Message) error {
	return nil
}
