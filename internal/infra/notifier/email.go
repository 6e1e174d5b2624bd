package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/resilience/retry"
	"newsroom/internal/usecase/notify"
)

// EmailConfig contains configuration for the SMTP email channel.
type EmailConfig struct {
	// Enabled indicates whether email notifications are enabled
	Enabled bool

	// Host and Port locate the SMTP server
	Host string
	Port int

	// Username and Password authenticate against the SMTP server.
	// Leave both empty for an unauthenticated relay.
	Username string
	Password string

	// From is the sender address on outgoing mail
	From string
}

// sendMailFunc matches smtp.SendMail so tests can intercept delivery.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailChannel delivers publication notifications to subscriber inboxes
// over SMTP. Recipients go on Bcc so subscribers never see each other's
// addresses.
type EmailChannel struct {
	config      EmailConfig
	rateLimiter *RateLimiter
	sendMail    sendMailFunc
}

// NewEmailChannel creates an EmailChannel limited to 5 messages per second
// with a burst of 10, which keeps a self-hosted relay comfortable.
func NewEmailChannel(config EmailConfig) *EmailChannel {
	return &EmailChannel{
		config:      config,
		rateLimiter: NewRateLimiter(5.0, 10),
		sendMail:    smtp.SendMail,
	}
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) IsEnabled() bool { return e.config.Enabled }

// Send delivers one message to every recipient in a single SMTP
// transaction. A message without recipients is a no-op, not an error:
// unsubscribed content simply has nobody to tell.
func (e *EmailChannel) Send(ctx context.Context, msg *notify.Message) error {
	if len(msg.Recipients) == 0 {
		return nil
	}

	requestID := uuid.New().String()

	if err := e.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	var auth smtp.Auth
	if e.config.Username != "" {
		auth = smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)
	}

	// relay hiccups (refused connections, timeouts) are worth a few
	// backed-off attempts before the circuit breaker hears about it
	wire := e.buildMessage(msg)
	err := retry.WithBackoff(ctx, retry.NotificationConfig(), func() error {
		return e.sendMail(addr, auth, e.config.From, msg.Recipients, wire)
	})
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	slog.Info("email notification sent",
		slog.String("request_id", requestID),
		slog.String("kind", msg.Kind),
		slog.Int("recipients", len(msg.Recipients)))
	return nil
}

// buildMessage renders the RFC 5322 wire format. Recipients are omitted
// from the headers on purpose; they travel only in the envelope.
func (e *EmailChannel) buildMessage(msg *notify.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.config.From)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
