package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/usecase/notify"
)

// WebhookConfig contains configuration for the social webhook channel.
type WebhookConfig struct {
	// Enabled indicates whether webhook notifications are enabled
	Enabled bool

	// URL is the incoming webhook endpoint (includes the auth token)
	URL string

	// Timeout is the HTTP request timeout for webhook calls
	Timeout time.Duration
}

// WebhookChannel announces publications through a Slack-compatible
// incoming webhook. It posts one message per publication event and
// ignores the recipient list; the webhook's audience is whoever follows
// the configured room or feed.
type WebhookChannel struct {
	config      WebhookConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
	baseDelay   time.Duration
}

// NewWebhookChannel creates a WebhookChannel limited to 1 request per
// second with a burst of 1, matching the common incoming-webhook limit.
func NewWebhookChannel(config WebhookConfig) *WebhookChannel {
	return &WebhookChannel{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
		baseDelay:   5 * time.Second,
	}
}

func (w *WebhookChannel) Name() string { return "webhook" }

func (w *WebhookChannel) IsEnabled() bool { return w.config.Enabled }

// webhookPayload is the JSON body posted to the webhook using Block Kit.
type webhookPayload struct {
	Text   string         `json:"text"`
	Blocks []webhookBlock `json:"blocks"`
}

type webhookBlock struct {
	Type     string              `json:"type"`
	Text     *webhookTextObject  `json:"text,omitempty"`
	Elements []webhookTextObject `json:"elements,omitempty"`
}

type webhookTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	maxSectionTextLength = 3000
	maxContextTextLength = 2000
	maxFallbackLength    = 150

	truncationSuffix = "..."
)

// buildPayload renders the publication event as a section block with the
// subject in bold over the body, plus a context block carrying the event
// kind and timestamp. Text is truncated to fit Block Kit limits.
func (w *WebhookChannel) buildPayload(msg *notify.Message) webhookPayload {
	fallbackText := truncate(msg.Subject, maxFallbackLength, truncationSuffix)

	sectionText := fmt.Sprintf("*%s*\n\n%s", msg.Subject, msg.Body)
	sectionText = truncate(sectionText, maxSectionTextLength, truncationSuffix)

	contextText := fmt.Sprintf("%s • %s", msg.Kind, time.Now().Format(time.RFC3339))
	contextText = truncate(contextText, maxContextTextLength, truncationSuffix)

	return webhookPayload{
		Text: fallbackText,
		Blocks: []webhookBlock{
			{
				Type: "section",
				Text: &webhookTextObject{Type: "mrkdwn", Text: sectionText},
			},
			{
				Type: "context",
				Elements: []webhookTextObject{
					{Type: "mrkdwn", Text: contextText},
				},
			},
		},
	}
}

// sendRequest posts one payload and classifies the response: 429 becomes
// a RateLimitError with the upstream backoff hint, other 4xx a
// non-retryable ClientError, 5xx a retryable ServerError.
func (w *WebhookChannel) sendRequest(ctx context.Context, msg *notify.Message) error {
	jsonData, err := json.Marshal(w.buildPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.URL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Message:    "webhook rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, body),
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("webhook client error: %s", string(body)),
		}
	}

	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("webhook server error: %s", string(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// sendWithRetry makes up to two attempts. 429 waits out the upstream
// backoff hint, 5xx and network errors back off linearly, 4xx fails
// immediately.
func (w *WebhookChannel) sendWithRetry(ctx context.Context, msg *notify.Message) error {
	const maxAttempts = 2

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := w.sendRequest(ctx, msg)
		if err == nil {
			slog.Info("webhook notification successful",
				slog.String("request_id", requestID),
				slog.String("kind", msg.Kind),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("webhook rate limit hit, backing off",
				slog.String("request_id", requestID),
				slog.String("kind", msg.Kind),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))
			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("webhook notification failed with non-retryable error",
				slog.String("request_id", requestID),
				slog.String("kind", msg.Kind),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		if attempt < maxAttempts {
			delay := w.baseDelay * time.Duration(attempt)
			slog.Warn("webhook request failed, retrying",
				slog.String("request_id", requestID),
				slog.String("kind", msg.Kind),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	slog.Error("webhook notification failed after all retries",
		slog.String("request_id", requestID),
		slog.String("kind", msg.Kind),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return fmt.Errorf("webhook notification failed after %d attempts: %w", maxAttempts, lastErr)
}

// Send posts the publication announcement, applying the rate limit first
// and retrying transient failures.
func (w *WebhookChannel) Send(ctx context.Context, msg *notify.Message) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	if err := w.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	return w.sendWithRetry(ctx, msg)
}
