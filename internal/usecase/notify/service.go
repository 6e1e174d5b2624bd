package notify

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"newsroom/internal/resilience/circuitbreaker"
)

const (
	workerPoolTimeout   = 5 * time.Second  // Timeout for acquiring worker slot
	notificationTimeout = 30 * time.Second // Timeout for individual notification
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "request_id"

// Service handles notification dispatching to multiple channels.
//
// Dispatch is non-blocking: notifications are sent in background
// goroutines and failures never propagate to the caller. Each channel is
// guarded by its own circuit breaker so a dead webhook or mail relay
// cannot pile up goroutines.
type Service interface {
	// Dispatch fans the message out to all enabled channels and returns
	// immediately. Always returns nil for a valid message.
	Dispatch(ctx context.Context, msg *Message) error

	// GetChannelHealth returns the circuit breaker state of every channel,
	// for health check endpoints.
	GetChannelHealth() []ChannelHealthStatus

	// Shutdown waits for in-flight notifications to complete or the
	// context to expire.
	Shutdown(ctx context.Context) error
}

// ChannelHealthStatus reports one channel's availability.
type ChannelHealthStatus struct {
	Name               string
	Enabled            bool
	CircuitBreakerOpen bool
}

type service struct {
	channels       []Channel
	breakers       map[string]*circuitbreaker.CircuitBreaker
	workerPool     chan struct{} // Semaphore for limiting concurrent sends
	wg             sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService creates a notification service with the given channels and a
// bound on concurrent sends.
func NewService(channels []Channel, maxConcurrent int) Service {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	svc := &service{
		channels:       channels,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker),
		workerPool:     make(chan struct{}, maxConcurrent),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}
	for _, ch := range channels {
		svc.breakers[ch.Name()] = circuitbreaker.New(circuitbreaker.NotificationConfig(ch.Name()))
	}
	return svc
}

// Dispatch implements Service.Dispatch.
func (s *service) Dispatch(ctx context.Context, msg *Message) error {
	if msg == nil || msg.Subject == "" {
		return ErrInvalidMessage
	}

	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		requestID = uuid.New().String()
	}

	enabledCount := 0
	for _, ch := range s.channels {
		if ch.IsEnabled() {
			enabledCount++
		}
	}
	SetChannelsEnabled(float64(enabledCount))

	if enabledCount == 0 {
		slog.Debug("no notification channels enabled",
			slog.String("request_id", requestID),
			slog.String("kind", msg.Kind))
		return nil
	}

	slog.Info("dispatching notification",
		slog.String("request_id", requestID),
		slog.String("kind", msg.Kind),
		slog.String("subject", msg.Subject),
		slog.Int("recipients", len(msg.Recipients)),
		slog.Int("enabled_channels", enabledCount))

	for _, ch := range s.channels {
		if ch.IsEnabled() {
			s.wg.Add(1)
			go s.notifyChannel(requestID, ch, msg)
		}
	}
	return nil
}

// notifyChannel sends one message to a single channel in a goroutine.
func (s *service) notifyChannel(requestID string, channel Channel, msg *Message) {
	defer s.wg.Done()

	IncrementActiveGoroutines()
	defer DecrementActiveGoroutines()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in notification channel",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	// Acquire worker slot with timeout so a saturated pool sheds load
	// instead of blocking forever.
	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-time.After(workerPoolTimeout):
		slog.Warn("notification dropped: worker pool full",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()))
		RecordDropped(channel.Name(), "pool_full")
		return
	}

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	start := time.Now()
	RecordDispatch(channel.Name())

	_, err := s.breakers[channel.Name()].Execute(func() (interface{}, error) {
		return nil, channel.Send(ctx, msg)
	})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("notification dropped: circuit breaker open",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()))
			RecordDropped(channel.Name(), "circuit_open")
			return
		}
		RecordFailure(channel.Name(), duration)
		slog.Warn("channel notification failed",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.String("kind", msg.Kind),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
		return
	}

	RecordSuccess(channel.Name(), duration)
	slog.Info("channel notification sent",
		slog.String("request_id", requestID),
		slog.String("channel", channel.Name()),
		slog.String("kind", msg.Kind),
		slog.String("subject", msg.Subject),
		slog.Duration("send_duration", duration))
}

// GetChannelHealth implements Service.GetChannelHealth.
func (s *service) GetChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: s.breakers[ch.Name()].IsOpen(),
		})
	}
	return statuses
}

// Shutdown implements Service.Shutdown.
func (s *service) Shutdown(ctx context.Context) error {
	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification service shut down")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
