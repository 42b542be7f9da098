package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/comprende-ia/comprende-api/internal/observability"
)

// SubjectAttemptCompleted is the subject completed attempts are published on.
const SubjectAttemptCompleted = "comprende.attempt.completed"

// AttemptCompletedEvent is the payload published after an attempt is scored.
type AttemptCompletedEvent struct {
	AttemptID  uint      `json:"attempt_id"`
	UserID     uint      `json:"user_id"`
	TextID     uint      `json:"text_id"`
	TotalScore int       `json:"total_score"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AttemptNotifier publishes attempt lifecycle events. Implementations must
// never block the caller beyond their configured timeout.
type AttemptNotifier interface {
	AttemptCompleted(ctx context.Context, event AttemptCompletedEvent) error
}

// NATSNotifier publishes events over a NATS connection.
type NATSNotifier struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSNotifier builds a notifier on an established connection.
func NewNATSNotifier(conn *nats.Conn, logger zerolog.Logger) *NATSNotifier {
	return &NATSNotifier{
		conn:   conn,
		logger: logger.With().Str("component", "nats_notifier").Logger(),
	}
}

// AttemptCompleted publishes the event as JSON.
func (n *NATSNotifier) AttemptCompleted(_ context.Context, event AttemptCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := n.conn.Publish(SubjectAttemptCompleted, payload); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectAttemptCompleted, err)
	}

	n.logger.Debug().Uint("attempt_id", event.AttemptID).Msg("attempt completion published")

	return nil
}

// NoopNotifier discards events. Used when no broker is configured.
type NoopNotifier struct{}

// AttemptCompleted does nothing.
func (NoopNotifier) AttemptCompleted(context.Context, AttemptCompletedEvent) error { return nil }

// notifyDetached fires the notifier on a fresh goroutine with its own timeout.
// Delivery failures are counted and logged, never surfaced to the caller.
func notifyDetached(notifier AttemptNotifier, timeout time.Duration, logger zerolog.Logger, event AttemptCompletedEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := notifier.AttemptCompleted(ctx, event); err != nil {
			observability.Notifications().WithLabelValues("failure").Inc()
			logger.Warn().Err(err).Uint("attempt_id", event.AttemptID).Msg("attempt notification failed")
			return
		}
		observability.Notifications().WithLabelValues("success").Inc()
	}()
}
