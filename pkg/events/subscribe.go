package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/baleyard/pkg/logger"
)

// Handler processes one message. Handlers must be idempotent: a message is
// redelivered when the handler keeps failing.
type Handler func(ctx context.Context, msg *message.Message) error

// RetryPolicy bounds in-process retries of a failing handler.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = 3
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = 30 * p.BaseDelay
	}
	return p
}

// delay returns the wait before the given retry (1-based): doubling, capped.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return d
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying, such as an undecodable payload.
// The message is acknowledged and the error reported on the subscription's
// error channel.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Subscribe consumes topic until ctx ends or the bus closes. Each handler call
// gets a context carrying the publisher's trace and topic/message log fields.
//
// Outcomes:
//   - nil            → Ack
//   - Permanent(err) → Ack, err reported
//   - other errors   → retried per the bus RetryPolicy, then Nack for redelivery
//
// The returned channel (capacity 100) must be drained; it closes when the
// subscription ends.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, 100)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := messageContext(ctx, topic, msg)
			err := runWithRetry(msgCtx, msg, handler, q.opts.Retry, q.log)
			outcome := q.settle(msg, err)
			q.metrics.record(msgCtx, topic, outcome)
			if err == nil {
				continue
			}
			select {
			case errCh <- err:
			default:
				q.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err)
			}
		}
	}()
	return errCh, nil
}

func (q *EventBus) settle(msg *message.Message, err error) string {
	switch {
	case err == nil:
		msg.Ack()
		return outcomeAcked
	case IsPermanent(err):
		msg.Ack()
		return outcomeDiscarded
	default:
		msg.Nack()
		return outcomeNacked
	}
}

// messageContext restores the publisher's trace from metadata.
func messageContext(ctx context.Context, topic string, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(ctx, carrier)
	return logger.ContextWith(msgCtx, "topic", topic, "message_uuid", msg.UUID)
}

// runWithRetry calls handler until it succeeds, fails permanently, ctx ends,
// or the policy's attempts are used up.
func runWithRetry(ctx context.Context, msg *message.Message, handler Handler, policy RetryPolicy, log logger.Logger) error {
	var err error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		if err = handler(ctx, msg); err == nil || IsPermanent(err) {
			return err
		}
		if attempt == policy.Attempts {
			break
		}
		wait := policy.delay(attempt)
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt, "max_attempts", policy.Attempts, "next_delay", wait, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", policy.Attempts, err)
}
