package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/forwarder"
)

// ErrNotForwarding is returned by StartForwarder on a bus built without Options.Forwarder.
var ErrNotForwarding = errors.New("events: bus is not in forwarder mode")

// StartForwarder runs the daemon that drains the outbox topic into the real
// topics. It returns once the daemon is running; it stops with ctx or Close.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.opts.Forwarder {
		return ErrNotForwarding
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	outboxSub, err := q.sqlSubscriber(q.opts.ConsumerGroup + "-forwarder")
	if err != nil {
		return err
	}
	target, err := q.sqlPublisher(q.db, true)
	if err != nil {
		_ = outboxSub.Close()
		return err
	}

	fwd, err := forwarder.NewForwarder(outboxSub, target, q.wlog, forwarder.Config{
		ForwarderTopic: forwarderTopic,
	})
	if err != nil {
		_ = target.Close()
		_ = outboxSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started", "outbox", forwarderTopic)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}
