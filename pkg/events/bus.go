// Package events carries bale placement events over PostgreSQL with Watermill.
//
// Messages are load-balanced across every process sharing a consumer group;
// an empty group broadcasts every message to every subscriber. The api process
// publishes through the forwarder outbox so events written inside a placement
// transaction survive a crash after commit.
//
// Trace context travels in message metadata: InjectTraceContext on the way in,
// extraction in Subscribe on the way out.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/baleyard/pkg/config"
	"github.com/ghuser/baleyard/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	forwarderTopic  = "baleyard_outbox"
)

// Process roles, used to derive consumer group names.
const (
	RoleAPI    = "api"
	RoleWorker = "worker"
)

// Options configures an EventBus.
type Options struct {
	DatabaseURL string
	// ConsumerGroup shares messages between processes. Empty means broadcast.
	ConsumerGroup string
	// Forwarder routes every publish through the outbox topic.
	Forwarder bool
	Retry     RetryPolicy
}

// OptionsFromConfig derives bus options for the given process role. Only the
// api process publishes placement events, so only it runs the forwarder.
func OptionsFromConfig(cfg *config.Config, role string) Options {
	return Options{
		DatabaseURL:   cfg.DefinitionDatabaseURL,
		ConsumerGroup: cfg.ServiceName + "-" + role,
		Forwarder:     role == RoleAPI,
		Retry: RetryPolicy{
			Attempts:  cfg.EventRetryAttempts,
			BaseDelay: cfg.EventRetryBaseDelay,
			MaxDelay:  cfg.EventRetryMaxDelay,
		},
	}
}

// EventBus publishes and consumes messages stored in PostgreSQL. Delivery uses
// FOR UPDATE SKIP LOCKED, so competing consumers never see the same row.
type EventBus struct {
	opts       Options
	db         *sql.DB
	log        logger.Logger
	wlog       *slogAdapter
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	metrics    *deliveryMetrics
	wg         sync.WaitGroup
}

// New opens its own connection pool and prepares the publisher and subscriber.
// Schema tables are created on first use.
func New(opts Options, log logger.Logger) (*EventBus, error) {
	if opts.DatabaseURL == "" {
		return nil, errors.New("events: database url is required")
	}
	db, err := sql.Open("pgx", opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	bus := &EventBus{
		opts: opts,
		db:   db,
		log:  log,
		wlog: &slogAdapter{log: log},
	}
	bus.opts.Retry = opts.Retry.withDefaults()

	if bus.metrics, err = newDeliveryMetrics(nil); err != nil {
		_ = db.Close()
		return nil, err
	}

	pub, err := bus.sqlPublisher(db, true)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	bus.publisher = bus.outbox(pub)

	bus.subscriber, err = bus.sqlSubscriber(opts.ConsumerGroup)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}
	return bus, nil
}

func (q *EventBus) sqlPublisher(db watermillsql.ContextExecutor, initSchema bool) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func (q *EventBus) sqlSubscriber(group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}
	return sub, nil
}

// outbox wraps pub in a forwarder envelope when the bus runs in forwarder mode.
func (q *EventBus) outbox(pub message.Publisher) message.Publisher {
	if !q.opts.Forwarder {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// NewTxPublisher returns a publisher bound to tx, so a placement update and its
// event commit or roll back together. The schema must already exist.
func (q *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := q.sqlPublisher(tx, false)
	if err != nil {
		return nil, fmt.Errorf("events: tx publisher: %w", err)
	}
	return q.outbox(pub), nil
}

// Publish sends msgs to topic with the trace context of ctx attached.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	InjectTraceContext(ctx, msgs...)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Ping checks the bus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, waits up to 30s for in-flight handlers and the
// forwarder, then closes the publisher and the pool.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}
