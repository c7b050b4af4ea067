package events

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	outcomeAcked     = "acked"
	outcomeDiscarded = "discarded"
	outcomeNacked    = "nacked"
)

type deliveryMetrics struct {
	handled metric.Int64Counter
}

// newDeliveryMetrics registers the delivery counter on mp, or on the global
// meter provider when mp is nil.
func newDeliveryMetrics(mp metric.MeterProvider) (*deliveryMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	handled, err := mp.Meter("github.com/ghuser/baleyard/pkg/events").Int64Counter(
		"baleyard.events.handled",
		metric.WithDescription("Messages settled by subscribers, by topic and outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("events: register metrics: %w", err)
	}
	return &deliveryMetrics{handled: handled}, nil
}

func (m *deliveryMetrics) record(ctx context.Context, topic, outcome string) {
	if m == nil {
		return
	}
	m.handled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.String("outcome", outcome),
	))
}
