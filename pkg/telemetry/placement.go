package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ghuser/baleyard"

// Tracer returns the tracer used for placement spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// PlacementMetrics records drop outcomes, rotations and persistence failures.
// A nil *PlacementMetrics is valid and records nothing.
type PlacementMetrics struct {
	drops        metric.Int64Counter
	rotations    metric.Int64Counter
	persistFails metric.Int64Counter
	pending      metric.Int64UpDownCounter
}

// NewPlacementMetrics creates the placement instruments on the given meter.
// Pass nil to use the global meter provider.
func NewPlacementMetrics(meter metric.Meter) (*PlacementMetrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	drops, err := meter.Int64Counter("baleyard.placement.drops",
		metric.WithDescription("Bale drops by outcome and rejection reason"))
	if err != nil {
		return nil, err
	}
	rotations, err := meter.Int64Counter("baleyard.placement.rotations",
		metric.WithDescription("Committed bale rotations"))
	if err != nil {
		return nil, err
	}
	persistFails, err := meter.Int64Counter("baleyard.persistence.failures",
		metric.WithDescription("Placement writes that failed and were marked pending"))
	if err != nil {
		return nil, err
	}
	pending, err := meter.Int64UpDownCounter("baleyard.persistence.pending",
		metric.WithDescription("Placement writes awaiting reconciliation"))
	if err != nil {
		return nil, err
	}
	return &PlacementMetrics{drops: drops, rotations: rotations, persistFails: persistFails, pending: pending}, nil
}

// Drop records one resolved drop.
func (m *PlacementMetrics) Drop(ctx context.Context, warehouseID, outcome, reason string) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("warehouse_id", warehouseID),
		attribute.String("outcome", outcome),
	}
	if reason != "" {
		attrs = append(attrs, attribute.String("reason", reason))
	}
	m.drops.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Rotation records one committed rotation.
func (m *PlacementMetrics) Rotation(ctx context.Context, warehouseID string) {
	if m == nil {
		return
	}
	m.rotations.Add(ctx, 1, metric.WithAttributes(attribute.String("warehouse_id", warehouseID)))
}

// PersistFailed records a failed write for the given change kind.
func (m *PlacementMetrics) PersistFailed(ctx context.Context, warehouseID, change string) {
	if m == nil {
		return
	}
	m.persistFails.Add(ctx, 1, metric.WithAttributes(
		attribute.String("warehouse_id", warehouseID),
		attribute.String("change", change),
	))
}

// PendingDelta adjusts the pending write gauge.
func (m *PlacementMetrics) PendingDelta(ctx context.Context, warehouseID string, delta int64) {
	if m == nil || delta == 0 {
		return
	}
	m.pending.Add(ctx, delta, metric.WithAttributes(attribute.String("warehouse_id", warehouseID)))
}
