package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/baleyard/pkg/config"
	"github.com/ghuser/baleyard/pkg/logger"
)

var fastRetry = RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func countingHandler(failures int, err error) (Handler, *int) {
	calls := 0
	return func(_ context.Context, _ *message.Message) error {
		calls++
		if calls <= failures {
			return err
		}
		return nil
	}, &calls
}

func TestRunWithRetry_SuccessOnFirstAttempt(t *testing.T) {
	h, calls := countingHandler(0, nil)
	err := runWithRetry(context.Background(), message.NewMessage("id", nil), h, fastRetry, nopLogger())

	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestRunWithRetry_SuccessAfterRetries(t *testing.T) {
	h, calls := countingHandler(2, errors.New("redis timeout"))
	err := runWithRetry(context.Background(), message.NewMessage("id", nil), h, fastRetry, nopLogger())

	require.NoError(t, err)
	assert.Equal(t, 3, *calls)
}

func TestRunWithRetry_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("redis down")
	h, calls := countingHandler(10, boom)
	err := runWithRetry(context.Background(), message.NewMessage("id", nil), h, fastRetry, nopLogger())

	require.ErrorIs(t, err, boom)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, fastRetry.Attempts, *calls)
}

func TestRunWithRetry_PermanentStopsImmediately(t *testing.T) {
	h, calls := countingHandler(10, Permanent(errors.New("malformed placement event")))
	err := runWithRetry(context.Background(), message.NewMessage("id", nil), h, fastRetry, nopLogger())

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, *calls)
}

func TestRunWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h, calls := countingHandler(10, errors.New("redis down"))
	slow := RetryPolicy{Attempts: 3, BaseDelay: time.Hour, MaxDelay: time.Hour}
	err := runWithRetry(ctx, message.NewMessage("id", nil), h, slow, nopLogger())

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, *calls)
}

func TestRetryPolicy_DelayDoublesUpToCap(t *testing.T) {
	p := RetryPolicy{Attempts: 6, BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, p.delay(1))
	assert.Equal(t, 2*time.Second, p.delay(2))
	assert.Equal(t, 4*time.Second, p.delay(3))
	assert.Equal(t, 5*time.Second, p.delay(4))
	assert.Equal(t, 5*time.Second, p.delay(5))
}

func TestRetryPolicy_Defaults(t *testing.T) {
	p := RetryPolicy{}.withDefaults()

	assert.Equal(t, 3, p.Attempts)
	assert.Equal(t, time.Second, p.BaseDelay)
	assert.Equal(t, 30*time.Second, p.MaxDelay)
}

func TestPermanent(t *testing.T) {
	base := errors.New("bad payload")
	err := Permanent(base)

	assert.ErrorIs(t, err, base)
	assert.True(t, IsPermanent(err))
	assert.True(t, IsPermanent(errors.Join(errors.New("wrapped"), err)))
	assert.False(t, IsPermanent(base))
	assert.NoError(t, Permanent(nil))
}

func TestSettle(t *testing.T) {
	bus := &EventBus{}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"success", nil, outcomeAcked},
		{"permanent", Permanent(errors.New("bad")), outcomeDiscarded},
		{"transient", errors.New("down"), outcomeNacked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := message.NewMessage("id", nil)
			assert.Equal(t, tt.want, bus.settle(msg, tt.err))

			select {
			case <-msg.Acked():
				assert.NotEqual(t, outcomeNacked, tt.want)
			case <-msg.Nacked():
				assert.Equal(t, outcomeNacked, tt.want)
			default:
				t.Fatal("message was not settled")
			}
		})
	}
}

func TestDeliveryMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := newDeliveryMetrics(mp)
	require.NoError(t, err)

	m.record(context.Background(), "bale.moved", outcomeAcked)
	m.record(context.Background(), "bale.moved", outcomeAcked)
	m.record(context.Background(), "bale.rotated", outcomeNacked)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
	assert.Len(t, sum.DataPoints, 2)
}

func TestMessageContext_RestoresTrace(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "drop")
	defer span.End()

	msg := message.NewMessage("id", nil)
	InjectTraceContext(ctx, msg)

	got := trace.SpanFromContext(messageContext(context.Background(), "bale.moved", msg))
	require.True(t, got.SpanContext().IsValid())
	assert.Equal(t, span.SpanContext().TraceID(), got.SpanContext().TraceID())
}
