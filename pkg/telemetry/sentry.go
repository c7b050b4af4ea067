package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/baleyard/pkg/config"
)

// SetupSentry initializes the Sentry SDK for the given process role. No-ops if
// the DSN is empty.
func SetupSentry(cfg *config.Config, role string) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName + "-" + role,
		TracesSampleRate: cfg.TraceSampleRatio,
		BeforeSend:       scrubEvent,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// scrubEvent drops cookies and the session header so the warehouse selection
// session never reaches Sentry.
func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request == nil {
		return event
	}
	event.Request.Cookies = ""
	for k := range event.Request.Headers {
		if strings.EqualFold(k, "Cookie") || strings.EqualFold(k, "Authorization") {
			delete(event.Request.Headers, k)
		}
	}
	return event
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware captures panics and re-panics so the outer Recovery
// middleware still writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return h.Handle
}

// CaptureSubscriberError reports a handler failure that outlived its retries,
// tagged with the event topic.
func CaptureSubscriberError(ctx context.Context, topic string, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("topic", topic)
		hub.CaptureException(err)
	})
}
