package logger

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/baleyard/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNewWithWriter_FormatByEnvironment(t *testing.T) {
	var text, js bytes.Buffer
	NewWithWriter(&config.Config{LogLevel: "info", Environment: config.EnvDevelopment}, &text).Info("bale placed", "level_index", 1)
	NewWithWriter(&config.Config{LogLevel: "info", Environment: config.EnvProduction}, &js).Info("bale placed", "level_index", 1)

	assert.Contains(t, text.String(), `msg="bale placed"`)
	assert.True(t, strings.HasPrefix(js.String(), "{"), "production logs are JSON")
	assert.Contains(t, js.String(), `"level_index":1`)
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{LogLevel: "warn", Environment: config.EnvProduction}, &buf)

	log.Info("drag moved")
	assert.Zero(t, buf.Len())
	log.Warn("drop rejected")
	assert.Contains(t, buf.String(), "drop rejected")
}

func serveLogged(t *testing.T, opts []MiddlewareOption, method, pattern, path string, status int) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(Middleware(newTestLogger(&buf), opts...))
	r.MethodFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, http.NoBody))
	return parseLastLine(t, &buf)
}

func TestLoggerMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusConflict, "WARN"},
		{http.StatusServiceUnavailable, "ERROR"},
	}
	for _, tt := range tests {
		entry := serveLogged(t, nil, http.MethodPost, "/api/layout/drop", "/api/layout/drop", tt.status)
		assert.Equal(t, tt.want, entry["level"], "status %d", tt.status)
	}
}

func TestLoggerMiddleware_QuietRoute(t *testing.T) {
	quiet := []MiddlewareOption{Quiet(http.MethodPut, "/api/layout/drag")}

	entry := serveLogged(t, quiet, http.MethodPut, "/api/layout/drag", "/api/layout/drag", http.StatusOK)
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "/api/layout/drag", entry["route"])

	// Failures on a quiet route are still surfaced.
	entry = serveLogged(t, quiet, http.MethodPut, "/api/layout/drag", "/api/layout/drag", http.StatusConflict)
	assert.Equal(t, "WARN", entry["level"])
}

func TestLoggerMiddleware_LogsRoutePattern(t *testing.T) {
	entry := serveLogged(t, nil, http.MethodGet, "/api/layout/bales/{id}", "/api/layout/bales/42", http.StatusOK)

	assert.Equal(t, "/api/layout/bales/{id}", entry["route"])
	assert.Equal(t, "/api/layout/bales/42", entry["path"])
}

func TestRecovery_WritesJSON500(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(newTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("stack index out of range")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/layout/drop", http.NoBody))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
	entry := parseLastLine(t, &buf)
	assert.Equal(t, "panic recovered", entry["msg"])
	assert.NotEmpty(t, entry["stack"])
}

func TestContextWith_DoesNotMutateParent(t *testing.T) {
	parent := ContextWith(context.Background(), "warehouse_id", "north")
	_ = ContextWith(parent, "bale_id", "b-1")

	args, _ := parent.Value(ctxAttrsKey{}).([]any)
	assert.Len(t, args, 2)
}
