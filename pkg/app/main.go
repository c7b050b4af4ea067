package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/baleyard/pkg/cache"
	"github.com/ghuser/baleyard/pkg/config"
	"github.com/ghuser/baleyard/pkg/database"
	"github.com/ghuser/baleyard/pkg/events"
	"github.com/ghuser/baleyard/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each bounded context's services.New during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "bale placed", "bale_id", id)
//	app.Logger.ErrorContext(ctx, "failed to persist placement", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient // nil disables the listing cache
	SessionStore sessions.Store     // Redis-backed session store; nil in worker process
}
