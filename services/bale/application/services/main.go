package services

import (
	"fmt"

	"github.com/ghuser/baleyard/pkg/app"
	"github.com/ghuser/baleyard/pkg/cache"
	"github.com/ghuser/baleyard/pkg/telemetry"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/infrastructure/persistence/postgres"
	"github.com/ghuser/baleyard/services/bale/infrastructure/realtime"
	"github.com/ghuser/baleyard/services/bale/infrastructure/sample"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Layout *LayoutService
	Hub    *realtime.Hub
}

// New wires all bale application services with infrastructure from the Application container.
func New(a *app.Application) (*Services, error) {
	cfg := a.Config
	dims := models.Dimensions{
		Width:          cfg.BaleWidth,
		Depth:          cfg.BaleDepth,
		UnitHeight:     cfg.BaleHeight,
		MaxStackHeight: cfg.MaxStackHeight,
	}
	if err := dims.Validate(); err != nil {
		return nil, fmt.Errorf("bale dimensions: %w", err)
	}

	samples, err := sample.Bundled()
	if err != nil {
		return nil, err
	}
	metrics, err := telemetry.NewPlacementMetrics(nil)
	if err != nil {
		return nil, fmt.Errorf("placement metrics: %w", err)
	}

	var baleCache *cache.BaleCache
	if a.Redis != nil {
		baleCache = cache.NewBaleCache(a.Redis)
	}

	hub := realtime.NewHub(a.Logger, realtime.AllowOrigins(cfg.CORSAllowedOrigins))
	layout := NewLayoutService(LayoutDeps{
		Repo:      postgres.NewBaleRepository(a.Db, a.EventBus),
		Cache:     baleCache,
		Samples:   samples,
		Publisher: hub,
		Metrics:   metrics,
		Log:       a.Logger,
	}, Settings{
		Dimensions:       dims,
		RotationDuration: cfg.RotationDuration,
		RotationGrace:    cfg.RotationGrace,
		PersistTimeout:   cfg.PersistTimeout,
		DemoWarehouseID:  cfg.DemoWarehouseID,
	})

	return &Services{Layout: layout, Hub: hub}, nil
}
