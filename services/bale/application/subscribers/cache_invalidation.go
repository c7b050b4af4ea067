// Package subscribers holds the bale context's domain event handlers run by the worker.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/baleyard/pkg/events"
	"github.com/ghuser/baleyard/pkg/logger"
	domainevents "github.com/ghuser/baleyard/services/bale/domain/events"
)

// Topics lists the topics CacheInvalidator handles.
var Topics = []string{domainevents.TopicBaleMoved, domainevents.TopicBaleRotated}

// ListingCache is the part of the warehouse listing cache the invalidator needs.
type ListingCache interface {
	Delete(ctx context.Context, warehouseID string) error
}

// CacheInvalidator drops a warehouse's cached listing whenever one of its bales
// is persisted with a new placement, so the next load reads the repository.
type CacheInvalidator struct {
	cache ListingCache
	log   logger.Logger
}

// NewCacheInvalidator returns a CacheInvalidator.
func NewCacheInvalidator(cache ListingCache, log logger.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, log: log}
}

// Handle processes one bale.moved or bale.rotated message. Deleting an absent
// key is a no-op, so redelivery is harmless.
func (c *CacheInvalidator) Handle(ctx context.Context, msg *message.Message) error {
	var evt domainevents.BalePlacementEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return events.Permanent(fmt.Errorf("decode placement event: %w", err))
	}
	if evt.WarehouseID == "" {
		c.log.WarnContext(ctx, "placement event without warehouse", "event_id", evt.EventID)
		return nil
	}

	if err := c.cache.Delete(ctx, evt.WarehouseID); err != nil {
		return fmt.Errorf("invalidate listing for %s: %w", evt.WarehouseID, err)
	}
	c.log.DebugContext(ctx, "listing cache invalidated",
		"warehouse_id", evt.WarehouseID, "bale_id", evt.BaleID, "event_id", evt.EventID)
	return nil
}
