package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	vehicleKeyPrefix = "vehicle:"
	vehicleListKey   = "vehicles:all"
)

// CachedVehicleReadStore is a read-through cache in front of the vehicle
// readstore. Cache failures degrade to the database, never to an error.
type CachedVehicleReadStore struct {
	inner  queries.VehicleViewRepo
	client *redis.Client
	ttl    time.Duration
}

func NewCachedVehicleReadStore(inner queries.VehicleViewRepo, client *redis.Client, ttl time.Duration) *CachedVehicleReadStore {
	return &CachedVehicleReadStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func (c *CachedVehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	key := vehicleKeyPrefix + id.String()

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var view queries.VehicleView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, nil
		}
	} else if err != redis.Nil {
		slog.Warn("vehicle cache read failed", "key", key, "error", err.Error())
	}

	view, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(view); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("vehicle cache write failed", "key", key, "error", err.Error())
		}
	}

	return view, nil
}

func (c *CachedVehicleReadStore) FindAll(ctx context.Context, filter queries.VehicleFilter) ([]*queries.VehicleView, error) {
	// Only the unfiltered catalog is cached; filtered lists hit the database.
	if filter != (queries.VehicleFilter{}) {
		return c.inner.FindAll(ctx, filter)
	}

	if data, err := c.client.Get(ctx, vehicleListKey).Bytes(); err == nil {
		var views []*queries.VehicleView
		if err := json.Unmarshal(data, &views); err == nil {
			return views, nil
		}
	} else if err != redis.Nil {
		slog.Warn("vehicle cache read failed", "key", vehicleListKey, "error", err.Error())
	}

	views, err := c.inner.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(views); err == nil {
		if err := c.client.Set(ctx, vehicleListKey, data, c.ttl).Err(); err != nil {
			slog.Warn("vehicle cache write failed", "key", vehicleListKey, "error", err.Error())
		}
	}

	return views, nil
}

// Invalidate drops the cached vehicle and the catalog list. Called after
// availability flips so stale availability never outlives a booking.
func (c *CachedVehicleReadStore) Invalidate(ctx context.Context, id uuid.UUID) {
	keys := []string{vehicleKeyPrefix + id.String(), vehicleListKey}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("vehicle cache invalidation failed", "error", fmt.Sprintf("%v", err))
	}
}
