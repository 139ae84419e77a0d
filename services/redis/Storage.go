package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	r "github.com/redis/go-redis/v9"

	"obstacle-detection/geometry"
	"obstacle-detection/models"
	"obstacle-detection/services/statistics"
)

var ErrNotFound = errors.New("key not found in redis")

// Storage keeps boundaries and containment statistics in redis as JSON.
type Storage struct {
	Client *r.Client
}

func NewStorage(client *r.Client) *Storage {
	return &Storage{Client: client}
}

func BoundaryKey(name string) string {
	return "boundary:" + name
}

func StatisticsKey(name string) string {
	return "boundary-statistics:" + name
}

func (storage *Storage) SaveBoundary(ctx context.Context, name string, bound geometry.RectangleBoundary) error {
	return storage.set(ctx, BoundaryKey(name), models.NewBoundaryJSON(bound))
}

func (storage *Storage) LoadBoundary(ctx context.Context, name string) (geometry.RectangleBoundary, error) {
	var boundaryJSON models.BoundaryJSON
	if err := storage.get(ctx, BoundaryKey(name), &boundaryJSON); err != nil {
		return geometry.RectangleBoundary{}, err
	}
	return boundaryJSON.ToBoundary(), nil
}

func (storage *Storage) SaveContainmentStats(ctx context.Context, name string, stats statistics.ContainmentStats) error {
	return storage.set(ctx, StatisticsKey(name), stats)
}

func (storage *Storage) GetContainmentStats(ctx context.Context, name string) (*statistics.ContainmentStats, error) {
	stats := &statistics.ContainmentStats{}
	if err := storage.get(ctx, StatisticsKey(name), stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (storage *Storage) set(ctx context.Context, key string, value any) error {
	serialized, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", key, err)
	}

	err = storage.Client.Set(ctx, key, serialized, 0).Err()
	if err != nil {
		return fmt.Errorf("saving %s to redis: %w", key, err)
	}
	return nil
}

func (storage *Storage) get(ctx context.Context, key string, value any) error {
	serialized, err := storage.Client.Get(ctx, key).Bytes()
	if errors.Is(err, r.Nil) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("getting %s from redis: %w", key, err)
	}

	if err = json.Unmarshal(serialized, value); err != nil {
		return fmt.Errorf("deserializing %s: %w", key, err)
	}
	return nil
}
