// Package rediscache keeps a read-through Redis cache in front of the
// account directory.
//
// Only positive answers are cached: an account that exists now keeps existing
// for the TTL, while a miss may turn into a hit at any time and is always
// asked again.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "fd:dir"
	present      = "1"

	// DefaultTTL applies when a non-positive ttl is configured.
	DefaultTTL = 5 * time.Minute
)

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// Directory decorates an AccountDirectory. Redis failures degrade to the
// inner directory and are only logged.
type Directory struct {
	inner  ports.AccountDirectory
	store  cmdable
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.AccountDirectory = (*Directory)(nil)

func NewDirectory(inner ports.AccountDirectory, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Directory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{
		inner:  inner,
		store:  client,
		ttl:    ttl,
		logger: logger.With("component", "directory_cache"),
	}
}

// NewClient parses a redis:// URL and verifies connectivity.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (d *Directory) UserExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, "user", id, d.inner.UserExists)
}

func (d *Directory) StationExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, "station", id, d.inner.StationExists)
}

func (d *Directory) FuelTypeExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, "fuel_type", id, d.inner.FuelTypeExists)
}

func (d *Directory) StationOwner(ctx context.Context, stationID kernel.UUID) (*kernel.UUID, error) {
	key := Key("station_owner", stationID)
	if cached, ok := d.get(ctx, key); ok {
		owner, err := kernel.UUIDFromString(cached)
		if err == nil {
			return &owner, nil
		}
		d.logger.WarnContext(ctx, "ignoring malformed cache entry", "key", key, "error", err)
	}

	owner, err := d.inner.StationOwner(ctx, stationID)
	if err != nil || owner == nil {
		return owner, err
	}
	d.set(ctx, key, owner.String())
	return owner, nil
}

// Key builds the cache key for kind and id.
func Key(kind string, id kernel.UUID) string {
	return keyNamespace + ":" + kind + ":" + id.String()
}

func (d *Directory) exists(
	ctx context.Context,
	kind string,
	id kernel.UUID,
	load func(context.Context, kernel.UUID) (bool, error),
) (bool, error) {
	key := Key(kind, id)
	if cached, ok := d.get(ctx, key); ok && cached == present {
		return true, nil
	}

	found, err := load(ctx, id)
	if err != nil || !found {
		return found, err
	}
	d.set(ctx, key, present)
	return true, nil
}

func (d *Directory) get(ctx context.Context, key string) (string, bool) {
	val, err := d.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		return val, true
	case errors.Is(err, redis.Nil):
		return "", false
	default:
		d.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return "", false
	}
}

func (d *Directory) set(ctx context.Context, key, value string) {
	if err := d.store.Set(ctx, key, value, d.ttl).Err(); err != nil {
		d.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
