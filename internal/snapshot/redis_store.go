package snapshot

import (
	"context"
	"fmt"
	"time"

	pkgredis "github.com/angelmondragon/coffee-storefront/pkg/redis"
)

// RedisClient is the subset of pkg/redis used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
	SnapshotKey(sessionKey string) string
}

// RedisStore keeps the snapshot under cs:snapshot:<session key> with no expiry.
// Each Save is a single SET, so a snapshot either lands whole or not at all.
type RedisStore struct {
	client     RedisClient
	sessionKey string
}

func NewRedisStore(client RedisClient, sessionKey string) *RedisStore {
	return &RedisStore{client: client, sessionKey: sessionKey}
}

func (r *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	raw, err := r.client.Get(ctx, r.client.SnapshotKey(r.sessionKey))
	if pkgredis.IsNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get snapshot: %w", err)
	}
	s, err := Decode([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.client.SnapshotKey(r.sessionKey), data, 0); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *RedisStore) Name() string { return "redis" }
