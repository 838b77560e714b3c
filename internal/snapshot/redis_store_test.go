package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	writes int
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.writes++
	f.data[key] = string(value.([]byte))
	return nil
}

func (f *fakeRedis) Ping(context.Context) error { return nil }

func (f *fakeRedis) SnapshotKey(sessionKey string) string { return "cs:snapshot:" + sessionKey }

func TestRedisStoreRoundTrip(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(client, "kiosk")
	assertRoundTrip(t, store)

	assert.Equal(t, []string{"cs:snapshot:kiosk"}, keysOf(client.data), "only the snapshot key should be written")
	assert.Equal(t, 2, client.writes, "each save is a single write")
	assert.Equal(t, "redis", store.Name())
}

func TestRedisStoreFailedSaveKeepsPreviousSnapshot(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(client, "kiosk")
	ctx := context.Background()

	c, repo := sampleState(t)
	require.NoError(t, store.Save(ctx, Capture(c, repo)))

	client.setErr = errors.New("connection refused")
	c.Add("havaiano", 4)
	err := store.Save(ctx, Capture(c, repo))
	require.Error(t, err)
	assert.ErrorIs(t, err, client.setErr)

	client.setErr = nil
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	restoredCart, _, err := loaded.Restore()
	require.NoError(t, err)
	assert.False(t, restoredCart.Contains("havaiano"), "a failed save must not leave its state behind")
	assert.Equal(t, 2, restoredCart.Len())
}

func TestRedisStoreLoadCorruptPayload(t *testing.T) {
	client := newFakeRedis()
	client.data["cs:snapshot:kiosk"] = "not json"

	_, err := NewRedisStore(client, "kiosk").Load(context.Background())
	assert.Error(t, err)
}

func keysOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
