package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

type countingLoader struct {
	calls int32
	err   error
}

func (l *countingLoader) Load(_ context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error) {
	atomic.AddInt32(&l.calls, 1)
	if l.err != nil {
		return nil, l.err
	}
	return &models.PromotionSnapshot{
		BusinessID: businessID,
		TimedDiscounts: []models.TimedDiscount{
			{Promotion: models.Promotion{ID: "td1", IsActive: true}},
		},
	}, nil
}

func TestPromotionCacheReusesSnapshotUntilExpiry(t *testing.T) {
	loader := &countingLoader{}
	c := NewPromotionCache(loader, time.Minute)
	clock := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	id := uuid.New()

	first, err := c.Load(context.Background(), id)
	require.NoError(t, err)
	second, err := c.Load(context.Background(), id)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loader.calls)

	clock = clock.Add(time.Minute)
	_, err = c.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls)
}

func TestPromotionCacheInvalidate(t *testing.T) {
	loader := &countingLoader{}
	c := NewPromotionCache(loader, time.Hour)
	id := uuid.New()

	_, err := c.Load(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(context.Background(), id))
	_, err = c.Load(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, int32(2), loader.calls)
}

func TestPromotionCacheKeepsBusinessesApart(t *testing.T) {
	loader := &countingLoader{}
	c := NewPromotionCache(loader, time.Hour)
	a, b := uuid.New(), uuid.New()

	sa, err := c.Load(context.Background(), a)
	require.NoError(t, err)
	sb, err := c.Load(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, a, sa.BusinessID)
	assert.Equal(t, b, sb.BusinessID)
	assert.Equal(t, int32(2), loader.calls)
}

func TestPromotionCacheDoesNotStoreErrors(t *testing.T) {
	loader := &countingLoader{err: errors.New("db down")}
	c := NewPromotionCache(loader, time.Hour)
	id := uuid.New()

	_, err := c.Load(context.Background(), id)
	require.Error(t, err)
	_, ok := c.Get(id)
	assert.False(t, ok)
}

func TestRedisPromotionCacheFallsBackToLoader(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	loader := &countingLoader{}
	c := NewRedisPromotionCache(client, loader, time.Minute, zap.NewNop())
	id := uuid.New()

	s, err := c.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, s.BusinessID)
	assert.Equal(t, int32(1), loader.calls)
	assert.Equal(t, "menu-pricing:promotions:"+id.String(), redisKey(id))
}

// memoryRedis answers get/set/del in process so no server is needed.
type memoryRedis struct {
	values map[string]string
	sets   int
}

func (m *memoryRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (m *memoryRedis) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := m.values[args[1].(string)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			m.sets++
			switch v := args[2].(type) {
			case []byte:
				m.values[args[1].(string)] = string(v)
			case string:
				m.values[args[1].(string)] = v
			}
			c.SetVal("OK")
		case *redis.IntCmd:
			delete(m.values, args[1].(string))
			c.SetVal(1)
		}
		return nil
	}
}

func (m *memoryRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newMemoryRedis(t *testing.T) (*redis.Client, *memoryRedis) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })
	mem := &memoryRedis{values: map[string]string{}}
	client.AddHook(mem)
	return client, mem
}

func TestRedisPromotionCacheReusesStoredSnapshot(t *testing.T) {
	client, mem := newMemoryRedis(t)
	loader := &countingLoader{}
	c := NewRedisPromotionCache(client, loader, time.Minute, zap.NewNop())
	id := uuid.New()

	_, err := c.Load(context.Background(), id)
	require.NoError(t, err)
	s, err := c.Load(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, s.BusinessID)
	require.Len(t, s.TimedDiscounts, 1)
	assert.Equal(t, "td1", s.TimedDiscounts[0].ID)
	assert.Equal(t, int32(1), loader.calls)
	assert.Equal(t, 1, mem.sets)

	require.NoError(t, c.Invalidate(context.Background(), id))
	_, err = c.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls)
}

func TestRedisPromotionCacheZeroTTLDoesNotStore(t *testing.T) {
	client, mem := newMemoryRedis(t)
	loader := &countingLoader{}
	c := NewRedisPromotionCache(client, loader, 0, zap.NewNop())
	id := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := c.Load(context.Background(), id)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), loader.calls)
	assert.Zero(t, mem.sets)
	assert.Empty(t, mem.values)
}
