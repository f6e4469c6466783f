package source_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"leadboard/internal/model"
	"leadboard/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCache_MissThenHit(t *testing.T) {
	// Arrange
	mr, client := newRedis(t)
	expected := []model.Lead{{ID: 1, Stage: model.StageNew, FullName: "Ann"}, {ID: 2, Stage: model.StageDiscussion}}
	base := &stubSource{fetchFn: func(ctx context.Context) ([]model.Lead, error) {
		return append([]model.Lead(nil), expected...), nil
	}}
	cache := source.NewCache(base, client, time.Minute)
	ctx := context.Background()

	// Act
	first, err := cache.FetchLeads(ctx)
	require.NoError(t, err)
	second, err := cache.FetchLeads(ctx)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, expected, first)
	assert.Equal(t, expected, second)
	assert.Equal(t, 1, base.calls)
	ttl := mr.TTL("leadboard:leads")
	assert.True(t, ttl > 0 && ttl <= time.Minute, "unexpected TTL %v", ttl)
}

func TestCache_BaseErrorIsNotCached(t *testing.T) {
	mr, client := newRedis(t)
	base := &stubSource{fetchFn: func(ctx context.Context) ([]model.Lead, error) {
		return nil, errors.New("remote down")
	}}
	cache := source.NewCache(base, client, time.Minute)

	_, err := cache.FetchLeads(context.Background())

	assert.Error(t, err)
	assert.False(t, mr.Exists("leadboard:leads"))
}

func TestCache_CorruptEntryFallsBack(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("leadboard:leads", "not json"))
	base := &stubSource{fetchFn: func(ctx context.Context) ([]model.Lead, error) {
		return []model.Lead{{ID: 5}}, nil
	}}

	leads, err := source.NewCache(base, client, time.Minute).FetchLeads(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), leads[0].ID)
	assert.Equal(t, 1, base.calls)
}

type commandRecorder struct {
	names []string
}

func (r *commandRecorder) DialHook(next redis.DialHook) redis.DialHook { return next }

func (r *commandRecorder) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		r.names = append(r.names, cmd.Name())
		return next(ctx, cmd)
	}
}

func (r *commandRecorder) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestCache_RedisErrorFallsBackWithoutDelete(t *testing.T) {
	// Arrange
	mr, client := newRedis(t)
	require.NoError(t, client.Ping(context.Background()).Err())
	rec := &commandRecorder{}
	client.AddHook(rec)
	mr.SetError("LOADING redis is loading the dataset")
	base := &stubSource{fetchFn: func(ctx context.Context) ([]model.Lead, error) {
		return []model.Lead{{ID: 9, Stage: model.StageDecisionMaking}}, nil
	}}

	// Act
	leads, err := source.NewCache(base, client, time.Minute).FetchLeads(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, int64(9), leads[0].ID)
	assert.Equal(t, 1, base.calls)
	assert.NotContains(t, rec.names, "del")
}

func TestCache_CorruptEntryIsReplaced(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("leadboard:leads", "not json"))
	rec := &commandRecorder{}
	client.AddHook(rec)
	base := &stubSource{fetchFn: func(ctx context.Context) ([]model.Lead, error) {
		return []model.Lead{{ID: 5}}, nil
	}}

	_, err := source.NewCache(base, client, time.Minute).FetchLeads(context.Background())

	require.NoError(t, err)
	assert.Contains(t, rec.names, "del")
	raw, err := mr.Get("leadboard:leads")
	require.NoError(t, err)
	assert.Contains(t, raw, `"Id":5`)
}

func TestCache_Invalidate(t *testing.T) {
	_, client := newRedis(t)
	n := int64(0)
	base := &stubSource{fetchFn: func(ctx context.Context) ([]model.Lead, error) {
		n++
		return []model.Lead{{ID: n}}, nil
	}}
	cache := source.NewCache(base, client, time.Minute)
	ctx := context.Background()

	_, err := cache.FetchLeads(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx))
	leads, err := cache.FetchLeads(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), leads[0].ID)
}

func TestCache_NilClientPassesThrough(t *testing.T) {
	base := &stubSource{fetchFn: func(ctx context.Context) ([]model.Lead, error) {
		return []model.Lead{{ID: 1}}, nil
	}}
	cache := source.NewCache(base, nil, time.Minute)

	_, _ = cache.FetchLeads(context.Background())
	_, _ = cache.FetchLeads(context.Background())

	assert.Equal(t, 2, base.calls)
	assert.NoError(t, cache.Invalidate(context.Background()))
}
