package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Rows []int
}

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", payload{Rows: []int{1, 2}}, 0))

	var got payload
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, []int{1, 2}, got.Rows)

	var wrong string
	assert.ErrorIs(t, mc.Get(ctx, "k", &wrong), ErrTypeMismatch)
	assert.ErrorIs(t, mc.Get(ctx, "missing", &got), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", 1, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var v int
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheDefaultTTL(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryDefaultTTL(time.Millisecond))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", 1, 0))
	time.Sleep(5 * time.Millisecond)

	var v int
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", 1, 0))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", 2, 0))
	time.Sleep(time.Millisecond)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "c", 3, 0))

	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &v))
	assert.Equal(t, 1, v)
}

func TestGetOrLoadMemoizes(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"x"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad(ctx, mc, "rows", 0, load, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, v)
	}
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	boom := errors.New("boom")
	_, err := GetOrLoad(ctx, mc, "rows", 0, func(context.Context) (int, error) { return 0, boom }, nil)
	assert.ErrorIs(t, err, boom)

	ok, _ := mc.Exists(ctx, "rows")
	assert.False(t, ok)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "merged:a.csv:b.csv", GenerateKeyWithParams("merged", "a.csv", "b.csv"))
	assert.Len(t, HashKey("merged:a.csv:b.csv"), 32)
}
