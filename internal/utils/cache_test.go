package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTask struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCache_SetGetDelete(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	key := TaskListKey(3, 0)

	var got []cachedTask
	found, err := GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := []cachedTask{{ID: 1, Title: "Ship report"}}
	require.NoError(t, SetCache(ctx, rdb, key, want, TaskListTTL))

	found, err = GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	mr.FastForward(TaskListTTL + time.Second)
	found, err = GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	assert.False(t, found, "entry expires after its TTL")
}

func TestCache_NilClientIsMiss(t *testing.T) {
	ctx := context.Background()
	var got []cachedTask

	found, err := GetCache(ctx, nil, "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, "k", got, time.Minute))

	version, err := TaskListVersion(ctx, nil, 1)
	assert.NoError(t, err)
	assert.Zero(t, version)
	assert.NoError(t, InvalidateTaskList(ctx, nil, 1))
}

func TestTaskListKeys(t *testing.T) {
	assert.Equal(t, "tasks:user:17:v", TaskListVersionKey(17))
	assert.Equal(t, "tasks:user:17:4", TaskListKey(17, 4))
}

func TestTaskListVersion_BumpedByInvalidate(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()

	version, err := TaskListVersion(ctx, rdb, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	require.NoError(t, SetCache(ctx, rdb, TaskListKey(5, version), []cachedTask{{ID: 1, Title: "Old"}}, TaskListTTL))
	require.NoError(t, InvalidateTaskList(ctx, rdb, 5))
	require.NoError(t, InvalidateTaskList(ctx, rdb, 5))

	version, err = TaskListVersion(ctx, rdb, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	var got []cachedTask
	found, err := GetCache(ctx, rdb, TaskListKey(5, version), &got)
	require.NoError(t, err)
	assert.False(t, found, "listings from older generations are not visible")

	mr.SetError("READONLY")
	_, err = TaskListVersion(ctx, rdb, 5)
	assert.Error(t, err)
	assert.Error(t, InvalidateTaskList(ctx, rdb, 5))
}
