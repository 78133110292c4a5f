package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRedisClient returns a client on DB 15, skipping when no server is
// reachable at FOLIO_TEST_REDIS (default localhost:6379).
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("FOLIO_TEST_REDIS")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("skipping: redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})
	return client
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "blogs:post:hello-world", BlogKey("hello-world"))
	assert.Equal(t, "blogs:list:50:", BlogListKey(50, ""))
	assert.Equal(t, `blogs:list:10:{"blogId":"b1"}`, BlogListKey(10, `{"blogId":"b1"}`))
	assert.Equal(t, "comments:b1", CommentsKey("b1"))
	assert.Equal(t, "likes_count:b1", LikesKey("b1"))
}

func TestKeys_PostNeverCollidesWithListPage(t *testing.T) {
	list := BlogListKey(50, "")
	assert.NotEqual(t, list, BlogKey("list:50:"))
	assert.NotEqual(t, list, BlogKey(strings.TrimPrefix(list, BlogsPrefix)))
	assert.True(t, strings.HasPrefix(BlogKey("x"), BlogsPrefix), "post keys are dropped with the blogs prefix")
	assert.True(t, strings.HasPrefix(list, BlogsPrefix), "list keys are dropped with the blogs prefix")
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	c.Set(ctx, "k", 1, time.Minute)
	var v int
	assert.False(t, c.Get(ctx, "k", &v))
	c.Delete(ctx, "k")
	c.DeletePrefix(ctx, "k")
}

func TestRedisCache_UnreachableIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client, logging.Discard())
	ctx := context.Background()

	c.Set(ctx, "k", "v", time.Minute)
	var got string
	assert.False(t, c.Get(ctx, "k", &got))
	c.Delete(ctx, "k")
	c.DeletePrefix(ctx, "k")
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(context.Background(), "redis://localhost:6379/notanumber")
	require.Error(t, err)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	client := testRedisClient(t)
	c := NewRedisCache(client, logging.Discard())
	ctx := context.Background()

	type payload struct {
		Count int `json:"likes_count"`
	}
	c.Set(ctx, LikesKey("b1"), payload{Count: 3}, time.Minute)

	var got payload
	require.True(t, c.Get(ctx, LikesKey("b1"), &got))
	assert.Equal(t, 3, got.Count)

	ttl, err := client.TTL(ctx, LikesKey("b1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	c.Delete(ctx, LikesKey("b1"))
	assert.False(t, c.Get(ctx, LikesKey("b1"), &got))
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	client := testRedisClient(t)
	c := NewRedisCache(client, logging.Discard())
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		c.Set(ctx, BlogListKey(i, ""), i, time.Minute)
	}
	c.Set(ctx, BlogKey("hello"), "post", time.Minute)
	c.Set(ctx, CommentsKey("b1"), []string{}, time.Minute)

	c.DeletePrefix(ctx, BlogsPrefix)

	var v any
	assert.False(t, c.Get(ctx, BlogKey("hello"), &v))
	assert.False(t, c.Get(ctx, BlogListKey(7, ""), &v))
	assert.True(t, c.Get(ctx, CommentsKey("b1"), &v), "other prefixes survive")
}

func TestRedisCache_UndecodableIsAMiss(t *testing.T) {
	client := testRedisClient(t)
	c := NewRedisCache(client, logging.Discard())
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, KeyPortfolio, "not json", time.Minute).Err())

	var v map[string]any
	assert.False(t, c.Get(ctx, KeyPortfolio, &v))
}
