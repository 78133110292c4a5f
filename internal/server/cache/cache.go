// Package cache is the read-through cache in front of the content
// repositories. Failures never reach callers: a broken cache behaves like
// an empty one.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Keys and lifetimes of the cached reads.
const (
	KeyPortfolio = "portfolio_data"

	PortfolioTTL = 24 * time.Hour
	BlogsTTL     = time.Hour
	CommentsTTL  = 30 * time.Minute
	LikesTTL     = 15 * time.Minute

	// BlogsPrefix covers every post and list page. Posts and list pages
	// live in separate namespaces under it so no slug can name a list key.
	BlogsPrefix    = "blogs:"
	blogPostPrefix = BlogsPrefix + "post:"
	blogListPrefix = BlogsPrefix + "list:"
)

func BlogKey(slugOrID string) string { return blogPostPrefix + slugOrID }

func BlogListKey(limit int, lastKey string) string {
	return fmt.Sprintf("%s%d:%s", blogListPrefix, limit, lastKey)
}

func CommentsKey(blogID string) string { return "comments:" + blogID }

func LikesKey(blogID string) string { return "likes_count:" + blogID }

// Cache stores JSON-encodable values under string keys.
type Cache interface {
	// Get decodes the value under key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	DeletePrefix(ctx context.Context, prefix string)
}

// Noop caches nothing. It is used when no cache address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string, any) bool           { return false }
func (Noop) Set(context.Context, string, any, time.Duration) {}
func (Noop) Delete(context.Context, ...string)               {}
func (Noop) DeletePrefix(context.Context, string)            {}
