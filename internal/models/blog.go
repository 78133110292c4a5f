package models

import (
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used for Blog.ReadingTime.
const WordsPerMinute = 200

// Blog is a blog post. BlogID is assigned by the server on create.
type Blog struct {
	BlogID           string   `json:"blogId"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Content          string   `json:"content"`
	FeaturedImageURL string   `json:"featured_image_url"`
	Tags             []string `json:"tags"`
	Category         string   `json:"category"`
	Author           string   `json:"author,omitempty"`
	SEODescription   string   `json:"seo_description"`
	PublishedAt      int64    `json:"published_at"`
	CreatedAt        int64    `json:"created_at,omitempty"`
	UpdatedAt        int64    `json:"updated_at,omitempty"`
	ReadingTime      *int     `json:"reading_time,omitempty"`
	LikesCount       *int     `json:"likes_count,omitempty"`
	CommentsCount    *int     `json:"comments_count,omitempty"`
}

// BlogInput is the create/update body of a blog post. On update nil fields
// are left untouched.
type BlogInput struct {
	Title            *string   `json:"title,omitempty"`
	Slug             *string   `json:"slug,omitempty"`
	Content          *string   `json:"content,omitempty"`
	FeaturedImageURL *string   `json:"featured_image_url,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Author           *string   `json:"author,omitempty"`
	SEODescription   *string   `json:"seo_description,omitempty"`
	PublishedAt      *int64    `json:"published_at,omitempty"`
}

// BlogPage is one page of the blog list. LastKey is an opaque cursor; empty
// means there are no more pages.
type BlogPage struct {
	Items   []Blog `json:"items"`
	LastKey Cursor `json:"last_key,omitempty"`
}

// ReadingTime estimates minutes needed to read content, never less than one.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Round(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Ptr returns a pointer to v; handy for the optional input fields.
func Ptr[T any](v T) *T { return &v }

// Deref returns *p or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
