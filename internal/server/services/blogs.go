package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/dmitrijs2005/folio/internal/server/cache"
	"github.com/dmitrijs2005/folio/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/folio/internal/slug"
	"github.com/google/uuid"
)

// List page sizes.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

const (
	msgBlogNotFound = "Blog not found"
	msgSlugTaken    = "A blog with this slug already exists"
	msgBadSlug      = "Invalid slug format. Use lowercase letters, numbers, and hyphens only"
	msgBadLastKey   = "Invalid last_key"
)

// BlogService manages blog posts. Every write drops the cached posts and
// list pages.
type BlogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	now         func() time.Time
}

func NewBlogService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache) *BlogService {
	return &BlogService{db: db, repomanager: m, cache: c, now: time.Now}
}

// List returns one page of posts, newest first. limit is clamped to
// [1, MaxListLimit] with DefaultListLimit for zero. lastKey is the LastKey
// of the previous page.
func (s *BlogService) List(ctx context.Context, limit int, lastKey string) (*models.BlogPage, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	key := cache.BlogListKey(limit, lastKey)
	var cached models.BlogPage
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	repo := s.repomanager.Blogs(s.db)

	after, err := s.decodeCursor(ctx, repo, lastKey)
	if err != nil {
		return nil, err
	}

	items, err := repo.List(ctx, after, limit+1)
	if err != nil {
		return nil, fmt.Errorf("error listing blogs: %w", err)
	}

	page := &models.BlogPage{Items: items}
	if page.Items == nil {
		page.Items = []models.Blog{}
	}
	if len(page.Items) > limit {
		page.Items = page.Items[:limit]
		last := page.Items[limit-1]
		b, err := json.Marshal(blogs.Cursor{BlogID: last.BlogID, CreatedAt: last.CreatedAt})
		if err != nil {
			return nil, fmt.Errorf("error encoding cursor: %w", err)
		}
		page.LastKey = models.Cursor(b)
	}

	s.cache.Set(ctx, key, page, cache.BlogsTTL)
	return page, nil
}

// decodeCursor parses lastKey. A cursor carrying only blogId is completed
// from the stored post.
func (s *BlogService) decodeCursor(ctx context.Context, repo blogs.Repository, lastKey string) (*blogs.Cursor, error) {
	if lastKey == "" {
		return nil, nil
	}

	var c blogs.Cursor
	if err := json.Unmarshal([]byte(lastKey), &c); err != nil || c.BlogID == "" {
		return nil, common.Invalid(msgBadLastKey)
	}
	if c.CreatedAt != 0 {
		return &c, nil
	}

	b, err := repo.GetByID(ctx, c.BlogID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Invalid(msgBadLastKey)
		}
		return nil, fmt.Errorf("error resolving cursor: %w", err)
	}
	c.CreatedAt = b.CreatedAt
	return &c, nil
}

// Get looks a post up by blogId first and by slug second.
func (s *BlogService) Get(ctx context.Context, slugOrID string) (*models.Blog, error) {
	key := cache.BlogKey(slugOrID)
	var cached models.Blog
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	repo := s.repomanager.Blogs(s.db)
	b, err := repo.GetByID(ctx, slugOrID)
	if errors.Is(err, common.ErrorNotFound) {
		b, err = repo.GetBySlug(ctx, slugOrID)
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgBlogNotFound)
		}
		return nil, fmt.Errorf("error loading blog: %w", err)
	}

	s.cache.Set(ctx, key, b, cache.BlogsTTL)
	return b, nil
}

// Create stores a new post written by author. Title and content are
// required; the slug is derived from the title when absent.
func (s *BlogService) Create(ctx context.Context, author string, in models.BlogInput) (*models.Blog, error) {
	title, err := models.Required(models.Deref(in.Title), "Title")
	if err != nil {
		return nil, err
	}
	content, err := models.Required(models.Deref(in.Content), "Content")
	if err != nil {
		return nil, err
	}

	sl := models.Deref(in.Slug)
	if sl == "" {
		sl = slug.Generate(title)
	}
	if err := s.checkSlug(ctx, sl, ""); err != nil {
		return nil, err
	}

	now := s.now().Unix()
	b := &models.Blog{
		BlogID:           uuid.NewString(),
		Title:            title,
		Slug:             sl,
		Content:          content,
		FeaturedImageURL: models.Deref(in.FeaturedImageURL),
		Tags:             models.Deref(in.Tags),
		Category:         models.Deref(in.Category),
		Author:           author,
		SEODescription:   models.Deref(in.SEODescription),
		PublishedAt:      now,
		CreatedAt:        now,
		UpdatedAt:        now,
		ReadingTime:      models.Ptr(models.ReadingTime(content)),
		LikesCount:       models.Ptr(0),
		CommentsCount:    models.Ptr(0),
	}
	if in.PublishedAt != nil {
		b.PublishedAt = *in.PublishedAt
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}

	if err := s.repomanager.Blogs(s.db).Create(ctx, b); err != nil {
		return nil, fmt.Errorf("error creating blog: %w", err)
	}

	s.cache.DeletePrefix(ctx, cache.BlogsPrefix)
	return b, nil
}

// Update applies the present fields of in to the post. A new content
// recomputes the reading time.
func (s *BlogService) Update(ctx context.Context, id string, in models.BlogInput) (*models.Blog, error) {
	repo := s.repomanager.Blogs(s.db)

	b, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgBlogNotFound)
		}
		return nil, fmt.Errorf("error loading blog: %w", err)
	}

	if in.Title != nil {
		if b.Title, err = models.Required(*in.Title, "Title"); err != nil {
			return nil, err
		}
	}
	if in.Content != nil {
		if b.Content, err = models.Required(*in.Content, "Content"); err != nil {
			return nil, err
		}
		b.ReadingTime = models.Ptr(models.ReadingTime(b.Content))
	}
	if in.Slug != nil {
		if err := s.checkSlug(ctx, *in.Slug, id); err != nil {
			return nil, err
		}
		b.Slug = *in.Slug
	}
	if in.FeaturedImageURL != nil {
		b.FeaturedImageURL = *in.FeaturedImageURL
	}
	if in.Tags != nil {
		b.Tags = *in.Tags
		if b.Tags == nil {
			b.Tags = []string{}
		}
	}
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.SEODescription != nil {
		b.SEODescription = *in.SEODescription
	}
	if in.PublishedAt != nil {
		b.PublishedAt = *in.PublishedAt
	}
	b.UpdatedAt = s.now().Unix()

	if err := repo.Update(ctx, b); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgBlogNotFound)
		}
		return nil, fmt.Errorf("error updating blog: %w", err)
	}

	s.cache.DeletePrefix(ctx, cache.BlogsPrefix)
	return b, nil
}

// Delete removes the post together with its comments and likes.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Blogs(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NotFound(msgBlogNotFound)
		}
		return fmt.Errorf("error deleting blog: %w", err)
	}

	s.cache.DeletePrefix(ctx, cache.BlogsPrefix)
	s.cache.Delete(ctx, cache.CommentsKey(id), cache.LikesKey(id))
	return nil
}

// checkSlug validates sl and makes sure no post other than exceptID uses it.
func (s *BlogService) checkSlug(ctx context.Context, sl, exceptID string) error {
	if sl == "" {
		return common.Invalid("Slug is required")
	}
	if !slug.Valid(sl) {
		return common.Invalid(msgBadSlug)
	}

	taken, err := s.repomanager.Blogs(s.db).SlugTaken(ctx, sl, exceptID)
	if err != nil {
		return fmt.Errorf("error checking slug: %w", err)
	}
	if taken {
		return common.Conflict(msgSlugTaken)
	}
	return nil
}
