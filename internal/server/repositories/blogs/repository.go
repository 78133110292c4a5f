// Package blogs stores blog posts and their denormalized counters.
package blogs

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/models"
)

// Cursor is the keyset position after which the next page starts. It is
// the JSON handed to clients as last_key.
type Cursor struct {
	BlogID    string `json:"blogId"`
	CreatedAt int64  `json:"created_at"`
}

type Repository interface {
	// List returns up to limit posts, newest first, strictly after cursor
	// when it is non-nil.
	List(ctx context.Context, after *Cursor, limit int) ([]models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	// SlugTaken reports whether another post than exceptID uses slug.
	SlugTaken(ctx context.Context, slug, exceptID string) (bool, error)
	Create(ctx context.Context, b *models.Blog) error
	// Update rewrites every editable column of b. Counters are left alone.
	Update(ctx context.Context, b *models.Blog) error
	Delete(ctx context.Context, id string) error
	// RefreshCommentsCount recounts approved comments into comments_count.
	RefreshCommentsCount(ctx context.Context, id string) (int, error)
	// RefreshLikesCount recounts likes into likes_count.
	RefreshLikesCount(ctx context.Context, id string) (int, error)
}
