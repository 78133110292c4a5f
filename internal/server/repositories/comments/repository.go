// Package comments stores visitor comments on blog posts.
package comments

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/models"
)

type Repository interface {
	// ListApproved returns the approved comments of a post, oldest first.
	ListApproved(ctx context.Context, blogID string) ([]models.Comment, error)
	Get(ctx context.Context, id string) (*models.Comment, error)
	Create(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id string) error
}
