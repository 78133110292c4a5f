package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/dmitrijs2005/folio/internal/server/cache"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const msgCommentNotFound = "Comment not found"

// CommentService manages visitor comments. Creating and deleting a comment
// keeps the post's comments_count in the same transaction.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	now         func() time.Time
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache) *CommentService {
	return &CommentService{db: db, repomanager: m, cache: c, now: time.Now}
}

// List returns the approved comments of a post, oldest first.
func (s *CommentService) List(ctx context.Context, blogID string) ([]models.Comment, error) {
	key := cache.CommentsKey(blogID)
	var cached []models.Comment
	if s.cache.Get(ctx, key, &cached) && cached != nil {
		return cached, nil
	}

	list, err := s.repomanager.Comments(s.db).ListApproved(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	if list == nil {
		list = []models.Comment{}
	}

	s.cache.Set(ctx, key, list, cache.CommentsTTL)
	return list, nil
}

// Create validates in and publishes it on the post right away.
func (s *CommentService) Create(ctx context.Context, blogID string, in models.CommentInput) (*models.Comment, error) {
	in, err := in.Validate()
	if err != nil {
		return nil, err
	}

	c := &models.Comment{
		CommentID:   uuid.NewString(),
		BlogID:      blogID,
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
		Content:     in.Content,
		CreatedAt:   s.now().Unix(),
		Status:      models.CommentStatusApproved,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Blogs(tx).GetByID(ctx, blogID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NotFound(msgBlogNotFound)
			}
			return fmt.Errorf("error loading blog: %w", err)
		}
		if err := s.repomanager.Comments(tx).Create(ctx, c); err != nil {
			return fmt.Errorf("error creating comment: %w", err)
		}
		if _, err := s.repomanager.Blogs(tx).RefreshCommentsCount(ctx, blogID); err != nil {
			return fmt.Errorf("error counting comments: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.invalidate(ctx, blogID)
	return c, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, commentID string) error {
	var blogID string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Comments(tx)

		c, err := repo.Get(ctx, commentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NotFound(msgCommentNotFound)
			}
			return fmt.Errorf("error loading comment: %w", err)
		}
		blogID = c.BlogID

		if err := repo.Delete(ctx, commentID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NotFound(msgCommentNotFound)
			}
			return fmt.Errorf("error deleting comment: %w", err)
		}
		if _, err := s.repomanager.Blogs(tx).RefreshCommentsCount(ctx, blogID); err != nil {
			return fmt.Errorf("error counting comments: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	s.invalidate(ctx, blogID)
	return nil
}

// invalidate drops the comment list and the posts carrying the counter.
func (s *CommentService) invalidate(ctx context.Context, blogID string) {
	s.cache.Delete(ctx, cache.CommentsKey(blogID))
	s.cache.DeletePrefix(ctx, cache.BlogsPrefix)
}
