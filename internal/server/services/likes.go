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
)

// LikeService counts likes. A visitor is an opaque hash and can like a post
// once; liking again is not an error.
type LikeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	now         func() time.Time
}

func NewLikeService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache) *LikeService {
	return &LikeService{db: db, repomanager: m, cache: c, now: time.Now}
}

// Status returns the like count of a post and whether visitor liked it.
// Only the count is cached.
func (s *LikeService) Status(ctx context.Context, blogID, visitor string) (*models.LikeStatus, error) {
	repo := s.repomanager.Likes(s.db)

	key := cache.LikesKey(blogID)
	var count int
	if !s.cache.Get(ctx, key, &count) {
		var err error
		count, err = repo.Count(ctx, blogID)
		if err != nil {
			return nil, fmt.Errorf("error counting likes: %w", err)
		}
		s.cache.Set(ctx, key, count, cache.LikesTTL)
	}

	liked := false
	if visitor != "" {
		var err error
		liked, err = repo.Has(ctx, blogID, visitor)
		if err != nil {
			return nil, fmt.Errorf("error checking like: %w", err)
		}
	}

	return &models.LikeStatus{LikesCount: count, HasLiked: liked}, nil
}

// Add records the visitor's like and returns the resulting count.
func (s *LikeService) Add(ctx context.Context, blogID, visitor string) (*models.LikeStatus, error) {
	var (
		count int
		added bool
	)
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		blogsRepo := s.repomanager.Blogs(tx)
		if _, err := blogsRepo.GetByID(ctx, blogID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NotFound(msgBlogNotFound)
			}
			return fmt.Errorf("error loading blog: %w", err)
		}

		likesRepo := s.repomanager.Likes(tx)
		var err error
		added, err = likesRepo.Add(ctx, blogID, visitor, s.now().Unix())
		if err != nil {
			return fmt.Errorf("error adding like: %w", err)
		}

		if added {
			count, err = blogsRepo.RefreshLikesCount(ctx, blogID)
		} else {
			count, err = likesRepo.Count(ctx, blogID)
		}
		if err != nil {
			return fmt.Errorf("error counting likes: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if added {
		s.cache.Set(ctx, cache.LikesKey(blogID), count, cache.LikesTTL)
		s.cache.DeletePrefix(ctx, cache.BlogsPrefix)
	}
	return &models.LikeStatus{LikesCount: count, HasLiked: true}, nil
}
