package services

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/models"
)

type PortfolioAPI interface {
	Get(ctx context.Context) (*models.Portfolio, error)
	Update(ctx context.Context, u models.PortfolioUpdate) (*models.Portfolio, error)
}

type BlogsAPI interface {
	List(ctx context.Context, params client.ListBlogsParams) (*models.BlogPage, error)
	Get(ctx context.Context, slugOrID string) (*models.Blog, error)
	Create(ctx context.Context, in models.BlogInput) (*models.Blog, error)
	Update(ctx context.Context, blogID string, in models.BlogInput) (*models.Blog, error)
	Delete(ctx context.Context, blogID string) error
}

type CommentsAPI interface {
	ListByBlog(ctx context.Context, blogID string) ([]models.Comment, error)
	Create(ctx context.Context, blogID string, in models.CommentInput) (*models.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

type LikesAPI interface {
	Get(ctx context.Context, blogID string) (*models.LikeStatus, error)
	Add(ctx context.Context, blogID string) (*models.LikeStatus, error)
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

var (
	_ PortfolioAPI = (*client.PortfolioService)(nil)
	_ BlogsAPI     = (*client.BlogsService)(nil)
	_ CommentsAPI  = (*client.CommentsService)(nil)
	_ LikesAPI     = (*client.LikesService)(nil)
	_ AuthAPI      = (*client.AuthService)(nil)
)
