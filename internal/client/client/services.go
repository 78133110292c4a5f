package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/folio/internal/models"
)

// PortfolioService reads and updates the portfolio singleton.
type PortfolioService struct {
	client *Client
}

// Get fetches the whole portfolio.
func (s *PortfolioService) Get(ctx context.Context) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.client.get(ctx, "/portfolio", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update sends the present fields of u; the server merges them.
func (s *PortfolioService) Update(ctx context.Context, u models.PortfolioUpdate) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.client.put(ctx, "/portfolio", u, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// BlogsService manages blog posts.
type BlogsService struct {
	client *Client
}

// ListBlogsParams pages through the blog list. Zero values are omitted.
type ListBlogsParams struct {
	Limit   int
	LastKey models.Cursor
}

func (p ListBlogsParams) query() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.LastKey != "" {
		q.Set("last_key", string(p.LastKey))
	}
	return q
}

func (s *BlogsService) List(ctx context.Context, params ListBlogsParams) (*models.BlogPage, error) {
	var page models.BlogPage
	if err := s.client.get(ctx, "/blogs", params.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a post by slug or blogId. A missing post yields an error
// matching ErrNotFound.
func (s *BlogsService) Get(ctx context.Context, slugOrID string) (*models.Blog, error) {
	var b models.Blog
	if err := s.client.get(ctx, "/blogs/"+segment(slugOrID), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogsService) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	var b models.Blog
	if err := s.client.post(ctx, "/blogs", in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogsService) Update(ctx context.Context, blogID string, in models.BlogInput) (*models.Blog, error) {
	var b models.Blog
	if err := s.client.put(ctx, "/blogs/"+segment(blogID), in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogsService) Delete(ctx context.Context, blogID string) error {
	return s.client.delete(ctx, "/blogs/"+segment(blogID))
}

// CommentsService manages post comments.
type CommentsService struct {
	client *Client
}

// commentList accepts both a bare array and the {items} list shape.
type commentList []models.Comment

func (l *commentList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, (*[]models.Comment)(l))
	}
	var page struct {
		Items []models.Comment `json:"items"`
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return err
	}
	*l = page.Items
	return nil
}

func (s *CommentsService) ListByBlog(ctx context.Context, blogID string) ([]models.Comment, error) {
	var list commentList
	if err := s.client.get(ctx, "/blogs/"+segment(blogID)+"/comments", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *CommentsService) Create(ctx context.Context, blogID string, in models.CommentInput) (*models.Comment, error) {
	var c models.Comment
	if err := s.client.post(ctx, "/blogs/"+segment(blogID)+"/comments", in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CommentsService) Delete(ctx context.Context, commentID string) error {
	return s.client.delete(ctx, "/comments/"+segment(commentID))
}

// LikesService reads and adds post likes.
type LikesService struct {
	client *Client
}

func (s *LikesService) Get(ctx context.Context, blogID string) (*models.LikeStatus, error) {
	var st models.LikeStatus
	if err := s.client.get(ctx, "/blogs/"+segment(blogID)+"/likes", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Add likes the post. A successful response always means the visitor has
// liked it, whatever has_liked the server echoes.
func (s *LikesService) Add(ctx context.Context, blogID string) (*models.LikeStatus, error) {
	var st models.LikeStatus
	if err := s.client.post(ctx, "/blogs/"+segment(blogID)+"/likes", nil, &st); err != nil {
		return nil, err
	}
	st.HasLiked = true
	return &st, nil
}

// AuthService exchanges credentials for tokens. It does not touch the
// session; storing the pair is the caller's job.
type AuthService struct {
	client *Client
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := s.client.post(ctx, "/auth/login", models.Credentials{Email: email, Password: password}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := s.client.post(ctx, "/auth/refresh", models.RefreshRequest{RefreshToken: refreshToken}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
