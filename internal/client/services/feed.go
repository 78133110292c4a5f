package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/models"
)

const (
	// FeedPageSize is how many posts the public list asks for at a time.
	FeedPageSize = 50

	FeedErrorMessage  = "Failed to load blogs. Please try again later."
	PostNotFoundTitle = "Blog post not found"
)

// BlogFeed is the public post list. A failed load keeps what was already
// shown and offers Retry.
type BlogFeed struct {
	api BlogsAPI

	mu      sync.Mutex
	posts   []models.Blog
	lastKey models.Cursor
	loaded  bool
	failed  bool
}

func NewBlogFeed(api BlogsAPI) *BlogFeed {
	return &BlogFeed{api: api}
}

// Load fetches the first page.
func (f *BlogFeed) Load(ctx context.Context) error {
	return f.fetch(ctx, "", false)
}

// More fetches the page after the last one loaded. It does nothing when
// there are no more pages.
func (f *BlogFeed) More(ctx context.Context) error {
	f.mu.Lock()
	key := f.lastKey
	f.mu.Unlock()

	if key == "" {
		return nil
	}
	return f.fetch(ctx, key, true)
}

// Retry repeats the first page load after a failure.
func (f *BlogFeed) Retry(ctx context.Context) error {
	return f.Load(ctx)
}

func (f *BlogFeed) fetch(ctx context.Context, lastKey models.Cursor, appendPage bool) error {
	page, err := f.api.List(ctx, client.ListBlogsParams{Limit: FeedPageSize, LastKey: lastKey})

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.failed = true
		return err
	}

	f.failed = false
	f.loaded = true
	if appendPage {
		f.posts = append(f.posts, page.Items...)
	} else {
		f.posts = page.Items
	}
	f.lastKey = page.LastKey
	return nil
}

func (f *BlogFeed) Posts() []models.Blog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Blog(nil), f.posts...)
}

func (f *BlogFeed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastKey != ""
}

// Failed reports whether the last load failed and Retry should be offered.
func (f *BlogFeed) Failed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}

// BlogView is a single post with its comments and likes.
type BlogView struct {
	Post     *models.Blog
	Comments []models.Comment
	Likes    *LikeButton
	NotFound bool
}

// OpenPost loads a post by slug. A missing post is not an error: the view
// comes back with NotFound set. Comments and likes failing to load leave
// the post readable.
func OpenPost(ctx context.Context, blogs BlogsAPI, comments CommentsAPI, likes LikesAPI, slugOrID string) (*BlogView, error) {
	post, err := blogs.Get(ctx, slugOrID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return &BlogView{NotFound: true}, nil
		}
		return nil, err
	}

	v := &BlogView{Post: post, Likes: NewLikeButton(likes, post.BlogID)}
	if list, err := comments.ListByBlog(ctx, post.BlogID); err == nil {
		v.Comments = list
	}
	_ = v.Likes.Load(ctx)
	return v, nil
}

// AddComment validates and submits a comment. The comment is shown only
// after the server accepts it.
func (v *BlogView) AddComment(ctx context.Context, api CommentsAPI, in models.CommentInput) (*models.Comment, error) {
	if v.Post == nil {
		return nil, client.ErrNotFound
	}
	in, err := in.Validate()
	if err != nil {
		return nil, err
	}

	c, err := api.Create(ctx, v.Post.BlogID, in)
	if err != nil {
		return nil, err
	}
	v.Comments = append(v.Comments, *c)
	return c, nil
}
