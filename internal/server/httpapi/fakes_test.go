package httpapi

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/models"
)

const goodToken = "good-token"

// fakeAPI implements every service interface and records what it was asked.
type fakeAPI struct {
	mu sync.Mutex

	err error

	lastLimit   int
	lastKey     string
	lastAuthor  string
	lastVisitor string
	lastID      string
	lastUpdate  models.PortfolioUpdate
	lastBlogIn  models.BlogInput
	lastComment models.CommentInput

	panicOnGet bool
}

func (f *fakeAPI) fail() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeAPI) Authenticate(token string) (string, error) {
	if token != goodToken {
		return "", common.Unauthorized("Invalid token")
	}
	return "admin@example.com", nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.TokenPair, error) {
	if password != "correct-horse" {
		return nil, common.Unauthorized("Invalid email or password")
	}
	return &models.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil
}

func (f *fakeAPI) Refresh(_ context.Context, token string) (*models.TokenPair, error) {
	if token == "" {
		return nil, common.Invalid("Refresh token is required")
	}
	return &models.TokenPair{AccessToken: "a2", RefreshToken: "r2", ExpiresIn: 900}, nil
}

type fakePortfolio struct{ *fakeAPI }

func (f fakePortfolio) Get(context.Context) (*models.Portfolio, error) {
	if f.panicOnGet {
		panic("boom")
	}
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.Portfolio{Bio: "Hi", SocialLinks: map[string]string{}, Projects: []models.Project{}, Experience: []models.Experience{}}, nil
}

func (f fakePortfolio) Update(_ context.Context, u models.PortfolioUpdate) (*models.Portfolio, error) {
	f.mu.Lock()
	f.lastUpdate = u
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	p := &models.Portfolio{}
	u.Apply(p)
	return p, nil
}

type fakeBlogs struct{ *fakeAPI }

func (f fakeBlogs) List(_ context.Context, limit int, lastKey string) (*models.BlogPage, error) {
	f.mu.Lock()
	f.lastLimit, f.lastKey = limit, lastKey
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.BlogPage{Items: []models.Blog{{BlogID: "b1"}}}, nil
}

func (f fakeBlogs) Get(_ context.Context, id string) (*models.Blog, error) {
	f.mu.Lock()
	f.lastID = id
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.Blog{BlogID: "b1", Slug: id}, nil
}

func (f fakeBlogs) Create(_ context.Context, author string, in models.BlogInput) (*models.Blog, error) {
	f.mu.Lock()
	f.lastAuthor, f.lastBlogIn = author, in
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.Blog{BlogID: "new", Title: models.Deref(in.Title), Author: author}, nil
}

func (f fakeBlogs) Update(_ context.Context, id string, in models.BlogInput) (*models.Blog, error) {
	f.mu.Lock()
	f.lastID, f.lastBlogIn = id, in
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.Blog{BlogID: id, Title: models.Deref(in.Title)}, nil
}

func (f fakeBlogs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	f.lastID = id
	f.mu.Unlock()
	return f.fail()
}

type fakeComments struct{ *fakeAPI }

func (f fakeComments) List(_ context.Context, blogID string) ([]models.Comment, error) {
	f.mu.Lock()
	f.lastID = blogID
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []models.Comment{{CommentID: "c1", BlogID: blogID}}, nil
}

func (f fakeComments) Create(_ context.Context, blogID string, in models.CommentInput) (*models.Comment, error) {
	f.mu.Lock()
	f.lastID, f.lastComment = blogID, in
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.Comment{CommentID: "c9", BlogID: blogID, AuthorName: in.AuthorName}, nil
}

func (f fakeComments) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	f.lastID = id
	f.mu.Unlock()
	return f.fail()
}

type fakeLikes struct{ *fakeAPI }

func (f fakeLikes) Status(_ context.Context, blogID, visitor string) (*models.LikeStatus, error) {
	f.mu.Lock()
	f.lastID, f.lastVisitor = blogID, visitor
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.LikeStatus{LikesCount: 3}, nil
}

func (f fakeLikes) Add(_ context.Context, blogID, visitor string) (*models.LikeStatus, error) {
	f.mu.Lock()
	f.lastID, f.lastVisitor = blogID, visitor
	f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.LikeStatus{LikesCount: 4, HasLiked: true}, nil
}

func (f *fakeAPI) services() Services {
	return Services{
		Auth:      f,
		Portfolio: fakePortfolio{f},
		Blogs:     fakeBlogs{f},
		Comments:  fakeComments{f},
		Likes:     fakeLikes{f},
	}
}
