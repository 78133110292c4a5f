package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/models"
)

// ---- fake portfolio API ----

type fakePortfolioAPI struct {
	mu        sync.Mutex
	portfolio models.Portfolio
	getErr    error
	updateErr error
	updates   []models.PortfolioUpdate
	// started is closed, when set, as soon as Get is entered.
	started chan struct{}
	// release, when set, blocks Get until it is closed.
	release chan struct{}
}

func (f *fakePortfolioAPI) Get(ctx context.Context) (*models.Portfolio, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p := f.portfolio
	return &p, nil
}

func (f *fakePortfolioAPI) Update(ctx context.Context, u models.PortfolioUpdate) (*models.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u.Apply(&f.portfolio)
	p := f.portfolio
	return &p, nil
}

// ---- fake blogs API ----

type fakeBlogsAPI struct {
	mu        sync.Mutex
	pages     map[string]models.BlogPage
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	listCalls []client.ListBlogsParams
	created   []models.BlogInput
	updated   map[string]models.BlogInput
	deleted   []string
}

func (f *fakeBlogsAPI) List(ctx context.Context, params client.ListBlogsParams) (*models.BlogPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, params)
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := f.pages[string(params.LastKey)]
	return &page, nil
}

func (f *fakeBlogsAPI) Get(ctx context.Context, slugOrID string) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, page := range f.pages {
		for _, b := range page.Items {
			if b.BlogID == slugOrID || b.Slug == slugOrID {
				return &b, nil
			}
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "Blog not found"}
}

func (f *fakeBlogsAPI) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Blog{BlogID: "new-id", Title: models.Deref(in.Title), Slug: models.Deref(in.Slug)}, nil
}

func (f *fakeBlogsAPI) Update(ctx context.Context, blogID string, in models.BlogInput) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updated == nil {
		f.updated = map[string]models.BlogInput{}
	}
	f.updated[blogID] = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Blog{BlogID: blogID, Title: models.Deref(in.Title), Slug: models.Deref(in.Slug)}, nil
}

func (f *fakeBlogsAPI) Delete(ctx context.Context, blogID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, blogID)
	return f.deleteErr
}

// ---- fake comments API ----

type fakeCommentsAPI struct {
	list      []models.Comment
	listErr   error
	createErr error
	created   []models.CommentInput
}

func (f *fakeCommentsAPI) ListByBlog(ctx context.Context, blogID string) ([]models.Comment, error) {
	return f.list, f.listErr
}

func (f *fakeCommentsAPI) Create(ctx context.Context, blogID string, in models.CommentInput) (*models.Comment, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Comment{CommentID: "c1", BlogID: blogID, AuthorName: in.AuthorName, Content: in.Content}, nil
}

func (f *fakeCommentsAPI) Delete(ctx context.Context, commentID string) error { return nil }

// ---- fake likes API ----

// fakeLikesAPI counts likes per visitor the way the server does: a repeat
// like from the same visitor does not increase the count.
type fakeLikesAPI struct {
	mu      sync.Mutex
	count   int
	liked   bool
	adds    int
	addErr  error
	release chan struct{}
}

func (f *fakeLikesAPI) Get(ctx context.Context, blogID string) (*models.LikeStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.LikeStatus{LikesCount: f.count, HasLiked: f.liked}, nil
}

func (f *fakeLikesAPI) Add(ctx context.Context, blogID string) (*models.LikeStatus, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds++
	if f.addErr != nil {
		return nil, f.addErr
	}
	if !f.liked {
		f.count++
		f.liked = true
	}
	return &models.LikeStatus{LikesCount: f.count}, nil
}

// ---- fake auth API ----

type fakeAuthAPI struct {
	pair       models.TokenPair
	loginErr   error
	refreshErr error
	lastEmail  string
	lastToken  string
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	p := f.pair
	return &p, nil
}

func (f *fakeAuthAPI) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	f.lastToken = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
}
