package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/dmitrijs2005/folio/internal/slug"
)

// ManageListLimit is how many posts the admin list loads.
const ManageListLimit = 100

// BlogManager backs the admin post list. Unlike the portfolio collections,
// every change goes to the server right away and the local list changes only
// after the server has accepted it.
type BlogManager struct {
	api BlogsAPI

	mu    sync.Mutex
	posts []models.Blog
}

func NewBlogManager(api BlogsAPI) *BlogManager {
	return &BlogManager{api: api}
}

func (m *BlogManager) Load(ctx context.Context) error {
	page, err := m.api.List(ctx, client.ListBlogsParams{Limit: ManageListLimit})
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = page.Items
	return nil
}

func (m *BlogManager) Posts() []models.Blog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Blog(nil), m.posts...)
}

// Find returns the loaded post with the given id or slug.
func (m *BlogManager) Find(key string) (models.Blog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.posts {
		if b.BlogID == key || b.Slug == key {
			return b, true
		}
	}
	return models.Blog{}, false
}

// Create submits the editor and, once the server accepts, puts the new post
// at the top of the list.
func (m *BlogManager) Create(ctx context.Context, e *BlogEditor) (*models.Blog, error) {
	in, err := e.Input()
	if err != nil {
		return nil, err
	}

	b, err := m.api.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append([]models.Blog{*b}, m.posts...)
	return b, nil
}

// Update submits the editor for an existing post.
func (m *BlogManager) Update(ctx context.Context, blogID string, e *BlogEditor) (*models.Blog, error) {
	in, err := e.Input()
	if err != nil {
		return nil, err
	}

	b, err := m.api.Update(ctx, blogID, in)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].BlogID == blogID {
			m.posts[i] = *b
			break
		}
	}
	return b, nil
}

// Delete removes the post on the server after confirm approves it.
func (m *BlogManager) Delete(ctx context.Context, blogID string, confirm func() bool) error {
	if confirm == nil || !confirm() {
		return ErrNotConfirmed
	}
	if err := m.api.Delete(ctx, blogID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].BlogID == blogID {
			m.posts = append(m.posts[:i:i], m.posts[i+1:]...)
			break
		}
	}
	return nil
}

// BlogEditor is the post form. The slug follows the title until the author
// sets one.
type BlogEditor struct {
	title string
	slug  slug.Field

	Content          string
	FeaturedImageURL string
	Tags             []string
	Category         string
	SEODescription   string
}

// NewBlogEditor opens the form, prefilled from existing when it is not nil.
func NewBlogEditor(existing *models.Blog) *BlogEditor {
	if existing == nil {
		return &BlogEditor{}
	}
	return &BlogEditor{
		title:            existing.Title,
		slug:             slug.NewField(existing.Slug),
		Content:          existing.Content,
		FeaturedImageURL: existing.FeaturedImageURL,
		Tags:             append([]string(nil), existing.Tags...),
		Category:         existing.Category,
		SEODescription:   existing.SEODescription,
	}
}

func (e *BlogEditor) Title() string { return e.title }

func (e *BlogEditor) SetTitle(title string) {
	e.title = title
	e.slug.TitleChanged(title)
}

func (e *BlogEditor) Slug() string { return e.slug.Value() }

func (e *BlogEditor) SetSlug(s string) { e.slug.Set(s) }

// SetTags parses a comma separated tag list.
func (e *BlogEditor) SetTags(s string) {
	e.Tags = ParseTags(s)
}

// Input validates the form and builds the request body.
func (e *BlogEditor) Input() (models.BlogInput, error) {
	title := strings.TrimSpace(e.title)
	if title == "" {
		return models.BlogInput{}, common.Invalid("Title is required")
	}
	if strings.TrimSpace(e.Content) == "" {
		return models.BlogInput{}, common.Invalid("Content is required")
	}

	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.BlogInput{
		Title:            models.Ptr(title),
		Slug:             models.Ptr(e.slug.Resolve(title)),
		Content:          models.Ptr(e.Content),
		FeaturedImageURL: models.Ptr(e.FeaturedImageURL),
		Tags:             &tags,
		Category:         models.Ptr(e.Category),
		SEODescription:   models.Ptr(e.SEODescription),
	}, nil
}

// ParseTags splits a comma separated list and drops empty items.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
