package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/models"
	servermodels "github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/folio/internal/server/repositories/comments"
	"github.com/dmitrijs2005/folio/internal/server/repositories/likes"
	"github.com/dmitrijs2005/folio/internal/server/repositories/portfolio"
	"github.com/dmitrijs2005/folio/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/folio/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

var fixedNow = time.Unix(1_700_000_000, 0)

func fixedClock() time.Time { return fixedNow }

// newMockDB returns a sqlmock database; the fakes below never touch it, so
// only Begin/Commit/Rollback need expectations.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("sql expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// --- users ---

type fakeUsers struct {
	mu        sync.Mutex
	byEmail   map[string]*servermodels.User
	lastLogin map[string]int64
	err       error
}

func (f *fakeUsers) Upsert(_ context.Context, u *servermodels.User) (*servermodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if old, ok := f.byEmail[u.Email]; ok {
		old.PasswordHash = u.PasswordHash
		cp := *old
		return &cp, nil
	}
	cp := *u
	cp.ID = "user-" + u.Email
	f.byEmail[u.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*servermodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*servermodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id string, at int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLogin[id] = at
	return nil
}

// --- refresh tokens ---

type fakeRefresh struct {
	mu     sync.Mutex
	tokens map[string]*servermodels.RefreshToken
	pruned []string

	// lostRace makes Delete report that another request consumed the token.
	lostRace bool
}

func (f *fakeRefresh) Create(_ context.Context, userID, token string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &servermodels.RefreshToken{UserID: userID, Token: token, Expires: expires}
	return nil
}

func (f *fakeRefresh) Find(_ context.Context, token string) (*servermodels.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRefresh) Delete(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lostRace {
		return false, nil
	}
	_, ok := f.tokens[token]
	delete(f.tokens, token)
	return ok, nil
}

func (f *fakeRefresh) DeleteExpired(_ context.Context, userID string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruned = append(f.pruned, userID)
	return nil
}

// --- portfolio ---

type fakePortfolio struct {
	p        *models.Portfolio
	gets     int
	getErr   error
	saveErr  error
	saved    *models.Portfolio
	saveRuns int
}

func (f *fakePortfolio) Get(context.Context) (*models.Portfolio, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.p == nil {
		return nil, common.ErrorNotFound
	}
	cp := *f.p
	return &cp, nil
}

func (f *fakePortfolio) Save(_ context.Context, p *models.Portfolio) error {
	f.saveRuns++
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *p
	f.p = &cp
	f.saved = &cp
	return nil
}

// --- blogs, comments, likes ---

type fakeBlogs struct {
	mu        sync.Mutex
	items     map[string]*models.Blog
	comments  *fakeComments
	likes     *fakeLikes
	listLimit []int
	err       error
}

func (f *fakeBlogs) List(_ context.Context, after *blogs.Cursor, limit int) ([]models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listLimit = append(f.listLimit, limit)
	if f.err != nil {
		return nil, f.err
	}

	all := make([]models.Blog, 0, len(f.items))
	for _, b := range f.items {
		all = append(all, *b)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt != all[j].CreatedAt {
			return all[i].CreatedAt > all[j].CreatedAt
		}
		return all[i].BlogID > all[j].BlogID
	})

	var out []models.Blog
	for _, b := range all {
		if after != nil && (b.CreatedAt > after.CreatedAt || (b.CreatedAt == after.CreatedAt && b.BlogID >= after.BlogID)) {
			continue
		}
		out = append(out, b)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeBlogs) GetByID(_ context.Context, id string) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlogs) GetBySlug(_ context.Context, slug string) (*models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeBlogs) SlugTaken(_ context.Context, slug, exceptID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.Slug == slug && b.BlogID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBlogs) Create(_ context.Context, b *models.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.items[b.BlogID] = &cp
	return nil
}

func (f *fakeBlogs) Update(_ context.Context, b *models.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[b.BlogID]; !ok {
		return common.ErrorNotFound
	}
	cp := *b
	f.items[b.BlogID] = &cp
	return nil
}

func (f *fakeBlogs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeBlogs) RefreshCommentsCount(_ context.Context, id string) (int, error) {
	n := f.comments.approved(id)
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	b.CommentsCount = models.Ptr(n)
	return n, nil
}

func (f *fakeBlogs) RefreshLikesCount(_ context.Context, id string) (int, error) {
	n := f.likes.count(id)
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	b.LikesCount = models.Ptr(n)
	return n, nil
}

type fakeComments struct {
	mu    sync.Mutex
	items map[string]*models.Comment
	lists int
	err   error
}

func (f *fakeComments) ListApproved(_ context.Context, blogID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Comment{}
	for _, c := range f.items {
		if c.BlogID == blogID && c.Status == models.CommentStatusApproved {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (f *fakeComments) approved(blogID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.items {
		if c.BlogID == blogID && c.Status == models.CommentStatusApproved {
			n++
		}
	}
	return n
}

func (f *fakeComments) Get(_ context.Context, id string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) Create(_ context.Context, c *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *c
	f.items[c.CommentID] = &cp
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeLikes struct {
	mu     sync.Mutex
	set    map[string]map[string]bool
	counts int
}

func (f *fakeLikes) Add(_ context.Context, blogID, visitor string, _ int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.set[blogID] == nil {
		f.set[blogID] = map[string]bool{}
	}
	if f.set[blogID][visitor] {
		return false, nil
	}
	f.set[blogID][visitor] = true
	return true, nil
}

func (f *fakeLikes) Has(_ context.Context, blogID, visitor string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set[blogID][visitor], nil
}

func (f *fakeLikes) count(blogID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.set[blogID])
}

func (f *fakeLikes) Count(_ context.Context, blogID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts++
	return len(f.set[blogID]), nil
}

// --- manager ---

type fakeRepoManager struct {
	users     *fakeUsers
	refresh   *fakeRefresh
	portfolio *fakePortfolio
	blogs     *fakeBlogs
	comments  *fakeComments
	likes     *fakeLikes
}

func newFakeRepoManager() *fakeRepoManager {
	c := &fakeComments{items: map[string]*models.Comment{}}
	l := &fakeLikes{set: map[string]map[string]bool{}}
	return &fakeRepoManager{
		users:     &fakeUsers{byEmail: map[string]*servermodels.User{}, lastLogin: map[string]int64{}},
		refresh:   &fakeRefresh{tokens: map[string]*servermodels.RefreshToken{}},
		portfolio: &fakePortfolio{},
		blogs:     &fakeBlogs{items: map[string]*models.Blog{}, comments: c, likes: l},
		comments:  c,
		likes:     l,
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.refresh }
func (m *fakeRepoManager) Portfolio(dbx.DBTX) portfolio.Repository         { return m.portfolio }
func (m *fakeRepoManager) Blogs(dbx.DBTX) blogs.Repository                 { return m.blogs }
func (m *fakeRepoManager) Comments(dbx.DBTX) comments.Repository           { return m.comments }
func (m *fakeRepoManager) Likes(dbx.DBTX) likes.Repository                 { return m.likes }

// --- cache ---

// mapCache is an in-memory cache.Cache that round-trips values through JSON
// like the Redis one does.
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	hits    int
	deleted []string
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dst any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false
	}
	c.hits++
	return true
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.data[key] = b
}

func (c *mapCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	c.deleted = append(c.deleted, prefix+"*")
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
