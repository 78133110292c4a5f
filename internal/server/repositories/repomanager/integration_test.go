//go:build integration

package repomanager

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/models"
	servermodels "github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/blogs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sql.DB
	rm        RepositoryManager
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("folio"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sql.Open("pgx", connStr)
	s.Require().NoError(err)
	s.db = db

	s.rm = NewPostgresRepositoryManager()
	s.Require().NoError(s.rm.RunMigrations(s.ctx, s.db))
	// A second run must be a no-op.
	s.Require().NoError(s.rm.RunMigrations(s.ctx, s.db))
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	for _, table := range []string{"likes", "comments", "blogs", "portfolio", "refresh_tokens", "users"} {
		_, err := s.db.ExecContext(s.ctx, "DELETE FROM "+table)
		s.Require().NoError(err)
	}
}

func (s *PostgresIntegrationSuite) newBlog(id, slug string, createdAt int64) *models.Blog {
	b := &models.Blog{
		BlogID:    id,
		Title:     "Title " + id,
		Slug:      slug,
		Content:   "some content",
		Tags:      []string{"go"},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.Require().NoError(s.rm.Blogs(s.db).Create(s.ctx, b))
	return b
}

func (s *PostgresIntegrationSuite) TestUsersUpsertAndLogin() {
	repo := s.rm.Users(s.db)

	first, err := repo.Upsert(s.ctx, &servermodels.User{Email: "admin@example.com", PasswordHash: "h1"})
	s.Require().NoError(err)
	s.NotEmpty(first.ID)
	s.NotZero(first.CreatedAt)

	// Same email keeps the id and replaces the hash.
	again, err := repo.Upsert(s.ctx, &servermodels.User{Email: "admin@example.com", PasswordHash: "h2"})
	s.Require().NoError(err)
	s.Equal(first.ID, again.ID)

	s.Require().NoError(repo.UpdateLastLogin(s.ctx, first.ID, 99))

	got, err := repo.GetByEmail(s.ctx, "admin@example.com")
	s.Require().NoError(err)
	s.Equal("h2", got.PasswordHash)
	s.Equal(int64(99), got.LastLogin)

	_, err = repo.GetByID(s.ctx, uuid.NewString())
	s.ErrorIs(err, common.ErrorNotFound)
}

func (s *PostgresIntegrationSuite) TestRefreshTokensRotate() {
	u, err := s.rm.Users(s.db).Upsert(s.ctx, &servermodels.User{Email: "a@example.com", PasswordHash: "h"})
	s.Require().NoError(err)

	repo := s.rm.RefreshTokens(s.db)
	now := time.Now()
	s.Require().NoError(repo.Create(s.ctx, u.ID, "live", now.Add(time.Hour)))
	s.Require().NoError(repo.Create(s.ctx, u.ID, "stale", now.Add(-time.Hour)))

	s.Require().NoError(repo.DeleteExpired(s.ctx, u.ID, now))
	_, err = repo.Find(s.ctx, "stale")
	s.ErrorIs(err, common.ErrorNotFound)

	tok, err := repo.Find(s.ctx, "live")
	s.Require().NoError(err)
	s.Equal(u.ID, tok.UserID)

	deleted, err := repo.Delete(s.ctx, "live")
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = repo.Delete(s.ctx, "live")
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *PostgresIntegrationSuite) TestPortfolioSingleton() {
	repo := s.rm.Portfolio(s.db)

	_, err := repo.Get(s.ctx)
	s.ErrorIs(err, common.ErrorNotFound)

	p := &models.Portfolio{Bio: "hello", SocialLinks: map[string]string{"github": "gh"}, UpdatedAt: 5}
	s.Require().NoError(repo.Save(s.ctx, p))
	p.Bio = "again"
	s.Require().NoError(repo.Save(s.ctx, p))

	got, err := repo.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal("again", got.Bio)
	s.Equal("gh", got.SocialLinks["github"])
	s.Equal(int64(5), got.UpdatedAt)
}

func (s *PostgresIntegrationSuite) TestBlogsKeysetPaging() {
	s.newBlog("a", "post-a", 100)
	s.newBlog("b", "post-b", 200)
	s.newBlog("c", "post-c", 200)

	repo := s.rm.Blogs(s.db)

	page, err := repo.List(s.ctx, nil, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("c", page[0].BlogID)
	s.Equal("b", page[1].BlogID)

	rest, err := repo.List(s.ctx, &blogs.Cursor{BlogID: "b", CreatedAt: 200}, 2)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal("a", rest[0].BlogID)

	taken, err := repo.SlugTaken(s.ctx, "post-a", "")
	s.Require().NoError(err)
	s.True(taken)

	taken, err = repo.SlugTaken(s.ctx, "post-a", "a")
	s.Require().NoError(err)
	s.False(taken)

	got, err := repo.GetBySlug(s.ctx, "post-b")
	s.Require().NoError(err)
	s.Equal([]string{"go"}, got.Tags)
}

func (s *PostgresIntegrationSuite) TestCountersAndCascade() {
	s.newBlog("a", "post-a", 100)

	err := dbx.WithTx(s.ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		c := &models.Comment{CommentID: "c1", BlogID: "a", AuthorName: "n", AuthorEmail: "n@example.com",
			Content: "hi", Status: models.CommentStatusApproved, CreatedAt: 1}
		if err := s.rm.Comments(tx).Create(ctx, c); err != nil {
			return err
		}
		_, err := s.rm.Blogs(tx).RefreshCommentsCount(ctx, "a")
		return err
	})
	s.Require().NoError(err)

	likes := s.rm.Likes(s.db)
	added, err := likes.Add(s.ctx, "a", "v1", 1)
	s.Require().NoError(err)
	s.True(added)
	added, err = likes.Add(s.ctx, "a", "v1", 2)
	s.Require().NoError(err)
	s.False(added)

	n, err := s.rm.Blogs(s.db).RefreshLikesCount(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(1, n)

	b, err := s.rm.Blogs(s.db).GetByID(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(1, *b.CommentsCount)
	s.Equal(1, *b.LikesCount)

	s.Require().NoError(s.rm.Blogs(s.db).Delete(s.ctx, "a"))

	list, err := s.rm.Comments(s.db).ListApproved(s.ctx, "a")
	s.Require().NoError(err)
	s.Empty(list)

	count, err := likes.Count(s.ctx, "a")
	s.Require().NoError(err)
	s.Zero(count)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}
