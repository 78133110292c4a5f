package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/folio/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/folio/internal/server/repositories/comments"
	"github.com/dmitrijs2005/folio/internal/server/repositories/likes"
	"github.com/dmitrijs2005/folio/internal/server/repositories/portfolio"
	"github.com/dmitrijs2005/folio/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/folio/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)
	m := NewPostgresRepositoryManager()

	if _, ok := m.Users(db).(*users.PostgresRepository); !ok {
		t.Fatal("Users() is not the postgres repository")
	}
	if _, ok := m.RefreshTokens(db).(*refreshtokens.PostgresRepository); !ok {
		t.Fatal("RefreshTokens() is not the postgres repository")
	}
	if _, ok := m.Portfolio(db).(*portfolio.PostgresRepository); !ok {
		t.Fatal("Portfolio() is not the postgres repository")
	}
	if _, ok := m.Blogs(db).(*blogs.PostgresRepository); !ok {
		t.Fatal("Blogs() is not the postgres repository")
	}
	if _, ok := m.Comments(db).(*comments.PostgresRepository); !ok {
		t.Fatal("Comments() is not the postgres repository")
	}
	if _, ok := m.Likes(db).(*likes.PostgresRepository); !ok {
		t.Fatal("Likes() is not the postgres repository")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	if err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
