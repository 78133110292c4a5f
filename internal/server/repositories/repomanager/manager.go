package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/folio/internal/server/repositories/comments"
	"github.com/dmitrijs2005/folio/internal/server/repositories/likes"
	"github.com/dmitrijs2005/folio/internal/server/repositories/portfolio"
	"github.com/dmitrijs2005/folio/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/folio/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// use the same repository inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Portfolio(db dbx.DBTX) portfolio.Repository
	Blogs(db dbx.DBTX) blogs.Repository
	Comments(db dbx.DBTX) comments.Repository
	Likes(db dbx.DBTX) likes.Repository
}
