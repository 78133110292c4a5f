package session

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
)

type MemoryBackend struct {
	mu      sync.Mutex
	access  string
	refresh string
	ok      bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(context.Context) (string, string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh, m.ok, nil
}

func (m *MemoryBackend) Save(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh, m.ok = access, refresh, true
	return nil
}

func (m *MemoryBackend) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh, m.ok = "", "", false
	return nil
}

// SQLiteBackend keeps the pair as two metadata rows, access_token and
// refresh_token, always written and removed in one transaction.
type SQLiteBackend struct {
	db   *sql.DB
	repo func(dbx.DBTX) metadata.Repository
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{
		db:   db,
		repo: func(tx dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(tx) },
	}
}

// Load treats a half-written pair as no session at all.
func (b *SQLiteBackend) Load(ctx context.Context) (string, string, bool, error) {
	repo := b.repo(b.db)

	access, okAccess, err := repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return "", "", false, err
	}
	refresh, okRefresh, err := repo.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return "", "", false, err
	}

	if !okAccess || !okRefresh {
		return "", "", false, nil
	}
	return access, refresh, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := b.repo(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, access); err != nil {
			return err
		}
		return repo.Set(ctx, common.RefreshTokenKey, refresh)
	})
}

func (b *SQLiteBackend) Clear(ctx context.Context) error {
	return b.repo(b.db).Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey)
}
