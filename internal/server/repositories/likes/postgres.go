package likes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, blogID, visitor string, at int64) (bool, error) {
	query :=
		`INSERT INTO likes (blog_id, visitor, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (blog_id, visitor) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, blogID, visitor, at)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffected(res), nil
}

func (r *PostgresRepository) Has(ctx context.Context, blogID, visitor string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE blog_id = $1 AND visitor = $2)`

	var liked bool
	if err := r.db.QueryRowContext(ctx, query, blogID, visitor).Scan(&liked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return liked, nil
}

func (r *PostgresRepository) Count(ctx context.Context, blogID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
