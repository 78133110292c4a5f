package portfolio

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.Portfolio, error) {
	query := `SELECT data, updated_at FROM portfolio WHERE id = 1`

	var (
		data      []byte
		updatedAt int64
	)
	if err := r.db.QueryRowContext(ctx, query).Scan(&data, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p := &models.Portfolio{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}
	p.UpdatedAt = updatedAt
	return p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, p *models.Portfolio) error {
	query :=
		`INSERT INTO portfolio (id, data, updated_at)
		 VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, string(data), p.UpdatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
