package comments

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) ListApproved(ctx context.Context, blogID string) ([]models.Comment, error) {
	query :=
		`SELECT comment_id, blog_id, author_name, author_email, content, status, created_at
		 FROM comments
		 WHERE blog_id = $1 AND status = $2
		 ORDER BY created_at ASC, comment_id ASC`

	rows, err := r.db.QueryContext(ctx, query, blogID, models.CommentStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.CommentID, &c.BlogID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	query :=
		`SELECT comment_id, blog_id, author_name, author_email, content, status, created_at
		 FROM comments
		 WHERE comment_id = $1`

	var c models.Comment
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.CommentID, &c.BlogID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) error {
	query :=
		`INSERT INTO comments (comment_id, blog_id, author_name, author_email, content, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query, c.CommentID, c.BlogID, c.AuthorName, c.AuthorEmail, c.Content, c.Status, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !dbx.RowsAffected(res) {
		return common.ErrorNotFound
	}
	return nil
}
