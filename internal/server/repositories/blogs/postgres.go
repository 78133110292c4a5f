package blogs

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

const columns = `blog_id, title, slug, content, featured_image_url, tags, category, author,
	seo_description, published_at, created_at, updated_at, reading_time, likes_count, comments_count`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(s scanner) (*models.Blog, error) {
	var b models.Blog
	var tags []byte
	var readingTime, likesCount, commentsCount int
	err := s.Scan(&b.BlogID, &b.Title, &b.Slug, &b.Content, &b.FeaturedImageURL, &tags, &b.Category, &b.Author,
		&b.SEODescription, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt, &readingTime, &likesCount, &commentsCount)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &b.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.ReadingTime = &readingTime
	b.LikesCount = &likesCount
	b.CommentsCount = &commentsCount
	return &b, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func (r *PostgresRepository) List(ctx context.Context, after *Cursor, limit int) ([]models.Blog, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if after == nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+columns+` FROM blogs
			 ORDER BY created_at DESC, blog_id DESC
			 LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+columns+` FROM blogs
			 WHERE (created_at, blog_id) < ($1, $2)
			 ORDER BY created_at DESC, blog_id DESC
			 LIMIT $3`, after.CreatedAt, after.BlogID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]models.Blog, 0, limit)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM blogs WHERE blog_id = $1`, id)
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return r.getOne(ctx, `SELECT `+columns+` FROM blogs WHERE slug = $1`, slug)
}

func (r *PostgresRepository) getOne(ctx context.Context, query, arg string) (*models.Blog, error) {
	b, err := scanBlog(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1 AND blog_id <> $2)`

	var taken bool
	if err := r.db.QueryRowContext(ctx, query, slug, exceptID).Scan(&taken); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return taken, nil
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Blog) error {
	query :=
		`INSERT INTO blogs (blog_id, title, slug, content, featured_image_url, tags, category, author,
			seo_description, published_at, created_at, updated_at, reading_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	tags, err := encodeTags(b.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, b.BlogID, b.Title, b.Slug, b.Content, b.FeaturedImageURL, tags,
		b.Category, b.Author, b.SEODescription, b.PublishedAt, b.CreatedAt, b.UpdatedAt, models.Deref(b.ReadingTime))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, b *models.Blog) error {
	query :=
		`UPDATE blogs SET title = $2, slug = $3, content = $4, featured_image_url = $5, tags = $6,
			category = $7, author = $8, seo_description = $9, published_at = $10, updated_at = $11,
			reading_time = $12
		 WHERE blog_id = $1`

	tags, err := encodeTags(b.Tags)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, b.BlogID, b.Title, b.Slug, b.Content, b.FeaturedImageURL, tags,
		b.Category, b.Author, b.SEODescription, b.PublishedAt, b.UpdatedAt, models.Deref(b.ReadingTime))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !dbx.RowsAffected(res) {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the post; comments and likes go with it by cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE blog_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !dbx.RowsAffected(res) {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) RefreshCommentsCount(ctx context.Context, id string) (int, error) {
	return r.refreshCount(ctx,
		`UPDATE blogs SET comments_count =
			(SELECT count(*) FROM comments WHERE blog_id = $1 AND status = 'approved')
		 WHERE blog_id = $1
		 RETURNING comments_count`, id)
}

func (r *PostgresRepository) RefreshLikesCount(ctx context.Context, id string) (int, error) {
	return r.refreshCount(ctx,
		`UPDATE blogs SET likes_count = (SELECT count(*) FROM likes WHERE blog_id = $1)
		 WHERE blog_id = $1
		 RETURNING likes_count`, id)
}

func (r *PostgresRepository) refreshCount(ctx context.Context, query, id string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
