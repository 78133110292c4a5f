// Package portfolio stores the portfolio singleton as one JSONB document.
package portfolio

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound until the portfolio is first saved.
	Get(ctx context.Context) (*models.Portfolio, error)
	Save(ctx context.Context, p *models.Portfolio) error
}
