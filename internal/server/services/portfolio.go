package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/dmitrijs2005/folio/internal/server/cache"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PortfolioService reads and merges the portfolio singleton.
type PortfolioService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	now         func() time.Time
}

func NewPortfolioService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache) *PortfolioService {
	return &PortfolioService{db: db, repomanager: m, cache: c, now: time.Now}
}

// Get returns the stored portfolio, or an empty one before the first save.
func (s *PortfolioService) Get(ctx context.Context) (*models.Portfolio, error) {
	var cached models.Portfolio
	if s.cache.Get(ctx, cache.KeyPortfolio, &cached) {
		return &cached, nil
	}

	p, err := s.load(ctx, s.db)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cache.KeyPortfolio, p, cache.PortfolioTTL)
	return p, nil
}

// Update merges the present fields of u into the stored portfolio. Projects
// and experience entries without an id are given one.
func (s *PortfolioService) Update(ctx context.Context, u models.PortfolioUpdate) (*models.Portfolio, error) {
	var p *models.Portfolio
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		p, err = s.load(ctx, tx)
		if err != nil {
			return err
		}

		u.Apply(p)
		normalizePortfolio(p)
		assignIDs(p)
		p.UpdatedAt = s.now().Unix()

		if err := s.repomanager.Portfolio(tx).Save(ctx, p); err != nil {
			return fmt.Errorf("error saving portfolio: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeyPortfolio)
	return p, nil
}

func (s *PortfolioService) load(ctx context.Context, db dbx.DBTX) (*models.Portfolio, error) {
	p, err := s.repomanager.Portfolio(db).Get(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error loading portfolio: %w", err)
		}
		p = &models.Portfolio{}
	}
	normalizePortfolio(p)
	return p, nil
}

// normalizePortfolio replaces nil collections so they encode as {} and [].
func normalizePortfolio(p *models.Portfolio) {
	if p.SocialLinks == nil {
		p.SocialLinks = map[string]string{}
	}
	if p.Projects == nil {
		p.Projects = []models.Project{}
	}
	if p.Experience == nil {
		p.Experience = []models.Experience{}
	}
}

func assignIDs(p *models.Portfolio) {
	for i := range p.Projects {
		if p.Projects[i].ID == "" {
			p.Projects[i].ID = models.ID(uuid.NewString())
		}
	}
	for i := range p.Experience {
		if p.Experience[i].ID == "" {
			p.Experience[i].ID = models.ID(uuid.NewString())
		}
	}
}
