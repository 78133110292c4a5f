package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"golang.org/x/sync/errgroup"
)

// Stats are the counters on the admin dashboard.
type Stats struct {
	Blogs      int
	MoreBlogs  bool
	Projects   int
	Experience int
}

// Dashboard fetches the portfolio and the post list at the same time.
// Results are merged by field, so the order they arrive in does not matter.
func Dashboard(ctx context.Context, portfolio PortfolioAPI, blogs BlogsAPI) (Stats, error) {
	var (
		mu    sync.Mutex
		stats Stats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := portfolio.Get(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		stats.Projects = len(p.Projects)
		stats.Experience = len(p.Experience)
		return nil
	})
	g.Go(func() error {
		page, err := blogs.List(ctx, client.ListBlogsParams{Limit: ManageListLimit})
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		stats.Blogs = len(page.Items)
		stats.MoreBlogs = page.LastKey != ""
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
