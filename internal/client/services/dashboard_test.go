package services

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_MergeDoesNotDependOnArrivalOrder(t *testing.T) {
	portfolio := models.Portfolio{
		Projects:   []models.Project{{ID: "p1"}, {ID: "p2"}},
		Experience: []models.Experience{{ID: "e1"}},
	}
	blogs := map[string]models.BlogPage{"": {Items: []models.Blog{{BlogID: "b1"}, {BlogID: "b2"}, {BlogID: "b3"}}}}
	want := Stats{Blogs: 3, Projects: 2, Experience: 1}

	// Portfolio arrives last.
	slow := &fakePortfolioAPI{portfolio: portfolio, release: make(chan struct{})}
	api := &fakeBlogsAPI{pages: blogs}
	done := make(chan Stats)
	go func() {
		s, err := Dashboard(context.Background(), slow, api)
		assert.NoError(t, err)
		done <- s
	}()
	for {
		api.mu.Lock()
		n := len(api.listCalls)
		api.mu.Unlock()
		if n > 0 {
			break
		}
		runtime.Gosched()
	}
	close(slow.release)
	assert.Equal(t, want, <-done)

	// Portfolio arrives first.
	got, err := Dashboard(context.Background(), &fakePortfolioAPI{portfolio: portfolio}, &fakeBlogsAPI{pages: blogs})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDashboard_ErrorFromEitherSide(t *testing.T) {
	_, err := Dashboard(context.Background(), &fakePortfolioAPI{getErr: errors.New("down")}, &fakeBlogsAPI{})
	assert.EqualError(t, err, "down")

	_, err = Dashboard(context.Background(), &fakePortfolioAPI{}, &fakeBlogsAPI{listErr: errors.New("nope")})
	assert.EqualError(t, err, "nope")
}
