package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_LivePage(t *testing.T) {
	p := OpenPage(context.Background())
	defer p.Close()

	got, live, err := Load(p, func(ctx context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, 42, got)
}

func TestLoad_ResultAfterCloseIsDropped(t *testing.T) {
	api := &fakePortfolioAPI{
		portfolio: models.Portfolio{Bio: "late"},
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	p := OpenPage(context.Background())

	type result struct {
		p    *models.Portfolio
		live bool
		err  error
	}
	done := make(chan result)
	go func() {
		got, live, err := Load(p, api.Get)
		done <- result{got, live, err}
	}()

	<-api.started
	p.Close()
	close(api.release)

	r := <-done
	assert.False(t, r.live)
	assert.Nil(t, r.p)
	assert.NoError(t, r.err)
	assert.True(t, p.Closed())
	p.Close()
}
