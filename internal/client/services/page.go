package services

import (
	"context"
	"sync"
)

// Page is the lifetime of one screen. Requests started on a page use its
// context; once the user leaves, late results are dropped instead of being
// applied to a screen that is gone.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// OpenPage starts a page that ends when Close is called or parent is done.
func OpenPage(parent context.Context) *Page {
	ctx, cancel := context.WithCancel(parent)
	return &Page{ctx: ctx, cancel: cancel}
}

func (p *Page) Context() context.Context { return p.ctx }

// Closed reports whether the page has been left.
func (p *Page) Closed() bool { return p.ctx.Err() != nil }

// Close ends the page. It is safe to call more than once.
func (p *Page) Close() {
	p.once.Do(p.cancel)
}

// Load runs fetch with the page context. live is false when the page was
// closed before fetch returned; the result must then be ignored.
func Load[T any](p *Page, fetch func(ctx context.Context) (T, error)) (result T, live bool, err error) {
	result, err = fetch(p.ctx)
	if p.Closed() {
		var zero T
		return zero, false, nil
	}
	return result, true, err
}
