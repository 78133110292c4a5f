package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/folio/internal/models"
)

// LikeButton holds the like state of one post. Once the visitor has liked
// the post, or while a like is on its way, further likes are not sent.
type LikeButton struct {
	api    LikesAPI
	blogID string

	mu      sync.Mutex
	status  models.LikeStatus
	pending bool
}

func NewLikeButton(api LikesAPI, blogID string) *LikeButton {
	return &LikeButton{api: api, blogID: blogID}
}

func (b *LikeButton) Load(ctx context.Context) error {
	st, err := b.api.Get(ctx, b.blogID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = *st
	return nil
}

func (b *LikeButton) Status() models.LikeStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Like sends a like unless it would be a repeat. sent is false when the
// call was suppressed.
func (b *LikeButton) Like(ctx context.Context) (sent bool, err error) {
	b.mu.Lock()
	if b.status.HasLiked || b.pending {
		b.mu.Unlock()
		return false, nil
	}
	b.pending = true
	b.mu.Unlock()

	st, err := b.api.Add(ctx, b.blogID)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = false
	if err != nil {
		return true, err
	}
	b.status = models.LikeStatus{LikesCount: st.LikesCount, HasLiked: true}
	return true, nil
}
