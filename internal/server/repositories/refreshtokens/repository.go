// Package refreshtokens stores the refresh tokens issued to admins so they
// can be rotated and revoked.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, expires time.Time) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete reports whether a row was removed. A token that was already
	// consumed yields false, nil.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteExpired prunes the user's tokens that expired before now.
	DeleteExpired(ctx context.Context, userID string, now time.Time) error
}
