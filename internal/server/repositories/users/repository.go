// Package users declares and implements storage of admin accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type Repository interface {
	// Upsert creates the user or, when the email is taken, replaces its
	// password hash. ID and CreatedAt are filled in from the stored row.
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at int64) error
}
