package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/session"
	"github.com/dmitrijs2005/folio/internal/common"
)

// ErrNoRefreshToken is returned by Refresh when the session holds no
// refresh token.
var ErrNoRefreshToken = errors.New("no refresh token in session")

// AuthService manages the admin session.
//
// Login stores the returned token pair; Logout drops it. Refresh swaps the
// pair for a new one and is only ever called on request: a 401 response
// clears the session instead of refreshing it.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	IsAuthenticated() bool
}

type authService struct {
	api   AuthAPI
	store *session.Store
}

func NewAuthService(api AuthAPI, store *session.Store) AuthService {
	return &authService{api: api, store: store}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return common.Invalid("Email and password are required")
	}

	pair, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.store.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Refresh(ctx context.Context) error {
	refresh, ok := a.store.RefreshToken()
	if !ok || refresh == "" {
		return ErrNoRefreshToken
	}

	pair, err := a.api.Refresh(ctx, refresh)
	if err != nil {
		return err
	}
	return a.store.SetTokens(ctx, pair.AccessToken, pair.RefreshToken)
}

func (a *authService) IsAuthenticated() bool {
	return a.store.IsAuthenticated()
}
