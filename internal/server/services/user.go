// Package services contains server-side business logic. This file implements
// UserService, which handles admin accounts, login, and issuing/refreshing
// JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/config"
	servermodels "github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidToken       = "Invalid token"
	msgTokenExpired       = "Token has expired"
)

// dummyHash is compared against when the email is unknown, so a miss costs
// as much as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("not-a-real-password")
	return h
})

// UserService provides authentication-related operations:
// - CreateAdmin: create or reset an admin account
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new access tokens
// - Authenticate: resolve an access token to the admin email
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// CreateAdmin stores an admin with a bcrypt hash of password. An existing
// account with the same email gets the new password.
func (s *UserService) CreateAdmin(ctx context.Context, email, password string) (*servermodels.User, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := models.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &servermodels.User{Email: email, PasswordHash: hash, CreatedAt: s.now().Unix()}
	u, err := s.repomanager.Users(s.db).Upsert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error saving user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// Unknown emails and wrong passwords fail alike.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, common.Invalid("Password is required")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(dummyHash(), password)
			return nil, common.Unauthorized(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.Unauthorized(msgInvalidCredentials)
	}

	now := s.now()
	if err := repo.UpdateLastLogin(ctx, user.ID, now.Unix()); err != nil {
		return nil, fmt.Errorf("error updating last login: %w", err)
	}
	if err := s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("error pruning refresh tokens: %w", err)
	}

	return s.generateTokenPair(ctx, user, s.db)
}

// Refresh validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. A token can be used once.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.Invalid("Refresh token is required")
	}
	if _, err := auth.ParseToken(refreshToken, auth.TypeRefresh, s.jwtSecret); err != nil {
		return nil, tokenError(err)
	}

	var pair *models.TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)

		token, err := repoTx.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.Unauthorized(msgInvalidToken)
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if token.Expires.Before(s.now()) {
			return common.Unauthorized(msgTokenExpired)
		}

		deleted, err := repoTx.Delete(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		if !deleted {
			return common.Unauthorized(msgInvalidToken)
		}

		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.Unauthorized(msgInvalidToken)
			}
			return fmt.Errorf("error searching user: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Authenticate checks an access token and returns the email it was issued to.
func (s *UserService) Authenticate(accessToken string) (string, error) {
	email, err := auth.ParseToken(accessToken, auth.TypeAccess, s.jwtSecret)
	if err != nil {
		return "", tokenError(err)
	}
	return email, nil
}

func tokenError(err error) error {
	if errors.Is(err, common.ErrTokenExpired) {
		return common.Unauthorized(msgTokenExpired)
	}
	return common.Unauthorized(msgInvalidToken)
}

func (s *UserService) generateTokenPair(ctx context.Context, user *servermodels.User, tx dbx.DBTX) (*models.TokenPair, error) {
	access, err := auth.GenerateToken(user.Email, auth.TypeAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}
	refresh, err := auth.GenerateToken(user.Email, auth.TypeRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	expires := s.now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, user.ID, refresh, expires); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTokenValidityDuration / time.Second),
	}, nil
}
