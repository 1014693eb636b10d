// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, and
// issuing JWT access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dreamnotes/internal/common"
	"github.com/dmitrijs2005/dreamnotes/internal/server/auth"
	"github.com/dmitrijs2005/dreamnotes/internal/server/config"
	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
	"github.com/dmitrijs2005/dreamnotes/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt-hashed password
// - Login: verify credentials and mint an access token
// - GetByID: look up an account by id
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	bcryptCost                  int
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		bcryptCost:                  cfg.BcryptCost,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register hashes the password and creates a new user. A taken username
// surfaces as common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, HashedPassword: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the username/password pair and, on success, returns a
// signed access token. An unknown username and a wrong password are not
// distinguishable to the caller: both come back as common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// GetByID returns the user with the given id, or common.ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, id)
}
