// Package services contains server-side business logic. This file implements
// UserService, which handles contributor accounts, login and issuing or
// refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/dbx"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/server/auth"
	"github.com/dmitrijs2005/worldcovers/internal/server/config"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/repomanager"
)

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

// MinPasswordLength applies to accounts created by operators.
const MinPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserService provides authentication-related operations:
// - Register: create contributor accounts
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Logout and Session: revoke tokens and resolve the signed-in user
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	log                          logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	dummyHash                    []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	if log == nil {
		log = logging.Discard()
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("worldcovers"), bcryptCost)
	return &UserService{
		db:                           db,
		repomanager:                  m,
		log:                          log,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		dummyHash:                    dummy,
	}
}

// Register creates a contributor account. Duplicate emails yield
// common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, email, fullName, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password and, on success, returns a new TokenPair.
// Unknown emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep timing close to the found case
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrorUnauthorized
		}
		s.log.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, user.ID, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes every refresh token of userID.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.repomanager.RefreshTokens(s.db).DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}
	return nil
}

// Session returns the signed-in user.
func (s *UserService) Session(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user id carried by an access token.
func (s *UserService) Authenticate(accessToken string) (string, error) {
	return auth.GetUserIDFromToken(accessToken, s.jwtSecret)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		s.log.Error(ctx, "error storing refresh token", "error", err)
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
