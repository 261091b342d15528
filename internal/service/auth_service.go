package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService coordinates login and logout. A successful login yields
// both a bearer JWT and an opaque Redis-backed session token; either
// authenticates subsequent requests.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	sessions *auth.SessionStore
}

// LoginResult bundles everything issued at login.
type LoginResult struct {
	User         *domain.User
	Token        string
	ExpiresAt    time.Time
	SessionToken string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, sessions *auth.SessionStore) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		sessions: sessions,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates by service number and password.
func (s *AuthService) Login(ctx context.Context, serviceNumber, password string) (*LoginResult, error) {
	if serviceNumber == "" || password == "" {
		return nil, apperrors.NewValidationError("service number and password required", nil)
	}
	user, err := s.users.GetByServiceNumber(ctx, serviceNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	sessionToken, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &LoginResult{
		User:         user,
		Token:        token,
		ExpiresAt:    exp,
		SessionToken: sessionToken,
	}, nil
}

// Logout revokes an opaque session token. Bearer JWTs stay stateless
// and simply expire.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionToken); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
