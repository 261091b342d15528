package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const principalKey = "auth_principal"

// SessionHeader carries the opaque session token issued at login.
const SessionHeader = "X-Session-Token"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
}

// AuthMiddleware resolves callers from either an opaque session token
// or a bearer JWT. Core services never see which strategy matched;
// they receive only the resolved user.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions *SessionStore
	users    repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions *SessionStore, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	userID, err := m.resolveSubject(c)
	if err != nil {
		return err
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

func (m *AuthMiddleware) resolveSubject(c *fiber.Ctx) (string, error) {
	if token := c.Get(SessionHeader); token != "" {
		userID, err := m.sessions.Resolve(c.Context(), token)
		if err == nil {
			return userID, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return "", apperrors.MapError(err)
		}
		return "", apperrors.NewUnauthorized("invalid session token")
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing credentials")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return "", apperrors.NewUnauthorized("invalid token")
	}
	return claims.SubjectID, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
