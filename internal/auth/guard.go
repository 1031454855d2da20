package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/metrics"
	"ecotrack/internal/model"
	"ecotrack/internal/repository"
)

// Guard resolves bearer credentials to users and enforces capability levels.
// Every call reads the current user row; nothing is cached between requests.
type Guard struct {
	jwt    *JWTService
	users  repository.UserRepository
	tokens TokenStoreInterface
}

// NewGuard creates a guard.
func NewGuard(jwtService *JWTService, users repository.UserRepository, tokens TokenStoreInterface) *Guard {
	return &Guard{jwt: jwtService, users: users, tokens: tokens}
}

// ParseAccessToken verifies the token signature, lifetime and type.
func (g *Guard) ParseAccessToken(token string) (*Claims, error) {
	claims, err := g.jwt.ValidateTyped(token, TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}
	return claims, nil
}

// Resolve maps verified claims to an active user.
func (g *Guard) Resolve(ctx context.Context, claims *Claims) (*model.User, error) {
	if claims == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	revoked, err := g.tokens.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", apperrors.ErrUnauthenticated)
	}

	user, err := g.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown user", apperrors.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", apperrors.ErrUnauthenticated)
	}
	return user, nil
}

// Authenticate resolves a bearer token to an active user.
func (g *Guard) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := g.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}
	return g.Resolve(ctx, claims)
}

// RequireAuthenticated admits any active user.
func (g *Guard) RequireAuthenticated(ctx context.Context, token string) (*model.User, error) {
	return g.require(ctx, token, model.RoleUser)
}

// RequireAdmin admits active users holding the admin role.
func (g *Guard) RequireAdmin(ctx context.Context, token string) (*model.User, error) {
	return g.require(ctx, token, model.RoleAdmin)
}

func (g *Guard) require(ctx context.Context, token string, role model.Role) (*model.User, error) {
	claims, err := g.ParseAccessToken(token)
	if err != nil {
		record(role, err)
		return nil, err
	}
	return g.Admit(ctx, claims, role)
}

// Admit resolves already verified claims and checks role. Used after the bearer
// middleware has parsed the token.
func (g *Guard) Admit(ctx context.Context, claims *Claims, role model.Role) (*model.User, error) {
	user, err := g.Resolve(ctx, claims)
	if err == nil {
		err = Authorize(user, role)
	}
	record(role, err)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authorize checks that an authenticated user holds role. Admins satisfy every role.
func Authorize(user *model.User, role model.Role) error {
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	if role == model.RoleAdmin && !user.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

func record(role model.Role, err error) {
	level := "authenticated"
	if role == model.RoleAdmin {
		level = "admin"
	}
	outcome := "allowed"
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		outcome = "forbidden"
	case err != nil:
		outcome = "unauthenticated"
	}
	metrics.GuardDecisions.WithLabelValues(level, outcome).Inc()
}
