package handler

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"ecotrack/internal/auth"
	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/model"
)

const (
	claimsContextKey = "claims"
	userContextKey   = "current_user"
)

// BearerAuth extracts and verifies the access token from the Authorization header.
// Verified claims are stored in the context for RequireRole.
func BearerAuth(guard *auth.Guard) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return guard.ParseAccessToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return respondError(c, apperrors.ErrUnauthenticated)
		},
	})
}

// RequireRole resolves the claims to an active user holding role. The user row is read on every request.
func RequireRole(guard *auth.Guard, role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(claimsContextKey).(*auth.Claims)
			if claims == nil {
				return respondError(c, apperrors.ErrUnauthenticated)
			}
			user, err := guard.Admit(c.Request().Context(), claims, role)
			if err != nil {
				return respondError(c, err)
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func currentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
