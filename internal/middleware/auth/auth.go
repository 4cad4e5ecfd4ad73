package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/service"
)

const userContextKey = "current_user"

type Middleware struct {
	Auth *service.AuthService
}

func (m *Middleware) resolve(c echo.Context) (*models.User, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}

	claims, err := m.Auth.ParseSession(cookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := m.Auth.ResolveSession(c.Request().Context(), claims)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
	}
	return user, nil
}

// RequireLogin resolves the session, upserts the local user and stores it on
// the context. Requests without a valid session get 401.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolve(c)
		if err != nil {
			return err
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

// OptionalLogin is for the unauthenticated-safe reads: a resolvable session
// is attached, anything else falls through anonymously.
func (m *Middleware) OptionalLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, err := m.resolve(c); err == nil {
			c.Set(userContextKey, user)
		}
		return next(c)
	}
}

// AdminOnly rejects non-admin callers without leaking anything about the
// resource they were after.
func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		if user.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	}
}

func CurrentUser(c echo.Context) *models.User {
	if v := c.Get(userContextKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// CurrentUserID returns 0 for anonymous callers.
func CurrentUserID(c echo.Context) uint {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}
