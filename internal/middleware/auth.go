package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/petriapp/petri-backend/internal/service"
)

type AuthMiddleware struct {
	auth service.AuthService
}

func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth verifies the bearer token and stores the user id in the echo
// context under "userID".
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"error":       "unauthorized",
				"detail":      "missing bearer token",
				"status_code": http.StatusUnauthorized,
			})
		}
		userID, err := m.auth.VerifyToken(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"error":       "unauthorized",
				"detail":      "invalid or expired token",
				"status_code": http.StatusUnauthorized,
			})
		}
		c.Set("userID", userID)
		return next(c)
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c echo.Context) uint64 {
	id, _ := c.Get("userID").(uint64)
	return id
}
