package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tablero-dev/tablero/internal/models"
)

// userContextKey is the echo context key holding the authenticated user.
const userContextKey = "tablero.user"

// requireUser resolves the bearer token to a user and stores it on the
// request context. Handlers pass the resolved identity to the services
// explicitly; no operation reads ambient session state.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		user, err := s.users.GetUserByToken(c.Request().Context(), token)
		if err != nil {
			s.logger.Debug("token rejected", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// currentUser returns the authenticated user placed by requireUser.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
