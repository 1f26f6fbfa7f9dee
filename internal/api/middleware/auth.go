package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// Context keys set by Auth. The raw token is kept so a later logout can
// revoke exactly this session.
const (
	ContextUser  = "auth_user"
	ContextToken = "auth_token"
)

// Auth resolves the bearer token to a live session: the signature must
// verify, the encoded user must exist, and the token must still be present
// in that user's active list. Signature validity alone is not enough — a
// revoked token fails here.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
			}
			token := parts[1]

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
			}
			if !user.HasToken(token) {
				return echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
			}

			c.Set(ContextUser, user)
			c.Set(ContextToken, token)

			return next(c)
		}
	}
}

// RequireAdmin gates a route to administrators. It must run after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(ContextUser).(*domain.User)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
		}
		if !user.Administrator {
			return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
		}
		return next(c)
	}
}
