package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medcollect/pickup-api/internal/api/middleware"
	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// ctxUser extracts the user resolved by the Auth middleware. Its presence
// proves the middleware ran; absence on a protected route is a wiring bug,
// reported as 401 rather than a panic.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUser).(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
	}
	return user, nil
}

// ctxToken extracts the raw session token, needed to revoke exactly the
// session that made the request.
func ctxToken(c echo.Context) (string, error) {
	token, ok := c.Get(middleware.ContextToken).(string)
	if !ok || token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "please authenticate")
	}
	return token, nil
}

// bindPatch decodes the raw request body into a field→value map. An empty
// body yields an empty patch, which is a valid no-op update.
func bindPatch(c echo.Context) (ports.Patch, error) {
	patch := ports.Patch{}
	if err := c.Bind(&patch); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return patch, nil
}
