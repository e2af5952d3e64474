package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both ids must be
// positive, which proves the middleware ran and the token carried identity.
func ctxClaims(c echo.Context) (userID, roleID int, err error) {
	userID, _ = c.Get("user_id").(int)
	roleID, _ = c.Get("role_id").(int)
	if userID <= 0 || roleID <= 0 {
		return 0, 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, roleID, nil
}

// pathID parses the named path parameter as a positive integer id.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, returning 0 when
// absent or malformed.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
