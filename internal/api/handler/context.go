package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the verified user id injected by the Auth middleware
// and fast-fails before any service call when it is absent (which means the
// middleware did not run on this route).
func ctxIdentity(c echo.Context) (int64, error) {
	id, ok := c.Get("id").(int64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
