package handler

import (
	"net/http"
	"strconv"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/otp"
	"backoffice-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

// Package-level collaborators, set once from main before routes are
// served.
var (
	jwt      *jwtutil.JWTUtil
	otpStore *otp.Store
)

// Init wires the handlers' shared collaborators.
func Init(jwtUtil *jwtutil.JWTUtil, store *otp.Store) {
	jwt = jwtUtil
	otpStore = store
}

// currentClaims fetches the authenticated employee claims or reports an
// unauthorized error.
func currentClaims(c echo.Context) (*jwtutil.EmployeeClaims, error) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return claims, nil
}

// respondError writes a taxonomy error response.
func respondError(c echo.Context, err error) error {
	appErr := apperr.From(err)
	return c.JSON(appErr.Status(), appErr)
}

// paramUint parses a numeric path parameter.
func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid "+name, name)
	}
	return uint(v), nil
}

// pagination reads skip/limit query parameters with the listing defaults.
func pagination(c echo.Context, defaultLimit int) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}
