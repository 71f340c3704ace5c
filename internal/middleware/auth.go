package middleware

import (
	"net/http"
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/pkg/jwtutil"
	"backoffice-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ClaimsKey is the echo context key the validated claims are stored under.
const ClaimsKey = "employee"

// JWTAuthMiddleware creates a middleware that validates bearer tokens and
// stores the employee claims in the request context. Refresh and reset
// tokens are rejected here; only access tokens reach protected routes.
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			if claims.TokenType != jwtutil.TokenTypeAccess {
				log.Warn("Non-access token presented on protected route",
					zap.String("token_type", claims.TokenType))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(ClaimsKey, claims)
			log.Debug("JWT token validated",
				zap.Uint("emp_id", claims.EmpID),
				zap.Uint("business_id", claims.BusinessID),
				zap.String("role", claims.Role))

			return next(c)
		}
	}
}

// RequireRole restricts a route to the given roles. It must run after
// JWTAuthMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*jwtutil.EmployeeClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			if _, ok := allowed[claims.Role]; !ok {
				appErr := apperr.Forbidden("access denied, required role: " + strings.Join(roles, ", "))
				return c.JSON(appErr.Status(), appErr)
			}
			return next(c)
		}
	}
}

// CurrentClaims returns the authenticated employee claims from the
// context, or nil when the route is unauthenticated.
func CurrentClaims(c echo.Context) *jwtutil.EmployeeClaims {
	claims, _ := c.Get(ClaimsKey).(*jwtutil.EmployeeClaims)
	return claims
}
