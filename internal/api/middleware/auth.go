package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Auth validates the bearer token and injects the embedded identity into the
// request context. The header presence check runs before any token
// extraction, so a request without an Authorization header is always a clean 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			id, ok := claimID(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
			}

			c.Set("id", id)
			c.Set("username", claims["username"])

			return next(c)
		}
	}
}

// claimID extracts the numeric user id claim. JSON numbers decode to float64.
func claimID(claims jwt.MapClaims) (int64, bool) {
	v, ok := claims["id"].(float64)
	if !ok {
		return 0, false
	}
	return int64(v), true
}
