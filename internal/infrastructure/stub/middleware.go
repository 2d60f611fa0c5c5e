package stub

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// authenticate validates the bearer token, rejects revoked tokens, and
// injects the user id and role into the request context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		token := parts[1]

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !tkn.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		if revoked, err := s.revoker.IsRevoked(c.Request().Context(), token); err != nil {
			return err
		} else if revoked {
			return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
		}

		userID, _ := claims["user_id"].(float64)
		role, _ := claims["role"].(string)
		c.Set("user_id", int(userID))
		c.Set("role", role)
		c.Set("token", token)

		return next(c)
	}
}

// requireRole enforces role-based access control on a route group.
func requireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "accès refusé")
			}
			return next(c)
		}
	}
}

// identity extracts the claims injected by authenticate. Presence of the role
// proves the middleware ran.
func identity(c echo.Context) (userID int, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	userID, _ = c.Get("user_id").(int)
	return userID, role, nil
}
