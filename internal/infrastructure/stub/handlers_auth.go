package stub

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// login handles POST /auth/login. The response carries the user and the
// bearer token at the top level of the envelope.
func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return err
	}

	loginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Int("user_id", user.ID).Str("role", user.RoleNom).Msg("login")
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// me handles GET /auth/me: it resolves the token's user id back to a full
// user record so the client can rebuild its user state from scratch.
func (s *Server) me(c echo.Context) error {
	userID, _, err := identity(c)
	if err != nil {
		return err
	}
	user, err := s.store.UserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": user})
}

// logout handles POST /auth/logout: the presented token joins the revocation
// list for the rest of its signed lifetime.
func (s *Server) logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token != "" {
		if err := s.revoker.Revoke(c.Request().Context(), token, s.tokenTTL); err != nil {
			return err
		}
		tokensRevokedTotal.Inc()
	}
	return respondMessage(c, http.StatusOK, "déconnecté")
}

func (s *Server) mintToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.RoleNom,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
