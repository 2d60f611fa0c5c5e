package stub

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// newHTTPErrorHandler maps known domain errors to deterministic status codes,
// logs unexpected errors without leaking details, and renders every failure
// in the standard envelope: {"success": false, "message": "..."}.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, map[string]any{"success": false, "message": msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, validator 400s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "email ou mot de passe incorrect"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "accès refusé"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "un utilisateur avec cet email existe déjà"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "utilisateur introuvable"
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "projet introuvable"
	case errors.Is(err, domain.ErrPhaseNotFound):
		return http.StatusNotFound, "phase introuvable"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "erreur interne du serveur"
}
