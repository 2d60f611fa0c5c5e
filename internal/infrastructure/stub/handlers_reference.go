package stub

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// listReference handles GET /reference/:table for the id/name tables.
func (s *Server) listReference(c echo.Context) error {
	table := c.Param("table")
	refs, ok := s.store.References(table)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "référentiel inconnu")
	}
	return respondList(c, refs, len(refs))
}

// listUtilisateurs handles GET /reference/utilisateurs, the user picker
// source. Unlike /users it is readable by every authenticated role.
func (s *Server) listUtilisateurs(c echo.Context) error {
	users := s.store.ListUsers()
	return respondList(c, users, len(users))
}
