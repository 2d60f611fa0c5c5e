package stub

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

func (s *Server) listUsers(c echo.Context) error {
	users := s.store.ListUsers()
	return respondList(c, users, len(users))
}

func (s *Server) createUser(c echo.Context) error {
	var draft domain.UserDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&draft); err != nil {
		return err
	}

	user, err := s.store.CreateUser(draft)
	if err != nil {
		return err
	}
	s.log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return respondData(c, http.StatusCreated, user)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var patch domain.UserDraft
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&patch); err != nil {
		return err
	}

	user, err := s.store.UpdateUser(id, patch)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, user)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.store.DeleteUser(id); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "utilisateur supprimé")
}
