package stub

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

func (s *Server) listPhases(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}
	phases, err := s.store.ListPhases(projectID)
	if err != nil {
		return err
	}
	return respondList(c, phases, len(phases))
}

// createPhase requires edit access on the parent project; phases follow the
// project's ownership rule.
func (s *Server) createPhase(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(c, projectID); err != nil {
		return err
	}

	var draft domain.PhaseDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&draft); err != nil {
		return err
	}

	phase, err := s.store.CreatePhase(projectID, draft)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, phase)
}

func (s *Server) updatePhase(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	phase, err := s.store.PhaseByID(id)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(c, phase.ProjetID); err != nil {
		return err
	}

	var patch domain.PhaseDraft
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&patch); err != nil {
		return err
	}

	updated, err := s.store.UpdatePhase(id, patch)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, updated)
}

func (s *Server) deletePhase(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	phase, err := s.store.PhaseByID(id)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(c, phase.ProjetID); err != nil {
		return err
	}
	if err := s.store.DeletePhase(id); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "phase supprimée")
}
