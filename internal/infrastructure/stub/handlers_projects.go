package stub

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// listProjects handles GET /projects. A Chef de Projet only sees their own
// projects; other roles see everything, optionally narrowed by statut and
// search query parameters.
func (s *Server) listProjects(c echo.Context) error {
	userID, role, err := identity(c)
	if err != nil {
		return err
	}

	filter := ProjectFilter{
		Statut: c.QueryParam("statut"),
		Search: c.QueryParam("search"),
	}
	if role == domain.RoleChefProjet {
		filter.OwnerID = userID
	}

	projects := s.store.ListProjects(filter)
	return respondList(c, projects, len(projects))
}

func (s *Server) createProject(c echo.Context) error {
	var draft domain.ProjectDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&draft); err != nil {
		return err
	}

	project := s.store.CreateProject(draft)
	s.log.Info().Int("project_id", project.ID).Str("nom", project.Nom).Msg("project created")
	return respondData(c, http.StatusCreated, project)
}

// updateProject enforces the ownership rule the client's permission resolver
// only advises on: Admin and PMO edit any project, a Chef de Projet edits
// only their own.
func (s *Server) updateProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(c, id); err != nil {
		return err
	}

	var patch domain.ProjectDraft
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&patch); err != nil {
		return err
	}

	project, err := s.store.UpdateProject(id, patch)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, project)
}

func (s *Server) deleteProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(c, id); err != nil {
		return err
	}
	if err := s.store.DeleteProject(id); err != nil {
		return err
	}
	s.log.Info().Int("project_id", id).Msg("project deleted")
	return respondMessage(c, http.StatusOK, "projet supprimé")
}

// requireProjectAccess rejects mutations on projects the caller may not edit.
func (s *Server) requireProjectAccess(c echo.Context, projectID int) error {
	userID, role, err := identity(c)
	if err != nil {
		return err
	}
	if role == domain.RoleAdmin || role == domain.RolePMO {
		return nil
	}
	project, err := s.store.ProjectByID(projectID)
	if err != nil {
		return err
	}
	if role == domain.RoleChefProjet && project.ChefProjetID == userID {
		return nil
	}
	return domain.ErrForbidden
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
