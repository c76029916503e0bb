package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planwise/capacity-planning-api/internal/dto"
	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/middleware"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"github.com/planwise/capacity-planning-api/internal/services"
	"github.com/planwise/capacity-planning-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// parseDate parses an ISO date string, returning nil for an empty input
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListProjects returns the team's projects.
// Filter with ?type=, ?status_id=, ?domain_id=.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	team := middleware.GetTeam(c)
	params := utils.GetPaginationParams(c)

	filter := repository.ProjectFilter{
		Team:  team,
		Page:  params.Page,
		Limit: params.Limit,
	}
	if raw := c.Query("type"); raw != "" {
		projectType, err := models.ParseProjectType(raw)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		filter.Type = &projectType
	}
	if id, ok := parseUintQuery(c, "status_id"); ok {
		filter.StatusID = id
	}
	if id, ok := parseUintQuery(c, "domain_id"); ok {
		filter.DomainID = id
	}

	projects, total, err := h.projectService.ListProjects(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns a single project with its catalog relations
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := h.loadTeamProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project in the caller's team
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	team := middleware.GetTeam(c)

	var req struct {
		Code        string `json:"code" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Type        string `json:"type" binding:"required"`
		Priority    string `json:"priority" binding:"required"`
		StatusID    *uint  `json:"status_id"`
		DomainID    *uint  `json:"domain_id"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, "end_date must be formatted as YYYY-MM-DD")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
		StatusID:    req.StatusID,
		DomainID:    req.DomainID,
		Team:        team,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	existing, ok := h.loadTeamProject(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Type        *string `json:"type"`
		Priority    *string `json:"priority"`
		StatusID    *uint   `json:"status_id"`
		DomainID    *uint   `json:"domain_id"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
		StatusID:    req.StatusID,
		DomainID:    req.DomainID,
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			apierrors.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
			return
		}
		input.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			apierrors.BadRequest(c, "end_date must be formatted as YYYY-MM-DD")
			return
		}
		input.EndDate = endDate
	}

	project, err := h.projectService.UpdateProject(existing.ID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject hard-deletes a project together with its assignments
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	existing, ok := h.loadTeamProject(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(existing.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// loadTeamProject fetches the path project and enforces team scoping.
// Projects without a team (shared conventions like the absences project) are
// visible to every team.
func (h *ProjectHandler) loadTeamProject(c *gin.Context) (*models.Project, bool) {
	team := middleware.GetTeam(c)

	project, err := h.projectService.GetProject(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	if project.Team != "" && project.Team != team {
		apierrors.NotFound(c, "project not found")
		return nil, false
	}
	return project, true
}
