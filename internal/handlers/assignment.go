package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise/capacity-planning-api/internal/dto"
	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/middleware"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"github.com/planwise/capacity-planning-api/internal/services"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// ListAssignments returns assignments matching the query filters.
// Filter with ?projectId=, ?resourceId=, ?skill=, ?month=, ?year=.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	filter := repository.AssignmentFilter{
		ProjectID:  c.Query("projectId"),
		ResourceID: c.Query("resourceId"),
		SkillName:  c.Query("skill"),
		Month:      parseIntQuery(c, "month"),
		Year:       parseIntQuery(c, "year"),
	}

	assignments, err := h.assignmentService.ListAssignments(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": dto.ToAssignmentDTOs(assignments)})
}

// GetAssignment returns a single assignment with its project and resource
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignment(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// CreateAssignment creates an assignment after running the capacity
// validator. Business rule violations come back as 422 with the rule tag.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	team := middleware.GetTeam(c)

	var req struct {
		ProjectID   string  `json:"project_id" binding:"required"`
		ResourceID  *string `json:"resource_id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		SkillName   *string `json:"skill_name"`
		Hours       float64 `json:"hours"`
		Date        string  `json:"date"`
		Month       *int    `json:"month"`
		Year        *int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		apierrors.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(services.CreateAssignmentInput{
		ProjectID:   req.ProjectID,
		ResourceID:  req.ResourceID,
		Title:       req.Title,
		Description: req.Description,
		SkillName:   req.SkillName,
		Team:        &team,
		Hours:       req.Hours,
		Date:        date,
		Month:       req.Month,
		Year:        req.Year,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentDTO(*assignment))
}

// UpdateAssignment applies a partial update and re-runs the validator.
// An explicit null resource_id detaches the resource.
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateAssignmentInput{}

	if v, ok := raw["title"]; ok {
		s, _ := v.(string)
		input.Title = &s
	}
	if v, ok := raw["description"]; ok {
		s, _ := v.(string)
		input.Description = &s
	}
	if v, ok := raw["skill_name"]; ok {
		s, _ := v.(string)
		input.SkillName = &s
	}
	if v, ok := raw["resource_id"]; ok {
		if v == nil {
			input.ClearResource = true
		} else if s, isString := v.(string); isString {
			input.ResourceID = &s
		}
	}
	if v, ok := raw["hours"]; ok {
		f, _ := v.(float64)
		input.Hours = &f
	}
	if v, ok := raw["date"]; ok {
		s, _ := v.(string)
		date, err := parseDate(s)
		if err != nil {
			apierrors.BadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		input.Date = date
	}
	if v, ok := raw["month"]; ok {
		if f, isNumber := v.(float64); isNumber {
			month := int(f)
			input.Month = &month
		}
	}
	if v, ok := raw["year"]; ok {
		if f, isNumber := v.(float64); isNumber {
			year := int(f)
			input.Year = &year
		}
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Param("id"), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// DeleteAssignment deletes one assignment by path ID. When the path carries
// no ID but the request has a projectId query, every assignment of that
// project is removed and the count reported.
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.assignmentService.DeleteAssignment(c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}

// DeleteByProject bulk-removes a project's assignments
func (h *AssignmentHandler) DeleteByProject(c *gin.Context) {
	projectID := c.Query("projectId")
	if projectID == "" {
		apierrors.BadRequest(c, "projectId query parameter is required")
		return
	}

	deleted, err := h.assignmentService.DeleteByProject(projectID, middleware.GetTeam(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
