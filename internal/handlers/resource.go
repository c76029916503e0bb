package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise/capacity-planning-api/internal/dto"
	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/middleware"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"github.com/planwise/capacity-planning-api/internal/services"
	"github.com/planwise/capacity-planning-api/internal/utils"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
}

func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// ListResources returns the team's resources.
// Filter with ?active=true|false; defaults to all.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	team := middleware.GetTeam(c)
	params := utils.GetPaginationParams(c)

	filter := repository.ResourceFilter{
		Team:  team,
		Page:  params.Page,
		Limit: params.Limit,
	}
	switch c.Query("active") {
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	}

	resources, total, err := h.resourceService.ListResources(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": dto.ToResourceDTOs(resources),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetResource returns a single resource with its skills
func (h *ResourceHandler) GetResource(c *gin.Context) {
	team := middleware.GetTeam(c)

	resource, err := h.resourceService.GetResource(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if resource.Team != team {
		apierrors.NotFound(c, "resource not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*resource))
}

// CreateResource creates a resource in the caller's team
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	team := middleware.GetTeam(c)

	var req struct {
		Code            string                `json:"code" binding:"required"`
		Name            string                `json:"name" binding:"required"`
		Email           string                `json:"email"`
		DefaultCapacity *int                  `json:"default_capacity"`
		Skills          []services.SkillInput `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resource, err := h.resourceService.CreateResource(services.CreateResourceInput{
		Code:            req.Code,
		Name:            req.Name,
		Email:           req.Email,
		Team:            team,
		DefaultCapacity: req.DefaultCapacity,
		Skills:          req.Skills,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceDTO(*resource))
}

// UpdateResource applies a partial update. A non-null skills array replaces
// the resource's skill set.
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	team := middleware.GetTeam(c)

	existing, err := h.resourceService.GetResource(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if existing.Team != team {
		apierrors.NotFound(c, "resource not found")
		return
	}

	var req struct {
		Name            *string               `json:"name"`
		Email           *string               `json:"email"`
		DefaultCapacity *int                  `json:"default_capacity"`
		Active          *bool                 `json:"active"`
		Skills          []services.SkillInput `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resource, err := h.resourceService.UpdateResource(existing.ID, services.UpdateResourceInput{
		Name:            req.Name,
		Email:           req.Email,
		DefaultCapacity: req.DefaultCapacity,
		Active:          req.Active,
		Skills:          req.Skills,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*resource))
}

// DeleteResource deactivates a resource. History referencing it survives;
// the row never disappears.
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	team := middleware.GetTeam(c)

	existing, err := h.resourceService.GetResource(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if existing.Team != team {
		apierrors.NotFound(c, "resource not found")
		return
	}

	if err := h.resourceService.DeactivateResource(existing.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deactivated"})
}
