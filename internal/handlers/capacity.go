package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/middleware"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"github.com/planwise/capacity-planning-api/internal/services"
	"github.com/planwise/capacity-planning-api/internal/utils"
)

type CapacityHandler struct {
	capacityService *services.CapacityService
}

func NewCapacityHandler(capacityService *services.CapacityService) *CapacityHandler {
	return &CapacityHandler{capacityService: capacityService}
}

// ListCapacity returns capacity overrides with commitment metrics.
// Filter with ?resourceId=, ?month=, ?year=.
func (h *CapacityHandler) ListCapacity(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.CapacityFilter{
		ResourceID: c.Query("resourceId"),
		Month:      parseIntQuery(c, "month"),
		Year:       parseIntQuery(c, "year"),
		Page:       params.Page,
		Limit:      params.Limit,
	}

	capacities, total, err := h.capacityService.ListCapacity(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"capacities": capacities,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCapacity returns one capacity record with its period assignments
func (h *CapacityHandler) GetCapacity(c *gin.Context) {
	detail, err := h.capacityService.GetCapacity(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpsertCapacity creates or updates the override for a resource period.
// The endpoint is a PUT keyed on (resource_id, month, year), not on row ID.
func (h *CapacityHandler) UpsertCapacity(c *gin.Context) {
	var req struct {
		ResourceID string  `json:"resource_id" binding:"required"`
		Month      int     `json:"month" binding:"required"`
		Year       int     `json:"year" binding:"required"`
		TotalHours float64 `json:"total_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	capacity, err := h.capacityService.UpsertCapacity(services.UpsertCapacityInput{
		ResourceID: req.ResourceID,
		Month:      req.Month,
		Year:       req.Year,
		TotalHours: req.TotalHours,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, capacity)
}

// Overview returns the team dashboard for one year.
// Defaults to the current year when ?year= is absent.
func (h *CapacityHandler) Overview(c *gin.Context) {
	team := middleware.GetTeam(c)

	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.BadRequest(c, "year must be an integer")
			return
		}
		year = parsed
	}

	overview, err := h.capacityService.Overview(team, year)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
