package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/middleware"
	"github.com/planwise/capacity-planning-api/internal/services"
)

type SyncHandler struct {
	syncService *services.SyncService
}

func NewSyncHandler(syncService *services.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncAssignments replaces a project's assignments with the submitted grid.
// The response always carries the full report; a run with failures is still
// a 200 because created rows are kept.
func (h *SyncHandler) SyncAssignments(c *gin.Context) {
	team := middleware.GetTeam(c)

	var req struct {
		Rows []services.SyncRow `json:"rows"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.syncService.ReplaceProjectAssignments(c.Param("id"), team, req.Rows)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
