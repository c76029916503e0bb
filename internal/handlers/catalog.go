package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise/capacity-planning-api/internal/database"
	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/models"
)

// CatalogHandler serves the read-only lookup tables seeded at migration time.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListDomains returns every functional domain
func (h *CatalogHandler) ListDomains(c *gin.Context) {
	var domains []models.Domain
	if err := database.GetDB().Order("id").Find(&domains).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch domains")
		return
	}

	c.JSON(http.StatusOK, gin.H{"domains": domains})
}

// ListStatuses returns the project lifecycle statuses in board order
func (h *CatalogHandler) ListStatuses(c *gin.Context) {
	var statuses []models.ProjectStatus
	if err := database.GetDB().Order("sort_order").Find(&statuses).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch statuses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}
