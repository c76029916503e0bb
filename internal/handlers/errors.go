package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/services"
)

var notFoundErrors = []error{
	services.ErrProjectNotFound,
	services.ErrResourceNotFound,
	services.ErrAssignmentNotFound,
	services.ErrCapacityNotFound,
}

var conflictErrors = []error{
	services.ErrDuplicateResourceCode,
	services.ErrDuplicateProjectCode,
}

var validationErrors = []error{
	services.ErrTitleRequired,
	services.ErrHoursNotPositive,
	services.ErrHoursTooLarge,
	services.ErrCodeRequired,
	services.ErrNameRequired,
	services.ErrInvalidEmail,
	services.ErrCapacityOutOfRange,
	services.ErrInvalidProficiency,
	services.ErrProjectTitleRequired,
	services.ErrProjectCodeRequired,
	services.ErrEndBeforeStart,
	services.ErrMonthOutOfRange,
	services.ErrYearOutOfRange,
	services.ErrHoursOutOfRange,
	models.ErrPeriodAmbiguous,
	models.ErrPeriodMissing,
	models.ErrMonthRange,
	models.ErrYearRange,
	models.ErrInvalidProjectType,
	models.ErrInvalidProjectPriority,
}

// handleServiceError translates a service-layer error into the API error
// envelope: 422 for business rule violations, 404 for missing records, 409
// for duplicate codes, 400 for input validation and 500 for everything else.
func handleServiceError(c *gin.Context, err error) {
	var ruleErr *apierrors.RuleError
	if errors.As(err, &ruleErr) {
		apierrors.UnprocessableEntity(c, ruleErr)
		return
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			apierrors.NotFound(c, err.Error())
			return
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			apierrors.Conflict(c, err.Error())
			return
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			apierrors.BadRequest(c, err.Error())
			return
		}
	}

	apierrors.InternalError(c, "")
}
