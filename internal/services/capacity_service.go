package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "github.com/planwise/capacity-planning-api/internal/errors"

	"github.com/planwise/capacity-planning-api/internal/constants"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCapacityNotFound = errors.New("capacity record not found")
	ErrMonthOutOfRange  = errors.New("month must be between 1 and 12")
	ErrYearOutOfRange   = fmt.Errorf("year must be between %d and %d", constants.MinYear, constants.MaxYear)
	ErrHoursOutOfRange  = fmt.Errorf("total hours must be between 0 and %d", constants.MaxMonthlyHours)
)

// CapacityService handles capacity overrides and the dashboard aggregation.
type CapacityService struct {
	capacityRepo   repository.CapacityRepository
	resourceRepo   repository.ResourceRepository
	assignmentRepo repository.AssignmentRepository

	// now is injectable so tests can pin the current month.
	now func() time.Time
}

// NewCapacityService creates a new CapacityService
func NewCapacityService(
	capacityRepo repository.CapacityRepository,
	resourceRepo repository.ResourceRepository,
	assignmentRepo repository.AssignmentRepository,
) *CapacityService {
	return &CapacityService{
		capacityRepo:   capacityRepo,
		resourceRepo:   resourceRepo,
		assignmentRepo: assignmentRepo,
		now:            time.Now,
	}
}

// SetNow overrides the clock (used for testing)
func (s *CapacityService) SetNow(now func() time.Time) {
	s.now = now
}

// UpsertCapacityInput represents input for the capacity upsert
type UpsertCapacityInput struct {
	ResourceID string
	Month      int
	Year       int
	TotalHours float64
}

// CapacityWithMetrics is a capacity record enriched with committed hours for
// its period.
type CapacityWithMetrics struct {
	models.Capacity
	AssignedHours   float64 `json:"assigned_hours"`
	AvailableHours  float64 `json:"available_hours"`
	UtilizationRate int     `json:"utilization_rate"`
}

// UpsertCapacity creates or updates the override for (resource, month, year).
// The new total may never drop below hours already committed in that period.
func (s *CapacityService) UpsertCapacity(input UpsertCapacityInput) (*CapacityWithMetrics, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, ErrMonthOutOfRange
	}
	if input.Year < constants.MinYear || input.Year > constants.MaxYear {
		return nil, ErrYearOutOfRange
	}
	if input.TotalHours < 0 || input.TotalHours > constants.MaxMonthlyHours {
		return nil, ErrHoursOutOfRange
	}

	resource, err := s.resourceRepo.FindByID(input.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	if !resource.Active {
		return nil, apperrors.NewRuleError(
			apperrors.RuleInactiveResource,
			fmt.Sprintf("Cannot set capacity for inactive resource '%s'", resource.Name),
			map[string]interface{}{
				"resourceId":   resource.ID,
				"resourceName": resource.Name,
			},
		)
	}

	assigned, err := s.assignmentRepo.SumHoursForMonth(input.ResourceID, input.Month, input.Year, "")
	if err != nil {
		return nil, fmt.Errorf("failed to sum assignments: %w", err)
	}

	if input.TotalHours < assigned {
		return nil, apperrors.NewRuleError(
			apperrors.RuleCapacityBelowAssigned,
			fmt.Sprintf("Cannot set capacity to %g hours. Resource '%s' already has %g hours assigned for %d/%d",
				input.TotalHours, resource.Name, assigned, input.Month, input.Year),
			map[string]interface{}{
				"resourceId":   resource.ID,
				"resourceName": resource.Name,
				"month":        input.Month,
				"year":         input.Year,
				"requested":    input.TotalHours,
				"assigned":     assigned,
			},
		)
	}

	capacity := &models.Capacity{
		ResourceID: input.ResourceID,
		Month:      input.Month,
		Year:       input.Year,
		TotalHours: input.TotalHours,
	}
	if err := s.capacityRepo.Upsert(capacity); err != nil {
		return nil, fmt.Errorf("failed to upsert capacity: %w", err)
	}

	stored, err := s.capacityRepo.FindForPeriod(input.ResourceID, input.Month, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to reload capacity: %w", err)
	}

	return s.withMetrics(stored, assigned), nil
}

// ListCapacity returns capacity records with per-period commitment metrics
func (s *CapacityService) ListCapacity(filter repository.CapacityFilter) ([]CapacityWithMetrics, int64, error) {
	capacities, total, err := s.capacityRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list capacity: %w", err)
	}

	enriched := make([]CapacityWithMetrics, 0, len(capacities))
	for i := range capacities {
		assigned, err := s.assignmentRepo.SumHoursForMonth(capacities[i].ResourceID, capacities[i].Month, capacities[i].Year, "")
		if err != nil {
			return nil, 0, fmt.Errorf("failed to sum assignments: %w", err)
		}
		enriched = append(enriched, *s.withMetrics(&capacities[i], assigned))
	}

	return enriched, total, nil
}

// CapacityDetail is a capacity record with the assignments of its period.
type CapacityDetail struct {
	CapacityWithMetrics
	Assignments []models.Assignment `json:"assignments"`
}

// GetCapacity returns one capacity record with detailed period metrics
func (s *CapacityService) GetCapacity(id string) (*CapacityDetail, error) {
	capacity, err := s.capacityRepo.FindByID(id, "Resource")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCapacityNotFound
		}
		return nil, fmt.Errorf("failed to find capacity: %w", err)
	}

	assigned, err := s.assignmentRepo.SumHoursForMonth(capacity.ResourceID, capacity.Month, capacity.Year, "")
	if err != nil {
		return nil, fmt.Errorf("failed to sum assignments: %w", err)
	}

	month := capacity.Month
	year := capacity.Year
	assignments, err := s.assignmentRepo.List(repository.AssignmentFilter{
		ResourceID: capacity.ResourceID,
		Month:      &month,
		Year:       &year,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list period assignments: %w", err)
	}

	return &CapacityDetail{
		CapacityWithMetrics: *s.withMetrics(capacity, assigned),
		Assignments:         assignments,
	}, nil
}

func (s *CapacityService) withMetrics(capacity *models.Capacity, assigned float64) *CapacityWithMetrics {
	utilization := 0
	if capacity.TotalHours > 0 {
		utilization = int(math.Round(assigned / capacity.TotalHours * 100))
	}
	return &CapacityWithMetrics{
		Capacity:        *capacity,
		AssignedHours:   assigned,
		AvailableHours:  capacity.TotalHours - assigned,
		UtilizationRate: utilization,
	}
}
