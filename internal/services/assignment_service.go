package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/planwise/capacity-planning-api/internal/errors"

	"github.com/planwise/capacity-planning-api/internal/constants"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrHoursNotPositive   = errors.New("hours must be greater than 0")
	ErrHoursTooLarge      = fmt.Errorf("hours cannot exceed %d", constants.MaxMonthlyHours)
)

// AssignmentService handles assignment business logic, including the
// capacity and skill validation run before every write.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	projectRepo    repository.ProjectRepository
	resourceRepo   repository.ResourceRepository
	capacityRepo   repository.CapacityRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	projectRepo repository.ProjectRepository,
	resourceRepo repository.ResourceRepository,
	capacityRepo repository.CapacityRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
		resourceRepo:   resourceRepo,
		capacityRepo:   capacityRepo,
	}
}

// CreateAssignmentInput represents input for creating an assignment
type CreateAssignmentInput struct {
	ProjectID   string
	ResourceID  *string
	Title       string
	Description string
	SkillName   *string
	Team        *string
	Hours       float64
	Date        *time.Time
	Month       *int
	Year        *int
}

// UpdateAssignmentInput represents input for updating an assignment.
// Nil fields are left unchanged; ClearResource detaches the resource.
type UpdateAssignmentInput struct {
	Title         *string
	Description   *string
	SkillName     *string
	ResourceID    *string
	ClearResource bool
	Hours         *float64
	Date          *time.Time
	Month         *int
	Year          *int
}

// ListAssignments returns assignments matching the filter
func (s *AssignmentService) ListAssignments(filter repository.AssignmentFilter) ([]models.Assignment, error) {
	assignments, err := s.assignmentRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// GetAssignment returns an assignment with related data
func (s *AssignmentService) GetAssignment(id string) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id, "Project", "Resource", "Resource.Skills")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// CreateAssignment validates and persists a new assignment. Resource-scoped
// rules (active flag, skill match, capacity headroom) only apply when a
// resource is referenced; unassigned backlog tasks skip them.
func (s *AssignmentService) CreateAssignment(input CreateAssignmentInput) (*models.Assignment, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Hours <= 0 {
		return nil, ErrHoursNotPositive
	}
	if input.Hours > constants.MaxMonthlyHours {
		return nil, ErrHoursTooLarge
	}

	period, err := models.NewPeriod(input.Date, input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.ResourceID != nil {
		resource, err := s.loadResource(*input.ResourceID)
		if err != nil {
			return nil, err
		}
		if err := s.checkResourceRules(resource, input.SkillName, period, input.Hours, ""); err != nil {
			return nil, err
		}
	}

	assignment := &models.Assignment{
		ProjectID:   input.ProjectID,
		ResourceID:  input.ResourceID,
		Title:       input.Title,
		Description: input.Description,
		SkillName:   input.SkillName,
		Team:        input.Team,
		Hours:       input.Hours,
	}
	assignment.SetPeriod(period)

	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return s.assignmentRepo.FindByID(assignment.ID, "Project", "Resource")
}

// UpdateAssignment applies a partial update and re-runs the validator
// against the merged state, excluding the row's own hours.
func (s *AssignmentService) UpdateAssignment(id string, input UpdateAssignmentInput) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		assignment.Title = *input.Title
	}
	if input.Description != nil {
		assignment.Description = *input.Description
	}
	if input.SkillName != nil {
		if *input.SkillName == "" {
			assignment.SkillName = nil
		} else {
			assignment.SkillName = input.SkillName
		}
	}
	if input.ClearResource {
		assignment.ResourceID = nil
	} else if input.ResourceID != nil {
		assignment.ResourceID = input.ResourceID
	}
	if input.Hours != nil {
		if *input.Hours <= 0 {
			return nil, ErrHoursNotPositive
		}
		if *input.Hours > constants.MaxMonthlyHours {
			return nil, ErrHoursTooLarge
		}
		assignment.Hours = *input.Hours
	}

	if input.Date != nil || input.Month != nil || input.Year != nil {
		month, year := input.Month, input.Year
		// A month alone keeps the stored year, and vice versa.
		if month != nil && year == nil {
			year = assignment.Year
		}
		if year != nil && month == nil {
			month = assignment.Month
		}
		period, err := models.NewPeriod(input.Date, month, year)
		if err != nil {
			return nil, err
		}
		assignment.SetPeriod(period)
	}

	if assignment.ResourceID != nil {
		resource, err := s.loadResource(*assignment.ResourceID)
		if err != nil {
			return nil, err
		}
		if err := s.checkResourceRules(resource, assignment.SkillName, assignment.Period(), assignment.Hours, assignment.ID); err != nil {
			return nil, err
		}
	}

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	return s.assignmentRepo.FindByID(assignment.ID, "Project", "Resource")
}

// DeleteAssignment deletes a single assignment
func (s *AssignmentService) DeleteAssignment(id string) error {
	if _, err := s.assignmentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}

	if err := s.assignmentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// DeleteByProject removes every assignment of a project and reports the
// count. A project owned by another team is reported as not found; team-less
// projects are shared and writable by every team.
func (s *AssignmentService) DeleteByProject(projectID, team string) (int64, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProjectNotFound
		}
		return 0, fmt.Errorf("failed to find project: %w", err)
	}
	if project.Team != "" && project.Team != team {
		return 0, ErrProjectNotFound
	}

	deleted, err := s.assignmentRepo.DeleteByProject(projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assignments: %w", err)
	}
	return deleted, nil
}

func (s *AssignmentService) loadResource(resourceID string) (*models.Resource, error) {
	resource, err := s.resourceRepo.FindByID(resourceID, "Skills")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

// checkResourceRules is the capacity validator: a pure check run immediately
// before a write commits. excludeID keeps an updated row's own hours out of
// the committed sum. Note the check-then-act window is not closed by a
// transaction; capacity limits are advisory under concurrent load.
func (s *AssignmentService) checkResourceRules(resource *models.Resource, skillName *string, period models.Period, hours float64, excludeID string) error {
	if !resource.Active {
		return apperrors.NewRuleError(
			apperrors.RuleInactiveResource,
			fmt.Sprintf("Cannot assign inactive resource '%s' to a project", resource.Name),
			map[string]interface{}{
				"resourceId":   resource.ID,
				"resourceName": resource.Name,
			},
		)
	}

	if skillName != nil && *skillName != "" && !resource.HasSkill(*skillName) {
		return apperrors.NewRuleError(
			apperrors.RuleSkillMismatch,
			fmt.Sprintf("Resource '%s' does not have the skill '%s'", resource.Name, *skillName),
			map[string]interface{}{
				"resourceId":   resource.ID,
				"resourceName": resource.Name,
				"skillName":    *skillName,
			},
		)
	}

	if period.Kind == models.PeriodDaily {
		return s.checkDailyCapacity(resource, period, hours, excludeID)
	}
	return s.checkMonthlyCapacity(resource, period, hours, excludeID)
}

func (s *AssignmentService) checkDailyCapacity(resource *models.Resource, period models.Period, hours float64, excludeID string) error {
	assigned, err := s.assignmentRepo.SumHoursForDay(resource.ID, period.Date, excludeID)
	if err != nil {
		return fmt.Errorf("failed to sum daily assignments: %w", err)
	}

	if assigned+hours > constants.DailyCapacityHours {
		available := constants.DailyCapacityHours - assigned
		return apperrors.NewRuleError(
			apperrors.RuleDailyCapacityExceeded,
			fmt.Sprintf("Assignment would exceed daily resource capacity for %s. Available: %g hours, Requested: %g hours, Assigned: %g hours",
				period.Date.Format("2006-01-02"), available, hours, assigned),
			map[string]interface{}{
				"resourceId":   resource.ID,
				"resourceName": resource.Name,
				"date":         period.Date.Format("2006-01-02"),
				"requested":    hours,
				"assigned":     assigned,
				"available":    available,
			},
		)
	}
	return nil
}

func (s *AssignmentService) checkMonthlyCapacity(resource *models.Resource, period models.Period, hours float64, excludeID string) error {
	month, year := period.Effective()

	totalCapacity := float64(resource.DefaultCapacity)
	capacity, err := s.capacityRepo.FindForPeriod(resource.ID, month, year)
	if err == nil {
		totalCapacity = capacity.TotalHours
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up capacity: %w", err)
	}

	assigned, err := s.assignmentRepo.SumHoursForMonth(resource.ID, month, year, excludeID)
	if err != nil {
		return fmt.Errorf("failed to sum monthly assignments: %w", err)
	}

	if assigned+hours > totalCapacity {
		available := totalCapacity - assigned
		return apperrors.NewRuleError(
			apperrors.RuleCapacityExceeded,
			fmt.Sprintf("Assignment would exceed monthly resource capacity for %d/%d. Available: %g hours, Requested: %g hours",
				month, year, available, hours),
			map[string]interface{}{
				"resourceId":   resource.ID,
				"resourceName": resource.Name,
				"month":        month,
				"year":         year,
				"requested":    hours,
				"assigned":     assigned,
				"available":    available,
			},
		)
	}
	return nil
}
