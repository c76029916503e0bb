package repository

import (
	"time"

	"github.com/planwise/capacity-planning-api/internal/models"
)

// ResourceRepository defines the interface for resource data access
type ResourceRepository interface {
	// Create creates a new resource with its skills
	Create(resource *models.Resource) error

	// FindByID finds a resource by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Resource, error)

	// FindByCode finds a resource by its unique code
	FindByCode(code string) (*models.Resource, error)

	// List retrieves resources with filtering and pagination
	List(filter ResourceFilter) ([]models.Resource, int64, error)

	// ListByTeam lists a team's resources with skills preloaded
	ListByTeam(team string, activeOnly bool) ([]models.Resource, error)

	// Update updates a resource
	Update(resource *models.Resource) error

	// ReplaceSkills replaces the declared skill set of a resource
	ReplaceSkills(resourceID string, skills []models.ResourceSkill) error

	// Deactivate flips a resource to inactive (soft delete)
	Deactivate(id string) error
}

// ResourceFilter holds filtering options for listing resources
type ResourceFilter struct {
	Team   string
	Active *bool
	Page   int
	Limit  int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Project, error)

	// FindByCode finds a project by its unique code
	FindByCode(code string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete hard-deletes a project and cascades its assignments
	Delete(id string) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Team     string
	Type     *models.ProjectType
	StatusID *uint
	DomainID *uint
	Page     int
	Limit    int
}

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	// Create creates a new assignment
	Create(assignment *models.Assignment) error

	// FindByID finds an assignment by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Assignment, error)

	// List retrieves assignments matching a filter
	List(filter AssignmentFilter) ([]models.Assignment, error)

	// Update updates an assignment
	Update(assignment *models.Assignment) error

	// Delete deletes an assignment
	Delete(id string) error

	// DeleteByProject deletes every assignment of a project, returning the count
	DeleteByProject(projectID string) (int64, error)

	// SumHoursForDay sums committed hours of a resource on an exact date,
	// excluding the given assignment ID when non-empty
	SumHoursForDay(resourceID string, day time.Time, excludeID string) (float64, error)

	// SumHoursForMonth sums committed hours of a resource over an effective
	// month: legacy (month, year) rows plus daily rows falling inside it
	SumHoursForMonth(resourceID string, month, year int, excludeID string) (float64, error)

	// ListForResourcesYear lists assignments of the given resources whose
	// effective period falls in the year, with projects preloaded
	ListForResourcesYear(resourceIDs []string, year int) ([]models.Assignment, error)
}

// AssignmentFilter holds filtering options for listing assignments
type AssignmentFilter struct {
	ProjectID  string
	ResourceID string
	SkillName  string
	Month      *int
	Year       *int
}

// CapacityRepository defines the interface for capacity override data access
type CapacityRepository interface {
	// FindByID finds a capacity record by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Capacity, error)

	// FindForPeriod finds the capacity override for (resource, month, year)
	FindForPeriod(resourceID string, month, year int) (*models.Capacity, error)

	// List retrieves capacity records with filtering and pagination
	List(filter CapacityFilter) ([]models.Capacity, int64, error)

	// Upsert creates the record or updates total_hours when the
	// (resource, month, year) key already exists
	Upsert(capacity *models.Capacity) error

	// ListForResourcesYear lists the overrides of the given resources for a year
	ListForResourcesYear(resourceIDs []string, year int) ([]models.Capacity, error)
}

// CapacityFilter holds filtering options for listing capacity records
type CapacityFilter struct {
	ResourceID string
	Month      *int
	Year       *int
	Page       int
	Limit      int
}
