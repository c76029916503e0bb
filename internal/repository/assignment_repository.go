package repository

import (
	"time"

	"github.com/planwise/capacity-planning-api/internal/models"
	"gorm.io/gorm"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a new assignment
func (r *GormAssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

// FindByID finds an assignment by ID with optional preloading
func (r *GormAssignmentRepository) FindByID(id string, preload ...string) (*models.Assignment, error) {
	var assignment models.Assignment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

// List retrieves assignments matching a filter. When both Month and Year
// are set the filter spans the effective month, daily rows included.
func (r *GormAssignmentRepository) List(filter AssignmentFilter) ([]models.Assignment, error) {
	var assignments []models.Assignment

	query := r.db.Model(&models.Assignment{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.SkillName != "" {
		query = query.Where("skill_name = ?", filter.SkillName)
	}
	if filter.Month != nil && filter.Year != nil {
		// A full period filter matches the effective month: legacy
		// (month, year) rows plus daily rows whose date falls inside it.
		from, to := models.MonthlyPeriod(*filter.Month, *filter.Year).MonthBounds()
		query = query.Where("(month = ? AND year = ?) OR (date >= ? AND date < ?)",
			*filter.Month, *filter.Year, from, to)
	} else {
		if filter.Month != nil {
			query = query.Where("month = ?", *filter.Month)
		}
		if filter.Year != nil {
			query = query.Where("year = ?", *filter.Year)
		}
	}

	err := query.
		Preload("Project").
		Preload("Resource").
		Order("year DESC, month DESC, date DESC, created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

// Update updates an assignment
func (r *GormAssignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

// Delete deletes an assignment
func (r *GormAssignmentRepository) Delete(id string) error {
	return r.db.Delete(&models.Assignment{}, "id = ?", id).Error
}

// DeleteByProject deletes every assignment of a project, returning the count
func (r *GormAssignmentRepository) DeleteByProject(projectID string) (int64, error) {
	result := r.db.Where("project_id = ?", projectID).Delete(&models.Assignment{})
	return result.RowsAffected, result.Error
}

// SumHoursForDay sums committed hours of a resource on an exact date
func (r *GormAssignmentRepository) SumHoursForDay(resourceID string, day time.Time, excludeID string) (float64, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	query := r.db.Model(&models.Assignment{}).
		Where("resource_id = ? AND date = ?", resourceID, day)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var sum *float64
	if err := query.Select("SUM(hours)").Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// SumHoursForMonth sums committed hours over an effective month: legacy
// (month, year) rows plus daily rows whose date falls inside it.
func (r *GormAssignmentRepository) SumHoursForMonth(resourceID string, month, year int, excludeID string) (float64, error) {
	from, to := models.MonthlyPeriod(month, year).MonthBounds()

	query := r.db.Model(&models.Assignment{}).
		Where("resource_id = ?", resourceID).
		Where("(month = ? AND year = ?) OR (date >= ? AND date < ?)", month, year, from, to)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var sum *float64
	if err := query.Select("SUM(hours)").Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// ListForResourcesYear lists assignments of the given resources whose
// effective period falls in the year, with projects preloaded
func (r *GormAssignmentRepository) ListForResourcesYear(resourceIDs []string, year int) ([]models.Assignment, error) {
	if len(resourceIDs) == 0 {
		return []models.Assignment{}, nil
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var assignments []models.Assignment
	err := r.db.
		Where("resource_id IN ?", resourceIDs).
		Where("year = ? OR (date >= ? AND date < ?)", year, from, to).
		Preload("Project").
		Order("month ASC, date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
