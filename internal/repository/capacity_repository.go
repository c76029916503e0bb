package repository

import (
	"github.com/planwise/capacity-planning-api/internal/database"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCapacityRepository is a GORM implementation of CapacityRepository
type GormCapacityRepository struct {
	db *gorm.DB
}

// NewCapacityRepository creates a new CapacityRepository
func NewCapacityRepository(db *gorm.DB) CapacityRepository {
	return &GormCapacityRepository{db: db}
}

// FindByID finds a capacity record by ID with optional preloading
func (r *GormCapacityRepository) FindByID(id string, preload ...string) (*models.Capacity, error) {
	var capacity models.Capacity
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&capacity, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &capacity, nil
}

// FindForPeriod finds the capacity override for (resource, month, year)
func (r *GormCapacityRepository) FindForPeriod(resourceID string, month, year int) (*models.Capacity, error) {
	var capacity models.Capacity
	err := r.db.
		Where("resource_id = ? AND month = ? AND year = ?", resourceID, month, year).
		First(&capacity).Error
	if err != nil {
		return nil, err
	}
	return &capacity, nil
}

// List retrieves capacity records with filtering and pagination
func (r *GormCapacityRepository) List(filter CapacityFilter) ([]models.Capacity, int64, error) {
	var capacities []models.Capacity

	query := r.db.Model(&models.Capacity{})
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.Month != nil {
		query = query.Where("month = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("year DESC, month DESC")
	if filter.Page > 0 && filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.Limit,
			Offset: (filter.Page - 1) * filter.Limit,
		}))
	}

	if err := listQuery.Preload("Resource").Find(&capacities).Error; err != nil {
		return nil, 0, err
	}

	return capacities, total, nil
}

// Upsert creates the record or updates total_hours when the
// (resource, month, year) key already exists. Idempotent, safe to retry.
func (r *GormCapacityRepository) Upsert(capacity *models.Capacity) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_hours", "updated_at"}),
		}).
		Create(capacity).Error
}

// ListForResourcesYear lists the overrides of the given resources for a year
func (r *GormCapacityRepository) ListForResourcesYear(resourceIDs []string, year int) ([]models.Capacity, error) {
	if len(resourceIDs) == 0 {
		return []models.Capacity{}, nil
	}

	var capacities []models.Capacity
	err := r.db.
		Where("resource_id IN ? AND year = ?", resourceIDs, year).
		Order("month ASC").
		Find(&capacities).Error
	if err != nil {
		return nil, err
	}

	return capacities, nil
}
