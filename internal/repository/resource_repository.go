package repository

import (
	"github.com/planwise/capacity-planning-api/internal/database"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/utils"
	"gorm.io/gorm"
)

// GormResourceRepository is a GORM implementation of ResourceRepository
type GormResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &GormResourceRepository{db: db}
}

// Create creates a new resource with its skills
func (r *GormResourceRepository) Create(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// FindByID finds a resource by ID with optional preloading
func (r *GormResourceRepository) FindByID(id string, preload ...string) (*models.Resource, error) {
	var resource models.Resource
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &resource, nil
}

// FindByCode finds a resource by its unique code
func (r *GormResourceRepository) FindByCode(code string) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.First(&resource, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// List retrieves resources with filtering and pagination
func (r *GormResourceRepository) List(filter ResourceFilter) ([]models.Resource, int64, error) {
	var resources []models.Resource

	query := r.db.Model(&models.Resource{})
	if filter.Team != "" {
		query = query.Where("team = ?", filter.Team)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("name ASC")
	if filter.Page > 0 && filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.Limit,
			Offset: (filter.Page - 1) * filter.Limit,
		}))
	}

	if err := listQuery.Preload("Skills").Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

// ListByTeam lists a team's resources with skills preloaded
func (r *GormResourceRepository) ListByTeam(team string, activeOnly bool) ([]models.Resource, error) {
	var resources []models.Resource

	query := r.db.Where("team = ?", team)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Preload("Skills").Order("name ASC").Find(&resources).Error; err != nil {
		return nil, err
	}

	return resources, nil
}

// Update updates a resource
func (r *GormResourceRepository) Update(resource *models.Resource) error {
	return r.db.Omit("Skills").Save(resource).Error
}

// ReplaceSkills replaces the declared skill set of a resource
func (r *GormResourceRepository) ReplaceSkills(resourceID string, skills []models.ResourceSkill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", resourceID).Delete(&models.ResourceSkill{}).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		return tx.Create(&skills).Error
	})
}

// Deactivate flips a resource to inactive. Resources referenced by
// assignments are never hard-deleted.
func (r *GormResourceRepository) Deactivate(id string) error {
	return r.db.Model(&models.Resource{}).
		Where("id = ?", id).
		Update("active", false).Error
}
