package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/planwise/capacity-planning-api/internal/constants"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDuplicateResourceCode = errors.New("a resource with this code already exists")
	ErrCodeRequired          = errors.New("code is required")
	ErrNameRequired          = errors.New("name is required")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrCapacityOutOfRange    = fmt.Errorf("default capacity must be between 0 and %d", constants.MaxMonthlyHours)
	ErrInvalidProficiency    = errors.New("proficiency must be junior, mid or senior")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ResourceService handles resource business logic
type ResourceService struct {
	resourceRepo repository.ResourceRepository
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo repository.ResourceRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo}
}

// SkillInput declares one skill of a resource
type SkillInput struct {
	Name        string             `json:"name"`
	Proficiency models.Proficiency `json:"proficiency"`
}

// CreateResourceInput represents input for creating a resource
type CreateResourceInput struct {
	Code            string
	Name            string
	Email           string
	Team            string
	DefaultCapacity *int
	Skills          []SkillInput
}

// UpdateResourceInput represents input for updating a resource.
// Nil fields are left unchanged; a non-nil Skills replaces the skill set.
type UpdateResourceInput struct {
	Name            *string
	Email           *string
	DefaultCapacity *int
	Active          *bool
	Skills          []SkillInput
}

// ListResources returns resources matching the filter
func (s *ResourceService) ListResources(filter repository.ResourceFilter) ([]models.Resource, int64, error) {
	resources, total, err := s.resourceRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, total, nil
}

// GetResource returns a resource with its skills
func (s *ResourceService) GetResource(id string) (*models.Resource, error) {
	resource, err := s.resourceRepo.FindByID(id, "Skills")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

// CreateResource validates and persists a new resource
func (s *ResourceService) CreateResource(input CreateResourceInput) (*models.Resource, error) {
	if input.Code == "" {
		return nil, ErrCodeRequired
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Email != "" && !emailPattern.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}

	capacity := constants.DefaultMonthlyCapacity
	if input.DefaultCapacity != nil {
		if *input.DefaultCapacity < 0 || *input.DefaultCapacity > constants.MaxMonthlyHours {
			return nil, ErrCapacityOutOfRange
		}
		capacity = *input.DefaultCapacity
	}

	skills, err := buildSkills(input.Skills)
	if err != nil {
		return nil, err
	}

	if _, err := s.resourceRepo.FindByCode(input.Code); err == nil {
		return nil, ErrDuplicateResourceCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check resource code: %w", err)
	}

	resource := &models.Resource{
		Code:            input.Code,
		Name:            input.Name,
		Email:           input.Email,
		Team:            input.Team,
		DefaultCapacity: capacity,
		Active:          true,
		Skills:          skills,
	}

	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return s.resourceRepo.FindByID(resource.ID, "Skills")
}

// UpdateResource applies a partial update
func (s *ResourceService) UpdateResource(id string, input UpdateResourceInput) (*models.Resource, error) {
	resource, err := s.resourceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		resource.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email != "" && !emailPattern.MatchString(*input.Email) {
			return nil, ErrInvalidEmail
		}
		resource.Email = *input.Email
	}
	if input.DefaultCapacity != nil {
		if *input.DefaultCapacity < 0 || *input.DefaultCapacity > constants.MaxMonthlyHours {
			return nil, ErrCapacityOutOfRange
		}
		resource.DefaultCapacity = *input.DefaultCapacity
	}
	if input.Active != nil {
		resource.Active = *input.Active
	}

	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	if input.Skills != nil {
		skills, err := buildSkills(input.Skills)
		if err != nil {
			return nil, err
		}
		for i := range skills {
			skills[i].ResourceID = resource.ID
		}
		if err := s.resourceRepo.ReplaceSkills(resource.ID, skills); err != nil {
			return nil, fmt.Errorf("failed to replace skills: %w", err)
		}
	}

	return s.resourceRepo.FindByID(resource.ID, "Skills")
}

// DeactivateResource soft-deletes a resource. Assignments referencing it are
// kept; the resource just cannot receive new ones.
func (s *ResourceService) DeactivateResource(id string) error {
	if _, err := s.resourceRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("failed to find resource: %w", err)
	}

	if err := s.resourceRepo.Deactivate(id); err != nil {
		return fmt.Errorf("failed to deactivate resource: %w", err)
	}
	return nil
}

func buildSkills(inputs []SkillInput) ([]models.ResourceSkill, error) {
	skills := make([]models.ResourceSkill, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			continue
		}
		if in.Proficiency != "" && !models.ValidProficiency(in.Proficiency) {
			return nil, ErrInvalidProficiency
		}
		skills = append(skills, models.ResourceSkill{
			SkillName:   in.Name,
			Proficiency: in.Proficiency,
		})
	}
	return skills, nil
}
