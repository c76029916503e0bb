package dto

import (
	"time"

	"github.com/planwise/capacity-planning-api/internal/models"
)

// ResourceSkillDTO represents one declared skill in API responses
type ResourceSkillDTO struct {
	SkillName   string             `json:"skill_name"`
	Proficiency models.Proficiency `json:"proficiency,omitempty"`
}

// ResourceDTO represents a resource in API responses
type ResourceDTO struct {
	ID              string             `json:"id"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	Email           string             `json:"email,omitempty"`
	Team            string             `json:"team"`
	DefaultCapacity int                `json:"default_capacity"`
	Active          bool               `json:"active"`
	Skills          []ResourceSkillDTO `json:"skills"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ResourceSummaryDTO is the compact resource embedded in joined responses
type ResourceSummaryDTO struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// ToResourceDTO converts a resource to its API representation
func ToResourceDTO(resource models.Resource) ResourceDTO {
	skills := make([]ResourceSkillDTO, len(resource.Skills))
	for i, s := range resource.Skills {
		skills[i] = ResourceSkillDTO{
			SkillName:   s.SkillName,
			Proficiency: s.Proficiency,
		}
	}

	return ResourceDTO{
		ID:              resource.ID,
		Code:            resource.Code,
		Name:            resource.Name,
		Email:           resource.Email,
		Team:            resource.Team,
		DefaultCapacity: resource.DefaultCapacity,
		Active:          resource.Active,
		Skills:          skills,
		CreatedAt:       resource.CreatedAt,
		UpdatedAt:       resource.UpdatedAt,
	}
}

// ToResourceDTOs converts a slice of resources
func ToResourceDTOs(resources []models.Resource) []ResourceDTO {
	dtos := make([]ResourceDTO, len(resources))
	for i, r := range resources {
		dtos[i] = ToResourceDTO(r)
	}
	return dtos
}

// ToResourceSummaryDTO converts a resource to its compact form
func ToResourceSummaryDTO(resource *models.Resource) *ResourceSummaryDTO {
	if resource == nil {
		return nil
	}
	return &ResourceSummaryDTO{
		ID:   resource.ID,
		Code: resource.Code,
		Name: resource.Name,
		Team: resource.Team,
	}
}
