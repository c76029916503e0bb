package dto

import (
	"time"

	"github.com/planwise/capacity-planning-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string                 `json:"id"`
	Code        string                 `json:"code"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Type        models.ProjectType     `json:"type"`
	Priority    models.ProjectPriority `json:"priority"`
	Status      *models.ProjectStatus  `json:"status,omitempty"`
	Domain      *models.Domain         `json:"domain,omitempty"`
	Team        string                 `json:"team,omitempty"`
	StartDate   *time.Time             `json:"start_date,omitempty"`
	EndDate     *time.Time             `json:"end_date,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ProjectSummaryDTO is the compact project embedded in joined responses
type ProjectSummaryDTO struct {
	ID       string                 `json:"id"`
	Code     string                 `json:"code"`
	Title    string                 `json:"title"`
	Type     models.ProjectType     `json:"type"`
	Priority models.ProjectPriority `json:"priority"`
}

// ToProjectDTO converts a project to its API representation
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Code:        project.Code,
		Title:       project.Title,
		Description: project.Description,
		Type:        project.Type,
		Priority:    project.Priority,
		Status:      project.Status,
		Domain:      project.Domain,
		Team:        project.Team,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToProjectSummaryDTO converts a project to its compact form
func ToProjectSummaryDTO(project models.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ID:       project.ID,
		Code:     project.Code,
		Title:    project.Title,
		Type:     project.Type,
		Priority: project.Priority,
	}
}
