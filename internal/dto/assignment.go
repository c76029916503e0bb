package dto

import (
	"time"

	"github.com/planwise/capacity-planning-api/internal/models"
)

// AssignmentDTO represents an assignment in API responses, with compact
// project and resource summaries joined in.
type AssignmentDTO struct {
	ID          string              `json:"id"`
	ProjectID   string              `json:"project_id"`
	ResourceID  *string             `json:"resource_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	SkillName   *string             `json:"skill_name"`
	Team        *string             `json:"team,omitempty"`
	Hours       float64             `json:"hours"`
	Date        *string             `json:"date,omitempty"`
	Month       *int                `json:"month,omitempty"`
	Year        *int                `json:"year,omitempty"`
	Project     *ProjectSummaryDTO  `json:"project,omitempty"`
	Resource    *ResourceSummaryDTO `json:"resource,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToAssignmentDTO converts an assignment to its API representation
func ToAssignmentDTO(assignment models.Assignment) AssignmentDTO {
	d := AssignmentDTO{
		ID:          assignment.ID,
		ProjectID:   assignment.ProjectID,
		ResourceID:  assignment.ResourceID,
		Title:       assignment.Title,
		Description: assignment.Description,
		SkillName:   assignment.SkillName,
		Team:        assignment.Team,
		Hours:       assignment.Hours,
		Month:       assignment.Month,
		Year:        assignment.Year,
		Resource:    ToResourceSummaryDTO(assignment.Resource),
		CreatedAt:   assignment.CreatedAt,
		UpdatedAt:   assignment.UpdatedAt,
	}

	if assignment.Date != nil {
		date := assignment.Date.Format("2006-01-02")
		d.Date = &date
	}

	if assignment.Project.ID != "" {
		summary := ToProjectSummaryDTO(assignment.Project)
		d.Project = &summary
	}

	return d
}

// ToAssignmentDTOs converts a slice of assignments
func ToAssignmentDTOs(assignments []models.Assignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = ToAssignmentDTO(a)
	}
	return dtos
}
