package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDuplicateProjectCode = errors.New("a project with this code already exists")
	ErrProjectTitleRequired = errors.New("title is required")
	ErrProjectCodeRequired  = errors.New("code is required")
	ErrEndBeforeStart       = errors.New("end date must be after start date")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Code        string
	Title       string
	Description string
	Type        string
	Priority    string
	StatusID    *uint
	DomainID    *uint
	Team        string
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Type        *string
	Priority    *string
	StatusID    *uint
	DomainID    *uint
	StartDate   *time.Time
	EndDate     *time.Time
}

// ListProjects returns projects matching the filter
func (s *ProjectService) ListProjects(filter repository.ProjectFilter) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a project with its catalog relations
func (s *ProjectService) GetProject(id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Status", "Domain")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject validates and persists a new project
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if input.Code == "" {
		return nil, ErrProjectCodeRequired
	}
	if input.Title == "" {
		return nil, ErrProjectTitleRequired
	}

	projectType, err := models.ParseProjectType(input.Type)
	if err != nil {
		return nil, err
	}
	priority, err := models.ParseProjectPriority(input.Priority)
	if err != nil {
		return nil, err
	}
	if err := checkDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindByCode(input.Code); err == nil {
		return nil, ErrDuplicateProjectCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check project code: %w", err)
	}

	project := &models.Project{
		Code:        input.Code,
		Title:       input.Title,
		Description: input.Description,
		Type:        projectType,
		Priority:    priority,
		StatusID:    input.StatusID,
		DomainID:    input.DomainID,
		Team:        input.Team,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Status", "Domain")
}

// UpdateProject applies a partial update
func (s *ProjectService) UpdateProject(id string, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrProjectTitleRequired
		}
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Type != nil {
		projectType, err := models.ParseProjectType(*input.Type)
		if err != nil {
			return nil, err
		}
		project.Type = projectType
	}
	if input.Priority != nil {
		priority, err := models.ParseProjectPriority(*input.Priority)
		if err != nil {
			return nil, err
		}
		project.Priority = priority
	}
	if input.StatusID != nil {
		project.StatusID = input.StatusID
	}
	if input.DomainID != nil {
		project.DomainID = input.DomainID
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if err := checkDates(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Status", "Domain")
}

// DeleteProject hard-deletes a project; its assignments go with it
func (s *ProjectService) DeleteProject(id string) error {
	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func checkDates(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return ErrEndBeforeStart
	}
	return nil
}
