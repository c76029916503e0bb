package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/planwise/capacity-planning-api/internal/errors"

	"github.com/planwise/capacity-planning-api/internal/repository"
	"gorm.io/gorm"
)

// SyncService reconciles a project's stored assignments against a submitted
// grid: delete everything, then re-create row by row through the capacity
// validator. The operation is deliberately not transactional; spreadsheet
// editing cannot know in advance which cells will violate capacity, so the
// system inserts what is valid and reports what is not.
type SyncService struct {
	projectRepo       repository.ProjectRepository
	resourceRepo      repository.ResourceRepository
	assignmentRepo    repository.AssignmentRepository
	assignmentService *AssignmentService
}

// NewSyncService creates a new SyncService
func NewSyncService(
	projectRepo repository.ProjectRepository,
	resourceRepo repository.ResourceRepository,
	assignmentRepo repository.AssignmentRepository,
	assignmentService *AssignmentService,
) *SyncService {
	return &SyncService{
		projectRepo:       projectRepo,
		resourceRepo:      resourceRepo,
		assignmentRepo:    assignmentRepo,
		assignmentService: assignmentService,
	}
}

// SyncRow is one grid row. Daily rows carry a Cells map of ISO date to
// hours; monthly rows carry Month, Year and Hours. ResourceName is resolved
// against the team's resources by exact name; empty means unassigned.
type SyncRow struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	SkillName    *string            `json:"skill_name"`
	ResourceName string             `json:"resource_name"`
	Cells        map[string]float64 `json:"cells,omitempty"`
	Month        *int               `json:"month,omitempty"`
	Year         *int               `json:"year,omitempty"`
	Hours        *float64           `json:"hours,omitempty"`
}

// SyncFailure records one rejected row or cell with the figures the caller
// needs to fix its grid.
type SyncFailure struct {
	Row       int     `json:"row"`
	Resource  string  `json:"resource,omitempty"`
	Period    string  `json:"period,omitempty"`
	Requested float64 `json:"requested,omitempty"`
	Available float64 `json:"available,omitempty"`
	Rule      string  `json:"rule,omitempty"`
	Message   string  `json:"message"`
}

// SyncReport summarizes a replace-all run. Partial success is a first-class
// outcome: created rows are never rolled back because of failed ones.
type SyncReport struct {
	Deleted      int64         `json:"deleted"`
	Created      int           `json:"created"`
	Failed       int           `json:"failed"`
	DeleteFailed bool          `json:"delete_failed,omitempty"`
	Failures     []SyncFailure `json:"failures"`
}

// ReplaceProjectAssignments deletes every assignment of the project and
// re-creates the submitted grid. Deletion is best-effort: on failure the
// procedure still inserts, accepting the risk of duplicate rows. A project
// owned by another team is reported as not found; team-less projects are
// shared and writable by every team.
func (s *SyncService) ReplaceProjectAssignments(projectID, team string, rows []SyncRow) (*SyncReport, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.Team != "" && project.Team != team {
		return nil, ErrProjectNotFound
	}

	report := &SyncReport{Failures: []SyncFailure{}}

	deleted, err := s.assignmentRepo.DeleteByProject(projectID)
	if err != nil {
		report.DeleteFailed = true
		report.Failures = append(report.Failures, SyncFailure{
			Row:     0,
			Message: fmt.Sprintf("failed to delete existing assignments: %v", err),
		})
	}
	report.Deleted = deleted

	resources, err := s.resourceRepo.ListByTeam(team, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list team resources: %w", err)
	}
	resourceByName := make(map[string]string, len(resources))
	for _, r := range resources {
		resourceByName[r.Name] = r.ID
	}

	for i, row := range rows {
		rowNum := i + 1

		var resourceID *string
		if row.ResourceName != "" {
			id, ok := resourceByName[row.ResourceName]
			if !ok {
				report.Failed++
				report.Failures = append(report.Failures, SyncFailure{
					Row:      rowNum,
					Resource: row.ResourceName,
					Message:  fmt.Sprintf("no resource named '%s' in team '%s'", row.ResourceName, team),
				})
				continue
			}
			resourceID = &id
		}

		inputs, cellFailures := expandRow(projectID, team, resourceID, rowNum, row)
		report.Failed += len(cellFailures)
		report.Failures = append(report.Failures, cellFailures...)

		for _, input := range inputs {
			if _, err := s.assignmentService.CreateAssignment(input); err != nil {
				report.Failed++
				report.Failures = append(report.Failures, newSyncFailure(rowNum, row.ResourceName, input, err))
				continue
			}
			report.Created++
		}
	}

	return report, nil
}

// expandRow turns a grid row into atomic assignment inputs: one per
// positive-hours day cell in daily mode, a single input in monthly mode.
// Zero-hours cells expand to nothing; a cell keyed by an unparseable date
// comes back as a failure so the caller sees it in the report.
func expandRow(projectID, team string, resourceID *string, rowNum int, row SyncRow) ([]CreateAssignmentInput, []SyncFailure) {
	base := CreateAssignmentInput{
		ProjectID:   projectID,
		ResourceID:  resourceID,
		Title:       row.Title,
		Description: row.Description,
		SkillName:   row.SkillName,
		Team:        &team,
	}

	if len(row.Cells) > 0 {
		inputs := make([]CreateAssignmentInput, 0, len(row.Cells))
		var failures []SyncFailure
		for dateStr, hours := range row.Cells {
			if hours <= 0 {
				continue
			}
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				failures = append(failures, SyncFailure{
					Row:       rowNum,
					Resource:  row.ResourceName,
					Period:    dateStr,
					Requested: hours,
					Message:   fmt.Sprintf("invalid date '%s': cells must be keyed by YYYY-MM-DD", dateStr),
				})
				continue
			}
			input := base
			input.Hours = hours
			input.Date = &date
			inputs = append(inputs, input)
		}
		return inputs, failures
	}

	input := base
	if row.Hours != nil {
		input.Hours = *row.Hours
	}
	input.Month = row.Month
	input.Year = row.Year
	return []CreateAssignmentInput{input}, nil
}

func newSyncFailure(row int, resourceName string, input CreateAssignmentInput, err error) SyncFailure {
	failure := SyncFailure{
		Row:       row,
		Resource:  resourceName,
		Requested: input.Hours,
		Message:   err.Error(),
	}
	if input.Date != nil {
		failure.Period = input.Date.Format("2006-01-02")
	} else if input.Month != nil && input.Year != nil {
		failure.Period = fmt.Sprintf("%d/%d", *input.Month, *input.Year)
	}

	var ruleErr *apperrors.RuleError
	if errors.As(err, &ruleErr) {
		failure.Rule = ruleErr.Rule
		if available, ok := ruleErr.Details["available"].(float64); ok {
			failure.Available = available
		}
	}
	return failure
}
