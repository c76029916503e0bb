package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectType string

const (
	ProjectTypeProyecto  ProjectType = "Proyecto"
	ProjectTypeEvolutivo ProjectType = "Evolutivo"
)

// ErrInvalidProjectType reports an unknown project type value.
var ErrInvalidProjectType = fmt.Errorf("project type must be one of: %s, %s", ProjectTypeProyecto, ProjectTypeEvolutivo)

// ParseProjectType validates a raw project type value.
func ParseProjectType(s string) (ProjectType, error) {
	switch ProjectType(s) {
	case ProjectTypeProyecto, ProjectTypeEvolutivo:
		return ProjectType(s), nil
	}
	return "", ErrInvalidProjectType
}

type ProjectPriority string

const (
	PriorityMuyAlta ProjectPriority = "muy-alta"
	PriorityAlta    ProjectPriority = "alta"
	PriorityMedia   ProjectPriority = "media"
	PriorityBaja    ProjectPriority = "baja"
	PriorityMuyBaja ProjectPriority = "muy-baja"
)

// ErrInvalidProjectPriority reports an unknown priority value.
var ErrInvalidProjectPriority = fmt.Errorf("project priority must be one of: %s, %s, %s, %s, %s",
	PriorityMuyAlta, PriorityAlta, PriorityMedia, PriorityBaja, PriorityMuyBaja)

// ParseProjectPriority validates a raw priority value.
func ParseProjectPriority(s string) (ProjectPriority, error) {
	switch ProjectPriority(s) {
	case PriorityMuyAlta, PriorityAlta, PriorityMedia, PriorityBaja, PriorityMuyBaja:
		return ProjectPriority(s), nil
	}
	return "", ErrInvalidProjectPriority
}

// AbsencesProjectCode is the reserved project used to record absences and
// vacations as assignments. A convention, not a schema distinction.
const AbsencesProjectCode = "ABSENCES"

type Project struct {
	ID          string          `gorm:"type:varchar(36);primarykey" json:"id"`
	Code        string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Type        ProjectType     `gorm:"type:varchar(20);not null" json:"type"`
	Priority    ProjectPriority `gorm:"type:varchar(20);not null" json:"priority"`
	StatusID    *uint           `json:"status_id,omitempty"`
	DomainID    *uint           `json:"domain_id,omitempty"`
	Team        string          `gorm:"type:varchar(100);index" json:"team,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Status      *ProjectStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Domain      *Domain        `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	Assignments []Assignment   `gorm:"foreignKey:ProjectID" json:"assignments,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
