package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment is an atomic unit of committed work: a project, an optional
// resource, an hours quantity and a time anchor. Rows with a nil ResourceID
// are unassigned backlog tasks. The anchor is stored as either Date (daily
// mode) or Month+Year (legacy monthly mode); Period() normalizes the two.
type Assignment struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID   string     `gorm:"type:varchar(36);index;not null" json:"project_id"`
	ResourceID  *string    `gorm:"type:varchar(36);index" json:"resource_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	SkillName   *string    `gorm:"type:varchar(100)" json:"skill_name"`
	Team        *string    `gorm:"type:varchar(100)" json:"team,omitempty"`
	Hours       float64    `gorm:"type:decimal(7,2);not null" json:"hours"`
	Date        *time.Time `gorm:"index" json:"date,omitempty"`
	Month       *int       `gorm:"index" json:"month,omitempty"`
	Year        *int       `gorm:"index" json:"year,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Resource *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Period returns the assignment's time anchor as a tagged union.
func (a *Assignment) Period() Period {
	if a.Date != nil {
		return DailyPeriod(*a.Date)
	}
	month, year := 0, 0
	if a.Month != nil {
		month = *a.Month
	}
	if a.Year != nil {
		year = *a.Year
	}
	return MonthlyPeriod(month, year)
}

// SetPeriod stores the period in the matching column set and clears the other.
func (a *Assignment) SetPeriod(p Period) {
	if p.Kind == PeriodDaily {
		d := p.Date
		a.Date = &d
		a.Month = nil
		a.Year = nil
		return
	}
	a.Date = nil
	month, year := p.Month, p.Year
	a.Month = &month
	a.Year = &year
}
