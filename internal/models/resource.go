package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Proficiency string

const (
	ProficiencyJunior Proficiency = "junior"
	ProficiencyMid    Proficiency = "mid"
	ProficiencySenior Proficiency = "senior"
)

// ValidProficiency reports whether p is a known proficiency level.
func ValidProficiency(p Proficiency) bool {
	switch p {
	case ProficiencyJunior, ProficiencyMid, ProficiencySenior:
		return true
	}
	return false
}

type Resource struct {
	ID              string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Code            string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Team            string    `gorm:"type:varchar(100);index;not null" json:"team"`
	DefaultCapacity int       `gorm:"not null;default:160" json:"default_capacity"`
	Active          bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Skills      []ResourceSkill `gorm:"foreignKey:ResourceID" json:"skills,omitempty"`
	Assignments []Assignment    `gorm:"foreignKey:ResourceID" json:"assignments,omitempty"`
	Capacities  []Capacity      `gorm:"foreignKey:ResourceID" json:"capacities,omitempty"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// HasSkill reports whether the resource declares the given skill.
func (r *Resource) HasSkill(skillName string) bool {
	for _, s := range r.Skills {
		if s.SkillName == skillName {
			return true
		}
	}
	return false
}

type ResourceSkill struct {
	ResourceID  string      `gorm:"type:varchar(36);primarykey" json:"resource_id"`
	SkillName   string      `gorm:"type:varchar(100);primarykey" json:"skill_name"`
	Proficiency Proficiency `gorm:"type:varchar(20)" json:"proficiency,omitempty"`
}
