package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Capacity overrides a resource's default monthly hours for one period.
// Unique per (resource, month, year); writes are upserts.
type Capacity struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ResourceID string    `gorm:"type:varchar(36);uniqueIndex:idx_capacity_resource_period;not null" json:"resource_id"`
	Month      int       `gorm:"uniqueIndex:idx_capacity_resource_period;not null" json:"month"`
	Year       int       `gorm:"uniqueIndex:idx_capacity_resource_period;not null" json:"year"`
	TotalHours float64   `gorm:"type:decimal(7,2);not null" json:"total_hours"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Resource Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

func (c *Capacity) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
