package models

// Domain is a functional domain a project belongs to. Seeded at migration
// time, read-only through the API.
type Domain struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// ProjectStatus is a step in the ordered project lifecycle. Seeded at
// migration time, read-only through the API.
type ProjectStatus struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	SortOrder int    `gorm:"not null" json:"sort_order"`
}

func (ProjectStatus) TableName() string {
	return "project_statuses"
}
