package database

import (
	"fmt"
	"log"

	"github.com/planwise/capacity-planning-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.Domain{},
		&models.ProjectStatus{},
		&models.Resource{},
		&models.ResourceSkill{},
		&models.Project{},
		&models.Assignment{},
		&models.Capacity{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Seed inserts the catalog rows (domains and project lifecycle statuses).
// Idempotent: existing rows are left untouched.
func Seed(db *gorm.DB) error {
	domains := []models.Domain{
		{ID: 1, Name: "Atención"},
		{ID: 2, Name: "Facturación y Cobros"},
		{ID: 3, Name: "Integración"},
		{ID: 4, Name: "Datos"},
		{ID: 5, Name: "Ventas | Contratación y SW"},
		{ID: 6, Name: "Operación de Sistemas y Ciberseguridad"},
		{ID: 7, Name: "Ninguno"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&domains).Error; err != nil {
		return fmt.Errorf("failed to seed domains: %w", err)
	}

	statuses := []models.ProjectStatus{
		{ID: 1, Name: "Idea", SortOrder: 1},
		{ID: 2, Name: "Conceptualización", SortOrder: 2},
		{ID: 3, Name: "Diseño Detallado", SortOrder: 3},
		{ID: 4, Name: "Viabilidad Técnico-Económica", SortOrder: 4},
		{ID: 5, Name: "Construcción y Pruebas / Desarrollo", SortOrder: 5},
		{ID: 6, Name: "Implantación", SortOrder: 6},
		{ID: 7, Name: "Finalizado", SortOrder: 7},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		return fmt.Errorf("failed to seed project statuses: %w", err)
	}

	return nil
}
