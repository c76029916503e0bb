package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/planwise/capacity-planning-api/internal/config"
	"github.com/planwise/capacity-planning-api/internal/database"
	"github.com/planwise/capacity-planning-api/internal/handlers"
	"github.com/planwise/capacity-planning-api/internal/middleware"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"github.com/planwise/capacity-planning-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations and seed the catalogs
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed catalogs: %v", err)
	}

	// Initialize repositories
	resourceRepo := repository.NewResourceRepository(database.GetDB())
	projectRepo := repository.NewProjectRepository(database.GetDB())
	assignmentRepo := repository.NewAssignmentRepository(database.GetDB())
	capacityRepo := repository.NewCapacityRepository(database.GetDB())

	// Initialize services
	resourceService := services.NewResourceService(resourceRepo)
	projectService := services.NewProjectService(projectRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, projectRepo, resourceRepo, capacityRepo)
	capacityService := services.NewCapacityService(capacityRepo, resourceRepo, assignmentRepo)
	syncService := services.NewSyncService(projectRepo, resourceRepo, assignmentRepo, assignmentService)

	// Initialize handlers
	resourceHandler := handlers.NewResourceHandler(resourceService)
	projectHandler := handlers.NewProjectHandler(projectService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	capacityHandler := handlers.NewCapacityHandler(capacityService)
	catalogHandler := handlers.NewCatalogHandler()
	syncHandler := handlers.NewSyncHandler(syncService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Capacity Planning API is running",
		})
	})

	// API routes, all scoped to the caller's team
	api := r.Group("/api")
	api.Use(middleware.RequireTeam())
	{
		resources := api.Group("/resources")
		{
			resources.GET("", resourceHandler.ListResources)
			resources.POST("", resourceHandler.CreateResource)
			resources.GET("/:id", resourceHandler.GetResource)
			resources.PUT("/:id", resourceHandler.UpdateResource)
			resources.PATCH("/:id", resourceHandler.UpdateResource)
			resources.DELETE("/:id", resourceHandler.DeleteResource)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/assignments/sync", syncHandler.SyncAssignments)
		}

		assignments := api.Group("/assignments")
		{
			assignments.GET("", assignmentHandler.ListAssignments)
			assignments.POST("", assignmentHandler.CreateAssignment)
			assignments.DELETE("", assignmentHandler.DeleteByProject)
			assignments.GET("/:id", assignmentHandler.GetAssignment)
			assignments.PUT("/:id", assignmentHandler.UpdateAssignment)
			assignments.PATCH("/:id", assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", assignmentHandler.DeleteAssignment)
		}

		capacity := api.Group("/capacity")
		{
			capacity.GET("", capacityHandler.ListCapacity)
			capacity.PUT("", capacityHandler.UpsertCapacity)
			capacity.GET("/overview", capacityHandler.Overview)
			capacity.GET("/:id", capacityHandler.GetCapacity)
		}

		api.GET("/domains", catalogHandler.ListDomains)
		api.GET("/statuses", catalogHandler.ListStatuses)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
