package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planwise/capacity-planning-api/internal/constants"
	"github.com/planwise/capacity-planning-api/internal/database"
	"github.com/planwise/capacity-planning-api/internal/middleware"
	"github.com/planwise/capacity-planning-api/internal/models"
	"github.com/planwise/capacity-planning-api/internal/repository"
	"github.com/planwise/capacity-planning-api/internal/services"
)

const testTeam = "engineering"

// handlerSuite wires an in-memory database and the full router so tests
// exercise the same stack as production requests, team middleware included.
type handlerSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	resourceService   *services.ResourceService
	assignmentService *services.AssignmentService
	capacityService   *services.CapacityService
}

// SetupTest runs before each test
func (suite *handlerSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Domain{},
		&models.ProjectStatus{},
		&models.Resource{},
		&models.ResourceSkill{},
		&models.Project{},
		&models.Assignment{},
		&models.Capacity{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	resourceRepo := repository.NewResourceRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	assignmentRepo := repository.NewAssignmentRepository(suite.db)
	capacityRepo := repository.NewCapacityRepository(suite.db)

	suite.resourceService = services.NewResourceService(resourceRepo)
	projectService := services.NewProjectService(projectRepo)
	suite.assignmentService = services.NewAssignmentService(assignmentRepo, projectRepo, resourceRepo, capacityRepo)
	suite.capacityService = services.NewCapacityService(capacityRepo, resourceRepo, assignmentRepo)
	syncService := services.NewSyncService(projectRepo, resourceRepo, assignmentRepo, suite.assignmentService)

	resourceHandler := NewResourceHandler(suite.resourceService)
	projectHandler := NewProjectHandler(projectService)
	assignmentHandler := NewAssignmentHandler(suite.assignmentService)
	capacityHandler := NewCapacityHandler(suite.capacityService)
	catalogHandler := NewCatalogHandler()
	syncHandler := NewSyncHandler(syncService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	api := suite.router.Group("/api")
	api.Use(middleware.RequireTeam())
	{
		resources := api.Group("/resources")
		resources.GET("", resourceHandler.ListResources)
		resources.POST("", resourceHandler.CreateResource)
		resources.GET("/:id", resourceHandler.GetResource)
		resources.PUT("/:id", resourceHandler.UpdateResource)
		resources.PATCH("/:id", resourceHandler.UpdateResource)
		resources.DELETE("/:id", resourceHandler.DeleteResource)

		projects := api.Group("/projects")
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.PATCH("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.POST("/:id/assignments/sync", syncHandler.SyncAssignments)

		assignments := api.Group("/assignments")
		assignments.GET("", assignmentHandler.ListAssignments)
		assignments.POST("", assignmentHandler.CreateAssignment)
		assignments.DELETE("", assignmentHandler.DeleteByProject)
		assignments.GET("/:id", assignmentHandler.GetAssignment)
		assignments.PUT("/:id", assignmentHandler.UpdateAssignment)
		assignments.PATCH("/:id", assignmentHandler.UpdateAssignment)
		assignments.DELETE("/:id", assignmentHandler.DeleteAssignment)

		capacity := api.Group("/capacity")
		capacity.GET("", capacityHandler.ListCapacity)
		capacity.PUT("", capacityHandler.UpsertCapacity)
		capacity.GET("/overview", capacityHandler.Overview)
		capacity.GET("/:id", capacityHandler.GetCapacity)

		api.GET("/domains", catalogHandler.ListDomains)
		api.GET("/statuses", catalogHandler.ListStatuses)
	}
}

// TearDownTest runs after each test
func (suite *handlerSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// request performs an API call with the test team header set
func (suite *handlerSuite) request(method, url string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		suite.Require().NoError(err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.HeaderTeam, testTeam)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a JSON response body
func (suite *handlerSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// Helper functions to create test data

func (suite *handlerSuite) createTestResource(code, name string, capacity int, skills ...string) *models.Resource {
	resource := &models.Resource{
		Code:            code,
		Name:            name,
		Team:            testTeam,
		DefaultCapacity: capacity,
		Active:          true,
	}
	for _, skill := range skills {
		resource.Skills = append(resource.Skills, models.ResourceSkill{SkillName: skill})
	}
	suite.Require().NoError(suite.db.Create(resource).Error)
	return resource
}

func (suite *handlerSuite) createTestProject(code string) *models.Project {
	project := &models.Project{
		Code:     code,
		Title:    code + " project",
		Type:     models.ProjectTypeProyecto,
		Priority: models.PriorityMedia,
		Team:     testTeam,
	}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

func (suite *handlerSuite) createTestAssignment(projectID, resourceID string, hours float64, month, year int) *models.Assignment {
	assignment := &models.Assignment{
		ProjectID:  projectID,
		ResourceID: &resourceID,
		Title:      "Seeded work",
		Hours:      hours,
		Month:      &month,
		Year:       &year,
	}
	suite.Require().NoError(suite.db.Create(assignment).Error)
	return assignment
}

func (suite *handlerSuite) createTestDailyAssignment(projectID, resourceID string, hours float64, day time.Time) *models.Assignment {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	assignment := &models.Assignment{
		ProjectID:  projectID,
		ResourceID: &resourceID,
		Title:      "Seeded daily work",
		Hours:      hours,
		Date:       &day,
	}
	suite.Require().NoError(suite.db.Create(assignment).Error)
	return assignment
}

func (suite *handlerSuite) countAssignments() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Assignment{}).Count(&count).Error)
	return count
}
