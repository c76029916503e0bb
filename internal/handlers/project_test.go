package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/planwise/capacity-planning-api/internal/database"
)

type ProjectHandlerTestSuite struct {
	handlerSuite
}

func (suite *ProjectHandlerTestSuite) TestCreateProject() {
	w := suite.request(http.MethodPost, "/api/projects", gin.H{
		"code":       "PRJ-001",
		"title":      "Billing revamp",
		"type":       "Proyecto",
		"priority":   "alta",
		"start_date": "2026-01-15",
		"end_date":   "2026-09-30",
	})

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal("PRJ-001", body["code"])
	suite.Equal("Proyecto", body["type"])
	suite.Equal("alta", body["priority"])
	suite.Equal(testTeam, body["team"])
}

func (suite *ProjectHandlerTestSuite) TestCreateValidation() {
	w := suite.request(http.MethodPost, "/api/projects", gin.H{
		"code":     "PRJ-001",
		"title":    "Bad type",
		"type":     "Mantenimiento",
		"priority": "alta",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/projects", gin.H{
		"code":     "PRJ-002",
		"title":    "Bad priority",
		"type":     "Proyecto",
		"priority": "urgente",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/projects", gin.H{
		"code":       "PRJ-003",
		"title":      "Dates reversed",
		"type":       "Proyecto",
		"priority":   "alta",
		"start_date": "2026-09-30",
		"end_date":   "2026-01-15",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestCreateDuplicateCode() {
	suite.createTestProject("PRJ-001")

	w := suite.request(http.MethodPost, "/api/projects", gin.H{
		"code":     "PRJ-001",
		"title":    "Same code again",
		"type":     "Evolutivo",
		"priority": "baja",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject() {
	project := suite.createTestProject("PRJ-001")

	w := suite.request(http.MethodPatch, "/api/projects/"+project.ID, gin.H{
		"title":    "Renamed",
		"priority": "muy-alta",
	})

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("Renamed", body["title"])
	suite.Equal("muy-alta", body["priority"])
}

func (suite *ProjectHandlerTestSuite) TestDeleteCascadesAssignments() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	suite.createTestAssignment(project.ID, resource.ID, 40, 6, 2026)
	suite.createTestAssignment(project.ID, resource.ID, 40, 7, 2026)

	w := suite.request(http.MethodDelete, "/api/projects/"+project.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.Equal(int64(0), suite.countAssignments())
	w = suite.request(http.MethodGet, "/api/projects/"+project.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestListFiltersByType() {
	suite.createTestProject("PRJ-001")
	evolutivo := suite.createTestProject("PRJ-002")
	suite.Require().NoError(suite.db.Model(evolutivo).Update("type", "Evolutivo").Error)

	w := suite.request(http.MethodGet, "/api/projects?type=Evolutivo", nil)
	suite.Equal(http.StatusOK, w.Code)
	projects := suite.decode(w)["projects"].([]interface{})
	suite.Require().Len(projects, 1)
	suite.Equal("PRJ-002", projects[0].(map[string]interface{})["code"])
}

func (suite *ProjectHandlerTestSuite) TestCatalogs() {
	suite.Require().NoError(database.Seed(suite.db))

	w := suite.request(http.MethodGet, "/api/domains", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(suite.decode(w)["domains"].([]interface{}), 7)

	w = suite.request(http.MethodGet, "/api/statuses", nil)
	suite.Equal(http.StatusOK, w.Code)
	statuses := suite.decode(w)["statuses"].([]interface{})
	suite.Require().Len(statuses, 7)
	suite.Equal("Idea", statuses[0].(map[string]interface{})["name"])
	suite.Equal("Finalizado", statuses[6].(map[string]interface{})["name"])
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
