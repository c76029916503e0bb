package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/models"
)

type ResourceHandlerTestSuite struct {
	handlerSuite
}

func (suite *ResourceHandlerTestSuite) TestCreateResource() {
	w := suite.request(http.MethodPost, "/api/resources", gin.H{
		"code":  "RES-001",
		"name":  "Ana García",
		"email": "ana@example.com",
		"skills": []gin.H{
			{"name": "QA", "proficiency": "senior"},
			{"name": "Diseño"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal("RES-001", body["code"])
	suite.Equal(testTeam, body["team"])
	suite.Equal(float64(160), body["default_capacity"])
	suite.Equal(true, body["active"])
	suite.Len(body["skills"].([]interface{}), 2)
}

func (suite *ResourceHandlerTestSuite) TestCreateDuplicateCode() {
	suite.createTestResource("RES-001", "Ana García", 160)

	w := suite.request(http.MethodPost, "/api/resources", gin.H{
		"code": "RES-001",
		"name": "Otra Persona",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apierrors.ErrCodeAlreadyExists, suite.decode(w)["code"])
}

func (suite *ResourceHandlerTestSuite) TestCreateValidation() {
	w := suite.request(http.MethodPost, "/api/resources", gin.H{
		"code":  "RES-001",
		"name":  "Ana García",
		"email": "not-an-email",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/resources", gin.H{
		"code":             "RES-002",
		"name":             "Ana García",
		"default_capacity": 800,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/resources", gin.H{
		"code":   "RES-003",
		"name":   "Ana García",
		"skills": []gin.H{{"name": "QA", "proficiency": "wizard"}},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ResourceHandlerTestSuite) TestUpdateReplacesSkills() {
	resource := suite.createTestResource("RES-001", "Ana García", 160, "QA")

	w := suite.request(http.MethodPatch, "/api/resources/"+resource.ID, gin.H{
		"skills": []gin.H{
			{"name": "Diseño", "proficiency": "mid"},
			{"name": "Construcción"},
		},
	})

	suite.Equal(http.StatusOK, w.Code)
	skills := suite.decode(w)["skills"].([]interface{})
	suite.Len(skills, 2)

	names := map[string]bool{}
	for _, raw := range skills {
		names[raw.(map[string]interface{})["skill_name"].(string)] = true
	}
	suite.True(names["Diseño"])
	suite.True(names["Construcción"])
	suite.False(names["QA"])
}

func (suite *ResourceHandlerTestSuite) TestDeleteDeactivates() {
	resource := suite.createTestResource("RES-001", "Ana García", 160)

	w := suite.request(http.MethodDelete, "/api/resources/"+resource.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	// The row survives with active=false
	w = suite.request(http.MethodGet, "/api/resources/"+resource.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(false, suite.decode(w)["active"])

	// Active-only listings no longer include it
	w = suite.request(http.MethodGet, "/api/resources?active=true", nil)
	suite.Empty(suite.decode(w)["resources"].([]interface{}))

	w = suite.request(http.MethodGet, "/api/resources?active=false", nil)
	suite.Len(suite.decode(w)["resources"].([]interface{}), 1)
}

func (suite *ResourceHandlerTestSuite) TestTeamScoping() {
	foreign := &models.Resource{
		Code:            "RES-OTHER",
		Name:            "Someone Else",
		Team:            "another-team",
		DefaultCapacity: 160,
		Active:          true,
	}
	suite.Require().NoError(suite.db.Create(foreign).Error)

	w := suite.request(http.MethodGet, "/api/resources/"+foreign.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/resources", nil)
	suite.Empty(suite.decode(w)["resources"].([]interface{}))
}

func (suite *ResourceHandlerTestSuite) TestListPagination() {
	for i := 0; i < 3; i++ {
		suite.createTestResource("RES-00"+string(rune('1'+i)), "Resource "+string(rune('A'+i)), 160)
	}

	w := suite.request(http.MethodGet, "/api/resources?page=1&limit=2", nil)
	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Len(body["resources"].([]interface{}), 2)

	pagination := body["pagination"].(map[string]interface{})
	suite.Equal(float64(3), pagination["total"])
	suite.Equal(float64(2), pagination["limit"])
}

func TestResourceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}
