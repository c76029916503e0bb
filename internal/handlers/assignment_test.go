package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
	"github.com/planwise/capacity-planning-api/internal/models"
)

type AssignmentHandlerTestSuite struct {
	handlerSuite
}

func (suite *AssignmentHandlerTestSuite) TestCreateAssignment() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "API integration",
		"hours":       70,
		"month":       6,
		"year":        2026,
	})

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal(70.0, body["hours"])
	suite.Equal(float64(6), body["month"])
	suite.Equal("PRJ-001", body["project"].(map[string]interface{})["code"])
	suite.Equal("Ana García", body["resource"].(map[string]interface{})["name"])
}

func (suite *AssignmentHandlerTestSuite) TestCreateRejectsWhenMonthlyCapacityExceeded() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	suite.createTestAssignment(project.ID, resource.ID, 100, 6, 2026)

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Too much work",
		"hours":       70,
		"month":       6,
		"year":        2026,
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	body := suite.decode(w)
	suite.Equal(apierrors.RuleCapacityExceeded, body["code"])

	details := body["details"].(map[string]interface{})
	suite.Equal(60.0, details["available"])
	suite.Equal(70.0, details["requested"])
	suite.Equal(100.0, details["assigned"])

	// The rejected row must not be persisted
	suite.Equal(int64(1), suite.countAssignments())
}

func (suite *AssignmentHandlerTestSuite) TestCreateAllowsExactCapacityFill() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	suite.createTestAssignment(project.ID, resource.ID, 100, 6, 2026)

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Fills the month exactly",
		"hours":       60,
		"month":       6,
		"year":        2026,
	})
	suite.Equal(http.StatusCreated, w.Code)

	// The month is now full; any extra hours tip it over
	w = suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "One sliver too many",
		"hours":       0.01,
		"month":       6,
		"year":        2026,
	})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal(apierrors.RuleCapacityExceeded, suite.decode(w)["code"])
}

func (suite *AssignmentHandlerTestSuite) TestCreateCountsDailyRowsAgainstMonth() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	suite.createTestDailyAssignment(project.ID, resource.ID, 8, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Monthly on top of daily",
		"hours":       155,
		"month":       6,
		"year":        2026,
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	details := suite.decode(w)["details"].(map[string]interface{})
	suite.Equal(152.0, details["available"])
}

func (suite *AssignmentHandlerTestSuite) TestCreateRejectsSkillMismatch() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160, "QA")

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Design work",
		"skill_name":  "Diseño",
		"hours":       10,
		"month":       6,
		"year":        2026,
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	body := suite.decode(w)
	suite.Equal(apierrors.RuleSkillMismatch, body["code"])
	suite.Equal(int64(0), suite.countAssignments())
}

func (suite *AssignmentHandlerTestSuite) TestCreateAllowsMatchingSkill() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160, "QA", "Diseño")

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Design work",
		"skill_name":  "Diseño",
		"hours":       10,
		"month":       6,
		"year":        2026,
	})

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *AssignmentHandlerTestSuite) TestCreateRejectsInactiveResource() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	suite.Require().NoError(suite.db.Model(resource).Update("active", false).Error)

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Work for a departed colleague",
		"hours":       10,
		"month":       6,
		"year":        2026,
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal(apierrors.RuleInactiveResource, suite.decode(w)["code"])
}

func (suite *AssignmentHandlerTestSuite) TestCreateDailyCapacity() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	suite.createTestDailyAssignment(project.ID, resource.ID, 6, day)

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Afternoon session",
		"hours":       3,
		"date":        "2026-06-10",
	})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	body := suite.decode(w)
	suite.Equal(apierrors.RuleDailyCapacityExceeded, body["code"])
	suite.Equal(2.0, body["details"].(map[string]interface{})["available"])

	w = suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id":  project.ID,
		"resource_id": resource.ID,
		"title":       "Shorter afternoon session",
		"hours":       2,
		"date":        "2026-06-10",
	})
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *AssignmentHandlerTestSuite) TestCreateUnassignedSkipsResourceRules() {
	project := suite.createTestProject("PRJ-001")

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id": project.ID,
		"title":      "Backlog task nobody owns yet",
		"hours":      500,
		"month":      6,
		"year":       2026,
	})

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Nil(body["resource_id"])
}

func (suite *AssignmentHandlerTestSuite) TestCreateRejectsAmbiguousPeriod() {
	project := suite.createTestProject("PRJ-001")

	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id": project.ID,
		"title":      "Confused about time",
		"hours":      10,
		"date":       "2026-06-10",
		"month":      6,
		"year":       2026,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AssignmentHandlerTestSuite) TestCreateRejectsUnknownProject() {
	w := suite.request(http.MethodPost, "/api/assignments", gin.H{
		"project_id": "no-such-project",
		"title":      "Orphan work",
		"hours":      10,
		"month":      6,
		"year":       2026,
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AssignmentHandlerTestSuite) TestRequiresTeamHeader() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/assignments", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apierrors.ErrCodeMissingTeamContext, suite.decode(w)["code"])
}

func (suite *AssignmentHandlerTestSuite) TestUpdateExcludesOwnHours() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	assignment := suite.createTestAssignment(project.ID, resource.ID, 100, 6, 2026)

	// Growing the row within capacity is fine: its own 100 hours do not
	// count against itself.
	w := suite.request(http.MethodPatch, "/api/assignments/"+assignment.ID, gin.H{"hours": 150})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(150.0, suite.decode(w)["hours"])

	w = suite.request(http.MethodPatch, "/api/assignments/"+assignment.ID, gin.H{"hours": 161})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal(apierrors.RuleCapacityExceeded, suite.decode(w)["code"])
}

func (suite *AssignmentHandlerTestSuite) TestUpdateDetachesResource() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	assignment := suite.createTestAssignment(project.ID, resource.ID, 100, 6, 2026)

	w := suite.request(http.MethodPatch, "/api/assignments/"+assignment.ID, gin.H{"resource_id": nil})
	suite.Equal(http.StatusOK, w.Code)
	suite.Nil(suite.decode(w)["resource_id"])
}

func (suite *AssignmentHandlerTestSuite) TestListFiltersByPeriod() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	suite.createTestAssignment(project.ID, resource.ID, 40, 5, 2026)
	suite.createTestAssignment(project.ID, resource.ID, 60, 6, 2026)
	suite.createTestDailyAssignment(project.ID, resource.ID, 4, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC))

	// A full period filter matches daily rows inside the month as well
	w := suite.request(http.MethodGet, "/api/assignments?month=6&year=2026", nil)
	suite.Equal(http.StatusOK, w.Code)
	assignments := suite.decode(w)["assignments"].([]interface{})
	suite.Len(assignments, 2)
}

func (suite *AssignmentHandlerTestSuite) TestDeleteAssignment() {
	project := suite.createTestProject("PRJ-001")
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	assignment := suite.createTestAssignment(project.ID, resource.ID, 40, 6, 2026)

	w := suite.request(http.MethodDelete, "/api/assignments/"+assignment.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(int64(0), suite.countAssignments())
}

func (suite *AssignmentHandlerTestSuite) TestDeleteByProject() {
	project := suite.createTestProject("PRJ-001")
	other := suite.createTestProject("PRJ-002")
	resource := suite.createTestResource("RES-001", "Ana García", 744)
	suite.createTestAssignment(project.ID, resource.ID, 10, 6, 2026)
	suite.createTestAssignment(project.ID, resource.ID, 10, 7, 2026)
	suite.createTestAssignment(project.ID, resource.ID, 10, 8, 2026)
	suite.createTestAssignment(other.ID, resource.ID, 10, 6, 2026)

	w := suite.request(http.MethodDelete, "/api/assignments?projectId="+project.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(3), suite.decode(w)["deleted"])
	suite.Equal(int64(1), suite.countAssignments())
}

func (suite *AssignmentHandlerTestSuite) TestDeleteByProjectOtherTeam() {
	foreign := &models.Project{
		Code:     "PRJ-900",
		Title:    "Foreign project",
		Type:     models.ProjectTypeProyecto,
		Priority: models.PriorityMedia,
		Team:     "another-team",
	}
	suite.Require().NoError(suite.db.Create(foreign).Error)
	resource := suite.createTestResource("RES-001", "Ana García", 160)
	suite.createTestAssignment(foreign.ID, resource.ID, 40, 6, 2026)

	w := suite.request(http.MethodDelete, "/api/assignments?projectId="+foreign.ID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(int64(1), suite.countAssignments())
}

func TestAssignmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentHandlerTestSuite))
}
