package services

import (
	"fmt"
	"math"

	"github.com/planwise/capacity-planning-api/internal/constants"
	"github.com/planwise/capacity-planning-api/internal/models"
)

// MonthAssignment is one assignment's contribution to a resource month.
type MonthAssignment struct {
	ProjectID    string             `json:"project_id"`
	ProjectCode  string             `json:"project_code"`
	ProjectTitle string             `json:"project_title"`
	ProjectType  models.ProjectType `json:"project_type"`
	SkillName    *string            `json:"skill_name"`
	Hours        float64            `json:"hours"`
}

// MonthMetrics holds one resource's figures for one month. AvailableHours is
// raw and may be negative: overcommitment is displayed, not hidden.
type MonthMetrics struct {
	Month           int               `json:"month"`
	TotalHours      float64           `json:"total_hours"`
	CommittedHours  float64           `json:"committed_hours"`
	AvailableHours  float64           `json:"available_hours"`
	UtilizationRate int               `json:"utilization_rate"`
	Assignments     []MonthAssignment `json:"assignments"`
}

// ClampedAvailable returns available hours floored at zero. Team-wide chart
// series sum this instead of the raw value so one overcommitted resource
// cannot cancel out headroom elsewhere.
func (m MonthMetrics) ClampedAvailable() float64 {
	if m.AvailableHours < 0 {
		return 0
	}
	return m.AvailableHours
}

// SkillInfo describes a declared resource skill in overview output.
type SkillInfo struct {
	Name        string             `json:"name"`
	Proficiency models.Proficiency `json:"proficiency,omitempty"`
}

// ResourceMetrics is the per-resource monthly matrix with rollups.
type ResourceMetrics struct {
	ID                  string         `json:"id"`
	Code                string         `json:"code"`
	Name                string         `json:"name"`
	Email               string         `json:"email,omitempty"`
	DefaultCapacity     int            `json:"default_capacity"`
	Skills              []SkillInfo    `json:"skills"`
	MonthlyData         []MonthMetrics `json:"monthly_data"`
	AvgUtilization      int            `json:"avg_utilization"`
	HasFutureAssignment bool           `json:"has_future_assignment"`
}

// UtilizationKPI splits average utilization into the current month and the
// months after it.
type UtilizationKPI struct {
	Current int `json:"current"`
	Future  int `json:"future"`
}

// OverviewKPIs are the team-wide headline numbers.
type OverviewKPIs struct {
	TotalResources             int            `json:"total_resources"`
	ResourcesWithAssignment    int            `json:"resources_with_assignment"`
	ResourcesWithoutAssignment int            `json:"resources_without_assignment"`
	AvgUtilization             UtilizationKPI `json:"avg_utilization"`
}

// MonthlyComparison is one point of the committed-vs-available chart series.
type MonthlyComparison struct {
	Month          int     `json:"month"`
	CommittedHours float64 `json:"committed_hours"`
	AvailableHours float64 `json:"available_hours"`
}

// SkillAvailability is one skill bucket of the availability chart, split
// into the current month and the months after it.
type SkillAvailability struct {
	Skill        models.DisplaySkill `json:"skill"`
	CurrentMonth int                 `json:"current_month"`
	FutureMonths int                 `json:"future_months"`
}

// OverviewCharts groups the chart-ready series.
type OverviewCharts struct {
	MonthlyComparison  []MonthlyComparison `json:"monthly_comparison"`
	SkillsAvailability []SkillAvailability `json:"skills_availability"`
}

// Overview is the full dashboard document for one team and year.
type Overview struct {
	Year         int               `json:"year"`
	CurrentMonth int               `json:"current_month"`
	KPIs         OverviewKPIs      `json:"kpis"`
	Charts       OverviewCharts    `json:"charts"`
	Resources    []ResourceMetrics `json:"resources"`
}

// Overview aggregates the team's assignments, capacity overrides and skills
// into the dashboard document. Zero resources or zero assignments yield
// zeroed KPIs, not an error.
func (s *CapacityService) Overview(team string, year int) (*Overview, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < constants.MinYear || year > constants.MaxYear {
		return nil, ErrYearOutOfRange
	}

	currentMonth := int(s.now().Month())

	resources, err := s.resourceRepo.ListByTeam(team, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list team resources: %w", err)
	}

	resourceIDs := make([]string, len(resources))
	for i, r := range resources {
		resourceIDs[i] = r.ID
	}

	capacities, err := s.capacityRepo.ListForResourcesYear(resourceIDs, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list capacity overrides: %w", err)
	}
	assignments, err := s.assignmentRepo.ListForResourcesYear(resourceIDs, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	overrides := make(map[string]map[int]float64)
	for _, c := range capacities {
		if overrides[c.ResourceID] == nil {
			overrides[c.ResourceID] = make(map[int]float64)
		}
		overrides[c.ResourceID][c.Month] = c.TotalHours
	}

	byResourceMonth := make(map[string]map[int][]MonthAssignment)
	for _, a := range assignments {
		if a.ResourceID == nil {
			continue
		}
		month, effYear := a.Period().Effective()
		if effYear != year {
			continue
		}
		if byResourceMonth[*a.ResourceID] == nil {
			byResourceMonth[*a.ResourceID] = make(map[int][]MonthAssignment)
		}
		byResourceMonth[*a.ResourceID][month] = append(byResourceMonth[*a.ResourceID][month], MonthAssignment{
			ProjectID:    a.ProjectID,
			ProjectCode:  a.Project.Code,
			ProjectTitle: a.Project.Title,
			ProjectType:  a.Project.Type,
			SkillName:    a.SkillName,
			Hours:        a.Hours,
		})
	}

	metrics := make([]ResourceMetrics, 0, len(resources))
	for _, resource := range resources {
		metrics = append(metrics, s.resourceMetrics(resource, overrides[resource.ID], byResourceMonth[resource.ID], currentMonth))
	}

	return &Overview{
		Year:         year,
		CurrentMonth: currentMonth,
		KPIs:         teamKPIs(metrics, currentMonth),
		Charts: OverviewCharts{
			MonthlyComparison:  monthlyComparison(metrics),
			SkillsAvailability: skillsAvailability(metrics, currentMonth),
		},
		Resources: metrics,
	}, nil
}

func (s *CapacityService) resourceMetrics(resource models.Resource, overrides map[int]float64, assignmentsByMonth map[int][]MonthAssignment, currentMonth int) ResourceMetrics {
	monthly := make([]MonthMetrics, 0, 12)
	for month := 1; month <= 12; month++ {
		total := float64(resource.DefaultCapacity)
		if override, ok := overrides[month]; ok {
			total = override
		}

		monthAssignments := assignmentsByMonth[month]
		committed := 0.0
		for _, a := range monthAssignments {
			committed += a.Hours
		}

		utilization := 0
		if total > 0 {
			utilization = int(math.Round(committed / total * 100))
		}

		if monthAssignments == nil {
			monthAssignments = []MonthAssignment{}
		}
		monthly = append(monthly, MonthMetrics{
			Month:           month,
			TotalHours:      total,
			CommittedHours:  committed,
			AvailableHours:  total - committed,
			UtilizationRate: utilization,
			Assignments:     monthAssignments,
		})
	}

	// Rollups look at the current month and later, not the past.
	utilizationSum := 0
	futureCount := 0
	hasFuture := false
	for _, m := range monthly {
		if m.Month < currentMonth {
			continue
		}
		utilizationSum += m.UtilizationRate
		futureCount++
		if m.CommittedHours > 0 {
			hasFuture = true
		}
	}
	avgUtilization := 0
	if futureCount > 0 {
		avgUtilization = int(math.Round(float64(utilizationSum) / float64(futureCount)))
	}

	skills := make([]SkillInfo, 0, len(resource.Skills))
	for _, rs := range resource.Skills {
		skills = append(skills, SkillInfo{Name: rs.SkillName, Proficiency: rs.Proficiency})
	}

	return ResourceMetrics{
		ID:                  resource.ID,
		Code:                resource.Code,
		Name:                resource.Name,
		Email:               resource.Email,
		DefaultCapacity:     resource.DefaultCapacity,
		Skills:              skills,
		MonthlyData:         monthly,
		AvgUtilization:      avgUtilization,
		HasFutureAssignment: hasFuture,
	}
}

func teamKPIs(metrics []ResourceMetrics, currentMonth int) OverviewKPIs {
	total := len(metrics)
	withAssignment := 0
	for _, m := range metrics {
		if m.HasFutureAssignment {
			withAssignment++
		}
	}

	current := 0
	future := 0
	if total > 0 {
		currentSum := 0.0
		futureSum := 0.0
		for _, m := range metrics {
			currentSum += float64(m.MonthlyData[currentMonth-1].UtilizationRate)

			monthSum := 0.0
			months := 0
			for _, md := range m.MonthlyData {
				if md.Month > currentMonth {
					monthSum += float64(md.UtilizationRate)
					months++
				}
			}
			if months > 0 {
				futureSum += monthSum / float64(months)
			}
		}
		current = int(math.Round(currentSum / float64(total)))
		future = int(math.Round(futureSum / float64(total)))
	}

	return OverviewKPIs{
		TotalResources:             total,
		ResourcesWithAssignment:    withAssignment,
		ResourcesWithoutAssignment: total - withAssignment,
		AvgUtilization:             UtilizationKPI{Current: current, Future: future},
	}
}

func monthlyComparison(metrics []ResourceMetrics) []MonthlyComparison {
	series := make([]MonthlyComparison, 0, 12)
	for month := 1; month <= 12; month++ {
		committed := 0.0
		available := 0.0
		for _, m := range metrics {
			md := m.MonthlyData[month-1]
			committed += md.CommittedHours
			available += md.ClampedAvailable()
		}
		series = append(series, MonthlyComparison{
			Month:          month,
			CommittedHours: committed,
			AvailableHours: available,
		})
	}
	return series
}

// skillsAvailability splits each resource's available hours evenly across its
// declared skills (a resource with 3 skills contributes a third of its
// headroom to each bucket), then reports buckets in the fixed display order.
func skillsAvailability(metrics []ResourceMetrics, currentMonth int) []SkillAvailability {
	type bucket struct {
		current float64
		future  float64
	}
	buckets := make(map[models.DisplaySkill]*bucket)

	for _, m := range metrics {
		skillCount := len(m.Skills)
		if skillCount == 0 {
			continue
		}

		currentAvailable := m.MonthlyData[currentMonth-1].ClampedAvailable()
		futureAvailable := 0.0
		for _, md := range m.MonthlyData {
			if md.Month > currentMonth {
				futureAvailable += md.ClampedAvailable()
			}
		}

		for _, skill := range m.Skills {
			display := models.FoldSkill(skill.Name)
			if buckets[display] == nil {
				buckets[display] = &bucket{}
			}
			buckets[display].current += currentAvailable / float64(skillCount)
			buckets[display].future += futureAvailable / float64(skillCount)
		}
	}

	series := make([]SkillAvailability, 0, len(buckets))
	for _, skill := range models.SkillDisplayOrder {
		b, ok := buckets[skill]
		if !ok {
			continue
		}
		series = append(series, SkillAvailability{
			Skill:        skill,
			CurrentMonth: int(math.Round(b.current)),
			FutureMonths: int(math.Round(b.future)),
		})
	}
	return series
}
