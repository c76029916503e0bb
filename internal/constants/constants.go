package constants

// Capacity rules
const (
	// DefaultMonthlyCapacity is the fallback hours/month when a resource has
	// no explicit capacity record for a period.
	DefaultMonthlyCapacity = 160

	// DailyCapacityHours is the fixed per-day ceiling for date-anchored
	// assignments. There is no per-day override table, only per-month.
	DailyCapacityHours = 8

	// MaxMonthlyHours is the hard ceiling for any hours field (31 days * 24h).
	MaxMonthlyHours = 744
)

// Valid year range for monthly periods and capacity records
const (
	MinYear = 2000
	MaxYear = 2100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Context keys
const (
	ContextKeyTeam = "team"
)

// HeaderTeam carries the caller's team identity, set by the authentication
// layer in front of this API.
const HeaderTeam = "X-User-Team"
